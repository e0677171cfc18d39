package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/md-rashed-zaman/mockinterview/libs/db"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/apperr"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/model"
)

type InterviewRepository struct {
	pool *db.Pool
}

func NewInterviewRepository(pool *db.Pool) *InterviewRepository {
	return &InterviewRepository{pool: pool}
}

const interviewColumns = `
	id::text, interviewer_id, candidate_id, candidate_name, candidate_email,
	scheduled_time, end_time, duration, status, interview_type, timezone, notes, room_id::text,
	one_hour_reminder_sent, five_minute_reminder_sent, created_at, updated_at`

// InsertIfFree serialises bookings per interviewer with a transaction-scoped advisory
// lock, re-checks overlap and inserts. The exclusion constraint on interviews rejects
// anything that slips past the check.
func (r *InterviewRepository) InsertIfFree(ctx context.Context, iv *model.Interview) error {
	err := r.pool.InTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, iv.InterviewerID); err != nil {
			return fmt.Errorf("lock interviewer: %w", err)
		}

		var taken bool
		if err := tx.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM interviews
				WHERE interviewer_id = $1
					AND status = 'scheduled'
					AND scheduled_time < $3
					AND end_time > $2
			)
		`, iv.InterviewerID, iv.ScheduledTime, iv.EndTime).Scan(&taken); err != nil {
			return fmt.Errorf("check overlap: %w", err)
		}
		if taken {
			return apperr.Conflict("slot no longer available")
		}

		return tx.QueryRow(ctx, `
			INSERT INTO interviews
				(id, interviewer_id, candidate_id, candidate_name, candidate_email, scheduled_time, end_time,
				 duration, status, interview_type, timezone, notes, room_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING created_at, updated_at
		`, iv.ID, iv.InterviewerID, iv.CandidateID, iv.CandidateName, iv.CandidateEmail, iv.ScheduledTime, iv.EndTime,
			iv.Duration, string(iv.Status), iv.InterviewType, iv.Timezone, iv.Notes, iv.RoomID,
		).Scan(&iv.CreatedAt, &iv.UpdatedAt)
	})
	if err != nil && IsConflict(err) {
		return apperr.Wrap(apperr.KindConflict, err, "slot no longer available")
	}
	return err
}

func (r *InterviewRepository) GetInterview(ctx context.Context, id string) (model.Interview, error) {
	iv, err := scanInterview(r.pool.QueryRow(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE id = $1`, id))
	if IsNotFound(err) {
		return model.Interview{}, apperr.NotFound("interview %s not found", id)
	}
	return iv, err
}

// TransitionStatus is a compare-and-set on status.
func (r *InterviewRepository) TransitionStatus(ctx context.Context, id string, from, to model.InterviewStatus) (model.Interview, bool, error) {
	iv, err := scanInterview(r.pool.QueryRow(ctx, `
		UPDATE interviews SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2
		RETURNING `+interviewColumns, id, string(from), string(to)))
	if err == nil {
		return iv, true, nil
	}
	if !IsNotFound(err) {
		return model.Interview{}, false, err
	}
	current, err := r.GetInterview(ctx, id)
	if err != nil {
		return model.Interview{}, false, err
	}
	return current, false, nil
}

func (r *InterviewRepository) ListByInterviewer(ctx context.Context, interviewerID string, limit int) ([]model.Interview, error) {
	if limit <= 0 {
		limit = 50
	}
	return r.list(ctx, `SELECT `+interviewColumns+`
		FROM interviews
		WHERE interviewer_id = $1
		ORDER BY scheduled_time DESC
		LIMIT $2`, interviewerID, limit)
}

func (r *InterviewRepository) ListScheduledBetween(ctx context.Context, interviewerID string, start, end time.Time) ([]model.Interview, error) {
	return r.list(ctx, `SELECT `+interviewColumns+`
		FROM interviews
		WHERE interviewer_id = $1
			AND status = 'scheduled'
			AND scheduled_time < $3
			AND end_time > $2
		ORDER BY scheduled_time ASC`, interviewerID, start, end)
}

// ListStartingBetween feeds the reminder scanner: scheduled interviews of every
// interviewer starting in [from, to].
func (r *InterviewRepository) ListStartingBetween(ctx context.Context, from, to time.Time, limit int) ([]model.Interview, error) {
	if limit <= 0 {
		limit = 500
	}
	return r.list(ctx, `SELECT `+interviewColumns+`
		FROM interviews
		WHERE status = 'scheduled'
			AND scheduled_time >= $1
			AND scheduled_time <= $2
		ORDER BY scheduled_time ASC
		LIMIT $3`, from, to, limit)
}

// ClaimReminder sets the reminder flag only if it is still unset, so exactly one of any
// number of concurrent scanners gets true.
func (r *InterviewRepository) ClaimReminder(ctx context.Context, id string, kind model.ReminderKind) (bool, error) {
	var sql string
	switch kind {
	case model.ReminderOneHour:
		sql = `UPDATE interviews SET one_hour_reminder_sent = true, updated_at = now()
			WHERE id = $1 AND status = 'scheduled' AND NOT one_hour_reminder_sent`
	case model.ReminderFiveMinute:
		sql = `UPDATE interviews SET five_minute_reminder_sent = true, updated_at = now()
			WHERE id = $1 AND status = 'scheduled' AND NOT five_minute_reminder_sent`
	default:
		return false, apperr.Validation("unknown reminder kind %q", kind)
	}
	tag, err := r.pool.Exec(ctx, sql, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *InterviewRepository) list(ctx context.Context, sql string, args ...any) ([]model.Interview, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Interview
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func scanInterview(row pgx.Row) (model.Interview, error) {
	var iv model.Interview
	var status string
	err := row.Scan(
		&iv.ID,
		&iv.InterviewerID,
		&iv.CandidateID,
		&iv.CandidateName,
		&iv.CandidateEmail,
		&iv.ScheduledTime,
		&iv.EndTime,
		&iv.Duration,
		&status,
		&iv.InterviewType,
		&iv.Timezone,
		&iv.Notes,
		&iv.RoomID,
		&iv.OneHourReminderSent,
		&iv.FiveMinuteReminderSent,
		&iv.CreatedAt,
		&iv.UpdatedAt,
	)
	if err != nil {
		return model.Interview{}, err
	}
	iv.Status = model.InterviewStatus(status)
	return iv, nil
}
