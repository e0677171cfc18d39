package storage

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/md-rashed-zaman/mockinterview/libs/db"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/apperr"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/model"
)

type TemplateRepository struct {
	pool *db.Pool
}

func NewTemplateRepository(pool *db.Pool) *TemplateRepository {
	return &TemplateRepository{pool: pool}
}

const templateColumns = `
	id::text, interviewer_id, day_of_week,
	to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	COALESCE(to_char(break_start, 'HH24:MI'), ''), COALESCE(to_char(break_end, 'HH24:MI'), ''),
	interview_duration, buffer_minutes, timezone, is_active, created_at, updated_at`

func (r *TemplateRepository) CreateTemplate(ctx context.Context, tpl model.AvailabilityTemplate) (model.AvailabilityTemplate, error) {
	var breakStart, breakEnd *string
	if tpl.Break != nil {
		breakStart, breakEnd = &tpl.Break.Start, &tpl.Break.End
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO availability_templates
			(id, interviewer_id, day_of_week, start_time, end_time, break_start, break_end,
			 interview_duration, buffer_minutes, timezone, is_active)
		VALUES ($1, $2, $3, $4::time, $5::time, $6::time, $7::time, $8, $9, $10, $11)
		RETURNING `+templateColumns,
		tpl.ID, tpl.InterviewerID, tpl.DayOfWeek, tpl.StartTime, tpl.EndTime, breakStart, breakEnd,
		tpl.InterviewDuration, tpl.BufferMinutes, tpl.Timezone, tpl.IsActive)
	created, err := scanTemplate(row)
	if err != nil {
		if IsConflict(err) {
			return model.AvailabilityTemplate{}, apperr.Conflict("template %s already exists", tpl.ID)
		}
		return model.AvailabilityTemplate{}, err
	}
	return created, nil
}

func (r *TemplateRepository) GetTemplate(ctx context.Context, id string) (model.AvailabilityTemplate, error) {
	tpl, err := scanTemplate(r.pool.QueryRow(ctx, `SELECT `+templateColumns+` FROM availability_templates WHERE id = $1`, id))
	if IsNotFound(err) {
		return model.AvailabilityTemplate{}, apperr.NotFound("template %s not found", id)
	}
	return tpl, err
}

func (r *TemplateRepository) DeleteTemplate(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM availability_templates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("template %s not found", id)
	}
	return nil
}

func (r *TemplateRepository) SetTemplateActive(ctx context.Context, id string, active bool) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE availability_templates SET is_active = $2, updated_at = now() WHERE id = $1
	`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("template %s not found", id)
	}
	return nil
}

func (r *TemplateRepository) ListTemplates(ctx context.Context, interviewerID string) ([]model.AvailabilityTemplate, error) {
	return r.list(ctx, `SELECT `+templateColumns+`
		FROM availability_templates
		WHERE interviewer_id = $1
		ORDER BY day_of_week, start_time, id`, interviewerID)
}

// ListActiveTemplates orders rows by (day_of_week, start_time, id); the slot resolver takes
// the interviewer's reference timezone from the first row.
func (r *TemplateRepository) ListActiveTemplates(ctx context.Context, interviewerID string) ([]model.AvailabilityTemplate, error) {
	return r.list(ctx, `SELECT `+templateColumns+`
		FROM availability_templates
		WHERE interviewer_id = $1 AND is_active
		ORDER BY day_of_week, start_time, id`, interviewerID)
}

func (r *TemplateRepository) list(ctx context.Context, sql string, args ...any) ([]model.AvailabilityTemplate, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AvailabilityTemplate
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tpl)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func scanTemplate(row pgx.Row) (model.AvailabilityTemplate, error) {
	var tpl model.AvailabilityTemplate
	var breakStart, breakEnd string
	err := row.Scan(
		&tpl.ID,
		&tpl.InterviewerID,
		&tpl.DayOfWeek,
		&tpl.StartTime,
		&tpl.EndTime,
		&breakStart,
		&breakEnd,
		&tpl.InterviewDuration,
		&tpl.BufferMinutes,
		&tpl.Timezone,
		&tpl.IsActive,
		&tpl.CreatedAt,
		&tpl.UpdatedAt,
	)
	if err != nil {
		return model.AvailabilityTemplate{}, err
	}
	if breakStart != "" && breakEnd != "" {
		tpl.Break = &model.BreakWindow{Start: breakStart, End: breakEnd}
	}
	return tpl, nil
}
