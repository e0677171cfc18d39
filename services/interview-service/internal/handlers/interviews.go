package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/md-rashed-zaman/mockinterview/libs/httpx"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/booking"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/model"
)

type InterviewHandler struct {
	committer *booking.Committer
	logger    *slog.Logger
}

func NewInterviewHandler(committer *booking.Committer, logger *slog.Logger) *InterviewHandler {
	return &InterviewHandler{committer: committer, logger: logger}
}

type createInterviewRequest struct {
	InterviewerID  string `json:"interviewer_id"`
	CandidateID    string `json:"candidate_id"`
	CandidateName  string `json:"candidate_name"`
	CandidateEmail string `json:"candidate_email"`
	ScheduledTime  string `json:"scheduled_time"`
	Duration       int    `json:"duration"`
	InterviewType  string `json:"interview_type"`
	Timezone       string `json:"timezone"`
	Notes          string `json:"notes"`
}

type updateStatusRequest struct {
	InterviewID string `json:"interview_id"`
	Status      string `json:"status"`
}

type interviewItem struct {
	ID                     string `json:"id"`
	InterviewerID          string `json:"interviewer_id"`
	CandidateID            string `json:"candidate_id,omitempty"`
	CandidateName          string `json:"candidate_name"`
	CandidateEmail         string `json:"candidate_email"`
	ScheduledTime          string `json:"scheduled_time"`
	EndTime                string `json:"end_time"`
	Duration               int    `json:"duration"`
	Status                 string `json:"status"`
	InterviewType          string `json:"interview_type,omitempty"`
	Timezone               string `json:"timezone,omitempty"`
	Notes                  string `json:"notes,omitempty"`
	RoomID                 string `json:"room_id"`
	OneHourReminderSent    bool   `json:"one_hour_reminder_sent"`
	FiveMinuteReminderSent bool   `json:"five_minute_reminder_sent"`
	CreatedAt              string `json:"created_at"`
}

type interviewResponse struct {
	Interview interviewItem `json:"interview"`
}

type listInterviewsResponse struct {
	Interviews []interviewItem `json:"interviews"`
}

func toItem(iv model.Interview) interviewItem {
	return interviewItem{
		ID:                     iv.ID,
		InterviewerID:          iv.InterviewerID,
		CandidateID:            iv.CandidateID,
		CandidateName:          iv.CandidateName,
		CandidateEmail:         iv.CandidateEmail,
		ScheduledTime:          iv.ScheduledTime.UTC().Format(time.RFC3339),
		EndTime:                iv.EndTime.UTC().Format(time.RFC3339),
		Duration:               iv.Duration,
		Status:                 string(iv.Status),
		InterviewType:          iv.InterviewType,
		Timezone:               iv.Timezone,
		Notes:                  iv.Notes,
		RoomID:                 iv.RoomID,
		OneHourReminderSent:    iv.OneHourReminderSent,
		FiveMinuteReminderSent: iv.FiveMinuteReminderSent,
		CreatedAt:              iv.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Create serves POST /api/v1/interviews.
func (h *InterviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createInterviewRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	start, err := time.Parse(time.RFC3339, strings.TrimSpace(req.ScheduledTime))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid scheduled_time")
		return
	}

	iv, err := h.committer.Commit(r.Context(), booking.BookingRequest{
		InterviewerID: strings.TrimSpace(req.InterviewerID),
		Candidate: model.CandidateInfo{
			ID:    req.CandidateID,
			Name:  req.CandidateName,
			Email: req.CandidateEmail,
		},
		ScheduledTime: start,
		Duration:      req.Duration,
		InterviewType: req.InterviewType,
		Timezone:      strings.TrimSpace(req.Timezone),
		Notes:         req.Notes,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, interviewResponse{Interview: toItem(iv)})
}

// List serves GET /api/v1/interviews?interviewer_id=&limit=.
func (h *InterviewHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := booking.DefaultListLimit
	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	items, err := h.committer.List(r.Context(), strings.TrimSpace(q.Get("interviewer_id")), limit)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	resp := listInterviewsResponse{Interviews: make([]interviewItem, 0, len(items))}
	for _, iv := range items {
		resp.Interviews = append(resp.Interviews, toItem(iv))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// UpdateStatus serves PATCH /api/v1/interviews/status.
func (h *InterviewHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	iv, err := h.committer.UpdateStatus(r.Context(), strings.TrimSpace(req.InterviewID), model.InterviewStatus(strings.TrimSpace(req.Status)))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, interviewResponse{Interview: toItem(iv)})
}
