package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/md-rashed-zaman/mockinterview/libs/httpx"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/model"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/templates"
)

type TemplateHandler struct {
	svc    *templates.Service
	logger *slog.Logger
}

func NewTemplateHandler(svc *templates.Service, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{svc: svc, logger: logger}
}

type breakWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type createTemplateRequest struct {
	InterviewerID     string       `json:"interviewer_id"`
	DayOfWeek         *int         `json:"day_of_week"`
	StartTime         string       `json:"start_time"`
	EndTime           string       `json:"end_time"`
	Break             *breakWindow `json:"break,omitempty"`
	InterviewDuration int          `json:"interview_duration"`
	BufferMinutes     int          `json:"buffer_minutes"`
	Timezone          string       `json:"timezone"`
}

type templateItem struct {
	ID                string       `json:"id"`
	InterviewerID     string       `json:"interviewer_id"`
	DayOfWeek         int          `json:"day_of_week"`
	StartTime         string       `json:"start_time"`
	EndTime           string       `json:"end_time"`
	Break             *breakWindow `json:"break,omitempty"`
	InterviewDuration int          `json:"interview_duration"`
	BufferMinutes     int          `json:"buffer_minutes"`
	Timezone          string       `json:"timezone"`
	IsActive          bool         `json:"is_active"`
	CreatedAt         string       `json:"created_at"`
}

func toTemplateItem(tpl model.AvailabilityTemplate) templateItem {
	item := templateItem{
		ID:                tpl.ID,
		InterviewerID:     tpl.InterviewerID,
		DayOfWeek:         tpl.DayOfWeek,
		StartTime:         tpl.StartTime,
		EndTime:           tpl.EndTime,
		InterviewDuration: tpl.InterviewDuration,
		BufferMinutes:     tpl.BufferMinutes,
		Timezone:          tpl.Timezone,
		IsActive:          tpl.IsActive,
		CreatedAt:         tpl.CreatedAt.UTC().Format(time.RFC3339),
	}
	if tpl.Break != nil {
		item.Break = &breakWindow{Start: tpl.Break.Start, End: tpl.Break.End}
	}
	return item
}

// Create serves POST /api/v1/availability/templates.
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTemplateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.DayOfWeek == nil {
		httpx.WriteError(w, http.StatusBadRequest, "day_of_week is required")
		return
	}
	in := templates.CreateInput{
		InterviewerID:     req.InterviewerID,
		DayOfWeek:         *req.DayOfWeek,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		InterviewDuration: req.InterviewDuration,
		BufferMinutes:     req.BufferMinutes,
		Timezone:          strings.TrimSpace(req.Timezone),
	}
	if req.Break != nil {
		in.BreakStart, in.BreakEnd = req.Break.Start, req.Break.End
	}
	tpl, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]templateItem{"template": toTemplateItem(tpl)})
}

// List serves GET /api/v1/availability/templates?interviewer_id=.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), strings.TrimSpace(r.URL.Query().Get("interviewer_id")))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	out := make([]templateItem, 0, len(items))
	for _, tpl := range items {
		out = append(out, toTemplateItem(tpl))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string][]templateItem{"templates": out})
}

// Delete serves DELETE /api/v1/availability/templates?id=. With soft=true the template is
// only deactivated.
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := strings.TrimSpace(q.Get("id"))
	var err error
	if q.Get("soft") == "true" {
		err = h.svc.Deactivate(r.Context(), id)
	} else {
		err = h.svc.Delete(r.Context(), id)
	}
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Collection dispatches the templates collection route by method.
func (h *TemplateHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.Create(w, r)
	case http.MethodGet:
		h.List(w, r)
	case http.MethodDelete:
		h.Delete(w, r)
	default:
		httpx.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
