package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/md-rashed-zaman/mockinterview/libs/httpx"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/availability"
)

type SlotsHandler struct {
	resolver *availability.Resolver
	logger   *slog.Logger
}

func NewSlotsHandler(resolver *availability.Resolver, logger *slog.Logger) *SlotsHandler {
	return &SlotsHandler{resolver: resolver, logger: logger}
}

type slotItem struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	Duration   int    `json:"duration"`
	LocalStart string `json:"local_start"`
	LocalEnd   string `json:"local_end"`
}

type slotsResponse struct {
	Slots           []slotItem `json:"slots"`
	Timezone        string     `json:"timezone,omitempty"`
	DisplayTimezone string     `json:"display_timezone,omitempty"`
}

// List serves GET /api/v1/availability/slots?interviewer_id=&date=YYYY-MM-DD&timezone=.
func (h *SlotsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.resolver.ResolveSlots(r.Context(), availability.Request{
		InterviewerID: strings.TrimSpace(q.Get("interviewer_id")),
		Date:          strings.TrimSpace(q.Get("date")),
		Timezone:      strings.TrimSpace(q.Get("timezone")),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	resp := slotsResponse{Slots: make([]slotItem, 0, len(res.Slots))}
	if res.Reference != nil {
		resp.Timezone = res.Reference.String()
	}
	if res.Display != nil {
		resp.DisplayTimezone = res.Display.String()
	}
	for _, s := range res.Slots {
		item := slotItem{
			Start:    s.Start.Format(time.RFC3339),
			End:      s.End.Format(time.RFC3339),
			Duration: s.Duration,
		}
		if res.Display != nil {
			item.LocalStart = s.Start.In(res.Display).Format(time.RFC3339)
			item.LocalEnd = s.End.In(res.Display).Format(time.RFC3339)
		}
		resp.Slots = append(resp.Slots, item)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
