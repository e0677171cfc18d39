package handlers

import (
	"log/slog"
	"net/http"

	"github.com/md-rashed-zaman/mockinterview/libs/httpx"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/apperr"
)

// writeError maps err to its status. Unexpected errors are logged and hidden from the caller.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "path", r.URL.Path, "request_id", httpx.RequestIDFromContext(r.Context()), "err", err)
	}
	httpx.WriteError(w, status, apperr.PublicMessage(err))
}
