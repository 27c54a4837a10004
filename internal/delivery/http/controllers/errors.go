package controllers

import (
	"log/slog"
	"net/http"

	h "neurobiomark/internal/delivery/http/helpers"
)

// writeServiceError maps err to a JSON error response. Only unexpected failures
// are logged; their details never reach the client.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error, notFound string) {
	status, code, msg := h.ErrorStatus(err, notFound)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	h.WriteJSONError(w, status, code, msg)
}
