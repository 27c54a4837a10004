package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	h "neurobiomark/internal/delivery/http/helpers"
)

// Pinger reports whether a backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

type HealthController struct {
	Logger *slog.Logger
	Store  Pinger
}

func NewHealthController(logger *slog.Logger, store Pinger) *HealthController {
	return &HealthController{Logger: logger, Store: store}
}

// Health godoc
// @Summary Liveness and store check
// @Tags health
// @Produce json
// @Success 200 {object} controllers.HealthResponse
// @Failure 503 {object} helpers.ErrorResponse "code: unavailable"
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := c.Store.PingContext(ctx); err != nil {
		c.Logger.ErrorContext(r.Context(), "health check failed", "err", err)
		h.WriteJSONError(w, http.StatusServiceUnavailable, h.ErrCodeUnavailable, "store unavailable")
		return
	}
	h.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
