package middleware

import (
	"log/slog"
	"net/http"

	h "neurobiomark/internal/delivery/http/helpers"
	"neurobiomark/internal/domain"
)

// RateLimit returns a wrapper that throttles requests per peer address, taken
// trustedHops entries from the right of X-Forwarded-For (see helpers.PeerIP).
// When the limiter itself fails the request is let through and the failure is logged.
func RateLimit(limiter domain.Limiter, trustedHops int, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ip := h.PeerIP(r, trustedHops)
			ok, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				logger.ErrorContext(r.Context(), "rate limiter failed", "path", r.URL.Path, "err", err)
				next(w, r)
				return
			}
			if !ok {
				w.Header().Set("Retry-After", "60")
				h.WriteJSONError(w, http.StatusTooManyRequests, h.ErrCodeRateLimited, "Too many requests")
				return
			}
			next(w, r)
		}
	}
}
