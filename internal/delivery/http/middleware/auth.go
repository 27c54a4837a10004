package middleware

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	h "neurobiomark/internal/delivery/http/helpers"
	"neurobiomark/internal/domain"
)

type contextKey string

const adminKey contextKey = "admin"

// SessionCookie is the name of the admin session cookie.
const SessionCookie = "admin_auth"

// AdminKeyHeader carries the static admin API key.
const AdminKeyHeader = "X-Admin-Key"

// SetAdmin returns a context with the authenticated admin subject set.
func SetAdmin(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, adminKey, subject)
}

// AdminFromContext returns the authenticated admin subject from the context, if present.
func AdminFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(adminKey).(string)
	return s, ok
}

// AdminAuth authenticates back-office requests by session cookie or API key.
type AdminAuth struct {
	Verifier domain.TokenVerifier
	// APIKey enables X-Admin-Key authentication when non-empty.
	APIKey string
	Logger *slog.Logger
}

// authenticate returns the admin subject, or false. allowQueryKey additionally
// accepts ?key= for download links.
func (a *AdminAuth) authenticate(r *http.Request, allowQueryKey bool) (string, bool) {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		if subject, err := a.Verifier.Verify(c.Value); err == nil {
			return subject, true
		}
	}
	if a.APIKey == "" {
		return "", false
	}
	key := r.Header.Get(AdminKeyHeader)
	if key == "" && allowQueryKey {
		key = r.URL.Query().Get("key")
	}
	if key != "" && subtle.ConstantTimeCompare([]byte(key), []byte(a.APIKey)) == 1 {
		return "api-key", true
	}
	return "", false
}

// RequireAdmin returns a wrapper that responds 401 unless the request carries a
// valid session cookie or admin key.
func (a *AdminAuth) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return a.require(next, false)
}

// RequireAdminOrQueryKey is RequireAdmin that also accepts the key as ?key=.
func (a *AdminAuth) RequireAdminOrQueryKey(next http.HandlerFunc) http.HandlerFunc {
	return a.require(next, true)
}

func (a *AdminAuth) require(next http.HandlerFunc, allowQueryKey bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject, ok := a.authenticate(r, allowQueryKey)
		if !ok {
			a.Logger.WarnContext(r.Context(), "admin auth rejected", "path", r.URL.Path, "method", r.Method)
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "Unauthorized")
			return
		}
		next(w, r.WithContext(SetAdmin(r.Context(), subject)))
	}
}

// RequireAdminPage guards the admin pages. Browsers without a valid session are
// redirected to loginPath.
func (a *AdminAuth) RequireAdminPage(loginPath string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(SessionCookie)
		if err != nil || c.Value == "" {
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}
		subject, err := a.Verifier.Verify(c.Value)
		if err != nil {
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(SetAdmin(r.Context(), subject)))
	})
}

// SetSessionCookie writes the admin session cookie.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearSessionCookie expires the admin session cookie.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}
