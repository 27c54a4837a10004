package http

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	httpSwagger "github.com/swaggo/http-swagger"

	"neurobiomark/internal/delivery/http/controllers"
	"neurobiomark/internal/delivery/http/middleware"
)

// LoginPath serves the admin login page; unauthenticated admin page visits land here.
const LoginPath = "/login"

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	DemoRequests *controllers.DemoRequestController
	News         *controllers.NewsController
	Timeline     *controllers.TimelineController
	Contact      *controllers.ContactController
	Admin        *controllers.AdminController
	Health       *controllers.HealthController
}

// RouterConfig holds the routing settings that come from configuration.
type RouterConfig struct {
	// AdminPath is the obfuscated prefix of the admin pages.
	AdminPath string
	// StaticDir holds login.html and the admin/ page tree. Empty disables the pages.
	StaticDir      string
	AllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes and wraps it
// in the request ID, logging and CORS middleware.
func NewRouter(c Controllers, auth *middleware.AdminAuth, throttle func(http.HandlerFunc) http.HandlerFunc, cfg RouterConfig, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	admin := auth.RequireAdmin

	// Demo requests
	mux.HandleFunc("POST /demo-requests", throttle(c.DemoRequests.Submit))
	mux.HandleFunc("GET /demo-requests", admin(c.DemoRequests.List))
	mux.HandleFunc("GET /demo-requests/export", auth.RequireAdminOrQueryKey(c.DemoRequests.Export))
	mux.HandleFunc("GET /demo-requests/stats", admin(c.DemoRequests.Stats))
	mux.HandleFunc("POST /demo-requests/bulk-delete", admin(c.DemoRequests.BulkDelete))
	mux.HandleFunc("PATCH /demo-requests/{id}", admin(c.DemoRequests.Update))
	mux.HandleFunc("DELETE /demo-requests/{id}", admin(c.DemoRequests.Delete))

	// News
	mux.HandleFunc("GET /news", c.News.List)
	mux.HandleFunc("GET /news/{id}", c.News.Get)
	mux.HandleFunc("POST /news", admin(c.News.Create))
	mux.HandleFunc("PUT /news/{id}", admin(c.News.Update))
	mux.HandleFunc("DELETE /news/{id}", admin(c.News.Delete))

	// Timeline
	mux.HandleFunc("GET /timeline", c.Timeline.List)
	mux.HandleFunc("POST /timeline", admin(c.Timeline.Create))
	mux.HandleFunc("PUT /timeline/{id}", admin(c.Timeline.Update))
	mux.HandleFunc("DELETE /timeline/{id}", admin(c.Timeline.Delete))

	// Contact
	mux.HandleFunc("POST /contact", throttle(c.Contact.Send))

	// Admin session
	mux.HandleFunc("POST /admin/login", c.Admin.Login)
	mux.HandleFunc("POST /admin/logout", c.Admin.Logout)

	mux.HandleFunc("GET /health", c.Health.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	if cfg.StaticDir != "" {
		mountAdminPages(mux, auth, cfg)
	}

	return middleware.RequestID(middleware.LoggingMiddleware(logger, middleware.CORS(cfg.AllowedOrigins, mux)))
}

func mountAdminPages(mux *http.ServeMux, auth *middleware.AdminAuth, cfg RouterConfig) {
	mux.HandleFunc("GET "+LoginPath, func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(cfg.StaticDir, "login.html"))
	})

	prefix := "/" + strings.Trim(cfg.AdminPath, "/")
	pages := http.StripPrefix(prefix, http.FileServer(http.Dir(filepath.Join(cfg.StaticDir, "admin"))))
	mux.Handle("GET "+prefix+"/", auth.RequireAdminPage(LoginPath, pages))
}
