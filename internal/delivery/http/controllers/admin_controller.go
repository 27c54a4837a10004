package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "neurobiomark/internal/delivery/http/helpers"
	"neurobiomark/internal/delivery/http/middleware"
	"neurobiomark/internal/domain"
)

// LoginRequest is the request body for POST /admin/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Email) == "" {
		errs = append(errs, "email is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

type AdminController struct {
	Logger  *slog.Logger
	Service domain.AdminAuthService
	// SecureCookies marks the session cookie Secure; set in production.
	SecureCookies bool
}

func NewAdminController(logger *slog.Logger, svc domain.AdminAuthService, secureCookies bool) *AdminController {
	return &AdminController{
		Logger:        logger,
		Service:       svc,
		SecureCookies: secureCookies,
	}
}

// Login godoc
// @Summary Admin log in
// @Description Checks the back-office credentials and sets the HttpOnly admin_auth session cookie.
// @Tags admin
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} helpers.SuccessResponse
// @Failure 400 {object} helpers.ErrorResponse "code: bad_request"
// @Failure 401 {object} helpers.ErrorResponse "code: unauthorized"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /admin/login [post]
func (c *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	token, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			c.Logger.WarnContext(r.Context(), "admin login rejected", "ip", h.ClientIP(r))
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "Invalid credentials")
			return
		}
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	middleware.SetSessionCookie(w, token, c.Service.SessionTTL(), c.SecureCookies)
	h.WriteSuccess(w, http.StatusOK)
}

// Logout godoc
// @Summary Admin log out
// @Description Clears the admin_auth session cookie.
// @Tags admin
// @Produce json
// @Success 200 {object} helpers.SuccessResponse
// @Router /admin/logout [post]
func (c *AdminController) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w, c.SecureCookies)
	h.WriteSuccess(w, http.StatusOK)
}
