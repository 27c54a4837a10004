package controllers

import (
	"encoding/csv"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "neurobiomark/internal/delivery/http/helpers"
	"neurobiomark/internal/domain"
)

const demoRequestNotFound = "Demo request not found"

// SubmitDemoRequest is the request body for POST /demo-requests.
type SubmitDemoRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Purpose      string `json:"purpose"`
	CaptchaToken string `json:"captchaToken"`
}

// UpdateDemoRequest is the request body for PATCH /demo-requests/{id}. Omitted fields are unchanged.
type UpdateDemoRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// Validate implements Validator.
func (u UpdateDemoRequest) Validate() []string {
	if u.Status == nil && u.Notes == nil {
		return []string{"status or notes is required"}
	}
	return nil
}

// BulkDeleteRequest is the request body for POST /demo-requests/bulk-delete.
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// Validate implements Validator.
func (b BulkDeleteRequest) Validate() []string {
	if len(b.IDs) == 0 {
		return []string{"No ids provided"}
	}
	return nil
}

type DemoRequestController struct {
	Logger  *slog.Logger
	Service domain.DemoRequestService
}

func NewDemoRequestController(logger *slog.Logger, svc domain.DemoRequestService) *DemoRequestController {
	return &DemoRequestController{
		Logger:  logger,
		Service: svc,
	}
}

// Submit godoc
// @Summary Request a demo
// @Description Public form. Validates the input, verifies the captcha in production, rejects a second request from the same email within 24 hours, stores the request, then notifies operations and syncs the sheet in the background.
// @Tags demo-requests
// @Accept json
// @Produce json
// @Param body body SubmitDemoRequest true "Demo request"
// @Success 201 {object} helpers.SuccessResponse
// @Failure 400 {object} helpers.ErrorResponse "code: bad_request"
// @Failure 403 {object} helpers.ErrorResponse "code: captcha_failed"
// @Failure 429 {object} helpers.ErrorResponse "code: rate_limited"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /demo-requests [post]
func (c *DemoRequestController) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitDemoRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	_, err := c.Service.Submit(r.Context(), domain.DemoRequestSubmission{
		Name:         req.Name,
		Email:        req.Email,
		Purpose:      req.Purpose,
		CaptchaToken: req.CaptchaToken,
		IP:           h.ClientIP(r),
	})
	if err != nil {
		writeServiceError(c.Logger, w, r, err, demoRequestNotFound)
		return
	}
	h.WriteSuccess(w, http.StatusCreated)
}

// List godoc
// @Summary List demo requests
// @Description One page of ten requests, newest first. search matches name or email case-insensitively; an unknown status is ignored.
// @Tags demo-requests
// @Produce json
// @Security AdminKey
// @Param page query int false "Page (1-based)"
// @Param search query string false "Substring of name or email"
// @Param status query string false "new, contacted or responded"
// @Success 200 {object} domain.DemoRequestPage
// @Failure 401 {object} helpers.ErrorResponse "code: unauthorized"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /demo-requests [get]
func (c *DemoRequestController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := c.Service.List(r.Context(), domain.DemoRequestQuery{
		Page:   h.ParsePage(r),
		Search: q.Get("search"),
		Status: q.Get("status"),
	})
	if err != nil {
		writeServiceError(c.Logger, w, r, err, demoRequestNotFound)
		return
	}
	h.WriteJSON(w, http.StatusOK, page)
}

// Update godoc
// @Summary Update a demo request
// @Description Set the follow-up status and/or the internal notes.
// @Tags demo-requests
// @Accept json
// @Produce json
// @Security AdminKey
// @Param id path string true "Demo request ID (UUID)"
// @Param body body UpdateDemoRequest true "Fields to change"
// @Success 200 {object} domain.DemoRequest
// @Failure 400 {object} helpers.ErrorResponse "code: bad_request"
// @Failure 401 {object} helpers.ErrorResponse "code: unauthorized"
// @Failure 404 {object} helpers.ErrorResponse "code: not_found"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /demo-requests/{id} [patch]
func (c *DemoRequestController) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateDemoRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	upd := domain.DemoRequestUpdate{Notes: req.Notes}
	if req.Status != nil {
		st := domain.DemoRequestStatus(*req.Status)
		upd.Status = &st
	}
	updated, err := c.Service.Update(r.Context(), r.PathValue("id"), upd)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, demoRequestNotFound)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a demo request
// @Tags demo-requests
// @Produce json
// @Security AdminKey
// @Param id path string true "Demo request ID (UUID)"
// @Success 200 {object} helpers.SuccessResponse
// @Failure 401 {object} helpers.ErrorResponse "code: unauthorized"
// @Failure 404 {object} helpers.ErrorResponse "code: not_found"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /demo-requests/{id} [delete]
func (c *DemoRequestController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(c.Logger, w, r, err, demoRequestNotFound)
		return
	}
	h.WriteSuccess(w, http.StatusOK)
}

// BulkDelete godoc
// @Summary Delete several demo requests
// @Description Ids that no longer exist are skipped.
// @Tags demo-requests
// @Accept json
// @Produce json
// @Security AdminKey
// @Param body body BulkDeleteRequest true "Ids to delete"
// @Success 200 {object} helpers.SuccessResponse
// @Failure 400 {object} helpers.ErrorResponse "code: bad_request"
// @Failure 401 {object} helpers.ErrorResponse "code: unauthorized"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /demo-requests/bulk-delete [post]
func (c *DemoRequestController) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.BulkDelete(r.Context(), req.IDs); err != nil {
		writeServiceError(c.Logger, w, r, err, demoRequestNotFound)
		return
	}
	h.WriteSuccess(w, http.StatusOK)
}

// Export godoc
// @Summary Export demo requests as CSV
// @Description All requests, newest first. Accepts the admin key as the X-Admin-Key header or the key query parameter.
// @Tags demo-requests
// @Produce text/csv
// @Security AdminKey
// @Param key query string false "Admin key"
// @Success 200 {file} file "demo_requests.csv"
// @Failure 401 {object} helpers.ErrorResponse "code: unauthorized"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /demo-requests/export [get]
func (c *DemoRequestController) Export(w http.ResponseWriter, r *http.Request) {
	items, err := c.Service.Export(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err, demoRequestNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=demo_requests.csv")
	w.WriteHeader(http.StatusOK)
	if err := WriteDemoRequestsCSV(w, items); err != nil {
		c.Logger.ErrorContext(r.Context(), "csv export interrupted", "path", r.URL.Path, "err", err)
	}
}

// Stats godoc
// @Summary Demo requests per day
// @Description One row per UTC day with at least one request, oldest first.
// @Tags demo-requests
// @Produce json
// @Security AdminKey
// @Success 200 {array} domain.DailyCount
// @Failure 401 {object} helpers.ErrorResponse "code: unauthorized"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /demo-requests/stats [get]
func (c *DemoRequestController) Stats(w http.ResponseWriter, r *http.Request) {
	counts, err := c.Service.Stats(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err, demoRequestNotFound)
		return
	}
	h.WriteJSON(w, http.StatusOK, counts)
}

// CSVHeader lists the export columns in order.
var CSVHeader = []string{"Name", "Email", "Status", "IP", "CreatedAt"}

// WriteDemoRequestsCSV writes items with a header row.
func WriteDemoRequestsCSV(w io.Writer, items []*domain.DemoRequest) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, it := range items {
		record := []string{
			csvSafe(it.Name),
			csvSafe(it.Email),
			string(it.Status),
			csvSafe(it.IP),
			it.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// csvSafe keeps spreadsheet apps from evaluating user-supplied cells as formulas.
func csvSafe(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}
