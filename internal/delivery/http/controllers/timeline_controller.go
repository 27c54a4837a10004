package controllers

import (
	"log/slog"
	"net/http"
	"time"

	h "neurobiomark/internal/delivery/http/helpers"
	"neurobiomark/internal/domain"
)

const timelineNotFound = "Timeline item not found"

// TimelineRequest is the request body for POST /timeline and PUT /timeline/{id}.
type TimelineRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Order       int       `json:"order"`
}

func (t TimelineRequest) toItem(id string) *domain.TimelineItem {
	return &domain.TimelineItem{
		ID:          id,
		Title:       t.Title,
		Description: t.Description,
		Date:        t.Date,
		Order:       t.Order,
	}
}

type TimelineController struct {
	Logger  *slog.Logger
	Service domain.TimelineService
}

func NewTimelineController(logger *slog.Logger, svc domain.TimelineService) *TimelineController {
	return &TimelineController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List timeline milestones
// @Description All milestones by date, then display order.
// @Tags timeline
// @Produce json
// @Success 200 {array} domain.TimelineItem
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /timeline [get]
func (c *TimelineController) List(w http.ResponseWriter, r *http.Request) {
	items, err := c.Service.List(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err, timelineNotFound)
		return
	}
	h.WriteJSON(w, http.StatusOK, items)
}

// Create godoc
// @Summary Create a timeline milestone
// @Tags timeline
// @Accept json
// @Produce json
// @Security AdminKey
// @Param body body TimelineRequest true "Milestone"
// @Success 201 {object} domain.TimelineItem
// @Failure 400 {object} helpers.ErrorResponse "code: bad_request"
// @Failure 401 {object} helpers.ErrorResponse "code: unauthorized"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /timeline [post]
func (c *TimelineController) Create(w http.ResponseWriter, r *http.Request) {
	var req TimelineRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	item := req.toItem("")
	if err := c.Service.Create(r.Context(), item); err != nil {
		writeServiceError(c.Logger, w, r, err, timelineNotFound)
		return
	}
	h.WriteJSON(w, http.StatusCreated, item)
}

// Update godoc
// @Summary Replace a timeline milestone
// @Tags timeline
// @Accept json
// @Produce json
// @Security AdminKey
// @Param id path string true "Milestone ID (UUID)"
// @Param body body TimelineRequest true "Milestone"
// @Success 200 {object} domain.TimelineItem
// @Failure 400 {object} helpers.ErrorResponse "code: bad_request"
// @Failure 401 {object} helpers.ErrorResponse "code: unauthorized"
// @Failure 404 {object} helpers.ErrorResponse "code: not_found"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /timeline/{id} [put]
func (c *TimelineController) Update(w http.ResponseWriter, r *http.Request) {
	var req TimelineRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	item := req.toItem(r.PathValue("id"))
	if err := c.Service.Update(r.Context(), item); err != nil {
		writeServiceError(c.Logger, w, r, err, timelineNotFound)
		return
	}
	h.WriteJSON(w, http.StatusOK, item)
}

// Delete godoc
// @Summary Delete a timeline milestone
// @Tags timeline
// @Produce json
// @Security AdminKey
// @Param id path string true "Milestone ID (UUID)"
// @Success 200 {object} helpers.SuccessResponse
// @Failure 401 {object} helpers.ErrorResponse "code: unauthorized"
// @Failure 404 {object} helpers.ErrorResponse "code: not_found"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /timeline/{id} [delete]
func (c *TimelineController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(c.Logger, w, r, err, timelineNotFound)
		return
	}
	h.WriteSuccess(w, http.StatusOK)
}
