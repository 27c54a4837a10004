package controllers

import (
	"log/slog"
	"net/http"
	"time"

	h "neurobiomark/internal/delivery/http/helpers"
	"neurobiomark/internal/domain"
)

const newsNotFound = "News not found"

// NewsRequest is the request body for POST /news and PUT /news/{id}.
type NewsRequest struct {
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	Category string     `json:"category"`
	Slug     *string    `json:"slug"`
	Date     *time.Time `json:"date"`
}

func (n NewsRequest) toItem(id string) *domain.NewsItem {
	item := &domain.NewsItem{
		ID:       id,
		Title:    n.Title,
		Content:  n.Content,
		Category: domain.NewsCategory(n.Category),
		Slug:     n.Slug,
	}
	if n.Date != nil {
		item.Date = *n.Date
	}
	return item
}

type NewsController struct {
	Logger  *slog.Logger
	Service domain.NewsService
}

func NewNewsController(logger *slog.Logger, svc domain.NewsService) *NewsController {
	return &NewsController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List news
// @Description Public feed, newest first.
// @Tags news
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Items per page (default 5, max 50)"
// @Param category query string false "update, research, release, announcement or all"
// @Success 200 {object} domain.NewsPage
// @Failure 400 {object} helpers.ErrorResponse "code: bad_request"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /news [get]
func (c *NewsController) List(w http.ResponseWriter, r *http.Request) {
	page, err := c.Service.List(r.Context(), r.URL.Query().Get("category"), h.ParsePagination(r))
	if err != nil {
		writeServiceError(c.Logger, w, r, err, newsNotFound)
		return
	}
	h.WriteJSON(w, http.StatusOK, page)
}

// Get godoc
// @Summary Get a news post
// @Tags news
// @Produce json
// @Param id path string true "News ID (UUID)"
// @Success 200 {object} domain.NewsItem
// @Failure 404 {object} helpers.ErrorResponse "code: not_found"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /news/{id} [get]
func (c *NewsController) Get(w http.ResponseWriter, r *http.Request) {
	item, err := c.Service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(c.Logger, w, r, err, newsNotFound)
		return
	}
	h.WriteJSON(w, http.StatusOK, item)
}

// Create godoc
// @Summary Create a news post
// @Tags news
// @Accept json
// @Produce json
// @Security AdminKey
// @Param body body NewsRequest true "News post"
// @Success 201 {object} domain.NewsItem
// @Failure 400 {object} helpers.ErrorResponse "code: bad_request"
// @Failure 401 {object} helpers.ErrorResponse "code: unauthorized"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /news [post]
func (c *NewsController) Create(w http.ResponseWriter, r *http.Request) {
	var req NewsRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	item := req.toItem("")
	if err := c.Service.Create(r.Context(), item); err != nil {
		writeServiceError(c.Logger, w, r, err, newsNotFound)
		return
	}
	h.WriteJSON(w, http.StatusCreated, item)
}

// Update godoc
// @Summary Replace a news post
// @Description Title and content are required; an omitted date keeps the stored one.
// @Tags news
// @Accept json
// @Produce json
// @Security AdminKey
// @Param id path string true "News ID (UUID)"
// @Param body body NewsRequest true "News post"
// @Success 200 {object} domain.NewsItem
// @Failure 400 {object} helpers.ErrorResponse "code: bad_request"
// @Failure 401 {object} helpers.ErrorResponse "code: unauthorized"
// @Failure 404 {object} helpers.ErrorResponse "code: not_found"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /news/{id} [put]
func (c *NewsController) Update(w http.ResponseWriter, r *http.Request) {
	var req NewsRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	item := req.toItem(r.PathValue("id"))
	if err := c.Service.Update(r.Context(), item); err != nil {
		writeServiceError(c.Logger, w, r, err, newsNotFound)
		return
	}
	h.WriteJSON(w, http.StatusOK, item)
}

// Delete godoc
// @Summary Delete a news post
// @Tags news
// @Produce json
// @Security AdminKey
// @Param id path string true "News ID (UUID)"
// @Success 200 {object} helpers.SuccessResponse
// @Failure 401 {object} helpers.ErrorResponse "code: unauthorized"
// @Failure 404 {object} helpers.ErrorResponse "code: not_found"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /news/{id} [delete]
func (c *NewsController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(c.Logger, w, r, err, newsNotFound)
		return
	}
	h.WriteSuccess(w, http.StatusOK)
}
