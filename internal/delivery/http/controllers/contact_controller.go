package controllers

import (
	"log/slog"
	"net/http"

	h "neurobiomark/internal/delivery/http/helpers"
	"neurobiomark/internal/domain"
)

// ContactRequest is the request body for POST /contact.
type ContactRequest struct {
	UserEmail string `json:"userEmail"`
	Message   string `json:"message"`
}

type ContactController struct {
	Logger  *slog.Logger
	Service domain.ContactService
}

func NewContactController(logger *slog.Logger, svc domain.ContactService) *ContactController {
	return &ContactController{
		Logger:  logger,
		Service: svc,
	}
}

// Send godoc
// @Summary Send a contact message
// @Description Forwards the message to the operations mailbox with reply-to set to the sender.
// @Tags contact
// @Accept json
// @Produce json
// @Param body body ContactRequest true "Message"
// @Success 200 {object} helpers.SuccessResponse
// @Failure 400 {object} helpers.ErrorResponse "code: bad_request"
// @Failure 429 {object} helpers.ErrorResponse "code: rate_limited"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /contact [post]
func (c *ContactController) Send(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.Send(r.Context(), req.UserEmail, req.Message); err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	h.WriteSuccess(w, http.StatusOK)
}
