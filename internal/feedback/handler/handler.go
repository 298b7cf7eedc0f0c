// Package handler translates HTTP requests into feedback operations.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkout_backend/internal/feedback/repository"
	"checkout_backend/internal/feedback/service"
	"checkout_backend/internal/feedback/transport"
	"checkout_backend/platform/httpkit"
	"checkout_backend/platform/validator"
)

// Handler handles HTTP requests for feedback.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new feedback handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// SubmitFeedback records a satisfaction rating.
// POST /api/v1/feedback
func (h *Handler) SubmitFeedback(c *gin.Context) {
	var req transport.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	rec, err := h.svc.Submit(c.Request.Context(), *req.Rating, req.Comment, req.Email)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.JSON(c, http.StatusCreated, rec)
}

// ListFeedback returns all recorded feedback, newest first.
// GET /api/v1/feedback
func (h *Handler) ListFeedback(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	if records == nil {
		records = []repository.Record{}
	}
	httpkit.OK(c, records)
}
