// Package handler translates HTTP requests into checkout operations.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkout_backend/internal/checkout/service"
	"checkout_backend/internal/checkout/transport"
	"checkout_backend/platform/httpkit"
	"checkout_backend/platform/validator"
)

// Handler handles HTTP requests for checkout.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new checkout handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Checkout confirms a payment and issues a receipt.
// POST /api/v1/checkout
func (h *Handler) Checkout(c *gin.Context) {
	var req transport.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	receipt := h.svc.Checkout(c.Request.Context(), req.Email)
	httpkit.OK(c, receipt)
}
