// Package handler translates HTTP requests into catalog operations.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkout_backend/internal/catalog/service"
	"checkout_backend/internal/catalog/store"
	"checkout_backend/internal/catalog/transport"
	"checkout_backend/platform/httpkit"
	"checkout_backend/platform/validator"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new catalog handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// UpsertProduct ingests a scale reading.
// POST /api/v1/products
func (h *Handler) UpsertProduct(c *gin.Context) {
	var req transport.UpsertProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Upsert(req.Name, *req.Weight, *req.Price, req.Freshness)
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.UpsertProductResponse{Status: string(result)}
	if result != store.Unchanged {
		resp.Product = &store.Item{
			Name:      req.Name,
			Weight:    *req.Weight,
			Price:     *req.Price,
			Freshness: req.Freshness,
		}
	}
	httpkit.OK(c, resp)
}

// ListProducts returns the checkout-visible catalog.
// GET /api/v1/products
func (h *Handler) ListProducts(c *gin.Context) {
	httpkit.OK(c, h.svc.ValidView())
}

// RemoveProduct deletes a product by name.
// DELETE /api/v1/products/:name
func (h *Handler) RemoveProduct(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if err := h.svc.Remove(name); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.RemoveProductResponse{Status: string(store.Deleted), Name: name})
}
