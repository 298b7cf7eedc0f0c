// Package transport defines request/response DTOs for the catalog module.
package transport

import "checkout_backend/internal/catalog/store"

// UpsertProductRequest is the body of POST /products. Weight and price are
// pointers so an absent field is a request-format error, distinct from zero.
type UpsertProductRequest struct {
	Name      string   `json:"name" validate:"required"`
	Weight    *float64 `json:"weight" validate:"required"`
	Price     *float64 `json:"price" validate:"required"`
	Freshness string   `json:"freshness" validate:"required"`
}

// UpsertProductResponse reports how the reading was applied.
type UpsertProductResponse struct {
	Status  string      `json:"status"`
	Product *store.Item `json:"product,omitempty"`
}

// RemoveProductResponse acknowledges a deletion.
type RemoveProductResponse struct {
	Status string `json:"status"`
	Name   string `json:"name"`
}
