// Package catalog provides the product catalog bounded context module.
package catalog

import (
	"checkout_backend/internal/catalog/handler"
	"checkout_backend/internal/catalog/service"
	"checkout_backend/internal/catalog/store"
	apphttp "checkout_backend/internal/http"
	"checkout_backend/internal/stream"
	"checkout_backend/platform/logger"
	"checkout_backend/platform/validator"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler   *handler.Handler
	service   *service.Service
	streamSvc *stream.Service
}

// NewModule creates and initializes the catalog module. Catalog mutations
// broadcast through the provided stream service.
func NewModule(streamSvc *stream.Service, val *validator.Validator, log *logger.Logger) *Module {
	st := store.New()
	svc := service.New(st, streamSvc, log)
	h := handler.New(svc, val)

	return &Module{
		handler:   h,
		service:   svc,
		streamSvc: streamSvc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use (checkout reads the
// valid view through it).
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/products", ctx.IngestRateLimiter.RateLimit(), m.handler.UpsertProduct)
	ctx.V1.GET("/products", m.handler.ListProducts)
	ctx.V1.DELETE("/products/:name", m.handler.RemoveProduct)
	ctx.V1.GET("/products/stream", m.streamSvc.Handler(m.service))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
