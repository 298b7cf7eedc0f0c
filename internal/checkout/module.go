// Package checkout provides the checkout bounded context module.
package checkout

import (
	catalogservice "checkout_backend/internal/catalog/service"
	"checkout_backend/internal/checkout/handler"
	"checkout_backend/internal/checkout/service"
	"checkout_backend/internal/events"
	apphttp "checkout_backend/internal/http"
	"checkout_backend/platform/logger"
	"checkout_backend/platform/validator"
)

// Module is the checkout bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the checkout module.
func NewModule(catalog *catalogservice.Service, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(catalog, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "checkout"
}

// RegisterRoutes mounts checkout routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/checkout", m.handler.Checkout)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
