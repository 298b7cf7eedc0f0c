// Package feedback provides the satisfaction feedback bounded context module.
package feedback

import (
	"checkout_backend/internal/events"
	"checkout_backend/internal/feedback/handler"
	"checkout_backend/internal/feedback/repository"
	"checkout_backend/internal/feedback/service"
	apphttp "checkout_backend/internal/http"
	"checkout_backend/platform/logger"
	"checkout_backend/platform/validator"
)

// Module is the feedback bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repository
}

// NewModule creates and initializes the feedback module, opening the bbolt
// database at dbPath.
func NewModule(dbPath string, bus events.Bus, val *validator.Validator, log *logger.Logger) (*Module, error) {
	repo, err := repository.Open(dbPath)
	if err != nil {
		return nil, err
	}
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, repo: repo}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "feedback"
}

// Close releases the underlying database.
func (m *Module) Close() error {
	return m.repo.Close()
}

// RegisterRoutes mounts feedback routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/feedback", m.handler.SubmitFeedback)
	ctx.V1.GET("/feedback", m.handler.ListFeedback)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
