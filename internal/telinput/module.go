// Package telinput provides the telephone field bounded context module.
package telinput

import (
	"context"

	apphttp "telinput/internal/http"
	"telinput/internal/telinput/handler"
	"telinput/internal/telinput/service"
	"telinput/platform/config"
	"telinput/platform/events"
	"telinput/platform/logger"
	"telinput/platform/phone"
	"telinput/platform/validator"
)

// Module is the telinput bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the telinput module over the shared phone handle.
func NewModule(h phone.Handle, cfg config.PhoneConfig, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(phone.NewPipeline(h), cfg, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "telinput"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts phone routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/phone")
	group.POST("/parse", m.handler.Parse)
	group.POST("/format", m.handler.Format)
	group.POST("/validate", m.handler.Validate)
	group.POST("/live-format", m.handler.LiveFormat)
	group.POST("/field", m.handler.Field)
	group.GET("/regions", m.handler.ListRegions)
}

// RegisterHandlers subscribes to the library load so defaults pick up the supported regions.
func (m *Module) RegisterHandlers(bus events.Subscriber) {
	bus.Subscribe(phone.LibraryLoadedEventName, m)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch event.(type) {
	case phone.LibraryLoaded:
		m.service.RefreshDefaults(ctx)
		return nil
	default:
		return nil
	}
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
