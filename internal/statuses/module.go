// Package statuses provides the status board bounded context module.
// It owns the board columns, the default column and column ordering.
package statuses

import (
	"context"

	"course_portal_backend/internal/events"
	apphttp "course_portal_backend/internal/http"
	"course_portal_backend/internal/statuses/handler"
	"course_portal_backend/internal/statuses/repository"
	"course_portal_backend/internal/statuses/service"
	"course_portal_backend/platform/config"
	"course_portal_backend/platform/logger"
	"course_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the statuses bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	cfg     config.BoardConfig
	log     *logger.Logger
}

// NewModule creates and initializes the statuses module with all its dependencies.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, cfg config.BoardConfig, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, cfg.GetDefaultStatusName(), log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		cfg:     cfg,
		log:     log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "statuses"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Bootstrap guarantees a default column exists, seeding an empty board from
// the configured seed file first.
func (m *Module) Bootstrap(ctx context.Context) error {
	seed, err := service.LoadSeedFile(m.cfg.GetStatusSeedFile())
	if err != nil {
		return err
	}
	return m.service.EnsureDefault(ctx, seed)
}

// RegisterRoutes mounts status routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/status")
	group.GET("", m.handler.List)
	group.GET("/:id", m.handler.GetByID)

	group.POST("", ctx.AdminOnly, m.handler.Create)
	group.PATCH("/reorder", ctx.AdminOnly, m.handler.Reorder)
	group.PATCH("/:id", ctx.AdminOnly, m.handler.Update)
	group.DELETE("/:id", ctx.AdminOnly, m.handler.Delete)
}

var _ apphttp.Module = (*Module)(nil)
