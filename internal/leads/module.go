// Package leads provides the lead pipeline bounded context module: lead
// intake, edits and the kanban board.
package leads

import (
	"course_portal_backend/internal/events"
	apphttp "course_portal_backend/internal/http"
	"course_portal_backend/internal/leads/board"
	"course_portal_backend/internal/leads/handler"
	"course_portal_backend/internal/leads/management"
	"course_portal_backend/internal/leads/ports"
	"course_portal_backend/internal/leads/repository"
	"course_portal_backend/platform/config"
	"course_portal_backend/platform/logger"
	"course_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies are the cross-module ports the leads module consumes.
type Dependencies struct {
	Courses  ports.CourseReader
	Users    ports.UserDirectory
	Statuses ports.StatusReader
	// Intake makes contact resolution and the lead insert atomic.
	Intake management.IntakeTx
}

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler    *handler.Handler
	management *management.Service
	board      *board.Service
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(pool *pgxpool.Pool, deps Dependencies, bus events.Bus, val *validator.Validator, cfg config.BoardConfig, log *logger.Logger) *Module {
	repo := repository.New(pool)

	mgmtSvc := management.New(management.Deps{
		Repo:     repo,
		Intake:   deps.Intake,
		Courses:  deps.Courses,
		Users:    deps.Users,
		Statuses: deps.Statuses,
		Bus:      bus,
		Region:   cfg.GetPhoneDefaultRegion(),
		Log:      log,
	})
	boardSvc := board.New(deps.Statuses, repo, cfg.GetBoardMaxColumnLimit())

	return &Module{
		handler:    handler.New(mgmtSvc, boardSvc, val),
		management: mgmtSvc,
		board:      boardSvc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// ManagementService returns the lead management service.
func (m *Module) ManagementService() *management.Service {
	return m.management
}

// RegisterRoutes mounts lead routes. Intake is public and rate limited;
// everything else requires authentication.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/lead")
	if ctx.IntakeLimiter != nil {
		public.POST("", ctx.IntakeLimiter.RateLimit(), m.handler.Create)
	} else {
		public.POST("", m.handler.Create)
	}

	group := ctx.Protected.Group("/lead")
	group.GET("", m.handler.List)
	group.GET("/kanban", m.handler.Kanban)
	group.GET("/kanban/load-more/:statusId", m.handler.LoadMore)
	group.GET("/:id", m.handler.GetByID)
	group.PATCH("/:id", ctx.AdminOnly, m.handler.Update)
	group.DELETE("/:id", ctx.AdminOnly, m.handler.Delete)
}

var _ apphttp.Module = (*Module)(nil)
