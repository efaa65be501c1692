// Package courses exposes the course catalog to the rest of the application.
package courses

import (
	"course_portal_backend/internal/courses/handler"
	"course_portal_backend/internal/courses/repository"
	apphttp "course_portal_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the courses module implementing http.Module.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repo
}

// NewModule wires the courses repository and handler.
func NewModule(pool *pgxpool.Pool) *Module {
	repo := repository.New(pool)
	return &Module{handler: handler.New(repo), repo: repo}
}

func (m *Module) Name() string { return "courses" }

// Repository returns the course read model for adapters.
func (m *Module) Repository() repository.Reader { return m.repo }

// RegisterRoutes mounts course routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/courses", m.handler.List)
	ctx.Protected.GET("/courses/:id", m.handler.GetByID)
}

var _ apphttp.Module = (*Module)(nil)
