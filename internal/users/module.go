// Package users owns contact records shared by every lead of one phone number.
package users

import (
	apphttp "course_portal_backend/internal/http"
	"course_portal_backend/internal/users/handler"
	"course_portal_backend/internal/users/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the users module implementing http.Module.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repo
}

// NewModule wires the users repository and handler.
func NewModule(pool *pgxpool.Pool) *Module {
	repo := repository.New(pool)
	return &Module{handler: handler.New(repo), repo: repo}
}

func (m *Module) Name() string { return "users" }

// Repository returns the contact store for adapters.
func (m *Module) Repository() repository.Repository { return m.repo }

// RegisterRoutes mounts user routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/users/:id", m.handler.GetByID)
}

var _ apphttp.Module = (*Module)(nil)
