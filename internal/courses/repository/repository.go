// Package repository provides read access to the course catalog.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"course_portal_backend/internal/shared/codes"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Course is a course leads can enroll in.
type Course struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       *int64    `json:"price,omitempty"`
	IsDeleted   bool      `json:"isDeleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ListParams filters the course list.
type ListParams struct {
	Name   string
	Offset int
	Limit  int
}

// Reader is the course read model.
type Reader interface {
	GetActive(ctx context.Context, id int64) (Course, error)
	List(ctx context.Context, params ListParams) ([]Course, int, error)
}

const courseColumns = `id, name, description, price, is_deleted, created_at, updated_at`

// Repo implements Reader with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new courses repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Reader = (*Repo)(nil)

// GetActive returns a non-deleted course or COURSE_NOT_FOUND.
func (r *Repo) GetActive(ctx context.Context, id int64) (Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1 AND is_deleted = false`

	var c Course
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.Price, &c.IsDeleted, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Course{}, codes.ErrCourseNotFound()
		}
		return Course{}, fmt.Errorf("get active course: %w", err)
	}
	return c, nil
}

// List returns non-deleted courses sorted by name.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Course, int, error) {
	var nameParam interface{}
	if params.Name != "" {
		nameParam = "%" + params.Name + "%"
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM courses WHERE is_deleted = false AND ($1::text IS NULL OR name ILIKE $1)`
	if err := r.pool.QueryRow(ctx, countQuery, nameParam).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}

	query := `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE is_deleted = false AND ($1::text IS NULL OR name ILIKE $1)
		ORDER BY name ASC, id ASC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, nameParam, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	items := make([]Course, 0)
	for rows.Next() {
		var c Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Price, &c.IsDeleted, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan course: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate courses: %w", err)
	}
	return items, total, nil
}
