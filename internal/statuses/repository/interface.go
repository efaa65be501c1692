package repository

import (
	"context"
	"time"
)

// Status is a board column.
type Status struct {
	ID        int64
	Name      string
	IsDefault bool
	Color     *string
	Order     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateParams contains parameters for creating a status.
type CreateParams struct {
	Name      string
	IsDefault bool
	Color     *string
	Order     int
}

// UpdateParams lists the fields an update may touch. Order is not among them.
type UpdateParams struct {
	ID        int64
	Name      *string
	Color     *string
	IsDefault *bool
	// ClearColor sets the color to NULL and wins over Color.
	ClearColor bool
}

// OrderItem assigns a position to a status.
type OrderItem struct {
	ID    int64
	Order int
}

// StatusReader provides read operations for statuses.
type StatusReader interface {
	GetByID(ctx context.Context, id int64) (Status, error)
	GetByName(ctx context.Context, name string) (Status, error)
	// GetDefault returns apperr NotFound when no status is flagged default.
	GetDefault(ctx context.Context) (Status, error)
	ListOrdered(ctx context.Context) ([]Status, error)
	ListPage(ctx context.Context, offset, limit int) ([]Status, int, error)
	NameTaken(ctx context.Context, name string, excludeID int64) (bool, error)
	Count(ctx context.Context) (int, error)
	CountByIDs(ctx context.Context, ids []int64) (int, error)
}

// StatusWriter provides write operations for statuses.
type StatusWriter interface {
	Create(ctx context.Context, params CreateParams) (Status, error)
	Update(ctx context.Context, params UpdateParams) (Status, error)
	// ClearDefault removes the default flag from every status except exceptID.
	// It returns the id of the status that lost the flag, or 0.
	ClearDefault(ctx context.Context, exceptID int64) (int64, error)
	SetOrder(ctx context.Context, items []OrderItem) error
	ShiftOrder(ctx context.Context, from, delta int) error
	// CompactOrder renumbers statuses to 0..N-1 keeping their relative order.
	CompactOrder(ctx context.Context) error
	Delete(ctx context.Context, id int64) error
}

// LeadReassigner moves every lead of a column, soft-deleted ones included.
type LeadReassigner interface {
	ReassignLeads(ctx context.Context, fromStatusID, toStatusID int64) ([]int64, error)
}

// Repository combines all status repository operations.
type Repository interface {
	StatusReader
	StatusWriter
	LeadReassigner

	// WithinTx runs fn against a transactional repository that holds the
	// board lock. Every status mutation goes through it.
	WithinTx(ctx context.Context, fn func(tx Repository) error) error
}
