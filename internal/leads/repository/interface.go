package repository

import (
	"context"
	"time"
)

// Lead is a stored lead row.
type Lead struct {
	ID          int64
	FullName    string
	PhoneNumber string
	Job         *string
	Position    *string
	Employer    *string
	Region      string
	City        string
	StatusID    int64
	CourseID    int64
	UserID      int64
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LeadDetails is a lead joined with its status, course and contact.
type LeadDetails struct {
	Lead
	StatusName   string
	StatusColor  *string
	CourseName   string
	UserFullName string
	UserStatus   string
}

// Filter holds the lead filters shared by the list and every board column.
type Filter struct {
	FullName    string
	PhoneNumber string
	StatusIDs   []int64
	CourseID    *int64
	// LiveCoursesOnly hides leads whose course was soft-deleted. The flat
	// list sets it; board columns keep such leads so column totals match.
	LiveCoursesOnly bool
}

// ListParams is a filtered page of leads, newest update first.
type ListParams struct {
	Filter
	Offset int
	Limit  int
}

// CreateParams contains the fields of a new lead.
type CreateParams struct {
	FullName    string
	PhoneNumber string
	Job         *string
	Position    *string
	Employer    *string
	Region      string
	City        string
	StatusID    int64
	CourseID    int64
	UserID      int64
}

// UpdateParams lists every field an edit may touch. Status and course are
// always written.
type UpdateParams struct {
	ID       int64
	FullName *string
	Job      *string
	Position *string
	Employer *string
	Region   *string
	City     *string
	StatusID int64
	CourseID int64
}

// LeadReader reads leads. Soft-deleted leads are never returned.
type LeadReader interface {
	GetByID(ctx context.Context, id int64) (LeadDetails, error)
	List(ctx context.Context, params ListParams) ([]LeadDetails, int, error)
}

// LeadWriter mutates leads.
type LeadWriter interface {
	Create(ctx context.Context, params CreateParams) (Lead, error)
	Update(ctx context.Context, params UpdateParams) (Lead, error)
	SoftDelete(ctx context.Context, id int64) error
}

// Repository combines all lead store operations.
type Repository interface {
	LeadReader
	LeadWriter
}
