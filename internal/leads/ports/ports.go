// Package ports defines the interfaces the leads domain needs from the
// course, contact and status modules. Adapters in internal/adapters
// implement them so leads never imports another module's internals.
package ports

import "context"

// Course is the minimal course data a lead needs.
type Course struct {
	ID   int64
	Name string
}

// CourseReader resolves courses that can still take enrollments.
type CourseReader interface {
	// GetActiveCourse fails with COURSE_NOT_FOUND for missing or deleted courses.
	GetActiveCourse(ctx context.Context, id int64) (Course, error)
}

// Contact states.
const (
	ContactInterested = "INTERESTED"
	ContactClient     = "CLIENT"
)

// Contact is the user record behind a lead.
type Contact struct {
	ID          int64
	FullName    string
	PhoneNumber string
	Status      string
}

// ContactProfile describes a contact created from a lead submission.
type ContactProfile struct {
	FullName       string
	PhoneNumber    string
	TelegramUserID *string
	CourseID       int64
}

// UserDirectory finds or creates the contact owning a phone number.
type UserDirectory interface {
	// FindByPhone returns nil without error when no contact exists.
	FindByPhone(ctx context.Context, phone string) (*Contact, error)
	CreateUser(ctx context.Context, profile ContactProfile) (Contact, error)
	AttachCourse(ctx context.Context, userID, courseID int64) error
	MarkAsClient(ctx context.Context, userID int64, telegramUserID *string) error
}

// Column is a board status as seen by the leads domain.
type Column struct {
	ID        int64
	Name      string
	Color     *string
	IsDefault bool
	Order     int
}

// StatusReader exposes the board columns.
type StatusReader interface {
	// ListColumns returns every status sorted by board position.
	ListColumns(ctx context.Context) ([]Column, error)
	// GetDefaultColumn fails with STATUS_NOT_FOUND when no default exists.
	GetDefaultColumn(ctx context.Context) (Column, error)
	GetColumn(ctx context.Context, id int64) (Column, error)
}
