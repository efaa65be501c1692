// Package repository persists contacts (users) and their course enrollments.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"course_portal_backend/internal/shared/codes"
	"course_portal_backend/platform/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Contact lifecycle states.
const (
	StatusInterested = "INTERESTED"
	StatusClient     = "CLIENT"
)

const phoneConstraint = "users_phone_number_key"

// User is the contact record behind one or more leads.
type User struct {
	ID             int64     `json:"id"`
	FullName       string    `json:"fullName"`
	PhoneNumber    string    `json:"phoneNumber"`
	TelegramUserID *string   `json:"telegramUserId,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Summary is a user with counts of its live leads and enrolled courses.
type Summary struct {
	User
	LeadCount   int `json:"leadCount"`
	CourseCount int `json:"courseCount"`
}

// CreateParams contains the profile of a new contact.
type CreateParams struct {
	FullName       string
	PhoneNumber    string
	TelegramUserID *string
	CourseID       int64
}

// Repository is the contact store.
type Repository interface {
	FindByPhone(ctx context.Context, phone string) (*User, error)
	GetSummary(ctx context.Context, id int64) (Summary, error)
	Create(ctx context.Context, params CreateParams) (User, error)
	AttachCourse(ctx context.Context, userID, courseID int64) error
	MarkAsClient(ctx context.Context, userID int64, telegramUserID *string) error
}

const userColumns = `id, full_name, phone_number, telegram_user_id, status, created_at, updated_at`

// Repo implements Repository with PostgreSQL.
type Repo struct {
	conn db.Conn
}

// New creates a new users repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{conn: pool}
}

// NewWithConn binds a repository to conn, usually an open transaction.
func NewWithConn(conn db.Conn) *Repo {
	return &Repo{conn: conn}
}

var _ Repository = (*Repo)(nil)

// FindByPhone returns nil when no contact owns phone.
func (r *Repo) FindByPhone(ctx context.Context, phone string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1`

	u, err := scanUser(r.conn.QueryRow(ctx, query, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by phone: %w", err)
	}
	return &u, nil
}

// GetSummary returns a user with live lead and course counts.
func (r *Repo) GetSummary(ctx context.Context, id int64) (Summary, error) {
	query := `
		SELECT u.id, u.full_name, u.phone_number, u.telegram_user_id, u.status, u.created_at, u.updated_at,
			(SELECT COUNT(*) FROM leads l WHERE l.user_id = u.id AND l.is_deleted = false),
			(SELECT COUNT(*) FROM user_courses uc JOIN courses c ON c.id = uc.course_id
				WHERE uc.user_id = u.id AND c.is_deleted = false)
		FROM users u
		WHERE u.id = $1`

	var s Summary
	err := r.conn.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.FullName, &s.PhoneNumber, &s.TelegramUserID, &s.Status, &s.CreatedAt, &s.UpdatedAt,
		&s.LeadCount, &s.CourseCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Summary{}, codes.ErrUserNotFound()
		}
		return Summary{}, fmt.Errorf("get user summary: %w", err)
	}
	return s, nil
}

// Create inserts an INTERESTED contact and enrolls it in the course.
// When a concurrent insert wins the phone number, the existing contact is
// enrolled instead and returned. The insert runs in its own (sub)transaction
// so that fallback works inside a caller's transaction too.
func (r *Repo) Create(ctx context.Context, params CreateParams) (User, error) {
	var user User
	err := db.WithTx(ctx, r.conn, func(tx pgx.Tx) error {
		query := `
			INSERT INTO users (full_name, phone_number, telegram_user_id, status)
			VALUES ($1, $2, $3, $4)
			RETURNING ` + userColumns

		u, err := scanUser(tx.QueryRow(ctx, query, params.FullName, params.PhoneNumber, params.TelegramUserID, StatusInterested))
		if err != nil {
			return err
		}
		user = u

		_, err = tx.Exec(ctx, `INSERT INTO user_courses (user_id, course_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, u.ID, params.CourseID)
		return err
	})
	if err != nil {
		if db.IsUniqueViolation(err, phoneConstraint) {
			existing, findErr := r.FindByPhone(ctx, params.PhoneNumber)
			if findErr == nil && existing != nil {
				if err := r.AttachCourse(ctx, existing.ID, params.CourseID); err != nil {
					return User{}, err
				}
				return *existing, nil
			}
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// AttachCourse enrolls the user in a course; repeated calls are no-ops.
func (r *Repo) AttachCourse(ctx context.Context, userID, courseID int64) error {
	query := `INSERT INTO user_courses (user_id, course_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := r.conn.Exec(ctx, query, userID, courseID); err != nil {
		if db.IsForeignKeyViolation(err, "") {
			return codes.ErrUserNotFound()
		}
		return fmt.Errorf("attach course: %w", err)
	}
	return nil
}

// MarkAsClient flips the contact to CLIENT and records its telegram id when given.
func (r *Repo) MarkAsClient(ctx context.Context, userID int64, telegramUserID *string) error {
	query := `
		UPDATE users SET
			status = $2,
			telegram_user_id = COALESCE($3, telegram_user_id),
			updated_at = now()
		WHERE id = $1`

	result, err := r.conn.Exec(ctx, query, userID, StatusClient, telegramUserID)
	if err != nil {
		return fmt.Errorf("mark user as client: %w", err)
	}
	if result.RowsAffected() == 0 {
		return codes.ErrUserNotFound()
	}
	return nil
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.FullName, &u.PhoneNumber, &u.TelegramUserID, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
