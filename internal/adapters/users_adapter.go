package adapters

import (
	"context"

	"course_portal_backend/internal/leads/ports"
	usersrepo "course_portal_backend/internal/users/repository"
)

// UserDirectoryAdapter implements ports.UserDirectory over the contacts store.
type UserDirectoryAdapter struct {
	repo usersrepo.Repository
}

func NewUserDirectoryAdapter(repo usersrepo.Repository) *UserDirectoryAdapter {
	return &UserDirectoryAdapter{repo: repo}
}

func (a *UserDirectoryAdapter) FindByPhone(ctx context.Context, phone string) (*ports.Contact, error) {
	u, err := a.repo.FindByPhone(ctx, phone)
	if err != nil || u == nil {
		return nil, err
	}
	c := toContact(*u)
	return &c, nil
}

func (a *UserDirectoryAdapter) CreateUser(ctx context.Context, profile ports.ContactProfile) (ports.Contact, error) {
	u, err := a.repo.Create(ctx, usersrepo.CreateParams{
		FullName:       profile.FullName,
		PhoneNumber:    profile.PhoneNumber,
		TelegramUserID: profile.TelegramUserID,
		CourseID:       profile.CourseID,
	})
	if err != nil {
		return ports.Contact{}, err
	}
	return toContact(u), nil
}

func (a *UserDirectoryAdapter) AttachCourse(ctx context.Context, userID, courseID int64) error {
	return a.repo.AttachCourse(ctx, userID, courseID)
}

func (a *UserDirectoryAdapter) MarkAsClient(ctx context.Context, userID int64, telegramUserID *string) error {
	return a.repo.MarkAsClient(ctx, userID, telegramUserID)
}

func toContact(u usersrepo.User) ports.Contact {
	return ports.Contact{ID: u.ID, FullName: u.FullName, PhoneNumber: u.PhoneNumber, Status: u.Status}
}

var _ ports.UserDirectory = (*UserDirectoryAdapter)(nil)
