// Package management handles lead intake, edits, soft deletion and the
// flat filtered list.
package management

import (
	"context"
	"strings"

	"course_portal_backend/internal/events"
	"course_portal_backend/internal/leads/ports"
	"course_portal_backend/internal/leads/repository"
	"course_portal_backend/internal/leads/transport"
	"course_portal_backend/platform/logger"
	"course_portal_backend/platform/metrics"
	"course_portal_backend/platform/phone"
	"course_portal_backend/platform/sanitize"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// IntakeTx runs the writes of one lead intake as a single unit. fn gets a
// contact directory and lead writer bound to that unit; an error from fn
// undoes everything it wrote.
type IntakeTx interface {
	WithinIntake(ctx context.Context, fn func(users ports.UserDirectory, leads repository.LeadWriter) error) error
}

// Deps are the collaborators of the management service.
type Deps struct {
	Repo     repository.Repository
	Intake   IntakeTx
	Courses  ports.CourseReader
	Users    ports.UserDirectory
	Statuses ports.StatusReader
	Bus      events.Bus
	Region   string
	Log      *logger.Logger
}

// Service handles lead management operations.
type Service struct {
	repo     repository.Repository
	intake   IntakeTx
	courses  ports.CourseReader
	users    ports.UserDirectory
	statuses ports.StatusReader
	bus      events.Bus
	region   string
	log      *logger.Logger
}

// New creates a new lead management service.
func New(deps Deps) *Service {
	return &Service{
		repo:     deps.Repo,
		intake:   deps.Intake,
		courses:  deps.Courses,
		users:    deps.Users,
		statuses: deps.Statuses,
		bus:      deps.Bus,
		region:   deps.Region,
		log:      deps.Log,
	}
}

// Create stores a lead under the default status. Course and default status
// are checked before anything is written; the contact changes and the lead
// row then commit together.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	fullName := sanitize.Text(req.FullName)
	phoneNumber := phone.NormalizeE164(req.PhoneNumber, s.region)

	course, err := s.courses.GetActiveCourse(ctx, req.CourseID)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	status, err := s.statuses.GetDefaultColumn(ctx)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	var (
		lead       repository.Lead
		contact    ports.Contact
		newContact bool
	)
	err = s.withinIntake(ctx, func(users ports.UserDirectory, leads repository.LeadWriter) error {
		var err error
		contact, newContact, err = resolveContact(ctx, users, fullName, phoneNumber, course.ID, sanitize.TextPtr(req.TelegramUserID))
		if err != nil {
			return err
		}

		lead, err = leads.Create(ctx, repository.CreateParams{
			FullName:    fullName,
			PhoneNumber: phoneNumber,
			Job:         sanitize.TextPtr(req.Job),
			Position:    sanitize.TextPtr(req.Position),
			Employer:    sanitize.TextPtr(req.Employer),
			Region:      sanitize.Text(req.Region),
			City:        sanitize.Text(req.City),
			StatusID:    status.ID,
			CourseID:    course.ID,
			UserID:      contact.ID,
		})
		return err
	})
	if err != nil {
		return transport.LeadResponse{}, err
	}

	metrics.RecordLeadCreated()
	s.log.WithContext(ctx).Info("lead created", "leadId", lead.ID, "courseId", course.ID, "statusId", status.ID, "newContact", newContact)

	if s.bus != nil {
		s.bus.Publish(ctx, events.LeadCreated{
			BaseEvent:   events.NewBaseEvent(),
			LeadID:      lead.ID,
			FullName:    lead.FullName,
			PhoneNumber: lead.PhoneNumber,
			CourseID:    course.ID,
			CourseName:  course.Name,
			StatusID:    status.ID,
			UserID:      contact.ID,
			NewContact:  newContact,
		})
	}

	return transport.ToLeadResponse(repository.LeadDetails{
		Lead:         lead,
		StatusName:   status.Name,
		StatusColor:  status.Color,
		CourseName:   course.Name,
		UserFullName: contact.FullName,
		UserStatus:   contact.Status,
	}), nil
}

func (s *Service) withinIntake(ctx context.Context, fn func(users ports.UserDirectory, leads repository.LeadWriter) error) error {
	if s.intake == nil {
		return fn(s.users, s.repo)
	}
	return s.intake.WithinIntake(ctx, fn)
}

// resolveContact reuses the contact owning the phone, enrolling it in the
// course and promoting it to client, or creates an interested one.
func resolveContact(ctx context.Context, users ports.UserDirectory, fullName, phoneNumber string, courseID int64, telegramUserID *string) (ports.Contact, bool, error) {
	existing, err := users.FindByPhone(ctx, phoneNumber)
	if err != nil {
		return ports.Contact{}, false, err
	}

	if existing == nil {
		created, err := users.CreateUser(ctx, ports.ContactProfile{
			FullName:       fullName,
			PhoneNumber:    phoneNumber,
			TelegramUserID: telegramUserID,
			CourseID:       courseID,
		})
		return created, true, err
	}

	if err := users.AttachCourse(ctx, existing.ID, courseID); err != nil {
		return ports.Contact{}, false, err
	}
	if err := users.MarkAsClient(ctx, existing.ID, telegramUserID); err != nil {
		return ports.Contact{}, false, err
	}
	contact := *existing
	contact.Status = ports.ContactClient
	return contact, false, nil
}

// GetByID returns a live lead with its relations.
func (s *Service) GetByID(ctx context.Context, id int64) (transport.LeadResponse, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return transport.ToLeadResponse(d), nil
}

// Update applies an explicit field list. Status and course are resolved on
// every edit: the status must exist and the course must be active.
func (s *Service) Update(ctx context.Context, id int64, req transport.UpdateLeadRequest) (transport.LeadResponse, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	if _, err := s.statuses.GetColumn(ctx, req.StatusID); err != nil {
		return transport.LeadResponse{}, err
	}
	if _, err := s.courses.GetActiveCourse(ctx, req.CourseID); err != nil {
		return transport.LeadResponse{}, err
	}

	params := repository.UpdateParams{
		ID:       id,
		FullName: sanitize.TextPtr(req.FullName),
		Job:      sanitize.TextPtr(req.Job),
		Position: sanitize.TextPtr(req.Position),
		Employer: sanitize.TextPtr(req.Employer),
		Region:   sanitize.TextPtr(req.Region),
		City:     sanitize.TextPtr(req.City),
		StatusID: req.StatusID,
		CourseID: req.CourseID,
	}
	if _, err := s.repo.Update(ctx, params); err != nil {
		return transport.LeadResponse{}, err
	}

	if current.StatusID != req.StatusID {
		metrics.RecordLeadStatusChange()
		s.log.WithContext(ctx).Info("lead moved", "leadId", id, "fromStatusId", current.StatusID, "toStatusId", req.StatusID)
		if s.bus != nil {
			s.bus.Publish(ctx, events.LeadStatusChanged{
				BaseEvent:    events.NewBaseEvent(),
				LeadID:       id,
				FromStatusID: current.StatusID,
				ToStatusID:   req.StatusID,
			})
		}
	}

	return s.GetByID(ctx, id)
}

// Remove soft-deletes a lead.
func (s *Service) Remove(ctx context.Context, id int64) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.log.WithContext(ctx).Info("lead deleted", "leadId", id)
	return nil
}

// List returns one filtered page of live leads.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (transport.LeadListResponse, error) {
	page, limit := normalizePaging(req.Page, req.Limit)

	items, total, err := s.repo.List(ctx, repository.ListParams{
		Filter: repository.Filter{
			FullName:        strings.TrimSpace(req.FullName),
			PhoneNumber:     strings.TrimSpace(req.PhoneNumber),
			StatusIDs:       req.StatusIDs,
			CourseID:        req.CourseID,
			LiveCoursesOnly: true,
		},
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	return transport.LeadListResponse{
		Items:      transport.ToLeadResponses(items),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}
