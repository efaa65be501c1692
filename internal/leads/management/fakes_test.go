package management

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"course_portal_backend/internal/events"
	"course_portal_backend/internal/leads/ports"
	"course_portal_backend/internal/leads/repository"
	"course_portal_backend/internal/shared/codes"
)

type fakeLeads struct {
	nextID    int64
	rows      map[int64]repository.Lead
	now       time.Time
	createErr error
	lastList  repository.ListParams
}

func newFakeLeads() *fakeLeads {
	return &fakeLeads{nextID: 1, rows: map[int64]repository.Lead{}, now: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (f *fakeLeads) tick() time.Time {
	f.now = f.now.Add(time.Minute)
	return f.now
}

func (f *fakeLeads) Create(_ context.Context, p repository.CreateParams) (repository.Lead, error) {
	if f.createErr != nil {
		return repository.Lead{}, f.createErr
	}
	ts := f.tick()
	l := repository.Lead{
		ID: f.nextID, FullName: p.FullName, PhoneNumber: p.PhoneNumber, Job: p.Job, Position: p.Position,
		Employer: p.Employer, Region: p.Region, City: p.City, StatusID: p.StatusID, CourseID: p.CourseID,
		UserID: p.UserID, CreatedAt: ts, UpdatedAt: ts,
	}
	f.rows[l.ID] = l
	f.nextID++
	return l, nil
}

func (f *fakeLeads) GetByID(_ context.Context, id int64) (repository.LeadDetails, error) {
	l, ok := f.rows[id]
	if !ok || l.IsDeleted {
		return repository.LeadDetails{}, codes.ErrLeadNotFound()
	}
	return repository.LeadDetails{Lead: l}, nil
}

func (f *fakeLeads) Update(_ context.Context, p repository.UpdateParams) (repository.Lead, error) {
	l, ok := f.rows[p.ID]
	if !ok || l.IsDeleted {
		return repository.Lead{}, codes.ErrLeadNotFound()
	}
	if p.FullName != nil {
		l.FullName = *p.FullName
	}
	if p.City != nil {
		l.City = *p.City
	}
	l.StatusID = p.StatusID
	l.CourseID = p.CourseID
	l.UpdatedAt = f.tick()
	f.rows[p.ID] = l
	return l, nil
}

func (f *fakeLeads) SoftDelete(_ context.Context, id int64) error {
	l, ok := f.rows[id]
	if !ok {
		return codes.ErrLeadNotFound()
	}
	l.IsDeleted = true
	f.rows[id] = l
	return nil
}

func (f *fakeLeads) List(_ context.Context, p repository.ListParams) ([]repository.LeadDetails, int, error) {
	f.lastList = p
	var matched []repository.LeadDetails
	for _, l := range f.rows {
		if l.IsDeleted {
			continue
		}
		if len(p.StatusIDs) > 0 && !containsID(p.StatusIDs, l.StatusID) {
			continue
		}
		matched = append(matched, repository.LeadDetails{Lead: l})
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].UpdatedAt.After(matched[j].UpdatedAt) })

	total := len(matched)
	if p.Offset >= total {
		return []repository.LeadDetails{}, total, nil
	}
	end := min(p.Offset+p.Limit, total)
	return matched[p.Offset:end], total, nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type fakeCourses map[int64]ports.Course

func (f fakeCourses) GetActiveCourse(_ context.Context, id int64) (ports.Course, error) {
	c, ok := f[id]
	if !ok {
		return ports.Course{}, codes.ErrCourseNotFound()
	}
	return c, nil
}

type fakeUsers struct {
	nextID   int64
	byPhone  map[string]ports.Contact
	attached map[int64][]int64
	telegram map[int64]string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{nextID: 1, byPhone: map[string]ports.Contact{}, attached: map[int64][]int64{}, telegram: map[int64]string{}}
}

func (f *fakeUsers) FindByPhone(_ context.Context, phone string) (*ports.Contact, error) {
	c, ok := f.byPhone[phone]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeUsers) CreateUser(_ context.Context, p ports.ContactProfile) (ports.Contact, error) {
	c := ports.Contact{ID: f.nextID, FullName: p.FullName, PhoneNumber: p.PhoneNumber, Status: ports.ContactInterested}
	f.nextID++
	f.byPhone[p.PhoneNumber] = c
	f.attached[c.ID] = append(f.attached[c.ID], p.CourseID)
	return c, nil
}

func (f *fakeUsers) AttachCourse(_ context.Context, userID, courseID int64) error {
	f.attached[userID] = append(f.attached[userID], courseID)
	return nil
}

func (f *fakeUsers) MarkAsClient(_ context.Context, userID int64, telegramUserID *string) error {
	for phone, c := range f.byPhone {
		if c.ID == userID {
			c.Status = ports.ContactClient
			f.byPhone[phone] = c
		}
	}
	if telegramUserID != nil {
		f.telegram[userID] = *telegramUserID
	}
	return nil
}

// fakeIntake gives the in-memory stores transaction semantics: state is
// snapshotted before fn and restored when fn fails.
type fakeIntake struct {
	users *fakeUsers
	leads *fakeLeads
	runs  int
}

func (f *fakeIntake) WithinIntake(_ context.Context, fn func(users ports.UserDirectory, leads repository.LeadWriter) error) error {
	f.runs++
	users := f.users.snapshot()
	leads := maps.Clone(f.leads.rows)
	nextLead := f.leads.nextID

	if err := fn(f.users, f.leads); err != nil {
		*f.users = users
		f.leads.rows = leads
		f.leads.nextID = nextLead
		return err
	}
	return nil
}

func (f *fakeUsers) snapshot() fakeUsers {
	attached := make(map[int64][]int64, len(f.attached))
	for id, courses := range f.attached {
		attached[id] = slices.Clone(courses)
	}
	return fakeUsers{
		nextID:   f.nextID,
		byPhone:  maps.Clone(f.byPhone),
		attached: attached,
		telegram: maps.Clone(f.telegram),
	}
}

type fakeStatuses struct {
	columns []ports.Column
}

func (f *fakeStatuses) ListColumns(_ context.Context) ([]ports.Column, error) {
	return f.columns, nil
}

func (f *fakeStatuses) GetDefaultColumn(_ context.Context) (ports.Column, error) {
	for _, c := range f.columns {
		if c.IsDefault {
			return c, nil
		}
	}
	return ports.Column{}, codes.ErrStatusNotFound()
}

func (f *fakeStatuses) GetColumn(_ context.Context, id int64) (ports.Column, error) {
	for _, c := range f.columns {
		if c.ID == id {
			return c, nil
		}
	}
	return ports.Column{}, codes.ErrStatusNotFound()
}

// recordingBus captures published events synchronously.
type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}
