// Package notification turns pipeline events into outbound announcements.
// New leads are queued for a Telegram group broadcast; board changes are
// written to the audit log.
package notification

import (
	"context"

	"course_portal_backend/internal/events"
	"course_portal_backend/internal/scheduler"
	"course_portal_backend/platform/logger"
)

// Enqueuer schedules the group broadcast for a new lead.
type Enqueuer interface {
	EnqueueNotifyGroups(ctx context.Context, payload scheduler.NotifyGroupsPayload) error
}

// Module is the notification event subscriber.
type Module struct {
	enqueuer Enqueuer
	log      *logger.Logger
}

// New creates the notification module. A nil enqueuer disables broadcasts.
func New(enqueuer Enqueuer, log *logger.Logger) *Module {
	return &Module{enqueuer: enqueuer, log: log}
}

// RegisterHandlers subscribes to the events this module reacts to.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.LeadCreated{}.EventName(), m)
	bus.Subscribe(events.StatusDeleted{}.EventName(), m)
	bus.Subscribe(events.DefaultStatusChanged{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadCreated:
		return m.handleLeadCreated(ctx, e)
	case events.StatusDeleted:
		m.log.WithContext(ctx).Info("board column removed",
			"statusId", e.StatusID, "name", e.Name,
			"defaultStatusId", e.DefaultStatusID, "reassignedLeads", e.ReassignedLeads)
	case events.DefaultStatusChanged:
		m.log.WithContext(ctx).Info("default column changed",
			"statusId", e.StatusID, "previousStatusId", e.PreviousStatusID)
	}
	return nil
}

func (m *Module) handleLeadCreated(ctx context.Context, e events.LeadCreated) error {
	if m.enqueuer == nil {
		return nil
	}

	err := m.enqueuer.EnqueueNotifyGroups(ctx, scheduler.NotifyGroupsPayload{
		LeadID:      e.LeadID,
		FullName:    e.FullName,
		PhoneNumber: e.PhoneNumber,
		CourseName:  e.CourseName,
		NewContact:  e.NewContact,
		CreatedAt:   e.OccurredAt(),
	})
	if err != nil {
		m.log.WithContext(ctx).Error("failed to queue lead broadcast", "error", err, "leadId", e.LeadID)
		return err
	}
	return nil
}
