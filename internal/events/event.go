// Package events defines the domain events exchanged between modules.
// Bus infrastructure lives in platform/events.
package events

import (
	"course_portal_backend/platform/events"
)

type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Lead Domain Events
// =============================================================================

// LeadCreated is published after a lead is stored under the default status.
type LeadCreated struct {
	BaseEvent
	LeadID      int64  `json:"leadId"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	CourseID    int64  `json:"courseId"`
	CourseName  string `json:"courseName"`
	StatusID    int64  `json:"statusId"`
	UserID      int64  `json:"userId"`
	NewContact  bool   `json:"newContact"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadStatusChanged is published when an edit moves a lead to another column.
type LeadStatusChanged struct {
	BaseEvent
	LeadID       int64 `json:"leadId"`
	FromStatusID int64 `json:"fromStatusId"`
	ToStatusID   int64 `json:"toStatusId"`
}

func (e LeadStatusChanged) EventName() string { return "leads.lead.status_changed" }

// =============================================================================
// Status Domain Events
// =============================================================================

// StatusDeleted is published after a column is removed and its leads moved
// to the default status.
type StatusDeleted struct {
	BaseEvent
	StatusID        int64  `json:"statusId"`
	Name            string `json:"name"`
	DefaultStatusID int64  `json:"defaultStatusId"`
	ReassignedLeads int    `json:"reassignedLeads"`
}

func (e StatusDeleted) EventName() string { return "statuses.status.deleted" }

// DefaultStatusChanged is published when a different column becomes the default.
type DefaultStatusChanged struct {
	BaseEvent
	StatusID         int64 `json:"statusId"`
	PreviousStatusID int64 `json:"previousStatusId,omitempty"`
}

func (e DefaultStatusChanged) EventName() string { return "statuses.default.changed" }
