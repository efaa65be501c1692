package events

import (
	platformevents "course_portal_backend/platform/events"
	"course_portal_backend/platform/logger"
)

// InMemoryBus is the platform bus, re-exported so modules import one package.
type InMemoryBus = platformevents.InMemoryBus

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}
