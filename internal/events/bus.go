// Package events re-exports the platform event bus for convenience and
// defines the domain event types published by the modules.
package events

import (
	platformevents "propertyhub_backend/platform/events"
	"propertyhub_backend/platform/logger"
)

// Bus is a type alias to the platform event bus interface.
type Bus = platformevents.Bus

// Event is a type alias to the platform event interface.
type Event = platformevents.Event

// Handler is a type alias to the platform event handler.
type Handler = platformevents.Handler

// HandlerFunc is a type alias to the platform handler adapter.
type HandlerFunc = platformevents.HandlerFunc

// BaseEvent is a type alias to the platform base event.
type BaseEvent = platformevents.BaseEvent

// InMemoryBus is a type alias to the platform InMemoryBus.
type InMemoryBus = platformevents.InMemoryBus

// NewInMemoryBus creates a new in-memory event bus.
// This is a convenience re-export from platform/events.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}

// NewBaseEvent creates a new base event with the current timestamp.
func NewBaseEvent() BaseEvent {
	return platformevents.NewBaseEvent()
}
