package events

import (
	"context"
	"sync"

	"propertyhub_backend/platform/logger"
)

// InMemoryBus is a simple in-process event bus. Asynchronous handlers run in
// their own goroutine; a panicking or failing handler never affects the
// publisher or other handlers.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *logger.Logger
}

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registers a handler for the named event type.
func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish dispatches the event to all subscribed handlers asynchronously.
// The caller's context deadline does not bound handler execution.
func (b *InMemoryBus) Publish(_ context.Context, event Event) {
	b.mu.RLock()
	registered := make([]Handler, len(b.handlers[event.EventName()]))
	copy(registered, b.handlers[event.EventName()])
	b.mu.RUnlock()

	for _, h := range registered {
		go b.dispatch(h, event)
	}
}

// PublishSync dispatches the event and waits for every handler. The first
// handler error is returned; remaining handlers still run.
func (b *InMemoryBus) PublishSync(ctx context.Context, event Event) error {
	b.mu.RLock()
	registered := make([]Handler, len(b.handlers[event.EventName()]))
	copy(registered, b.handlers[event.EventName()])
	b.mu.RUnlock()

	var firstErr error
	for _, h := range registered {
		if err := h.Handle(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (b *InMemoryBus) dispatch(h Handler, event Event) {
	defer func() {
		if r := recover(); r != nil && b.log != nil {
			b.log.Error("event handler panic", "event", event.EventName(), "panic", r)
		}
	}()

	if err := h.Handle(context.Background(), event); err != nil && b.log != nil {
		b.log.Error("event handler failed", "event", event.EventName(), "error", err)
	}
}
