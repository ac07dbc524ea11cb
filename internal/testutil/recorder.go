package testutil

import (
	"context"
	"sync"

	"github.com/specialistvlad/rostergo/internal/registry"
)

// EventRecorder is a registry.Notifier that keeps every event it receives.
// It is safe for concurrent use.
type EventRecorder struct {
	mu     sync.Mutex
	events []registry.Event
}

// Notify implements registry.Notifier.
func (r *EventRecorder) Notify(_ context.Context, e registry.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events in arrival order.
func (r *EventRecorder) Events() []registry.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]registry.Event(nil), r.events...)
}

// Kinds returns the kind of every recorded event in arrival order.
func (r *EventRecorder) Kinds() []registry.EventKind {
	events := r.Events()
	kinds := make([]registry.EventKind, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}
