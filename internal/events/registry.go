package events

import (
	"fmt"
	"sync"
)

// Factory creates a new empty instance of an event, ready for deserialization.
type Factory func() Event

// Registry stores event factories by event type.
// The relay resolves stored event types through an explicit registry
// populated at startup, never through runtime type lookup, so an unknown
// type is a controlled, testable branch.
type Registry interface {
	// Register adds an event factory for the given event type.
	Register(eventType string, factory Factory)
	// New creates a new event instance by its event type.
	// Returns an error if the event type is not registered.
	New(eventType string) (Event, error)
	// Has checks if an event type is registered.
	Has(eventType string) bool
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new event registry.
func NewRegistry() Registry {
	return &registry{
		factories: make(map[string]Factory),
	}
}

// Register adds an event factory for the given event type.
// If the event type is already registered, it will be overwritten.
func (r *registry) Register(eventType string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[eventType] = factory
}

func (r *registry) New(eventType string) (Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[eventType]
	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}
	return factory(), nil
}

func (r *registry) Has(eventType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[eventType]
	return ok
}
