package shared

import "context"

// EventHandler handles domain events
type EventHandler interface {
	// Handle processes a domain event
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes returns the event types this handler is interested in.
	// An empty slice subscribes the handler to all events.
	EventTypes() []string
}

// EventPublisher publishes domain events. Application services hold
// this narrow interface so they stay decoupled from the bus lifecycle.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventBus is the full pub/sub surface wired up in main
type EventBus interface {
	EventPublisher
	// Subscribe registers a handler, defaulting to its own EventTypes()
	// when none are given
	Subscribe(handler EventHandler, eventTypes ...string)
	// Unsubscribe removes a handler from all event types
	Unsubscribe(handler EventHandler)
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
