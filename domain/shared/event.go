package shared

import "time"

// DomainEvent is a fact recorded by an aggregate when its state changes.
// Aggregates record events, the engine pulls them after a successful commit
// and hands them to the Notifier (commit-before-notify).
type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
	GetAggregateID() string
}

// AggregateRoot is the entry point of an aggregate. It has a global
// identity, maintains the aggregate invariants and records domain events.
type AggregateRoot interface {
	// ID returns the global identity of the aggregate root.
	ID() string

	// PullEvents returns and clears the recorded domain events.
	// Standard domain-event pattern: the aggregate records, the caller
	// drains after a successful save so an event is published at most once.
	PullEvents() []DomainEvent
}

// Entity has identity; equality is by ID, not by attributes.
type Entity interface {
	ID() string
}
