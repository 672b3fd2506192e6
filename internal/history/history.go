package history

import (
	"context"
	"time"
)

// EventType defines the kind of lifecycle event.
type EventType string

const (
	EventStart EventType = "start"
	EventStop  EventType = "stop"
)

// Event represents a stack lifecycle invocation to be exported to external
// systems. Outcome is the post-operation poll result ("confirmed" or
// "unconfirmed"); Detail carries free-form context such as the matched
// container states.
type Event struct {
	Type       EventType `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Stack      string    `json:"stack"`
	Outcome    string    `json:"outcome"`
	Detail     string    `json:"detail,omitempty"`
}

// Sink is a destination for history events (audit/statistics systems).
// Implementations must be safe for concurrent use. Sending is best-effort
// from the caller's point of view; a sink error never fails the lifecycle
// operation that produced the event.
type Sink interface {
	Send(ctx context.Context, e Event) error
}
