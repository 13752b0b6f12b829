package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the ledger.
const (
	EventOwnerRegistered      = "owner-registered"
	EventStationRegistered    = "station-registered"
	EventSessionStarted       = "session-started"
	EventSessionEnded         = "session-ended"
	EventPaymentCompleted     = "payment-completed"
	EventElectricityPurchased = "electricity-purchased"
)

// Event is a fire-and-forget notification for external observers.
// The core never reads events back.
type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Fields     map[string]any `json:"fields,omitempty"`
}

// NewEvent stamps an event with a fresh id and timestamp.
func NewEvent(eventType string, fields map[string]any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Fields:     fields,
	}
}

// Notifier delivers events to an external observer channel.
type Notifier interface {
	Publish(ctx context.Context, ev Event) error
}

// Multi fans events out to several notifiers.
type Multi struct {
	notifiers []Notifier
}

// NewMulti creates a fan-out notifier.
func NewMulti(notifiers ...Notifier) *Multi {
	return &Multi{notifiers: notifiers}
}

// Publish forwards the event to every notifier, returning the first error
// encountered after all deliveries were attempted.
func (m *Multi) Publish(ctx context.Context, ev Event) error {
	var firstErr error
	for _, n := range m.notifiers {
		if err := n.Publish(ctx, ev); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
