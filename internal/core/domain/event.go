package domain

import "time"

// EventType names a domain event published to downstream consumers.
type EventType string

const (
	EventProductCreated EventType = "product.created"
	EventProductUpdated EventType = "product.updated"
	EventProductDeleted EventType = "product.deleted"
	EventOrderCreated   EventType = "order.created"
	EventOrderUpdated   EventType = "order.updated"
	EventOrderDeleted   EventType = "order.deleted"
	EventUserRegistered EventType = "user.registered"
	EventUserDeleted    EventType = "user.deleted"
)

// Event is a fact about an aggregate that already happened.
// AggregateID is used as the partition key so events of one aggregate stay ordered.
type Event struct {
	Type        EventType `json:"type"`
	AggregateID string    `json:"aggregate_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Payload     any       `json:"payload,omitempty"`
}

// NewEvent stamps an event with the current UTC time.
func NewEvent(t EventType, aggregateID string, payload any) Event {
	return Event{
		Type:        t,
		AggregateID: aggregateID,
		OccurredAt:  time.Now().UTC(),
		Payload:     payload,
	}
}
