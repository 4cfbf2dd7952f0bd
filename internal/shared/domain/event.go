// Package domain holds the shared building blocks used across bounded
// contexts.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent represents something that happened in the domain. Events are
// serialized to JSON and published on the event bus under their routing key.
type DomainEvent interface {
	EventID() uuid.UUID
	RoutingKey() string
	OccurredAt() time.Time
}
