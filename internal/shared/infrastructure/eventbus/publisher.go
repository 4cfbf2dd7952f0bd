// Package eventbus delivers domain events to interested consumers, either
// in process for local mode or through RabbitMQ.
package eventbus

import (
	"context"

	"github.com/lakshmiprabha03/smarttask-analyzer/internal/shared/domain"
)

// Publisher sends domain events to the bus.
type Publisher interface {
	Publish(ctx context.Context, event domain.DomainEvent) error
	Close() error
}

// Consumer handles events for a set of routing keys.
type Consumer interface {
	// RoutingKeys lists the keys this consumer subscribes to.
	RoutingKeys() []string

	// Handle processes one delivered event payload.
	Handle(ctx context.Context, routingKey string, payload []byte) error
}
