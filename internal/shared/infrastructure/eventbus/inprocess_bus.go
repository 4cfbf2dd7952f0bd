package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/lakshmiprabha03/smarttask-analyzer/internal/shared/domain"
)

// InProcessBus delivers events synchronously to registered consumers. It is
// the local-mode replacement for RabbitMQ: consumer failures are logged,
// never propagated to the publisher.
type InProcessBus struct {
	mu        sync.RWMutex
	consumers map[string][]Consumer
	logger    *slog.Logger
}

// NewInProcessBus creates an empty bus.
func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessBus{
		consumers: make(map[string][]Consumer),
		logger:    logger,
	}
}

// Register subscribes a consumer to its routing keys.
func (b *InProcessBus) Register(c Consumer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, key := range c.RoutingKeys() {
		b.consumers[key] = append(b.consumers[key], c)
	}
}

// Publish marshals the event and dispatches it to every consumer subscribed
// to its routing key.
func (b *InProcessBus) Publish(ctx context.Context, event domain.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	key := event.RoutingKey()
	b.mu.RLock()
	subscribers := b.consumers[key]
	b.mu.RUnlock()

	for _, c := range subscribers {
		if err := c.Handle(ctx, key, payload); err != nil {
			b.logger.ErrorContext(ctx, "event consumer failed",
				"routing_key", key,
				"event_id", event.EventID(),
				"error", err,
			)
		}
	}

	b.logger.DebugContext(ctx, "event dispatched",
		"routing_key", key,
		"event_id", event.EventID(),
		"consumers", len(subscribers),
	)
	return nil
}

// Close is a no-op for the in-process bus.
func (b *InProcessBus) Close() error {
	return nil
}
