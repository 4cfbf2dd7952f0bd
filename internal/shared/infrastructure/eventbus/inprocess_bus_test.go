package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	ID      uuid.UUID `json:"event_id"`
	Payload string    `json:"payload"`
	At      time.Time `json:"occurred_at"`
	key     string
}

func (e testEvent) EventID() uuid.UUID    { return e.ID }
func (e testEvent) RoutingKey() string    { return e.key }
func (e testEvent) OccurredAt() time.Time { return e.At }

type recordingConsumer struct {
	keys     []string
	received [][]byte
	err      error
}

func (c *recordingConsumer) RoutingKeys() []string {
	return c.keys
}

func (c *recordingConsumer) Handle(_ context.Context, _ string, payload []byte) error {
	if c.err != nil {
		return c.err
	}
	c.received = append(c.received, payload)
	return nil
}

func TestInProcessBus(t *testing.T) {
	ctx := context.Background()

	t.Run("dispatches to matching consumers", func(t *testing.T) {
		bus := NewInProcessBus(nil)
		consumer := &recordingConsumer{keys: []string{"analysis.completed"}}
		bus.Register(consumer)

		event := testEvent{ID: uuid.New(), Payload: "hello", key: "analysis.completed"}
		require.NoError(t, bus.Publish(ctx, event))

		require.Len(t, consumer.received, 1)
		var got testEvent
		require.NoError(t, json.Unmarshal(consumer.received[0], &got))
		assert.Equal(t, event.ID, got.ID)
		assert.Equal(t, "hello", got.Payload)
	})

	t.Run("ignores consumers with other keys", func(t *testing.T) {
		bus := NewInProcessBus(nil)
		other := &recordingConsumer{keys: []string{"feedback.recorded"}}
		bus.Register(other)

		require.NoError(t, bus.Publish(ctx, testEvent{ID: uuid.New(), key: "analysis.completed"}))

		assert.Empty(t, other.received)
	})

	t.Run("consumer errors do not fail publishing", func(t *testing.T) {
		bus := NewInProcessBus(nil)
		failing := &recordingConsumer{keys: []string{"analysis.completed"}, err: errors.New("boom")}
		healthy := &recordingConsumer{keys: []string{"analysis.completed"}}
		bus.Register(failing)
		bus.Register(healthy)

		require.NoError(t, bus.Publish(ctx, testEvent{ID: uuid.New(), key: "analysis.completed"}))

		assert.Len(t, healthy.received, 1)
	})

	t.Run("one consumer may subscribe to several keys", func(t *testing.T) {
		bus := NewInProcessBus(nil)
		consumer := &recordingConsumer{keys: []string{"analysis.completed", "feedback.recorded"}}
		bus.Register(consumer)

		require.NoError(t, bus.Publish(ctx, testEvent{ID: uuid.New(), key: "analysis.completed"}))
		require.NoError(t, bus.Publish(ctx, testEvent{ID: uuid.New(), key: "feedback.recorded"}))

		assert.Len(t, consumer.received, 2)
	})
}
