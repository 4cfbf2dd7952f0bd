package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/application/learning"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/task"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/weights"
)

func TestRecordFeedbackHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("helpful feedback boosts importance and urgency", func(t *testing.T) {
		store := learning.NewStore(nil)
		before := store.Snapshot()
		h := NewRecordFeedbackHandler(RecordFeedbackConfig{Store: store})

		res, err := h.Handle(ctx, RecordFeedbackCommand{Helpful: true, Score: 70.2})

		require.NoError(t, err)
		assert.Equal(t, "Feedback recorded - model improved", res.Message)
		assert.Greater(t, res.NewWeights.Get(weights.Importance), before.Get(weights.Importance))
		assert.InDelta(t, 1.0, res.NewWeights.Sum(), 1e-9)
		assert.Equal(t, res.NewWeights, store.Snapshot())
	})

	t.Run("unhelpful feedback boosts effort", func(t *testing.T) {
		store := learning.NewStore(nil)
		before := store.Snapshot()
		h := NewRecordFeedbackHandler(RecordFeedbackConfig{Store: store})

		res, err := h.Handle(ctx, RecordFeedbackCommand{Helpful: false})

		require.NoError(t, err)
		assert.Greater(t, res.NewWeights.Get(weights.Effort), before.Get(weights.Effort))
	})

	t.Run("persists the signal and the new weights", func(t *testing.T) {
		repo := &memoryFeedback{}
		h := NewRecordFeedbackHandler(RecordFeedbackConfig{Repo: repo})

		res, err := h.Handle(ctx, RecordFeedbackCommand{Helpful: true, Score: 55})

		require.NoError(t, err)
		require.Len(t, repo.feedback, 1)
		assert.True(t, repo.feedback[0].Helpful)
		assert.Equal(t, 55.0, repo.feedback[0].Score)
		assert.Equal(t, res.NewWeights, repo.weights)
	})

	t.Run("publishes a feedback event", func(t *testing.T) {
		publisher := &capturingPublisher{}
		h := NewRecordFeedbackHandler(RecordFeedbackConfig{Publisher: publisher})

		_, err := h.Handle(ctx, RecordFeedbackCommand{Helpful: true})

		require.NoError(t, err)
		require.Len(t, publisher.events, 1)
		assert.Equal(t, task.FeedbackRecordedKey, publisher.events[0].RoutingKey())
	})

	t.Run("repeated feedback keeps weights normalized", func(t *testing.T) {
		store := learning.NewStore(nil)
		h := NewRecordFeedbackHandler(RecordFeedbackConfig{Store: store})

		var last *RecordFeedbackResult
		for i := 0; i < 10; i++ {
			var err error
			last, err = h.Handle(ctx, RecordFeedbackCommand{Helpful: i%2 == 0})
			require.NoError(t, err)
		}

		assert.InDelta(t, 1.0, last.NewWeights.Sum(), 1e-9)
	})
}
