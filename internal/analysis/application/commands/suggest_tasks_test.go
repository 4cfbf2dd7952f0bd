package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/task"
)

func TestSuggestTasksHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("returns at most three suggestions in priority order", func(t *testing.T) {
		h := NewSuggestTasksHandler(SuggestTasksConfig{})
		tasks := []task.Task{
			{ID: 1, Title: "a", DueDate: "2025-01-05"},
			{ID: 2, Title: "b", DueDate: "2025-01-13"},
			{ID: 3, Title: "c"},
			{ID: 4, Title: "d"},
			{ID: 5, Title: "e"},
		}

		res, err := h.Handle(ctx, SuggestTasksCommand{Tasks: tasks, ReferenceDate: "2025-01-10"})

		require.NoError(t, err)
		require.Len(t, res.Suggestions, 3)
		assert.Equal(t, int64(1), res.Suggestions[0].ID)
		assert.GreaterOrEqual(t, res.Suggestions[0].Score, res.Suggestions[1].Score)
	})

	t.Run("explains why each task was picked", func(t *testing.T) {
		h := NewSuggestTasksHandler(SuggestTasksConfig{})
		hours := 8.0
		importance := 9
		tasks := []task.Task{
			{ID: 1, Title: "overdue quick win", DueDate: "2025-01-05"},
			{ID: 2, Title: "big rock", EstimatedHours: &hours, Importance: &importance},
		}

		res, err := h.Handle(ctx, SuggestTasksCommand{Tasks: tasks, ReferenceDate: "2025-01-10"})

		require.NoError(t, err)
		require.Len(t, res.Suggestions, 2)

		first := res.Suggestions[0]
		assert.Equal(t, int64(1), first.ID)
		assert.Contains(t, first.Why, "Overdue - needs immediate action")
		assert.Contains(t, first.Why, "Quick win - low effort")

		second := res.Suggestions[1]
		assert.Contains(t, second.Why, "High impact task")
		assert.NotContains(t, second.Why, "Quick win")
	})

	t.Run("flags cycle members as blocker resolvers", func(t *testing.T) {
		h := NewSuggestTasksHandler(SuggestTasksConfig{})
		tasks := []task.Task{
			{ID: 1, Dependencies: []int64{2}},
			{ID: 2, Dependencies: []int64{1}},
		}

		res, err := h.Handle(ctx, SuggestTasksCommand{Tasks: tasks, ReferenceDate: "2025-01-10"})

		require.NoError(t, err)
		require.NotEmpty(t, res.Suggestions)
		assert.Contains(t, res.Suggestions[0].Why, "Circular dependency - resolves blockers")
	})

	t.Run("falls back to a balanced reason", func(t *testing.T) {
		h := NewSuggestTasksHandler(SuggestTasksConfig{})
		hours := 4.0
		tasks := []task.Task{{ID: 1, Title: "plain", DueDate: "2025-01-24", EstimatedHours: &hours}}

		res, err := h.Handle(ctx, SuggestTasksCommand{Tasks: tasks, ReferenceDate: "2025-01-10"})

		require.NoError(t, err)
		require.Len(t, res.Suggestions, 1)
		assert.Equal(t, "Balanced priority task", res.Suggestions[0].Why)
	})

	t.Run("empty batch yields empty suggestions", func(t *testing.T) {
		h := NewSuggestTasksHandler(SuggestTasksConfig{})

		res, err := h.Handle(ctx, SuggestTasksCommand{ReferenceDate: "2025-01-10"})

		require.NoError(t, err)
		assert.Empty(t, res.Suggestions)
	})
}
