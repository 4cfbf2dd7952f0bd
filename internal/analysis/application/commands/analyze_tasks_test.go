package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/application/learning"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/calendar"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/task"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/weights"
	"github.com/lakshmiprabha03/smarttask-analyzer/pkg/observability"
)

func intPtr(v int) *int { return &v }

func sampleTasks() []task.Task {
	return []task.Task{
		{ID: 1, Title: "ship release", DueDate: "2025-01-05", Importance: intPtr(9)},
		{ID: 2, Title: "write docs", DueDate: "2025-01-20", Dependencies: []int64{1}},
		{ID: 3, Title: "cleanup backlog"},
	}
}

func TestAnalyzeTasksHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("returns sorted scored tasks with metadata", func(t *testing.T) {
		h := NewAnalyzeTasksHandler(AnalyzeTasksConfig{})

		res, err := h.Handle(ctx, AnalyzeTasksCommand{
			Tasks:         sampleTasks(),
			ReferenceDate: "2025-01-10",
		})

		require.NoError(t, err)
		require.Len(t, res.Tasks, 3)
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", res.AnalysisID.String())
		assert.Equal(t, "smart", res.Meta.Strategy)
		assert.False(t, res.Meta.HasCycle)
		assert.NotNil(t, res.Meta.Cycles)
		assert.Equal(t, "none", res.Meta.HolidayMode)
		assert.Empty(t, res.Meta.HolidaysUsed)
		assert.InDelta(t, 1.0, res.Meta.FinalWeights.Sum(), 1e-9)
		assert.Equal(t, int64(1), res.Tasks[0].ID)
	})

	t.Run("strategy preset overrides explicit weights", func(t *testing.T) {
		h := NewAnalyzeTasksHandler(AnalyzeTasksConfig{})

		res, err := h.Handle(ctx, AnalyzeTasksCommand{
			Tasks:         sampleTasks(),
			Strategy:      "deadline",
			Weights:       weights.Vector{weights.Effort: 1},
			ReferenceDate: "2025-01-10",
		})

		require.NoError(t, err)
		assert.Equal(t, "deadline", res.Meta.Strategy)
		assert.InDelta(t, 0.7, res.Meta.FinalWeights.Get(weights.Urgency), 1e-9)
	})

	t.Run("unknown strategy falls back to learned weights", func(t *testing.T) {
		store := learning.NewStore(weights.Vector{weights.Effort: 1})
		h := NewAnalyzeTasksHandler(AnalyzeTasksConfig{Store: store})

		res, err := h.Handle(ctx, AnalyzeTasksCommand{
			Tasks:         sampleTasks(),
			Strategy:      "yolo",
			ReferenceDate: "2025-01-10",
		})

		require.NoError(t, err)
		assert.Equal(t, "yolo", res.Meta.Strategy)
		assert.InDelta(t, 1.0, res.Meta.FinalWeights.Get(weights.Effort), 1e-9)
	})

	t.Run("holiday mode resolves the holiday list", func(t *testing.T) {
		h := NewAnalyzeTasksHandler(AnalyzeTasksConfig{})

		res, err := h.Handle(ctx, AnalyzeTasksCommand{
			Tasks:         sampleTasks(),
			HolidayMode:   calendar.HolidayModeBoth,
			Holidays:      []string{"2025-02-03"},
			ReferenceDate: "2025-01-10",
		})

		require.NoError(t, err)
		assert.Equal(t, "both", res.Meta.HolidayMode)
		assert.Contains(t, res.Meta.HolidaysUsed, "2025-01-14")
		assert.Contains(t, res.Meta.HolidaysUsed, "2025-02-03")
	})

	t.Run("reports cycles in metadata", func(t *testing.T) {
		h := NewAnalyzeTasksHandler(AnalyzeTasksConfig{})

		res, err := h.Handle(ctx, AnalyzeTasksCommand{
			Tasks: []task.Task{
				{ID: 1, Dependencies: []int64{2}},
				{ID: 2, Dependencies: []int64{1}},
			},
			ReferenceDate: "2025-01-10",
		})

		require.NoError(t, err)
		assert.True(t, res.Meta.HasCycle)
		assert.Equal(t, [][]int64{{1, 2, 1}}, res.Meta.Cycles)
	})

	t.Run("persists history and publishes completion event", func(t *testing.T) {
		history := &memoryHistory{}
		publisher := &capturingPublisher{}
		h := NewAnalyzeTasksHandler(AnalyzeTasksConfig{History: history, Publisher: publisher})

		res, err := h.Handle(ctx, AnalyzeTasksCommand{Tasks: sampleTasks(), ReferenceDate: "2025-01-10"})

		require.NoError(t, err)
		require.Len(t, history.records, 1)
		assert.Equal(t, res.AnalysisID, history.records[0].ID)
		assert.Equal(t, 3, history.records[0].TaskCount)
		assert.Equal(t, res.Tasks[0].Score, history.records[0].TopScore)
		require.Len(t, publisher.events, 1)
		assert.Equal(t, task.AnalysisCompletedKey, publisher.events[0].RoutingKey())
	})

	t.Run("history failure does not fail the request", func(t *testing.T) {
		history := &memoryHistory{err: errors.New("db down")}
		h := NewAnalyzeTasksHandler(AnalyzeTasksConfig{History: history})

		res, err := h.Handle(ctx, AnalyzeTasksCommand{Tasks: sampleTasks(), ReferenceDate: "2025-01-10"})

		require.NoError(t, err)
		assert.Len(t, res.Tasks, 3)
	})

	t.Run("serves repeated requests from cache", func(t *testing.T) {
		cache := newMemoryCache()
		metrics := observability.NewInMemoryMetrics()
		h := NewAnalyzeTasksHandler(AnalyzeTasksConfig{Cache: cache, Metrics: metrics})
		cmd := AnalyzeTasksCommand{Tasks: sampleTasks(), ReferenceDate: "2025-01-10"}

		first, err := h.Handle(ctx, cmd)
		require.NoError(t, err)
		second, err := h.Handle(ctx, cmd)
		require.NoError(t, err)

		assert.Equal(t, first.AnalysisID, second.AnalysisID)
		assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricCacheHits))
		assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricCacheMisses))
	})

	t.Run("cache failure degrades to recomputation", func(t *testing.T) {
		cache := newMemoryCache()
		cache.getErr = errors.New("redis gone")
		h := NewAnalyzeTasksHandler(AnalyzeTasksConfig{Cache: cache})

		res, err := h.Handle(ctx, AnalyzeTasksCommand{Tasks: sampleTasks(), ReferenceDate: "2025-01-10"})

		require.NoError(t, err)
		assert.Len(t, res.Tasks, 3)
	})

	t.Run("different weights miss the cache", func(t *testing.T) {
		cache := newMemoryCache()
		h := NewAnalyzeTasksHandler(AnalyzeTasksConfig{Cache: cache})

		first, err := h.Handle(ctx, AnalyzeTasksCommand{Tasks: sampleTasks(), ReferenceDate: "2025-01-10"})
		require.NoError(t, err)
		second, err := h.Handle(ctx, AnalyzeTasksCommand{
			Tasks:         sampleTasks(),
			Strategy:      "fastest",
			ReferenceDate: "2025-01-10",
		})
		require.NoError(t, err)

		assert.NotEqual(t, first.AnalysisID, second.AnalysisID)
	})
}
