package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/task"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/weights"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/shared/infrastructure/database"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/shared/infrastructure/database/sqlite"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	ctx := context.Background()

	conn, err := sqlite.NewConnection(ctx, database.Config{
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	repo := NewSQLiteRepository(conn)
	require.NoError(t, repo.EnsureSchema(ctx))
	return repo
}

func TestSQLiteRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("saves and lists analyses newest first", func(t *testing.T) {
		repo := newTestRepo(t)
		base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

		for i := 0; i < 3; i++ {
			require.NoError(t, repo.SaveAnalysis(ctx, task.AnalysisRecord{
				ID:        uuid.New(),
				Strategy:  "smart",
				TaskCount: i + 1,
				HasCycle:  i == 2,
				TopScore:  float64(50 + i),
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			}))
		}

		recent, err := repo.RecentAnalyses(ctx, 2)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, 3, recent[0].TaskCount)
		assert.True(t, recent[0].HasCycle)
		assert.Equal(t, 52.0, recent[0].TopScore)
		assert.Equal(t, 2, recent[1].TaskCount)
	})

	t.Run("empty history returns no records", func(t *testing.T) {
		repo := newTestRepo(t)

		recent, err := repo.RecentAnalyses(ctx, 5)
		require.NoError(t, err)
		assert.Empty(t, recent)
	})

	t.Run("saves feedback", func(t *testing.T) {
		repo := newTestRepo(t)

		err := repo.SaveFeedback(ctx, task.FeedbackRecord{
			ID:        uuid.New(),
			Helpful:   true,
			Score:     70.2,
			CreatedAt: time.Now().UTC(),
		})

		require.NoError(t, err)
	})

	t.Run("weights round-trip", func(t *testing.T) {
		repo := newTestRepo(t)

		loaded, err := repo.LoadWeights(ctx)
		require.NoError(t, err)
		assert.Nil(t, loaded)

		v := weights.Vector{
			weights.Urgency:    0.42,
			weights.Importance: 0.28,
			weights.Effort:     0.2,
			weights.Dependency: 0.1,
		}
		require.NoError(t, repo.SaveWeights(ctx, v))

		loaded, err = repo.LoadWeights(ctx)
		require.NoError(t, err)
		assert.Equal(t, v, loaded)
	})

	t.Run("save weights replaces previous vector", func(t *testing.T) {
		repo := newTestRepo(t)

		require.NoError(t, repo.SaveWeights(ctx, weights.Vector{weights.Urgency: 1}))
		require.NoError(t, repo.SaveWeights(ctx, weights.Vector{weights.Effort: 1}))

		loaded, err := repo.LoadWeights(ctx)
		require.NoError(t, err)
		assert.Equal(t, weights.Vector{weights.Effort: 1}, loaded)
	})
}
