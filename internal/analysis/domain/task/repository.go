package task

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/weights"
)

// AnalysisRecord is the persisted summary of one scoring run.
type AnalysisRecord struct {
	ID        uuid.UUID
	Strategy  string
	TaskCount int
	HasCycle  bool
	TopScore  float64
	CreatedAt time.Time
}

// AnalysisRepository stores analysis summaries.
type AnalysisRepository interface {
	SaveAnalysis(ctx context.Context, rec AnalysisRecord) error
	RecentAnalyses(ctx context.Context, limit int) ([]AnalysisRecord, error)
}

// FeedbackRecord is a persisted "was this helpful" signal.
type FeedbackRecord struct {
	ID        uuid.UUID
	Helpful   bool
	Score     float64
	CreatedAt time.Time
}

// FeedbackRepository stores feedback signals and the learned weight vector.
type FeedbackRepository interface {
	SaveFeedback(ctx context.Context, rec FeedbackRecord) error

	// SaveWeights replaces the stored learned vector.
	SaveWeights(ctx context.Context, v weights.Vector) error

	// LoadWeights returns the stored learned vector, or nil when none has
	// been saved yet.
	LoadWeights(ctx context.Context) (weights.Vector, error)
}
