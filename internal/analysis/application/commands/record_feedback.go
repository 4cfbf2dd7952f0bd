package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/application/learning"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/task"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/weights"
	"github.com/lakshmiprabha03/smarttask-analyzer/pkg/observability"
)

// RecordFeedbackCommand carries one feedback signal. Score is the analysis
// score the user is reacting to, kept for offline inspection.
type RecordFeedbackCommand struct {
	Helpful bool
	Score   float64
}

// RecordFeedbackResult echoes the adjusted weight vector.
type RecordFeedbackResult struct {
	Message    string         `json:"message"`
	NewWeights weights.Vector `json:"new_weights"`
}

// RecordFeedbackConfig wires a RecordFeedbackHandler. Repo and Publisher are
// optional.
type RecordFeedbackConfig struct {
	Store     *learning.Store
	Repo      task.FeedbackRepository
	Publisher Publisher
	Metrics   observability.Metrics
	Logger    *slog.Logger
}

// RecordFeedbackHandler applies feedback to the learned weights.
type RecordFeedbackHandler struct {
	store     *learning.Store
	repo      task.FeedbackRepository
	publisher Publisher
	metrics   observability.Metrics
	logger    *slog.Logger
}

// NewRecordFeedbackHandler builds a handler.
func NewRecordFeedbackHandler(cfg RecordFeedbackConfig) *RecordFeedbackHandler {
	if cfg.Store == nil {
		cfg.Store = learning.NewStore(nil)
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NoopMetrics{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &RecordFeedbackHandler{
		store:     cfg.Store,
		repo:      cfg.Repo,
		publisher: cfg.Publisher,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
	}
}

// Handle nudges the learned weights and persists the signal. The in-memory
// store is authoritative; persistence and event failures are logged without
// failing the request.
func (h *RecordFeedbackHandler) Handle(ctx context.Context, cmd RecordFeedbackCommand) (*RecordFeedbackResult, error) {
	updated := h.store.Apply(cmd.Helpful)
	feedbackID := uuid.New()

	if h.repo != nil {
		rec := task.FeedbackRecord{
			ID:        feedbackID,
			Helpful:   cmd.Helpful,
			Score:     cmd.Score,
			CreatedAt: time.Now().UTC(),
		}
		if err := h.repo.SaveFeedback(ctx, rec); err != nil {
			h.logger.WarnContext(ctx, "failed to persist feedback", "error", err)
		}
		if err := h.repo.SaveWeights(ctx, updated); err != nil {
			h.logger.WarnContext(ctx, "failed to persist learned weights", "error", err)
		}
	}

	if h.publisher != nil {
		event := task.NewFeedbackRecorded(feedbackID, cmd.Helpful, cmd.Score)
		if err := h.publisher.Publish(ctx, event); err != nil {
			h.logger.WarnContext(ctx, "failed to publish feedback event", "error", err)
		} else {
			h.metrics.Counter(observability.MetricEventsPublished, 1)
		}
	}

	h.metrics.Counter(observability.MetricFeedbackTotal, 1)
	h.logger.InfoContext(ctx, "feedback recorded", "feedback_id", feedbackID, "helpful", cmd.Helpful)

	return &RecordFeedbackResult{
		Message:    "Feedback recorded - model improved",
		NewWeights: updated,
	}, nil
}
