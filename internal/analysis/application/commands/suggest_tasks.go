package commands

import (
	"context"
	"log/slog"
	"strings"

	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/application/learning"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/application/services"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/calendar"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/task"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/weights"
	"github.com/lakshmiprabha03/smarttask-analyzer/pkg/observability"
)

// Suggestion selection thresholds.
const (
	suggestionLimit      = 3
	quickWinHours        = 1.5
	highImpactImportance = 8
)

// SuggestTasksCommand asks for the next tasks to work on.
type SuggestTasksCommand struct {
	Tasks         []task.Task
	Strategy      string
	Weights       weights.Vector
	ReferenceDate string
	HolidayMode   calendar.HolidayMode
	Holidays      []string
}

// Suggestion is a scored task annotated with the reasons it was picked.
type Suggestion struct {
	task.ScoredTask
	Why string `json:"why"`
}

// SuggestTasksResult carries the top suggestions in priority order.
type SuggestTasksResult struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// SuggestTasksConfig wires a SuggestTasksHandler.
type SuggestTasksConfig struct {
	Engine  *services.Engine
	Store   *learning.Store
	Metrics observability.Metrics
	Logger  *slog.Logger
}

// SuggestTasksHandler picks the top tasks from a scoring run.
type SuggestTasksHandler struct {
	engine  *services.Engine
	store   *learning.Store
	metrics observability.Metrics
	logger  *slog.Logger
}

// NewSuggestTasksHandler builds a handler.
func NewSuggestTasksHandler(cfg SuggestTasksConfig) *SuggestTasksHandler {
	if cfg.Engine == nil {
		cfg.Engine = services.NewEngine()
	}
	if cfg.Store == nil {
		cfg.Store = learning.NewStore(nil)
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NoopMetrics{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &SuggestTasksHandler{
		engine:  cfg.Engine,
		store:   cfg.Store,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
	}
}

// Handle scores the batch and returns the top entries with their selection
// reasons.
func (h *SuggestTasksHandler) Handle(ctx context.Context, cmd SuggestTasksCommand) (*SuggestTasksResult, error) {
	mode := holidayModeOrDefault(cmd.HolidayMode)
	scored := h.engine.ComputeScores(cmd.Tasks, services.ScoreOptions{
		Weights:       resolveWeights(cmd.Strategy, cmd.Weights, h.store),
		ReferenceDate: resolveReference(cmd.ReferenceDate),
		Holidays:      calendar.ResolveHolidays(mode, cmd.Holidays),
	})

	top := scored.Tasks
	if len(top) > suggestionLimit {
		top = top[:suggestionLimit]
	}

	suggestions := make([]Suggestion, 0, len(top))
	for _, st := range top {
		suggestions = append(suggestions, Suggestion{ScoredTask: st, Why: whyPicked(st)})
	}

	h.metrics.Counter(observability.MetricSuggestionsTotal, 1)
	h.logger.InfoContext(ctx, "suggestions produced",
		"candidates", len(scored.Tasks),
		"returned", len(suggestions),
	)
	return &SuggestTasksResult{Suggestions: suggestions}, nil
}

// whyPicked summarizes the traits that pushed a task into the suggestion
// list.
func whyPicked(st task.ScoredTask) string {
	var why []string
	if st.CircularDependency {
		why = append(why, "Circular dependency - resolves blockers")
	}
	if strings.Contains(st.Explanation, "overdue") {
		why = append(why, "Overdue - needs immediate action")
	}
	if st.EstimatedHours <= quickWinHours {
		why = append(why, "Quick win - low effort")
	}
	if st.Importance >= highImpactImportance {
		why = append(why, "High impact task")
	}
	if len(why) == 0 {
		why = append(why, "Balanced priority task")
	}
	return strings.Join(why, "; ")
}
