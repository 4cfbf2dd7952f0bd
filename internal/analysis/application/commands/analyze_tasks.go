package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/application/learning"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/application/services"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/calendar"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/task"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/weights"
	"github.com/lakshmiprabha03/smarttask-analyzer/pkg/observability"
)

// DefaultCacheTTL bounds how long an analysis result may be served from
// cache. The urgency component depends on the reference date, so results go
// stale at day boundaries anyway.
const DefaultCacheTTL = 5 * time.Minute

// AnalyzeTasksCommand contains one scoring request.
type AnalyzeTasksCommand struct {
	Tasks         []task.Task
	Strategy      string
	Weights       weights.Vector
	ReferenceDate string
	HolidayMode   calendar.HolidayMode
	Holidays      []string
}

// AnalysisMeta describes how a result set was produced.
type AnalysisMeta struct {
	Strategy     string         `json:"strategy"`
	HasCycle     bool           `json:"has_cycle"`
	Cycles       [][]int64      `json:"cycles"`
	FinalWeights weights.Vector `json:"final_weights"`
	HolidayMode  string         `json:"holiday_mode"`
	HolidaysUsed []string       `json:"holidays_used"`
}

// AnalyzeTasksResult is the scored batch plus its metadata.
type AnalyzeTasksResult struct {
	AnalysisID uuid.UUID         `json:"analysis_id"`
	Meta       AnalysisMeta      `json:"meta"`
	Tasks      []task.ScoredTask `json:"tasks"`
}

// AnalyzeTasksConfig wires an AnalyzeTasksHandler. Engine, Store, Metrics,
// and Logger get working defaults when nil; History, Cache, and Publisher
// are optional and skipped when absent.
type AnalyzeTasksConfig struct {
	Engine    *services.Engine
	Store     *learning.Store
	History   task.AnalysisRepository
	Cache     ResultCache
	Publisher Publisher
	Metrics   observability.Metrics
	Logger    *slog.Logger
	CacheTTL  time.Duration
}

// AnalyzeTasksHandler scores task batches.
type AnalyzeTasksHandler struct {
	engine    *services.Engine
	store     *learning.Store
	history   task.AnalysisRepository
	cache     ResultCache
	publisher Publisher
	metrics   observability.Metrics
	logger    *slog.Logger
	cacheTTL  time.Duration
}

// NewAnalyzeTasksHandler builds a handler.
func NewAnalyzeTasksHandler(cfg AnalyzeTasksConfig) *AnalyzeTasksHandler {
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
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	return &AnalyzeTasksHandler{
		engine:    cfg.Engine,
		store:     cfg.Store,
		history:   cfg.History,
		cache:     cfg.Cache,
		publisher: cfg.Publisher,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
		cacheTTL:  cfg.CacheTTL,
	}
}

// Handle scores the batch. History, cache, and event failures are logged and
// never fail the request; the scoring result is the contract.
func (h *AnalyzeTasksHandler) Handle(ctx context.Context, cmd AnalyzeTasksCommand) (*AnalyzeTasksResult, error) {
	start := time.Now()

	mode := holidayModeOrDefault(cmd.HolidayMode)
	w := resolveWeights(cmd.Strategy, cmd.Weights, h.store)
	reference := resolveReference(cmd.ReferenceDate)
	holidays := calendar.ResolveHolidays(mode, cmd.Holidays)

	digest := requestDigest(cmd.Tasks, w, reference, holidays)
	if cached := h.fromCache(ctx, digest); cached != nil {
		h.metrics.Counter(observability.MetricCacheHits, 1)
		return cached, nil
	}
	h.metrics.Counter(observability.MetricCacheMisses, 1)

	scored := h.engine.ComputeScores(cmd.Tasks, services.ScoreOptions{
		Weights:       w,
		ReferenceDate: reference,
		Holidays:      holidays,
	})

	holidaysUsed := calendar.ParseDates(holidays).SortedStrings()
	result := &AnalyzeTasksResult{
		AnalysisID: uuid.New(),
		Meta: AnalysisMeta{
			Strategy:     strategyLabel(cmd.Strategy),
			HasCycle:     scored.HasCycle,
			Cycles:       scored.Cycles,
			FinalWeights: scored.FinalWeights,
			HolidayMode:  string(mode),
			HolidaysUsed: holidaysUsed,
		},
		Tasks: scored.Tasks,
	}

	h.recordHistory(ctx, result)
	h.publishCompleted(ctx, result)
	h.toCache(ctx, digest, result)

	h.metrics.Counter(observability.MetricAnalysesTotal, 1)
	if scored.HasCycle {
		h.metrics.Counter(observability.MetricCycleDetected, 1)
	}
	h.metrics.Timing(observability.MetricAnalysisDuration, time.Since(start))

	h.logger.InfoContext(ctx, "analysis completed",
		"analysis_id", result.AnalysisID,
		"strategy", result.Meta.Strategy,
		"task_count", len(result.Tasks),
		"has_cycle", result.Meta.HasCycle,
	)
	return result, nil
}

func (h *AnalyzeTasksHandler) fromCache(ctx context.Context, digest string) *AnalyzeTasksResult {
	if h.cache == nil || digest == "" {
		return nil
	}
	raw, err := h.cache.Get(ctx, digest)
	if err != nil {
		h.logger.DebugContext(ctx, "result cache read failed", "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}
	var cached AnalyzeTasksResult
	if err := json.Unmarshal(raw, &cached); err != nil {
		h.logger.WarnContext(ctx, "result cache entry corrupt", "error", err)
		return nil
	}
	return &cached
}

func (h *AnalyzeTasksHandler) toCache(ctx context.Context, digest string, result *AnalyzeTasksResult) {
	if h.cache == nil || digest == "" {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := h.cache.Set(ctx, digest, raw, h.cacheTTL); err != nil {
		h.logger.DebugContext(ctx, "result cache write failed", "error", err)
	}
}

func (h *AnalyzeTasksHandler) recordHistory(ctx context.Context, result *AnalyzeTasksResult) {
	if h.history == nil {
		return
	}
	rec := task.AnalysisRecord{
		ID:        result.AnalysisID,
		Strategy:  result.Meta.Strategy,
		TaskCount: len(result.Tasks),
		HasCycle:  result.Meta.HasCycle,
		TopScore:  topScore(result.Tasks),
		CreatedAt: time.Now().UTC(),
	}
	if err := h.history.SaveAnalysis(ctx, rec); err != nil {
		h.logger.WarnContext(ctx, "failed to persist analysis record", "error", err)
	}
}

func (h *AnalyzeTasksHandler) publishCompleted(ctx context.Context, result *AnalyzeTasksResult) {
	if h.publisher == nil {
		return
	}
	event := task.NewAnalysisCompleted(
		result.AnalysisID,
		result.Meta.Strategy,
		len(result.Tasks),
		result.Meta.HasCycle,
		topScore(result.Tasks),
	)
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "failed to publish analysis event", "error", err)
		return
	}
	h.metrics.Counter(observability.MetricEventsPublished, 1)
}

// topScore is the highest score in the batch, not the first entry: cycle
// members sort to the front regardless of score.
func topScore(tasks []task.ScoredTask) float64 {
	top := 0.0
	for _, t := range tasks {
		if t.Score > top {
			top = t.Score
		}
	}
	return top
}
