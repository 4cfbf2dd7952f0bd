// Package commands implements the application-level operations exposed by
// the API and CLI: analyze, suggest, and feedback.
package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/application/learning"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/calendar"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/task"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/weights"
	sharedDomain "github.com/lakshmiprabha03/smarttask-analyzer/internal/shared/domain"
)

// Publisher delivers domain events emitted by command handlers.
type Publisher interface {
	Publish(ctx context.Context, event sharedDomain.DomainEvent) error
}

// ResultCache stores serialized analysis results keyed by request digest.
// A miss is reported as a nil value with a nil error.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// resolveWeights picks the vector for a run. Explicit weights beat the
// learned vector; a recognized strategy preset beats both.
func resolveWeights(strategy string, explicit weights.Vector, store *learning.Store) weights.Vector {
	w := explicit
	if len(w) == 0 && store != nil {
		w = store.Snapshot()
	}
	if preset, ok := weights.Preset(strategy); ok {
		w = preset
	}
	return w
}

// resolveReference parses the optional reference date, defaulting to today.
func resolveReference(raw string) time.Time {
	if d, ok := calendar.ParseDate(raw); ok {
		return d
	}
	return calendar.Midnight(time.Now())
}

// strategyLabel normalizes the strategy name for response metadata.
func strategyLabel(strategy string) string {
	s := strings.ToLower(strings.TrimSpace(strategy))
	if s == "" {
		return "smart"
	}
	return s
}

func holidayModeOrDefault(mode calendar.HolidayMode) calendar.HolidayMode {
	if mode == "" {
		return calendar.HolidayModeNone
	}
	return mode
}

// requestDigest builds a deterministic cache key from everything that can
// change the result of a scoring run.
func requestDigest(tasks []task.Task, w weights.Vector, reference time.Time, holidays []string) string {
	payload := struct {
		Tasks     []task.Task    `json:"tasks"`
		Weights   weights.Vector `json:"weights"`
		Reference string         `json:"reference"`
		Holidays  []string       `json:"holidays"`
	}{
		Tasks:     tasks,
		Weights:   w,
		Reference: reference.Format(calendar.ISODate),
		Holidays:  holidays,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
