package commands

import (
	"context"
	"sync"
	"time"

	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/task"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/weights"
	sharedDomain "github.com/lakshmiprabha03/smarttask-analyzer/internal/shared/domain"
)

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	getErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[key], nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []sharedDomain.DomainEvent
	err    error
}

func (p *capturingPublisher) Publish(_ context.Context, event sharedDomain.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

type memoryHistory struct {
	mu      sync.Mutex
	records []task.AnalysisRecord
	err     error
}

func (r *memoryHistory) SaveAnalysis(_ context.Context, rec task.AnalysisRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *memoryHistory) RecentAnalyses(_ context.Context, limit int) ([]task.AnalysisRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit > len(r.records) {
		limit = len(r.records)
	}
	out := make([]task.AnalysisRecord, limit)
	copy(out, r.records[len(r.records)-limit:])
	return out, nil
}

type memoryFeedback struct {
	mu       sync.Mutex
	feedback []task.FeedbackRecord
	weights  weights.Vector
}

func (r *memoryFeedback) SaveFeedback(_ context.Context, rec task.FeedbackRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feedback = append(r.feedback, rec)
	return nil
}

func (r *memoryFeedback) SaveWeights(_ context.Context, v weights.Vector) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.weights = v.Clone()
	return nil
}

func (r *memoryFeedback) LoadWeights(_ context.Context) (weights.Vector, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.weights == nil {
		return nil, nil
	}
	return r.weights.Clone(), nil
}
