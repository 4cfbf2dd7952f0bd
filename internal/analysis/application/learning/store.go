// Package learning keeps the weight vector that feedback signals nudge over
// time.
package learning

import (
	"sync"

	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/weights"
)

// Adjustment steps applied per feedback signal. Helpful feedback reinforces
// urgency and importance; unhelpful feedback shifts weight toward effort so
// quick wins surface sooner.
const (
	helpfulImportanceStep = 0.03
	helpfulUrgencyStep    = 0.02
	unhelpfulEffortStep   = 0.03
)

// Store holds the current learned weight vector. It is safe for concurrent
// use.
type Store struct {
	mu sync.RWMutex
	v  weights.Vector
}

// NewStore creates a store seeded with the given vector, or the default
// vector when nil.
func NewStore(seed weights.Vector) *Store {
	if seed == nil {
		seed = weights.Default()
	}
	return &Store{v: seed.Clone()}
}

// Snapshot returns a copy of the current vector.
func (s *Store) Snapshot() weights.Vector {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.Clone()
}

// Apply nudges the vector according to the feedback signal and returns the
// resulting normalized vector, which also becomes the new stored state.
func (s *Store) Apply(helpful bool) weights.Vector {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.v.Clone()
	if helpful {
		next[weights.Importance] += helpfulImportanceStep
		next[weights.Urgency] += helpfulUrgencyStep
	} else {
		next[weights.Effort] += unhelpfulEffortStep
	}
	s.v = next.Normalized()
	return s.v.Clone()
}

// Replace swaps in a new vector, normalizing it first. A nil vector resets
// the store to the defaults.
func (s *Store) Replace(v weights.Vector) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v == nil {
		s.v = weights.Default()
		return
	}
	s.v = v.Normalized()
}
