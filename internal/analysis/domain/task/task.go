// Package task defines the task records flowing through the analysis engine:
// the raw input shape, its normalized working copy, and the scored output.
package task

import (
	"time"

	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/calendar"
)

// Defaults applied during normalization for absent optional fields.
const (
	DefaultEstimatedHours = 1.0
	DefaultImportance     = 5
)

// Importance bounds. Values outside the range are clamped, not rejected.
const (
	MinImportance = 1
	MaxImportance = 10
)

// Task is a raw user-submitted task record. The id must be unique within a
// batch; duplicate ids are a caller error and resolve last-write-wins.
// Optional fields use pointers so that an explicit zero is distinguishable
// from an absent value.
type Task struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	DueDate        string   `json:"due_date,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
	Importance     *int     `json:"importance,omitempty"`
	Dependencies   []int64  `json:"dependencies,omitempty"`
}

// Normalized is the engine's working copy of a task: defaults applied,
// importance clamped, and the due date parsed once up front.
type Normalized struct {
	ID           int64
	Title        string
	DueDate      string
	Hours        float64
	Importance   int
	Dependencies []int64
	Due          *time.Time
}

// Normalize applies field defaults and parses the due date. An unparseable
// due date is treated as absent; the raw string is still echoed in output.
func Normalize(t Task) Normalized {
	n := Normalized{
		ID:           t.ID,
		Title:        t.Title,
		DueDate:      t.DueDate,
		Hours:        DefaultEstimatedHours,
		Importance:   DefaultImportance,
		Dependencies: t.Dependencies,
	}
	if t.EstimatedHours != nil {
		n.Hours = *t.EstimatedHours
	}
	if t.Importance != nil {
		n.Importance = clampImportance(*t.Importance)
	}
	if d, ok := calendar.ParseDate(t.DueDate); ok {
		n.Due = &d
	}
	return n
}

func clampImportance(v int) int {
	if v < MinImportance {
		return MinImportance
	}
	if v > MaxImportance {
		return MaxImportance
	}
	return v
}
