// Package services contains the scoring engine that turns a batch of raw
// tasks into a prioritized, explained result set.
package services

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/calendar"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/graph"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/task"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/weights"
)

// Urgency curve constants. Urgency lives on a 0-15 scale: up to 10 for
// future work decaying with distance, above 10 only for overdue tasks.
const (
	urgencyNoDueDate   = 2.5
	urgencyCap         = 15.0
	urgencyOverdueBase = 10.0
	urgencyOverdueStep = 0.9
	urgencyDecayRate   = 2.0

	weekendDueFactor = 0.75
	holidayDueFactor = 1.15
)

// Engine computes priority scores. It is stateless and safe for concurrent
// use.
type Engine struct{}

// NewEngine creates a scoring engine.
func NewEngine() *Engine {
	return &Engine{}
}

// ScoreOptions tune a single scoring run. Zero values fall back to the
// learned-nothing defaults: normalized default weights, today as the
// reference date, and no caller holidays.
type ScoreOptions struct {
	Weights       weights.Vector
	ReferenceDate time.Time
	Holidays      []string
}

// ScoreResult is the outcome of one scoring run: the scored tasks sorted by
// review priority, the cycle report, and the normalized weights actually
// applied.
type ScoreResult struct {
	Tasks        []task.ScoredTask
	HasCycle     bool
	Cycles       [][]int64
	FinalWeights weights.Vector
}

// ComputeScores scores every task in the batch on a 0-100 scale.
//
// Urgency comes from signed business-day distance to the due date, counted
// against the built-in regional holidays merged with any caller-supplied
// ones. Importance is the clamped 1-10 field. Effort rewards quick wins via
// 10/(1+hours). Dependency is the task's fan-in, the number of other tasks
// that list it as a dependency. The weighted sum is normalized against the
// per-component maxima so that the top of the scale stays reachable.
//
// Circular dependencies never fail the run; members of a cycle are flagged
// and sorted to the front of the result for reviewer visibility.
func (e *Engine) ComputeScores(tasks []task.Task, opts ScoreOptions) ScoreResult {
	ref := opts.ReferenceDate
	if ref.IsZero() {
		ref = time.Now()
	}
	ref = calendar.Midnight(ref)

	w := opts.Weights.Normalized()
	holidays := calendar.BuiltinHolidays().Union(calendar.ParseDates(opts.Holidays))

	// Duplicate ids keep their first position; the last record wins.
	order := make([]int64, 0, len(tasks))
	byID := make(map[int64]task.Normalized, len(tasks))
	nodes := make([]graph.Node, 0, len(tasks))
	for _, t := range tasks {
		if _, seen := byID[t.ID]; !seen {
			order = append(order, t.ID)
		}
		byID[t.ID] = task.Normalize(t)
		nodes = append(nodes, graph.Node{ID: t.ID, DependsOn: t.Dependencies})
	}

	fanIn := dependentCounts(order, byID)
	hasCycle, cycles := graph.DetectCycles(nodes)
	if cycles == nil {
		cycles = [][]int64{}
	}
	cycleMembers := make(map[int64]struct{})
	for _, c := range cycles {
		for _, id := range c {
			cycleMembers[id] = struct{}{}
		}
	}

	maxFanIn := 1
	for _, c := range fanIn {
		if c > maxFanIn {
			maxFanIn = c
		}
	}

	scored := make([]task.ScoredTask, 0, len(order))
	for _, id := range order {
		n := byID[id]
		var parts []string

		urgency := urgencyNoDueDate
		if n.Due == nil {
			parts = append(parts, "no due date (low urgency)")
		} else {
			due := *n.Due
			onWeekend := calendar.IsWeekend(due)
			onHoliday := holidays.Contains(due)
			if onWeekend {
				parts = append(parts, "due on weekend")
			}
			if onHoliday {
				parts = append(parts, "due on holiday")
			}

			bdays := calendar.BusinessDaysBetween(ref, due, holidays)
			if bdays < 0 {
				overdue := -bdays
				urgency = math.Min(urgencyCap, urgencyOverdueBase+float64(overdue)*urgencyOverdueStep)
				parts = append(parts, fmt.Sprintf("overdue by %d business days", overdue))
			} else {
				urgency = math.Max(0, urgencyOverdueBase-float64(bdays)/urgencyDecayRate)
				parts = append(parts, fmt.Sprintf("%d business days until due", bdays))
				if onWeekend {
					urgency *= weekendDueFactor
					parts = append(parts, "weekend adjustment applied")
				}
				if onHoliday {
					urgency *= holidayDueFactor
					parts = append(parts, "holiday adjustment applied")
				}
			}
		}

		parts = append(parts, fmt.Sprintf("importance %d/10", n.Importance))

		effort := 10.0 / (1.0 + math.Max(0, n.Hours))
		parts = append(parts, "estimated_hours "+strconv.FormatFloat(n.Hours, 'g', -1, 64))

		blocks := fanIn[id]
		if blocks > 0 {
			parts = append(parts, fmt.Sprintf("blocks %d task(s)", blocks))
		}

		_, circular := cycleMembers[id]
		if circular {
			parts = append(parts, "circular dependency detected")
		}

		raw := w.Get(weights.Urgency)*urgency +
			w.Get(weights.Importance)*float64(n.Importance) +
			w.Get(weights.Effort)*effort +
			w.Get(weights.Dependency)*float64(blocks)

		divisor := w.Get(weights.Urgency)*urgencyCap +
			w.Get(weights.Importance)*10.0 +
			w.Get(weights.Effort)*10.0 +
			w.Get(weights.Dependency)*float64(maxFanIn)

		var score float64
		if divisor <= 0 {
			score = round2(raw * 10.0)
		} else {
			score = round2(raw / divisor * 100.0)
		}

		deps := n.Dependencies
		if deps == nil {
			deps = []int64{}
		}
		scored = append(scored, task.ScoredTask{
			ID:                 id,
			Title:              n.Title,
			DueDate:            n.DueDate,
			EstimatedHours:     n.Hours,
			Importance:         n.Importance,
			Dependencies:       deps,
			Score:              score,
			Explanation:        strings.Join(parts, "; "),
			CircularDependency: circular,
		})
	}

	// Cycle members surface first so a reviewer sees them before anything
	// else; within each group higher scores come first. Stable, so ties keep
	// input order.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].CircularDependency != scored[j].CircularDependency {
			return scored[i].CircularDependency
		}
		return scored[i].Score > scored[j].Score
	})

	return ScoreResult{
		Tasks:        scored,
		HasCycle:     hasCycle,
		Cycles:       cycles,
		FinalWeights: w,
	}
}

// dependentCounts computes the fan-in of every known task. Each distinct
// dependency counts once per dependent; references to unknown ids are
// ignored.
func dependentCounts(order []int64, byID map[int64]task.Normalized) map[int64]int {
	counts := make(map[int64]int, len(order))
	for _, id := range order {
		counts[id] = 0
	}
	for _, id := range order {
		seen := make(map[int64]struct{})
		for _, dep := range byID[id].Dependencies {
			if _, dup := seen[dep]; dup {
				continue
			}
			seen[dep] = struct{}{}
			if _, known := counts[dep]; known {
				counts[dep]++
			}
		}
	}
	return counts
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
