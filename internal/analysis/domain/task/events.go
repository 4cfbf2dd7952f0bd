package task

import (
	"time"

	"github.com/google/uuid"
)

// Routing keys for analysis domain events.
const (
	AnalysisCompletedKey = "analysis.completed"
	FeedbackRecordedKey  = "feedback.recorded"
)

// AnalysisCompleted is published after a batch of tasks has been scored.
type AnalysisCompleted struct {
	ID         uuid.UUID `json:"event_id"`
	AnalysisID uuid.UUID `json:"analysis_id"`
	Strategy   string    `json:"strategy"`
	TaskCount  int       `json:"task_count"`
	HasCycle   bool      `json:"has_cycle"`
	TopScore   float64   `json:"top_score"`
	At         time.Time `json:"occurred_at"`
}

// NewAnalysisCompleted creates the event for a finished scoring run.
func NewAnalysisCompleted(analysisID uuid.UUID, strategy string, taskCount int, hasCycle bool, topScore float64) AnalysisCompleted {
	return AnalysisCompleted{
		ID:         uuid.New(),
		AnalysisID: analysisID,
		Strategy:   strategy,
		TaskCount:  taskCount,
		HasCycle:   hasCycle,
		TopScore:   topScore,
		At:         time.Now().UTC(),
	}
}

func (e AnalysisCompleted) EventID() uuid.UUID    { return e.ID }
func (e AnalysisCompleted) RoutingKey() string    { return AnalysisCompletedKey }
func (e AnalysisCompleted) OccurredAt() time.Time { return e.At }

// FeedbackRecorded is published after a feedback signal has adjusted the
// learned weight vector.
type FeedbackRecorded struct {
	ID         uuid.UUID `json:"event_id"`
	FeedbackID uuid.UUID `json:"feedback_id"`
	Helpful    bool      `json:"helpful"`
	Score      float64   `json:"score"`
	At         time.Time `json:"occurred_at"`
}

// NewFeedbackRecorded creates the event for a recorded feedback signal.
func NewFeedbackRecorded(feedbackID uuid.UUID, helpful bool, score float64) FeedbackRecorded {
	return FeedbackRecorded{
		ID:         uuid.New(),
		FeedbackID: feedbackID,
		Helpful:    helpful,
		Score:      score,
		At:         time.Now().UTC(),
	}
}

func (e FeedbackRecorded) EventID() uuid.UUID    { return e.ID }
func (e FeedbackRecorded) RoutingKey() string    { return FeedbackRecordedKey }
func (e FeedbackRecorded) OccurredAt() time.Time { return e.At }
