package task

// ScoredTask echoes a task's public fields and adds the computed score, a
// human-readable explanation of the contributing factors, and the circular
// dependency flag.
type ScoredTask struct {
	ID                 int64   `json:"id"`
	Title              string  `json:"title"`
	DueDate            string  `json:"due_date,omitempty"`
	EstimatedHours     float64 `json:"estimated_hours"`
	Importance         int     `json:"importance"`
	Dependencies       []int64 `json:"dependencies"`
	Score              float64 `json:"score"`
	Explanation        string  `json:"explanation"`
	CircularDependency bool    `json:"circular_dependency"`
}
