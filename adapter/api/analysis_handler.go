package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/application/commands"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/calendar"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/task"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/weights"
)

const maxTitleLength = 255

// AnalysisHandler serves the task analysis endpoints.
type AnalysisHandler struct {
	analyze  *commands.AnalyzeTasksHandler
	suggest  *commands.SuggestTasksHandler
	feedback *commands.RecordFeedbackHandler
	logger   *slog.Logger
}

// NewAnalysisHandler builds the handler.
func NewAnalysisHandler(
	analyze *commands.AnalyzeTasksHandler,
	suggest *commands.SuggestTasksHandler,
	feedback *commands.RecordFeedbackHandler,
	logger *slog.Logger,
) *AnalysisHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisHandler{
		analyze:  analyze,
		suggest:  suggest,
		feedback: feedback,
		logger:   logger,
	}
}

// taskPayload is the wire form of a task. ID uses a pointer so a missing id
// is distinguishable from id 0.
type taskPayload struct {
	ID             *int64   `json:"id"`
	Title          string   `json:"title"`
	DueDate        string   `json:"due_date"`
	EstimatedHours *float64 `json:"estimated_hours"`
	Importance     *int     `json:"importance"`
	Dependencies   []int64  `json:"dependencies"`
}

// analyzeRequest is the shared request body for analyze and suggest.
type analyzeRequest struct {
	Tasks         []taskPayload  `json:"tasks"`
	Strategy      string         `json:"strategy"`
	Weights       weights.Vector `json:"weights"`
	ReferenceDate string         `json:"reference_date"`
	HolidayMode   string         `json:"holiday_mode"`
	Holidays      []string       `json:"holidays"`
}

// validate checks the request and converts its tasks to the domain shape.
func (req *analyzeRequest) validate() ([]task.Task, error) {
	if req.Tasks == nil {
		return nil, fmt.Errorf("tasks is required")
	}

	tasks := make([]task.Task, 0, len(req.Tasks))
	for i, p := range req.Tasks {
		if p.ID == nil {
			return nil, fmt.Errorf("tasks[%d]: id is required", i)
		}
		if p.Title == "" {
			return nil, fmt.Errorf("tasks[%d]: title is required", i)
		}
		if len(p.Title) > maxTitleLength {
			return nil, fmt.Errorf("tasks[%d]: title exceeds %d characters", i, maxTitleLength)
		}
		if p.EstimatedHours != nil && *p.EstimatedHours < 0 {
			return nil, fmt.Errorf("tasks[%d]: estimated_hours must not be negative", i)
		}
		if p.Importance != nil && (*p.Importance < task.MinImportance || *p.Importance > task.MaxImportance) {
			return nil, fmt.Errorf("tasks[%d]: importance must be between %d and %d", i, task.MinImportance, task.MaxImportance)
		}
		tasks = append(tasks, task.Task{
			ID:             *p.ID,
			Title:          p.Title,
			DueDate:        p.DueDate,
			EstimatedHours: p.EstimatedHours,
			Importance:     p.Importance,
			Dependencies:   p.Dependencies,
		})
	}

	for _, h := range req.Holidays {
		if _, err := time.Parse(calendar.ISODate, h); err != nil {
			return nil, fmt.Errorf("Invalid holiday format: '%s'. Expected YYYY-MM-DD", h)
		}
	}
	return tasks, nil
}

// Analyze handles POST /api/v1/tasks/analyze.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	tasks, err := req.validate()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.analyze.Handle(r.Context(), commands.AnalyzeTasksCommand{
		Tasks:         tasks,
		Strategy:      req.Strategy,
		Weights:       req.Weights,
		ReferenceDate: req.ReferenceDate,
		HolidayMode:   calendar.HolidayMode(req.HolidayMode),
		Holidays:      req.Holidays,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "analyze failed", "error", err)
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Suggest handles POST /api/v1/tasks/suggest.
func (h *AnalysisHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	tasks, err := req.validate()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.suggest.Handle(r.Context(), commands.SuggestTasksCommand{
		Tasks:         tasks,
		Strategy:      req.Strategy,
		Weights:       req.Weights,
		ReferenceDate: req.ReferenceDate,
		HolidayMode:   calendar.HolidayMode(req.HolidayMode),
		Holidays:      req.Holidays,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "suggest failed", "error", err)
		writeError(w, http.StatusInternalServerError, "suggestion failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// feedbackRequest is the body for the feedback endpoint. Helpful uses a
// pointer so a missing value is rejected instead of defaulting to false.
type feedbackRequest struct {
	Helpful *bool   `json:"helpful"`
	Score   float64 `json:"score"`
}

// Feedback handles POST /api/v1/tasks/feedback.
func (h *AnalysisHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Helpful == nil {
		writeError(w, http.StatusBadRequest, "helpful (boolean) required")
		return
	}

	result, err := h.feedback.Handle(r.Context(), commands.RecordFeedbackCommand{
		Helpful: *req.Helpful,
		Score:   req.Score,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "feedback failed", "error", err)
		writeError(w, http.StatusInternalServerError, "feedback failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
