// Package persistence stores analysis history, feedback signals, and the
// learned weight vector on the shared database abstraction.
package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/task"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/weights"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/shared/infrastructure/database"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS analyses (
	id         TEXT PRIMARY KEY,
	strategy   TEXT NOT NULL,
	task_count INTEGER NOT NULL,
	has_cycle  INTEGER NOT NULL,
	top_score  REAL NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);

CREATE TABLE IF NOT EXISTS feedback (
	id         TEXT PRIMARY KEY,
	helpful    INTEGER NOT NULL,
	score      REAL NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS learned_weights (
	component TEXT PRIMARY KEY,
	weight    REAL NOT NULL
);
`

// SQLiteRepository implements the analysis and feedback repositories on
// SQLite. Timestamps are stored as RFC 3339 text.
type SQLiteRepository struct {
	conn database.Connection
}

// NewSQLiteRepository wraps a SQLite connection.
func NewSQLiteRepository(conn database.Connection) *SQLiteRepository {
	return &SQLiteRepository{conn: conn}
}

// EnsureSchema creates the tables when missing.
func (r *SQLiteRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.conn.Exec(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("apply sqlite schema: %w", err)
	}
	return nil
}

// SaveAnalysis inserts one analysis summary.
func (r *SQLiteRepository) SaveAnalysis(ctx context.Context, rec task.AnalysisRecord) error {
	_, err := r.conn.Exec(ctx,
		`INSERT INTO analyses (id, strategy, task_count, has_cycle, top_score, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.Strategy, rec.TaskCount, boolToInt(rec.HasCycle),
		rec.TopScore, rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

// RecentAnalyses returns the newest summaries, newest first.
func (r *SQLiteRepository) RecentAnalyses(ctx context.Context, limit int) ([]task.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.conn.Query(ctx,
		`SELECT id, strategy, task_count, has_cycle, top_score, created_at
		 FROM analyses ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var out []task.AnalysisRecord
	for rows.Next() {
		var (
			rec       task.AnalysisRecord
			id        string
			hasCycle  int
			createdAt string
		)
		if err := rows.Scan(&id, &rec.Strategy, &rec.TaskCount, &hasCycle, &rec.TopScore, &createdAt); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		if rec.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse analysis id: %w", err)
		}
		if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parse analysis timestamp: %w", err)
		}
		rec.HasCycle = hasCycle != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SaveFeedback inserts one feedback signal.
func (r *SQLiteRepository) SaveFeedback(ctx context.Context, rec task.FeedbackRecord) error {
	_, err := r.conn.Exec(ctx,
		`INSERT INTO feedback (id, helpful, score, created_at) VALUES (?, ?, ?, ?)`,
		rec.ID.String(), boolToInt(rec.Helpful), rec.Score,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// SaveWeights replaces the stored learned vector in one transaction.
func (r *SQLiteRepository) SaveWeights(ctx context.Context, v weights.Vector) error {
	tx, err := r.conn.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin weights tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM learned_weights`); err != nil {
		return fmt.Errorf("clear weights: %w", err)
	}
	for component, weight := range v {
		if _, err := tx.Exec(ctx,
			`INSERT INTO learned_weights (component, weight) VALUES (?, ?)`,
			component, weight,
		); err != nil {
			return fmt.Errorf("insert weight %s: %w", component, err)
		}
	}
	return tx.Commit(ctx)
}

// LoadWeights returns the stored vector, or nil when nothing was saved.
func (r *SQLiteRepository) LoadWeights(ctx context.Context) (weights.Vector, error) {
	rows, err := r.conn.Query(ctx, `SELECT component, weight FROM learned_weights`)
	if err != nil {
		return nil, fmt.Errorf("query weights: %w", err)
	}
	defer rows.Close()

	var v weights.Vector
	for rows.Next() {
		var (
			component string
			weight    float64
		)
		if err := rows.Scan(&component, &weight); err != nil {
			return nil, fmt.Errorf("scan weight: %w", err)
		}
		if v == nil {
			v = make(weights.Vector)
		}
		v[component] = weight
	}
	return v, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
