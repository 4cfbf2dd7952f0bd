package persistence

import (
	"context"
	"fmt"

	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/task"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/weights"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/shared/infrastructure/database"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS analyses (
	id         UUID PRIMARY KEY,
	strategy   TEXT NOT NULL,
	task_count INTEGER NOT NULL,
	has_cycle  BOOLEAN NOT NULL,
	top_score  DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);

CREATE TABLE IF NOT EXISTS feedback (
	id         UUID PRIMARY KEY,
	helpful    BOOLEAN NOT NULL,
	score      DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS learned_weights (
	component TEXT PRIMARY KEY,
	weight    DOUBLE PRECISION NOT NULL
);
`

// PostgresRepository implements the analysis and feedback repositories on
// PostgreSQL.
type PostgresRepository struct {
	conn database.Connection
}

// NewPostgresRepository wraps a PostgreSQL connection.
func NewPostgresRepository(conn database.Connection) *PostgresRepository {
	return &PostgresRepository{conn: conn}
}

// EnsureSchema creates the tables when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.conn.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("apply postgres schema: %w", err)
	}
	return nil
}

// SaveAnalysis inserts one analysis summary.
func (r *PostgresRepository) SaveAnalysis(ctx context.Context, rec task.AnalysisRecord) error {
	_, err := r.conn.Exec(ctx,
		`INSERT INTO analyses (id, strategy, task_count, has_cycle, top_score, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, rec.Strategy, rec.TaskCount, rec.HasCycle, rec.TopScore, rec.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

// RecentAnalyses returns the newest summaries, newest first.
func (r *PostgresRepository) RecentAnalyses(ctx context.Context, limit int) ([]task.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.conn.Query(ctx,
		`SELECT id, strategy, task_count, has_cycle, top_score, created_at
		 FROM analyses ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var out []task.AnalysisRecord
	for rows.Next() {
		var rec task.AnalysisRecord
		if err := rows.Scan(&rec.ID, &rec.Strategy, &rec.TaskCount, &rec.HasCycle, &rec.TopScore, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SaveFeedback inserts one feedback signal.
func (r *PostgresRepository) SaveFeedback(ctx context.Context, rec task.FeedbackRecord) error {
	_, err := r.conn.Exec(ctx,
		`INSERT INTO feedback (id, helpful, score, created_at) VALUES ($1, $2, $3, $4)`,
		rec.ID, rec.Helpful, rec.Score, rec.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// SaveWeights replaces the stored learned vector in one transaction.
func (r *PostgresRepository) SaveWeights(ctx context.Context, v weights.Vector) error {
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
			`INSERT INTO learned_weights (component, weight) VALUES ($1, $2)`,
			component, weight,
		); err != nil {
			return fmt.Errorf("insert weight %s: %w", component, err)
		}
	}
	return tx.Commit(ctx)
}

// LoadWeights returns the stored vector, or nil when nothing was saved.
func (r *PostgresRepository) LoadWeights(ctx context.Context) (weights.Vector, error) {
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
