package database

import (
	"context"
	"database/sql"
)

// Row is a single result row, abstracting pgx.Row and *sql.Row.
type Row interface {
	Scan(dest ...any) error
}

// Rows is a streaming result set, abstracting pgx.Rows and *sql.Rows.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

// Result reports the outcome of an Exec call.
type Result interface {
	RowsAffected() (int64, error)
}

// Executor runs queries against either backend. Repositories take an
// Executor so they can run inside or outside a transaction.
type Executor interface {
	Exec(ctx context.Context, query string, args ...any) (Result, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
	Query(ctx context.Context, query string, args ...any) (Rows, error)
}

// Transaction is an Executor with commit and rollback.
type Transaction interface {
	Executor
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Connection is a live database handle that can open transactions.
type Connection interface {
	Executor
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
	Ping(ctx context.Context) error
	Driver() Driver
}

type stdResult struct {
	res sql.Result
}

func (r stdResult) RowsAffected() (int64, error) {
	return r.res.RowsAffected()
}

// WrapResult adapts a database/sql result to the Result interface.
func WrapResult(res sql.Result) Result {
	return stdResult{res: res}
}

type stdRows struct {
	rows *sql.Rows
}

func (r stdRows) Next() bool             { return r.rows.Next() }
func (r stdRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r stdRows) Close() error           { return r.rows.Close() }
func (r stdRows) Err() error             { return r.rows.Err() }

// WrapRows adapts database/sql rows to the Rows interface.
func WrapRows(rows *sql.Rows) Rows {
	return stdRows{rows: rows}
}
