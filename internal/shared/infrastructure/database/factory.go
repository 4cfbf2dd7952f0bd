package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Config selects and tunes the storage backend.
type Config struct {
	// Driver picks the backend explicitly. Empty or "auto" detects it from
	// URL.
	Driver Driver

	// URL is the PostgreSQL connection string.
	URL string

	// SQLitePath is the SQLite file location. Defaults to
	// ~/.smarttask/data.db.
	SQLitePath string

	// MaxConns caps the pool size. PostgreSQL only.
	MaxConns int
}

// Factory opens a Connection for one backend. Implementations register
// themselves from driver subpackages via init.
type Factory func(ctx context.Context, cfg Config) (Connection, error)

var (
	sqliteFactory   Factory
	postgresFactory Factory
)

// RegisterSQLiteDriver installs the SQLite connection factory.
func RegisterSQLiteDriver(fn Factory) {
	sqliteFactory = fn
}

// RegisterPostgresDriver installs the PostgreSQL connection factory.
func RegisterPostgresDriver(fn Factory) {
	postgresFactory = fn
}

// NewConnection opens a connection for the configured backend. The matching
// driver subpackage must be imported for its side effects, otherwise the
// factory is missing and an error is returned.
func NewConnection(ctx context.Context, cfg Config) (Connection, error) {
	driver := cfg.Driver
	if driver == "" || driver == "auto" {
		driver = DetectDriver(cfg.URL)
	}

	var factory Factory
	switch driver {
	case DriverSQLite:
		factory = sqliteFactory
	case DriverPostgres:
		factory = postgresFactory
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
	if factory == nil {
		return nil, fmt.Errorf("database driver %s not registered", driver)
	}
	return factory(ctx, cfg)
}

// DefaultSQLitePath returns the zero-config SQLite location under the user's
// home directory.
func DefaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".smarttask", "data.db")
}

// EnsureDirectory creates the parent directory of a file path.
func EnsureDirectory(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
