// Package app wires configuration, storage, messaging, and the command
// handlers into a runnable service container.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/application/commands"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/application/learning"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/application/services"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/task"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/infrastructure/cache"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/infrastructure/persistence"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/shared/infrastructure/database"
	_ "github.com/lakshmiprabha03/smarttask-analyzer/internal/shared/infrastructure/database/postgres"
	_ "github.com/lakshmiprabha03/smarttask-analyzer/internal/shared/infrastructure/database/sqlite"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/shared/infrastructure/eventbus"
	"github.com/lakshmiprabha03/smarttask-analyzer/pkg/config"
	"github.com/lakshmiprabha03/smarttask-analyzer/pkg/observability"
)

// repository is the full persistence surface the container needs from one
// backend implementation.
type repository interface {
	EnsureSchema(ctx context.Context) error
	task.AnalysisRepository
	task.FeedbackRepository
}

// Container holds the wired application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics observability.Metrics

	DB        database.Connection
	Repo      repository
	Publisher eventbus.Publisher
	Redis     *redis.Client
	Store     *learning.Store

	Analyze  *commands.AnalyzeTasksHandler
	Suggest  *commands.SuggestTasksHandler
	Feedback *commands.RecordFeedbackHandler
}

// New builds the container. Redis and RabbitMQ are optional; the analyzer
// degrades to uncached scoring and in-process events without them. In
// development a broken optional dependency is logged and skipped instead of
// failing startup.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewInMemoryMetrics(),
	}

	db, err := database.NewConnection(ctx, database.Config{
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
		MaxConns:   cfg.DBMaxConns,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	c.DB = db
	logger.Info("connected to database", "driver", db.Driver())

	switch db.Driver() {
	case database.DriverPostgres:
		c.Repo = persistence.NewPostgresRepository(db)
	default:
		c.Repo = persistence.NewSQLiteRepository(db)
	}
	if err := c.Repo.EnsureSchema(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	seed, err := c.Repo.LoadWeights(ctx)
	if err != nil {
		logger.Warn("failed to load learned weights, starting from defaults", "error", err)
	}
	c.Store = learning.NewStore(seed)

	if cfg.RabbitMQURL != "" {
		publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			if !cfg.IsDevelopment() {
				c.Close()
				return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
			}
			logger.Warn("RabbitMQ unavailable, falling back to in-process events", "error", err)
			c.Publisher = eventbus.NewInProcessBus(logger)
		} else {
			c.Publisher = publisher
		}
	} else {
		c.Publisher = eventbus.NewInProcessBus(logger)
	}

	var resultCache commands.ResultCache
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			if !cfg.IsDevelopment() {
				c.Close()
				return nil, fmt.Errorf("parse Redis URL: %w", err)
			}
			logger.Warn("invalid Redis URL, result cache disabled", "error", err)
		} else {
			client := redis.NewClient(opt)
			if err := client.Ping(ctx).Err(); err != nil {
				if !cfg.IsDevelopment() {
					_ = client.Close()
					c.Close()
					return nil, fmt.Errorf("connect to Redis: %w", err)
				}
				logger.Warn("Redis unavailable, result cache disabled", "error", err)
				_ = client.Close()
			} else {
				c.Redis = client
				resultCache = cache.New(client, logger)
				logger.Info("result cache enabled")
			}
		}
	}

	engine := services.NewEngine()
	c.Analyze = commands.NewAnalyzeTasksHandler(commands.AnalyzeTasksConfig{
		Engine:    engine,
		Store:     c.Store,
		History:   c.Repo,
		Cache:     resultCache,
		Publisher: c.Publisher,
		Metrics:   c.Metrics,
		Logger:    logger,
		CacheTTL:  cfg.CacheTTL,
	})
	c.Suggest = commands.NewSuggestTasksHandler(commands.SuggestTasksConfig{
		Engine:  engine,
		Store:   c.Store,
		Metrics: c.Metrics,
		Logger:  logger,
	})
	c.Feedback = commands.NewRecordFeedbackHandler(commands.RecordFeedbackConfig{
		Store:     c.Store,
		Repo:      c.Repo,
		Publisher: c.Publisher,
		Metrics:   c.Metrics,
		Logger:    logger,
	})

	return c, nil
}

// Close releases every connection the container owns.
func (c *Container) Close() {
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			c.Logger.Warn("error closing publisher", "error", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("error closing redis client", "error", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			c.Logger.Warn("error closing database", "error", err)
		}
	}
}
