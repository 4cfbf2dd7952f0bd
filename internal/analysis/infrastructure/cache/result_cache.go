// Package cache provides a Redis-backed store for serialized analysis
// results, guarded by a circuit breaker so a failing Redis never stalls
// scoring requests.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
)

const keyPrefix = "smarttask:analysis:"

// Breaker tuning. The breaker opens after a run of consecutive failures and
// probes again after the timeout.
const (
	breakerMaxRequests      = 3
	breakerInterval         = 10 * time.Second
	breakerTimeout          = 30 * time.Second
	breakerFailureThreshold = 5
)

// ResultCache stores analysis payloads in Redis under a request digest.
type ResultCache struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *slog.Logger
}

// New creates a cache over the given client.
func New(client *redis.Client, logger *slog.Logger) *ResultCache {
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:        "analysis-result-cache",
		MaxRequests: breakerMaxRequests,
		Interval:    breakerInterval,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &ResultCache{
		client:  client,
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
		logger:  logger,
	}
}

// Get returns the cached payload for a digest, or nil on a miss. A miss is
// not a failure and does not count against the breaker.
func (c *ResultCache) Get(ctx context.Context, digest string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	return c.breaker.Execute(func() ([]byte, error) {
		raw, err := c.client.Get(ctx, keyPrefix+digest).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return raw, err
	})
}

// Set stores a payload under a digest with the given TTL.
func (c *ResultCache) Set(ctx context.Context, digest string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	_, err := c.breaker.Execute(func() ([]byte, error) {
		return nil, c.client.Set(ctx, keyPrefix+digest, value, ttl).Err()
	})
	return err
}
