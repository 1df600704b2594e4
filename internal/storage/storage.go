// Package storage defines the lookup contract shared by the metadata
// (key-value) store and the content (blob) store.
package storage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
)

// ErrNotFound is returned by Get when no value exists for the key.
var ErrNotFound = errors.New("not found")

// Store is a read-only keyed lookup.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}

// RetryConfig controls WithRetry.
type RetryConfig struct {
	// Attempts is the total number of tries, including the first.
	Attempts uint
	// Delay is the base delay between tries (backoff doubles it).
	Delay time.Duration
}

// WithRetry wraps s so that transient Get failures are retried.
// ErrNotFound and context cancellation are returned immediately.
func WithRetry(s Store, cfg RetryConfig, logger *slog.Logger) Store {
	if cfg.Attempts <= 1 {
		return s
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &retryStore{next: s, cfg: cfg, logger: logger}
}

type retryStore struct {
	next   Store
	cfg    RetryConfig
	logger *slog.Logger
}

func (r *retryStore) Get(ctx context.Context, key string) ([]byte, error) {
	return retry.DoWithData(
		func() ([]byte, error) {
			return r.next.Get(ctx, key)
		},
		retry.Context(ctx),
		retry.Attempts(r.cfg.Attempts),
		retry.Delay(r.cfg.Delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			r.logger.Warn("storage lookup failed, retrying", "key", key, "attempt", n+1, "error", err)
		}),
	)
}

func (r *retryStore) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}

func retryable(err error) bool {
	return !errors.Is(err, ErrNotFound) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}
