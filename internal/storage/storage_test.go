package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

type flakyStore struct {
	failures int
	calls    int
	err      error
	value    []byte
}

func (f *flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.err
	}
	return f.value, nil
}

func (f *flakyStore) Ping(ctx context.Context) error { return nil }

func TestWithRetry(t *testing.T) {
	cfg := RetryConfig{Attempts: 3, Delay: time.Millisecond}

	t.Run("retries transient errors", func(t *testing.T) {
		inner := &flakyStore{failures: 2, err: errors.New("database is locked"), value: []byte("v")}
		got, err := WithRetry(inner, cfg, nil).Get(context.Background(), "k")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(got) != "v" {
			t.Errorf("expected v, got %q", got)
		}
		if inner.calls != 3 {
			t.Errorf("expected 3 calls, got %d", inner.calls)
		}
	})

	t.Run("gives up after attempts", func(t *testing.T) {
		inner := &flakyStore{failures: 10, err: errors.New("io timeout")}
		_, err := WithRetry(inner, cfg, nil).Get(context.Background(), "k")
		if err == nil || err.Error() != "io timeout" {
			t.Errorf("expected last error, got %v", err)
		}
		if inner.calls != 3 {
			t.Errorf("expected 3 calls, got %d", inner.calls)
		}
	})

	t.Run("not found is final", func(t *testing.T) {
		inner := &flakyStore{failures: 10, err: ErrNotFound}
		_, err := WithRetry(inner, cfg, nil).Get(context.Background(), "k")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if inner.calls != 1 {
			t.Errorf("expected 1 call, got %d", inner.calls)
		}
	})

	t.Run("single attempt returns store unchanged", func(t *testing.T) {
		inner := &flakyStore{}
		if WithRetry(inner, RetryConfig{Attempts: 1}, nil) != Store(inner) {
			t.Error("expected the inner store back")
		}
	})
}
