// Package svcctx provides service context for dependency injection via context.
// This package is separate from server to avoid import cycles with endpoints.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/storyshelf/storyshelf/internal/config"
	"github.com/storyshelf/storyshelf/internal/home"
	"github.com/storyshelf/storyshelf/internal/reader"
	"github.com/storyshelf/storyshelf/internal/storage"
)

// Services holds all core services that flow through context.
// Components extract what they need via the individual extractors.
type Services struct {
	Reader *reader.Service
	KV     storage.Store
	Blobs  storage.Store
	Config *config.Manager
	Logger *slog.Logger
	Home   *home.Dir
}

type (
	servicesKey  struct{}
	loggerKey    struct{}
	requestIDKey struct{}
)

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// ReaderFrom extracts the reader service from context.
func ReaderFrom(ctx context.Context) *reader.Service {
	if s := ServicesFrom(ctx); s != nil {
		return s.Reader
	}
	return nil
}

// KVFrom extracts the metadata store from context.
func KVFrom(ctx context.Context) storage.Store {
	if s := ServicesFrom(ctx); s != nil {
		return s.KV
	}
	return nil
}

// BlobsFrom extracts the content store from context.
func BlobsFrom(ctx context.Context) storage.Store {
	if s := ServicesFrom(ctx); s != nil {
		return s.Blobs
	}
	return nil
}

// ConfigFrom extracts the config manager from context.
func ConfigFrom(ctx context.Context) *config.Manager {
	if s := ServicesFrom(ctx); s != nil {
		return s.Config
	}
	return nil
}

// HomeFrom extracts the home directory from context.
func HomeFrom(ctx context.Context) *home.Dir {
	if s := ServicesFrom(ctx); s != nil {
		return s.Home
	}
	return nil
}

// WithLogger attaches a request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFrom returns the request-scoped logger if one is set, then the
// service logger, then slog.Default().
func LoggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	if s := ServicesFrom(ctx); s != nil && s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// WithRequestID attaches a request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom extracts the request id from context.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
