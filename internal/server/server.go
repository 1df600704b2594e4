package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/storyshelf/storyshelf/internal/api"
	"github.com/storyshelf/storyshelf/internal/config"
	"github.com/storyshelf/storyshelf/internal/home"
	"github.com/storyshelf/storyshelf/internal/reader"
	"github.com/storyshelf/storyshelf/internal/server/endpoints"
	"github.com/storyshelf/storyshelf/internal/storage"
	"github.com/storyshelf/storyshelf/internal/storage/fsblob"
	"github.com/storyshelf/storyshelf/internal/storage/sqlitekv"
	"github.com/storyshelf/storyshelf/internal/svcctx"
)

// Server is the main storyshelf HTTP server.
// It opens the metadata and content stores on start and closes them on
// shutdown.
type Server struct {
	httpServer *http.Server
	home       *home.Dir
	configMgr  *config.Manager
	logger     *slog.Logger

	// kv and blobs are set from Config or opened by Start
	kv      storage.Store
	blobs   storage.Store
	closers []io.Closer

	// services holds all core services for context enrichment
	services *svcctx.Services

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu        sync.RWMutex
	running   bool
	listener  net.Listener
	ready     chan struct{}
	readyOnce sync.Once
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1)
	Host string
	// Port is the port to listen on (default: 8080, "0" picks a free port)
	Port string
	// Home locates the default store paths
	Home *home.Dir
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// Logger is the structured logger to use
	Logger *slog.Logger

	// KV and Blobs replace the on-disk stores when set
	KV    storage.Store
	Blobs storage.Store
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Home == nil && (cfg.KV == nil || cfg.Blobs == nil) {
		return nil, errors.New("home directory is required unless both stores are provided")
	}

	s := &Server{
		home:      cfg.Home,
		configMgr: cfg.ConfigManager,
		logger:    cfg.Logger,
		kv:        cfg.KV,
		blobs:     cfg.Blobs,
		ready:     make(chan struct{}),
	}

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All() {
		s.endpointRegistry.Register(ep)
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      s.withServices(s.withRequestLog(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Start opens the stores and serves HTTP.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	if err := s.open(ctx); err != nil {
		s.closeStores()
		s.setNotRunning()
		return err
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		s.closeStores()
		s.setNotRunning()
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	s.readyOnce.Do(func() { close(s.ready) })

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			_ = s.shutdown()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// open prepares the stores and the reader service.
func (s *Server) open(ctx context.Context) error {
	storageCfg := config.DefaultConfig().Storage
	if s.configMgr != nil {
		storageCfg = s.configMgr.Get().Storage
	}

	if s.kv == nil {
		path := s.home.KVPath(storageCfg.KVPath)
		s.logger.Info("opening metadata store", "path", path)
		kv, err := sqlitekv.Open(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to open metadata store: %w", err)
		}
		s.kv = kv
		s.closers = append(s.closers, kv)
	}
	if s.blobs == nil {
		blobs := fsblob.New(s.home.BlobsPath(storageCfg.BlobDir))
		s.logger.Info("using content directory", "path", blobs.Dir())
		s.blobs = blobs
	}

	retry := storage.RetryConfig{Attempts: storageCfg.RetryAttempts, Delay: storageCfg.RetryDelay}
	kv := storage.WithRetry(s.kv, retry, s.logger.With("store", "kv"))
	blobs := storage.WithRetry(s.blobs, retry, s.logger.With("store", "blobs"))

	svc, err := reader.New(reader.Config{KV: kv, Blobs: blobs, Logger: s.logger})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.services = &svcctx.Services{
		Reader: svc,
		KV:     kv,
		Blobs:  blobs,
		Config: s.configMgr,
		Logger: s.logger,
		Home:   s.home,
	}
	s.mu.Unlock()
	return nil
}

// shutdown performs graceful shutdown of the HTTP server and closes the stores.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	// Shutdown HTTP server with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.closeStores()
	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) closeStores() {
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			s.logger.Error("store close error", "error", err)
		}
	}
	s.closers = nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Ready is closed once the server is accepting connections.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the server's listen address. Once listening it is the
// bound address, which resolves port "0".
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

func (s *Server) currentServices() *svcctx.Services {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.services
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if services := s.currentServices(); services != nil {
			ctx = svcctx.WithServices(ctx, services)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireInit is middleware that ensures the server is fully initialized.
// Returns 503 Service Unavailable if the stores aren't open yet.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svcctx.ReaderFrom(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"server not fully initialized"}`))
			return
		}
		next(w, r)
	}
}
