// Package testutil holds fixtures shared by server and endpoint tests.
package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/storyshelf/storyshelf/internal/seed"
	"github.com/storyshelf/storyshelf/internal/storage/memory"
	"github.com/storyshelf/storyshelf/internal/story"
)

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Pages builds n pages titled "Chapter 1" through "Chapter n".
func Pages(n int) []story.Page {
	pages := make([]story.Page, n)
	for i := range pages {
		pages[i] = story.Page{
			Title:   fmt.Sprintf("Chapter %d", i+1),
			Content: []string{"line one", "line two"},
		}
	}
	return pages
}

// Seed writes f into the stores, failing the test on error.
func Seed(t *testing.T, kv, blobs seed.Putter, f *seed.File) {
	t.Helper()
	if _, err := seed.Load(context.Background(), f, kv, blobs); err != nil {
		t.Fatalf("failed to seed stores: %v", err)
	}
}

// MemoryStores returns metadata and content stores holding f.
func MemoryStores(t *testing.T, f *seed.File) (kv, blobs *memory.Store) {
	t.Helper()
	kv, blobs = memory.New(), memory.New()
	Seed(t, kv, blobs, f)
	return kv, blobs
}

// WaitForReady polls /ready until both stores report ok.
func WaitForReady(url string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url + "/ready")
		if err == nil {
			var status struct {
				Status string `json:"status"`
			}
			decodeErr := json.NewDecoder(resp.Body).Decode(&status)
			resp.Body.Close()
			if decodeErr == nil && resp.StatusCode == http.StatusOK && status.Status == "ok" {
				return nil
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	return fmt.Errorf("server not ready after %v", timeout)
}

// WaitForShutdown waits for a channel to receive a value or timeout.
func WaitForShutdown(done <-chan error, timeout time.Duration) error {
	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("timeout waiting for shutdown")
	}
}

// StartServer manages a server goroutine in tests.
// Usage:
//
//	ctx, cancel := context.WithCancel(context.Background())
//	done := make(chan error, 1)
//	go func() { done <- srv.Start(ctx) }()
//	starter := testutil.StartServer{Cancel: cancel, Done: done}
//	t.Cleanup(func() { starter.Stop() })
type StartServer struct {
	Cancel context.CancelFunc
	Done   <-chan error
}

// Stop cancels the server context and waits for shutdown.
func (s *StartServer) Stop() {
	if s.Cancel != nil {
		s.Cancel()
	}
	if s.Done != nil {
		<-s.Done
	}
}
