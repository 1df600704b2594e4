package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"namespace not found: ns9"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("boom"))
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	ctx := context.Background()

	t.Run("decodes result", func(t *testing.T) {
		var resp struct {
			Status string `json:"status"`
		}
		if err := client.Get(ctx, "/ok", &resp); err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if resp.Status != "ok" {
			t.Errorf("expected ok, got %q", resp.Status)
		}
	})

	t.Run("structured error", func(t *testing.T) {
		err := client.Get(ctx, "/missing", nil)
		var se *StatusError
		if !errors.As(err, &se) {
			t.Fatalf("expected StatusError, got %v", err)
		}
		if se.Code != http.StatusNotFound || se.Message != "namespace not found: ns9" {
			t.Errorf("unexpected error %+v", se)
		}
	})

	t.Run("plain error body", func(t *testing.T) {
		err := client.Get(ctx, "/other", nil)
		if err == nil || !strings.Contains(err.Error(), "(500): boom") {
			t.Errorf("unexpected error %v", err)
		}
	})
}

func TestOutputTo(t *testing.T) {
	data := map[string]any{"story_id": "s1", "pages": 3}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatJSON, data); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), `"story_id": "s1"`) {
			t.Errorf("unexpected json %q", buf.String())
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatYAML, data); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "story_id: s1") {
			t.Errorf("unexpected yaml %q", buf.String())
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if err := OutputTo(&bytes.Buffer{}, "toml", data); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestSetOutputFormat(t *testing.T) {
	defer SetOutputFormat("yaml")

	SetOutputFormat("json")
	if GetOutputFormat() != OutputFormatJSON {
		t.Errorf("expected json, got %s", GetOutputFormat())
	}
	SetOutputFormat("xml")
	if GetOutputFormat() != DefaultOutput {
		t.Errorf("expected default, got %s", GetOutputFormat())
	}
}

type fakeEndpoint struct {
	path    string
	init    bool
	command bool
}

func (e fakeEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", e.path, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}
}

func (e fakeEndpoint) RequiresInit() bool { return e.init }

func (e fakeEndpoint) Command(func() string) *cobra.Command {
	if !e.command {
		return nil
	}
	return &cobra.Command{Use: strings.TrimPrefix(e.path, "/")}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(fakeEndpoint{path: "/open", command: true})
	r.Register(fakeEndpoint{path: "/gated", init: true, command: true})
	r.Register(fakeEndpoint{path: "/html"})

	if len(r.Endpoints()) != 3 {
		t.Fatalf("expected 3 endpoints, got %d", len(r.Endpoints()))
	}

	mux := http.NewServeMux()
	r.RegisterRoutes(mux, func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	})

	for path, want := range map[string]int{"/open": 200, "/gated": 503, "/html": 200} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		if rec.Code != want {
			t.Errorf("%s: expected %d, got %d", path, want, rec.Code)
		}
	}

	cmd := r.BuildCommands(func() string { return "" })
	if got := len(cmd.Commands()); got != 2 {
		t.Errorf("expected 2 api subcommands, got %d", got)
	}
}
