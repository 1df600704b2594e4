package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return configFile
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Addr() != "127.0.0.1:8080" {
		t.Errorf("unexpected default addr %s", cfg.Server.Addr())
	}
	if cfg.Storage.RetryAttempts != 3 {
		t.Errorf("expected 3 retry attempts, got %d", cfg.Storage.RetryAttempts)
	}
	if cfg.Reader.DefaultTheme != "default" {
		t.Errorf("expected default theme, got %s", cfg.Reader.DefaultTheme)
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Run("resolves environment variable", func(t *testing.T) {
		t.Setenv("TEST_STORY_DIR", "/srv/stories")

		result := ResolveEnvVars("${TEST_STORY_DIR}/blobs")
		if result != "/srv/stories/blobs" {
			t.Errorf("expected /srv/stories/blobs, got %s", result)
		}
	})

	t.Run("returns empty for missing env var", func(t *testing.T) {
		result := ResolveEnvVars("${DEFINITELY_NOT_SET_12345}")
		if result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})

	t.Run("leaves literal values unchanged", func(t *testing.T) {
		result := ResolveEnvVars("literal-value")
		if result != "literal-value" {
			t.Errorf("expected literal-value, got %s", result)
		}
	})
}

func TestLogCfg_SlogLevel(t *testing.T) {
	tests := []struct {
		level   string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"WARN", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := LogCfg{Level: tt.level}.SlogLevel()
		if (err != nil) != tt.wantErr {
			t.Errorf("SlogLevel(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestNewManager(t *testing.T) {
	t.Run("loads from config file", func(t *testing.T) {
		configFile := writeConfig(t, `
server:
  port: "9090"
storage:
  retry_delay: 250ms
log:
  level: debug
`)

		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}

		cfg := mgr.Get()
		if cfg.Server.Port != "9090" {
			t.Errorf("expected port 9090, got %s", cfg.Server.Port)
		}
		if cfg.Server.Host != "127.0.0.1" {
			t.Errorf("expected default host, got %s", cfg.Server.Host)
		}
		if cfg.Storage.RetryDelay != 250*time.Millisecond {
			t.Errorf("expected 250ms retry delay, got %s", cfg.Storage.RetryDelay)
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("expected debug level, got %s", cfg.Log.Level)
		}
		if mgr.ConfigFile() != configFile {
			t.Errorf("expected config file %s, got %s", configFile, mgr.ConfigFile())
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		configFile := writeConfig(t, "server:\n  port: \"9090\"\n")
		t.Setenv("STORYSHELF_SERVER_PORT", "7070")

		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}
		if got := mgr.Get().Server.Port; got != "7070" {
			t.Errorf("expected port 7070, got %s", got)
		}
	})

	t.Run("expands env vars in storage paths", func(t *testing.T) {
		t.Setenv("TEST_STORY_ROOT", "/data")
		configFile := writeConfig(t, "storage:\n  kv_path: ${TEST_STORY_ROOT}/kv.db\n")

		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}
		if got := mgr.Get().Storage.KVPath; got != "/data/kv.db" {
			t.Errorf("expected /data/kv.db, got %s", got)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configFile := writeConfig(t, "server: [unclosed")
		if _, err := NewManager(configFile); err == nil {
			t.Error("expected error for invalid config file")
		}
	})
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	mgr, err := NewManager(path)
	if err != nil {
		t.Fatalf("failed to load written defaults: %v", err)
	}
	cfg := mgr.Get()
	want := DefaultConfig()
	if *cfg != *want {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", *cfg, *want)
	}
}

func TestManager_OnChange_Multiple(t *testing.T) {
	mgr, err := NewManager(writeConfig(t, "log:\n  level: info\n"))
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	mgr.OnChange(func(cfg *Config) {})
	mgr.OnChange(func(cfg *Config) {})
	mgr.OnChange(func(cfg *Config) {})

	mgr.mu.RLock()
	if len(mgr.callbacks) != 3 {
		t.Errorf("expected 3 callbacks, got %d", len(mgr.callbacks))
	}
	mgr.mu.RUnlock()
}

func TestManager_Get_ThreadSafe(t *testing.T) {
	mgr, err := NewManager(writeConfig(t, "log:\n  level: info\n"))
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	// Call Get concurrently with reloads to verify no race conditions
	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				cfg := mgr.Get()
				_ = cfg.Log.Level
			}
			done <- struct{}{}
		}()
	}
	mgr.reload()

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestManager_WatchConfig(t *testing.T) {
	configFile := writeConfig(t, "log:\n  level: info\n")

	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	var callbackCount atomic.Int32
	var lastLevel atomic.Value

	mgr.OnChange(func(cfg *Config) {
		callbackCount.Add(1)
		lastLevel.Store(cfg.Log.Level)
	})

	mgr.WatchConfig()

	// Give fsnotify time to set up the watcher
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(configFile, []byte("log:\n  level: debug\n"), 0644); err != nil {
		t.Fatalf("failed to write updated config file: %v", err)
	}

	// Wait for the watcher to detect the change (fsnotify is async)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if lastLevel.Load() == "debug" {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	if callbackCount.Load() == 0 {
		t.Fatal("callback was not invoked after config file change")
	}
	if got := mgr.Get().Log.Level; got != "debug" {
		t.Errorf("config not updated: expected debug, got %s", got)
	}
}
