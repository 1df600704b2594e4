package config

import (
	"errors"
	"testing"
)

func TestDefaultEntries(t *testing.T) {
	entries := DefaultEntries()

	requiredKeys := []string{
		"server.host",
		"server.port",
		"storage.kv_path",
		"storage.blob_dir",
		"storage.retry_attempts",
		"storage.retry_delay",
		"reader.default_theme",
		"log.level",
		"log.format",
	}

	keys := make(map[string]bool)
	for _, e := range entries {
		if keys[e.Key] {
			t.Errorf("duplicate key %s", e.Key)
		}
		keys[e.Key] = true
		if e.Description == "" {
			t.Errorf("key %s has no description", e.Key)
		}
		if err := ValidateKey(e.Key); err != nil {
			t.Errorf("key %s is not valid: %v", e.Key, err)
		}
	}

	for _, key := range requiredKeys {
		if !keys[key] {
			t.Errorf("DefaultEntries() missing required key: %s", key)
		}
	}
}

func TestGetDefault(t *testing.T) {
	t.Run("existing_key", func(t *testing.T) {
		entry, err := GetDefault("server.port")
		if err != nil {
			t.Fatalf("GetDefault() error = %v", err)
		}
		if entry.Value != "8080" {
			t.Errorf("GetDefault() Value = %v, want %q", entry.Value, "8080")
		}
	})

	t.Run("non_existent_key", func(t *testing.T) {
		_, err := GetDefault("does.not.exist")
		if !errors.Is(err, ErrNoDefault) {
			t.Errorf("GetDefault() error = %v, want ErrNoDefault", err)
		}
	})

	t.Run("invalid_key", func(t *testing.T) {
		_, err := GetDefault("server port")
		if !errors.Is(err, ErrInvalidKey) {
			t.Errorf("GetDefault() error = %v, want ErrInvalidKey", err)
		}
	})
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"log.level", false},
		{"storage.retry_attempts", false},
		{"a-b", false},
		{"", true},
		{".log", true},
		{"log.", true},
		{"log level", true},
		{"log/level", true},
	}
	for _, tt := range tests {
		err := ValidateKey(tt.key)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidKey) {
			t.Errorf("ValidateKey(%q) error does not wrap ErrInvalidKey", tt.key)
		}
	}
}
