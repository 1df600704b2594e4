package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrNoDefault is returned when no default value exists for a config key.
	ErrNoDefault = errors.New("no default exists")

	// ErrInvalidKey is returned when a config key contains invalid characters.
	ErrInvalidKey = errors.New("invalid config key")
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// Entry describes a single configuration key.
type Entry struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
}

// DefaultEntries returns every configuration key with its default value.
// The values mirror DefaultConfig.
func DefaultEntries() []Entry {
	d := DefaultConfig()
	return []Entry{
		// Server
		{
			Key:         "server.host",
			Value:       d.Server.Host,
			Description: "Address the HTTP server binds to",
		},
		{
			Key:         "server.port",
			Value:       d.Server.Port,
			Description: "Port the HTTP server listens on",
		},

		// Storage
		{
			Key:         "storage.kv_path",
			Value:       d.Storage.KVPath,
			Description: "SQLite file holding overview documents (empty: {home}/kv.db)",
		},
		{
			Key:         "storage.blob_dir",
			Value:       d.Storage.BlobDir,
			Description: "Directory holding story content objects (empty: {home}/blobs)",
		},
		{
			Key:         "storage.retry_attempts",
			Value:       d.Storage.RetryAttempts,
			Description: "Total tries for a storage read; 1 disables retries",
		},
		{
			Key:         "storage.retry_delay",
			Value:       d.Storage.RetryDelay,
			Description: "Base delay between storage read retries",
		},

		// Reader
		{
			Key:         "reader.default_theme",
			Value:       d.Reader.DefaultTheme,
			Description: "Theme used when a request names none",
		},

		// Log
		{
			Key:         "log.level",
			Value:       d.Log.Level,
			Description: "Log level: debug, info, warn or error (hot reloaded)",
		},
		{
			Key:         "log.format",
			Value:       d.Log.Format,
			Description: "Log format: text or json",
		},
	}
}

// GetDefault returns the default entry for a config key.
// Returns ErrNoDefault if no default exists for the key.
func GetDefault(key string) (Entry, error) {
	if err := ValidateKey(key); err != nil {
		return Entry{}, err
	}
	for _, entry := range DefaultEntries() {
		if entry.Key == key {
			return entry, nil
		}
	}
	return Entry{}, fmt.Errorf("%w for key %q", ErrNoDefault, key)
}

// ValidateKey checks if a config key contains only allowed characters.
// Valid keys contain: letters, digits, dots, underscores, and hyphens.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}
	for i, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' && r != '-' {
			return fmt.Errorf("%w: invalid character %q at position %d", ErrInvalidKey, r, i)
		}
	}
	// Don't allow keys starting or ending with dots
	if key[0] == '.' || key[len(key)-1] == '.' {
		return fmt.Errorf("%w: key cannot start or end with a dot", ErrInvalidKey)
	}
	return nil
}
