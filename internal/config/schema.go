package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Config holds storyshelf configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Server  ServerCfg  `mapstructure:"server" yaml:"server"`
	Storage StorageCfg `mapstructure:"storage" yaml:"storage"`
	Reader  ReaderCfg  `mapstructure:"reader" yaml:"reader"`
	Log     LogCfg     `mapstructure:"log" yaml:"log"`
}

// ServerCfg configures the HTTP listener.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// StorageCfg locates the metadata and content stores.
type StorageCfg struct {
	KVPath        string        `mapstructure:"kv_path" yaml:"kv_path"`   // SQLite file; empty means {home}/kv.db
	BlobDir       string        `mapstructure:"blob_dir" yaml:"blob_dir"` // empty means {home}/blobs
	RetryAttempts uint          `mapstructure:"retry_attempts" yaml:"retry_attempts"`
	RetryDelay    time.Duration `mapstructure:"retry_delay" yaml:"retry_delay"`
}

// ReaderCfg configures page rendering.
type ReaderCfg struct {
	DefaultTheme string `mapstructure:"default_theme" yaml:"default_theme"`
}

// LogCfg configures the process logger.
type LogCfg struct {
	Level  string `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format"` // text or json
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerCfg{
			Host: "127.0.0.1",
			Port: "8080",
		},
		Storage: StorageCfg{
			RetryAttempts: 3,
			RetryDelay:    100 * time.Millisecond,
		},
		Reader: ReaderCfg{
			DefaultTheme: "default",
		},
		Log: LogCfg{
			Level:  "info",
			Format: "text",
		},
	}
}

// Addr returns host:port for the listener.
func (s ServerCfg) Addr() string {
	return s.Host + ":" + s.Port
}

// SlogLevel parses the configured level.
func (l LogCfg) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", l.Level)
	}
}
