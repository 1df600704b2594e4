package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/storyshelf/storyshelf/internal/config"
)

// newLogger builds the process logger. The returned LevelVar lets the
// level follow config reloads.
func newLogger(w io.Writer, cfg config.LogCfg) (*slog.Logger, *slog.LevelVar, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	lv := new(slog.LevelVar)
	lv.Set(level)

	opts := &slog.HandlerOptions{Level: lv}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), lv, nil
}
