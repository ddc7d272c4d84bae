// Package logging builds the application's slog.Logger from config.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/km-arc/go-beans/framework/config"
)

// Logger pairs a slog.Logger with the LevelVar that controls it, so the
// level can be changed after construction.
type Logger struct {
	*slog.Logger
	level *slog.LevelVar
}

// New builds a Logger writing to stdout.
func New(cfg config.LogConfig) (*Logger, error) {
	return NewWithWriter(os.Stdout, cfg)
}

// NewWithWriter builds a Logger writing to w. Format "json" selects the
// JSON handler; anything else gets the text handler.
func NewWithWriter(w io.Writer, cfg config.LogConfig) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	lv := &slog.LevelVar{}
	lv.Set(level)

	opts := &slog.HandlerOptions{
		AddSource: level < slog.LevelInfo,
		Level:     lv,
	}

	var h slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return &Logger{Logger: slog.New(h), level: lv}, nil
}

// SetLevel changes the minimum level at runtime.
func (l *Logger) SetLevel(level slog.Level) {
	l.level.Set(level)
}

// Level returns the current minimum level.
func (l *Logger) Level() slog.Level {
	return l.level.Level()
}

// ParseLevel maps a level name to a slog.Level. An empty name means info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}
