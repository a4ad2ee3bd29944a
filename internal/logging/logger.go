package logging

import (
	"io"
	"log/slog"
	"os"
)

// Config controls logger behavior.
type Config struct {
	Level     slog.Level
	DevMode   bool
	AddSource bool
}

// New creates a configured slog.Logger writing to stdout.
// DevMode produces human-readable text; production produces JSON.
func New(cfg Config) *slog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter is New with an explicit sink. Tests use it to capture
// output.
func NewWithWriter(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.DevMode {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}
