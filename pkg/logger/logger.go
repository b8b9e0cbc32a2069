package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options configures the structured logger
type Options struct {
	Level  string    // debug, info, warn or error
	Format string    // json or text
	Output io.Writer // defaults to stdout
}

// New creates a JSON logger writing to stdout at the given level
func New(level string) *slog.Logger {
	return NewWithOptions(Options{Level: level, Format: "json"})
}

// NewWithOptions creates a logger from opts. Unknown levels fall back to
// info and unknown formats to json.
func NewWithOptions(opts Options) *slog.Logger {
	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "text":
		handler = slog.NewTextHandler(output, handlerOpts)
	default:
		handler = slog.NewJSONHandler(output, handlerOpts)
	}

	return slog.New(handler)
}

// ParseLevel maps a level name to a slog.Level
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
