package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init sets a JSON (default) or text slog handler on stdout based on the provided format.
// Supported: "json" (default), "text".
func Init(service, format string) *slog.Logger {
	return InitTo(os.Stdout, service, format)
}

// InitTo is Init with an explicit destination; the CLI logs to stderr so
// command output stays parseable.
func InitTo(w io.Writer, service, format string) *slog.Logger {
	format = strings.ToLower(strings.TrimSpace(format))
	opts := &slog.HandlerOptions{}

	var handler slog.Handler
	switch format {
	case "", "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler).With("service", service)
	slog.SetDefault(logger)

	if format != "" && format != "json" && format != "text" {
		logger.Warn("unknown log format, defaulting to json", "format", format)
	}
	return logger
}
