package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the process-wide slog logger. All three services (api,
// redirector, fulfillment) call this before anything else so every line
// they emit shares one shape.
//
// level is one of "debug", "info", "warn", "error" (default "info").
// format is "json" or "text" (default "json"); text is only meant for
// local development.
func Setup(level, format string) {
	lvl := parseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		// Source locations only at debug; they are noise in production
		// JSON and inflate every line.
		AddSource: lvl == slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.ToLower(format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}

func parseLevel(level string) slog.Level {
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
