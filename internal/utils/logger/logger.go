package logger

import (
	"os"

	"golang.org/x/exp/slog"

	"agreementlog/internal/app/server/config"
)

// New builds the process logger for the given environment: JSON at info
// level in prod, text at debug level everywhere else.
func New(env string) *slog.Logger {
	var handler slog.Handler

	switch env {
	case config.EnvProd:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	case config.EnvDev:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	return slog.New(handler)
}
