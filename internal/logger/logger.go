// Package logger configures the process-wide structured logger.
package logger

import (
	"log/slog"
	"os"
)

// Init installs a JSON slog handler as the default logger and returns it.
func Init() *slog.Logger {
	l := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(l)
	return l
}
