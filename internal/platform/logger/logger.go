package logger

import (
	"log/slog"
	"os"
)

// New returns a JSON slog logger. Production logs at Info, everything else at Debug.
func New(environment string) *slog.Logger {
	level := slog.LevelDebug
	if environment == "production" {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With("service", "rtwgate")
}
