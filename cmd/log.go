package main

import (
	"log/slog"

	"github.com/pterm/pterm"
)

// newLogger routes slog through the default pterm logger at the given level.
func newLogger(level slog.Level) *slog.Logger {
	ptermLevel := pterm.LogLevelInfo
	switch {
	case level < slog.LevelInfo:
		ptermLevel = pterm.LogLevelDebug
	case level >= slog.LevelError:
		ptermLevel = pterm.LogLevelError
	case level >= slog.LevelWarn:
		ptermLevel = pterm.LogLevelWarn
	}

	handler := pterm.NewSlogHandler(pterm.DefaultLogger.WithLevel(ptermLevel))
	return slog.New(handler)
}
