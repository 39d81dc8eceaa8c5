package jsonio

import (
	"io"
	"log/slog"
)

// Logger receives advisory messages (oversize payloads, backend
// substitution). It never influences control flow. *slog.Logger satisfies it.
type Logger interface {
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
}

// DiscardLogger returns a Logger that drops everything.
func DiscardLogger() Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func defaultLogger() Logger { return slog.Default() }
