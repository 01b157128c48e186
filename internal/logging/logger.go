// Package logging defines the structured-logging interface used across the
// client. Two backends are provided: log/slog (default) and logrus.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "login succeeded", "email", email, "role", role)
type Logger interface {
	// Debug logs diagnostic detail that is off by default.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Backend names accepted by New.
const (
	BackendSlog   = "slog"
	BackendLogrus = "logrus"
)

// New builds a Logger writing to w. Unknown backends fall back to slog.
// Level is one of debug, info, warn, error (case-insensitive, default info).
func New(backend, level string, w io.Writer) Logger {
	level = strings.ToLower(strings.TrimSpace(level))
	if strings.EqualFold(backend, BackendLogrus) {
		return newLogrusLogger(w, level)
	}
	return newSlogLogger(w, level)
}

// Err returns an "error" attribute for err:
//
//	log.Error(ctx, "register failed", logging.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return New(BackendSlog, "error", io.Discard)
}
