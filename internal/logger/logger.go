// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logger carries a [slog.Logger] through a context.
package logger

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

type ctxKey struct{}

var discard = slog.New(slog.DiscardHandler)

// New returns a tint-formatted logger writing to w. Verbose lowers the level
// from Warn to Debug.
func New(w io.Writer, verbose, color bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !color,
	}))
}

// Put returns a copy of ctx holding l.
func Put(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// Get returns the logger in ctx, or one that discards everything.
func Get(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return discard
}
