// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

// Package logging provides structured logging for the mesh engine and its
// CLI.
//
// The package is a thin layer over log/slog. The engine holds a plain
// *slog.Logger so callers can substitute their own; this package only
// standardizes construction:
//
//	logger := logging.New(logging.Config{Level: logging.LevelDebug})
//	logger.Debug("edge collapse rejected", "v1", v1, "v2", v2)
//
// Text output is meant for terminals, JSON for anything collecting the
// stream. Default() picks text on stderr at Info level.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level is the minimum severity a logger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the canonical lowercase name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel converts a level name ("debug", "info", "warn", "error") to a
// Level. Matching is case-insensitive.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config controls logger construction. The zero value yields an Info-level
// text logger on stderr.
type Config struct {
	// Level is the minimum severity to emit.
	Level Level

	// JSON switches the output format from text to JSON.
	JSON bool

	// Output overrides the destination. Defaults to os.Stderr.
	Output io.Writer
}

// New builds a logger from the config.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level.slogLevel()}
	var h slog.Handler
	if cfg.JSON {
		h = slog.NewJSONHandler(out, opts)
	} else {
		h = slog.NewTextHandler(out, opts)
	}
	return slog.New(h)
}

// Default returns an Info-level text logger on stderr.
func Default() *slog.Logger {
	return New(Config{})
}

// Discard returns a logger that drops everything. Used as the engine
// fallback when the caller supplies none.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
