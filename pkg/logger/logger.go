// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

// Package logger wraps zerolog with the level/format switch every entrypoint
// in this module uses, so "structured logging" means the same thing whether
// it's the planner CLI or a future HTTP surface emitting it.
package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var global = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Init configures the package-level logger. format is "json" or "console";
// anything else falls back to json rather than failing startup over a typo.
func Init(level, format string) {
	zerolog.SetGlobalLevel(parseLevel(level))

	if strings.EqualFold(format, "console") {
		global = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		return
	}
	global = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// Get returns the configured logger. Safe to call before Init; it then
// writes json to stderr under zerolog's default global level (debug).
func Get() zerolog.Logger {
	return global
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
