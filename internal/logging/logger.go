// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Config selects the level, encoding and destination of the global logger.
// The zero value logs JSON at info level to stderr.
type Config struct {
	Level  string // trace, debug, info, warn, error, fatal, panic, disabled
	Format string // json or console
	Caller bool
	// OmitTimestamp drops the time field.
	OmitTimestamp bool
	Output        io.Writer
}

// DefaultConfig returns the configuration in effect before Init is called.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json", Output: os.Stderr}
}

var current atomic.Pointer[zerolog.Logger]

//nolint:gochecknoinits // logging must work before Init is called
func init() {
	Init(DefaultConfig())
}

// Init replaces the global logger. The server calls it once after loading
// its configuration; the CLI calls it on every command.
func Init(cfg Config) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"

	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05", NoColor: true}
	}

	lc := zerolog.New(out).With()
	if !cfg.OmitTimestamp {
		lc = lc.Timestamp()
	}
	if cfg.Caller {
		lc = lc.Caller()
	}
	l := lc.Logger()
	current.Store(&l)
}

// parseLevel accepts zerolog's level names plus "warning" and "off".
// Anything unrecognized logs at info.
func parseLevel(level string) zerolog.Level {
	switch s := strings.ToLower(strings.TrimSpace(level)); s {
	case "warning":
		return zerolog.WarnLevel
	case "off":
		return zerolog.Disabled
	default:
		lvl, err := zerolog.ParseLevel(s)
		if err != nil || s == "" {
			return zerolog.InfoLevel
		}
		return lvl
	}
}

// Logger returns the global logger.
func Logger() *zerolog.Logger {
	return current.Load()
}

// SetLogger replaces the global logger. Tests use it to capture output.
//
//nolint:gocritic // zerolog.Logger is passed by value by convention
func SetLogger(l zerolog.Logger) {
	current.Store(&l)
}

// NewTestLogger returns a JSON logger writing to w.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// Debug starts a debug event on the global logger.
func Debug() *zerolog.Event { return Logger().Debug() }

// Info starts an info event.
//
//	logging.Info().Int("port", 3001).Msg("Catalog server listening")
func Info() *zerolog.Event { return Logger().Info() }

// Warn starts a warn event.
func Warn() *zerolog.Event { return Logger().Warn() }

// Error starts an error event.
func Error() *zerolog.Event { return Logger().Error() }

// Fatal starts an event that exits the process once written.
func Fatal() *zerolog.Event { return Logger().Fatal() }

// WithComponent returns a child logger tagged with component.
//
//	storeLog := logging.WithComponent("kvstore")
func WithComponent(component string) zerolog.Logger {
	return Logger().With().Str("component", component).Logger()
}
