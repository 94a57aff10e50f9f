// File: loop/options.go
// Package loop functional options and configuration defaults.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package loop

import (
	"log/slog"

	"github.com/momentics/hioload-io/reactor"
)

// Config holds loop tuning parameters.
type Config struct {
	BatchSize int // readiness events drained per poll
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize: 128,
	}
}

// Option customizes loop initialization.
type Option func(*Loop)

// WithLogger routes loop diagnostics to log instead of the process
// default logger.
func WithLogger(log *slog.Logger) Option {
	return func(l *Loop) {
		l.log = log
	}
}

// WithBatchSize overrides the default readiness batch size.
func WithBatchSize(batch int) Option {
	return func(l *Loop) {
		l.cfg.BatchSize = batch
	}
}

// WithPoller injects a poller, replacing the platform default.
func WithPoller(p reactor.Poller) Option {
	return func(l *Loop) {
		l.poller = p
	}
}
