package bootstrap

import (
	"time"

	"github.com/kbukum/rxkit/logger"
	"github.com/kbukum/rxkit/observability"
)

// Option customizes application construction.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	gracefulTimeout *time.Duration
	tracing         *observability.TracerConfig
	metrics         *observability.MeterConfig
}

// WithLogger uses the given logger instead of initializing the global one
// from the service config. Useful in tests.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithGracefulTimeout sets how long shutdown may take before it is abandoned.
// The default is 15 seconds.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}

// WithTracing enables OpenTelemetry tracing. Zero-valued identity fields
// (service name, version, environment) are filled from the service config;
// a zero Endpoint falls back to a local insecure collector. Pass an empty
// TracerConfig to accept all defaults.
func WithTracing(cfg observability.TracerConfig) Option {
	return func(o *appOptions) {
		o.tracing = &cfg
	}
}

// WithMetrics enables OpenTelemetry metrics export, with the same
// zero-value handling as WithTracing.
func WithMetrics(cfg observability.MeterConfig) Option {
	return func(o *appOptions) {
		o.metrics = &cfg
	}
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
