package scripting

import (
	"log/slog"
	"time"

	"github.com/atlanticdynamic/portalscripts/internal/metrics"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// WithLogHandler sets the log handler used for diagnostics.
func WithLogHandler(handler slog.Handler) Option {
	return func(c *Cache) {
		c.logger = slog.New(handler)
	}
}

// WithMetrics sets the prometheus collectors updated by the cache.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithTracerProvider sets the tracer provider used for resolve and invoke spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Cache) {
		if tp != nil {
			c.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithTimeout bounds each entry call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Cache) {
		c.timeout = d
	}
}
