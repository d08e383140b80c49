// Package telemetry exports the script cache's prometheus collectors and
// OpenTelemetry spans to the destinations named in configuration.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/atlanticdynamic/portalscripts/internal/config"
	"github.com/atlanticdynamic/portalscripts/internal/logging/writers"
	"github.com/atlanticdynamic/portalscripts/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ServiceName is reported as service.name on every span.
const ServiceName = "portalscripts"

// Telemetry owns the metrics registry and tracer provider of one process.
type Telemetry struct {
	// Metrics is registered with the registry written on Shutdown.
	Metrics *metrics.Metrics

	registry    *prometheus.Registry
	metricsFile string

	provider *sdktrace.TracerProvider
	traceOut io.Closer

	logger *slog.Logger
}

// New builds the registry and, when cfg names an exporter, a batching tracer
// provider. The returned Telemetry must be shut down to flush its outputs.
func New(ctx context.Context, cfg config.TelemetryConfig, handler slog.Handler) (*Telemetry, error) {
	if handler == nil {
		handler = slog.Default().Handler()
	}

	registry := prometheus.NewRegistry()
	t := &Telemetry{
		Metrics:     metrics.New(registry),
		registry:    registry,
		metricsFile: cfg.MetricsFile,
		logger:      slog.New(handler).WithGroup("telemetry"),
	}

	if !cfg.Tracing() {
		return t, nil
	}

	var opts []sdktrace.TracerProviderOption
	if cfg.TraceFile != "" {
		out, err := writers.Open(cfg.TraceFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open trace output: %w", err)
		}
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(out))
		if err != nil {
			_ = out.Close()
			return nil, fmt.Errorf("failed to create trace file exporter: %w", err)
		}
		t.traceOut = out
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}
	if cfg.OTLPEndpoint != "" {
		exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.OTLPEndpoint))
		if err != nil {
			t.closeTraceOut()
			return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(ServiceName)))
	if err != nil {
		t.closeTraceOut()
		return nil, fmt.Errorf("failed to create trace resource: %w", err)
	}
	opts = append(opts,
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	t.provider = sdktrace.NewTracerProvider(opts...)
	t.logger.Debug("Tracing enabled",
		"trace_file", cfg.TraceFile,
		"otlp_endpoint", cfg.OTLPEndpoint,
	)
	return t, nil
}

// TracerProvider returns the configured provider, or a no-op provider when
// tracing is off.
func (t *Telemetry) TracerProvider() trace.TracerProvider {
	if t.provider == nil {
		return noop.NewTracerProvider()
	}
	return t.provider
}

// Gatherer exposes the registry the cache metrics are registered with.
func (t *Telemetry) Gatherer() prometheus.Gatherer {
	return t.registry
}

// Shutdown flushes pending spans and writes the metrics file. Every step runs
// even when an earlier one fails.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if t.provider != nil {
		if err := t.provider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to flush spans: %w", err))
		}
	}
	if t.traceOut != nil {
		if err := t.traceOut.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close trace output: %w", err))
		}
	}
	if t.metricsFile != "" {
		if err := prometheus.WriteToTextfile(t.metricsFile, t.registry); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics file: %w", err))
		} else {
			t.logger.Debug("Metrics written", "path", t.metricsFile)
		}
	}

	return errors.Join(errs...)
}

func (t *Telemetry) closeTraceOut() {
	if t.traceOut != nil {
		_ = t.traceOut.Close()
	}
}
