package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atlanticdynamic/portalscripts/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNew_Disabled(t *testing.T) {
	t.Parallel()

	tel, err := New(t.Context(), config.TelemetryConfig{}, nil)
	require.NoError(t, err)
	require.NotNil(t, tel.Metrics)

	_, isSDK := tel.TracerProvider().(*sdktrace.TracerProvider)
	assert.False(t, isSDK)
	assert.NoError(t, tel.Shutdown(t.Context()))
}

func TestShutdown_WritesMetricsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "portalscripts.prom")
	tel, err := New(t.Context(), config.TelemetryConfig{MetricsFile: path}, nil)
	require.NoError(t, err)

	tel.Metrics.Invalidations.Inc()
	tel.Metrics.Loads.WithLabelValues("success").Add(2)
	require.NoError(t, tel.Shutdown(t.Context()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "portalscripts_invalidations_total 1")
	assert.Contains(t, string(data), `portalscripts_loads_total{result="success"} 2`)

	families, err := tel.Gatherer().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestShutdown_MetricsFileError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "portalscripts.prom")
	tel, err := New(t.Context(), config.TelemetryConfig{MetricsFile: path}, nil)
	require.NoError(t, err)

	err = tel.Shutdown(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write metrics file")
}

func TestNew_TraceFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "spans.json")
	tel, err := New(t.Context(), config.TelemetryConfig{TraceFile: path}, nil)
	require.NoError(t, err)

	_, span := tel.TracerProvider().Tracer("test").Start(t.Context(), "portalscripts.Resolve")
	span.End()
	require.NoError(t, tel.Shutdown(t.Context()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Name":"portalscripts.Resolve"`)
	assert.Contains(t, string(data), ServiceName)
}

func TestNew_TraceFileUnsupported(t *testing.T) {
	t.Parallel()

	_, err := New(t.Context(), config.TelemetryConfig{TraceFile: "s3://bucket/spans"}, nil)
	require.Error(t, err)
}

func TestNew_OTLPEndpoint(t *testing.T) {
	t.Parallel()

	tel, err := New(t.Context(), config.TelemetryConfig{OTLPEndpoint: "http://127.0.0.1:4318"}, nil)
	require.NoError(t, err)

	_, isSDK := tel.TracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, isSDK)

	ctx, cancel := context.WithTimeout(t.Context(), time.Second)
	defer cancel()
	assert.NoError(t, tel.Shutdown(ctx))
}
