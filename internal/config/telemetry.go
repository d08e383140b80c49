package config

import (
	"fmt"
	"net/url"
)

// TelemetryConfig selects where metrics and spans are exported. Every field is
// optional; an empty config exports nothing.
type TelemetryConfig struct {
	// MetricsFile receives the prometheus text exposition on shutdown.
	MetricsFile string `toml:"metrics_file"  env:"METRICS_FILE"`
	// TraceFile receives one JSON document per span ("stdout", "stderr" or a path).
	TraceFile string `toml:"trace_file"    env:"TRACE_FILE"`
	// OTLPEndpoint is an OTLP/HTTP collector URL, e.g. http://localhost:4318.
	OTLPEndpoint string `toml:"otlp_endpoint" env:"OTLP_ENDPOINT"`
}

// Tracing reports whether any span exporter is configured.
func (t *TelemetryConfig) Tracing() bool {
	return t.TraceFile != "" || t.OTLPEndpoint != ""
}

// Validate checks the telemetry section.
func (t *TelemetryConfig) Validate() error {
	if t.OTLPEndpoint == "" {
		return nil
	}
	u, err := url.Parse(t.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("%w: telemetry.otlp_endpoint: %w", ErrInvalidValue, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("%w: telemetry.otlp_endpoint must be an http(s) URL: %q", ErrInvalidValue, t.OTLPEndpoint)
	}
	return nil
}
