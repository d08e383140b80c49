package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/atlanticdynamic/portalscripts/internal/config"
	"github.com/atlanticdynamic/portalscripts/internal/logging"
	"github.com/atlanticdynamic/portalscripts/internal/logging/writers"
	"github.com/atlanticdynamic/portalscripts/internal/scripting"
	"github.com/atlanticdynamic/portalscripts/internal/scripting/engines"
	"github.com/atlanticdynamic/portalscripts/internal/telemetry"
	"github.com/urfave/cli/v3"
)

const telemetryFlushTimeout = 5 * time.Second

// runtime is everything a command needs to resolve and run portal scripts.
type runtime struct {
	cfg       *config.Config
	cache     *scripting.Cache
	handler   slog.Handler
	telemetry *telemetry.Telemetry
	out       io.Closer
}

// Close flushes telemetry, then closes the log output.
func (r *runtime) Close() error {
	var errs []error
	if r.telemetry != nil {
		ctx, cancel := context.WithTimeout(context.Background(), telemetryFlushTimeout)
		defer cancel()
		if err := r.telemetry.Shutdown(ctx); err != nil {
			slog.New(r.handler).Warn("Telemetry shutdown failed", "error", err)
			errs = append(errs, err)
		}
	}
	if r.out != nil {
		errs = append(errs, r.out.Close())
	}
	return errors.Join(errs...)
}

// loadConfig reads --config (if any) and layers the global flags on top.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.NewConfig(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("scripts-dir") {
		cfg.Scripts.Dir = cmd.String("scripts-dir")
	}
	if cmd.IsSet("engine") {
		cfg.Scripts.Engine = cmd.String("engine")
	}
	if cmd.IsSet("log-level") {
		level, err := config.LogLevelFromString(cmd.String("log-level"))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", config.ErrInvalidValue, err)
		}
		cfg.Logging.Level = level
	}
	if cmd.IsSet("log-format") {
		format, err := config.LogFormatFromString(cmd.String("log-format"))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", config.ErrInvalidValue, err)
		}
		cfg.Logging.Format = format
	}
	if cmd.IsSet("metrics-file") {
		cfg.Telemetry.MetricsFile = cmd.String("metrics-file")
	}
	if cmd.IsSet("trace-file") {
		cfg.Telemetry.TraceFile = cmd.String("trace-file")
	}
	if cmd.IsSet("otlp-endpoint") {
		cfg.Telemetry.OTLPEndpoint = cmd.String("otlp-endpoint")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrFailedToValidateConfig, err)
	}
	return cfg, nil
}

// newRuntime loads config, installs the default logger, sets up telemetry,
// and builds the cache.
func newRuntime(ctx context.Context, cmd *cli.Command) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	out, err := writers.Open(cfg.Logging.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to open log output: %w", err)
	}
	handler, err := logging.SetupHandler(cfg.Logging.Format.String(), cfg.Logging.Level.String(), out)
	if err != nil {
		_ = out.Close()
		return nil, err
	}
	slog.SetDefault(slog.New(handler))

	tel, err := telemetry.New(ctx, cfg.Telemetry, handler)
	if err != nil {
		_ = out.Close()
		return nil, err
	}
	rt := &runtime{cfg: cfg, handler: handler, telemetry: tel, out: out}

	rt.cache, err = buildCache(cfg, handler, tel)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	return rt, nil
}

func buildCache(cfg *config.Config, handler slog.Handler, tel *telemetry.Telemetry) (*scripting.Cache, error) {
	logger := slog.New(handler).WithGroup("scripting.Cache")

	engine := cfg.EngineType()
	timeout := cfg.Scripts.Timeout.AsDuration()
	if engine == engines.TypeLua && timeout > 0 {
		logger.Warn("Lua scripts cannot be interrupted; scripts.timeout is not enforced",
			"timeout", timeout,
		)
	}

	loader, ext, err := engines.New(engine, os.DirFS(cfg.Scripts.Dir), handler)
	if err != nil {
		return nil, fmt.Errorf("failed to create script loader: %w", err)
	}

	return scripting.New(loader, ext,
		scripting.WithLogger(logger),
		scripting.WithMetrics(tel.Metrics),
		scripting.WithTracerProvider(tel.TracerProvider()),
		scripting.WithTimeout(timeout),
	)
}
