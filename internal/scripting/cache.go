package scripting

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/atlanticdynamic/portalscripts/internal/metrics"
	"github.com/atlanticdynamic/portalscripts/internal/portal"
	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/atlanticdynamic/portalscripts/internal/scripting"

// Cache memoizes portal script handles keyed by resource path.
//
// Loads happen without holding any lock, so concurrent misses on the same
// script may each load it; the last insert wins. Failed loads are never
// cached, every call retries until the script loads.
type Cache struct {
	loader  Loader
	ext     string
	timeout time.Duration

	entries *gocache.Cache

	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// New creates a Cache reading scripts through loader. ext is the fixed
// script file extension including the leading dot, e.g. ".lua".
func New(loader Loader, ext string, opts ...Option) (*Cache, error) {
	if loader == nil {
		return nil, errors.New("script loader cannot be nil")
	}
	if ext == "" {
		return nil, errors.New("script extension cannot be empty")
	}

	c := &Cache{
		loader:  loader,
		ext:     ext,
		entries: gocache.New(gocache.NoExpiration, 0),
		logger:  slog.Default().WithGroup("scripting.Cache"),
		tracer:  otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.metrics == nil {
		c.metrics = metrics.New(nil)
	}

	return c, nil
}

// String returns the component name.
func (c *Cache) String() string {
	return "scripting.Cache"
}

// Extension returns the script file extension.
func (c *Cache) Extension() string {
	return c.ext
}

// Path returns the resource path for a script name.
func (c *Cache) Path(name string) string {
	return ResourcePath(name, c.ext)
}

// Len returns the number of cached handles.
func (c *Cache) Len() int {
	return c.entries.ItemCount()
}

// Paths returns the sorted resource paths currently cached.
func (c *Cache) Paths() []string {
	items := c.entries.Items()
	paths := make([]string, 0, len(items))
	for k := range items {
		paths = append(paths, k)
	}
	slices.Sort(paths)
	return paths
}

// Resolve returns the handle for name, loading and caching it on a miss.
// Failures are returned as *ScriptError.
func (c *Cache) Resolve(ctx context.Context, name string) (Handle, error) {
	path := c.Path(name)

	ctx, span := c.tracer.Start(ctx, "portalscripts.Resolve", trace.WithAttributes(
		attribute.String("script.name", name),
		attribute.String("script.path", path),
	))
	defer span.End()

	h, err := c.resolve(ctx, name, path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return h, nil
}

func (c *Cache) resolve(ctx context.Context, name, path string) (Handle, error) {
	if name == "" {
		return nil, ErrNoScript
	}

	if v, found := c.entries.Get(path); found {
		if h, ok := v.(Handle); ok {
			c.metrics.CacheRequests.WithLabelValues("hit").Inc()
			return h, nil
		}
	}
	c.metrics.CacheRequests.WithLabelValues("miss").Inc()

	unit, err := c.load(ctx, path)
	if err != nil {
		kind := ErrLoadFailure
		if errors.Is(err, ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			kind = ErrNotFound
		}
		c.metrics.Loads.WithLabelValues(KindLabel(kind)).Inc()
		return nil, newScriptError(kind, name, path, err)
	}
	if unit == nil {
		c.metrics.Loads.WithLabelValues(KindLabel(ErrNotFound)).Inc()
		return nil, newScriptError(ErrNotFound, name, path, nil)
	}

	h, ok := adapt(unit)
	if !ok {
		c.metrics.Loads.WithLabelValues(KindLabel(ErrContractViolation)).Inc()
		return nil, newScriptError(
			ErrContractViolation,
			name,
			path,
			fmt.Errorf("portal script %q does not implement %s()", name, EntryPoint),
		)
	}

	c.entries.Set(path, h, gocache.NoExpiration)
	c.metrics.Loads.WithLabelValues("success").Inc()
	c.metrics.CachedScripts.Set(float64(c.entries.ItemCount()))
	c.logger.Debug("Portal script loaded", "script", name, "path", path)
	return h, nil
}

// load calls the external loader, converting a panic into an error.
func (c *Cache) load(ctx context.Context, path string) (unit Unit, err error) {
	defer func() {
		if r := recover(); r != nil {
			unit = nil
			err = fmt.Errorf("%w: loader panic: %v", ErrLoadFailure, r)
		}
	}()
	return c.loader.Load(ctx, path)
}

// InvalidateAll drops every cached handle. Later resolutions reload from the
// script source. Handles already handed out stay usable.
func (c *Cache) InvalidateAll() {
	count := c.entries.ItemCount()
	c.entries.Flush()
	c.metrics.CachedScripts.Set(0)
	c.metrics.Invalidations.Inc()
	c.logger.Info("Portal script cache cleared", "entries", count)
}

// Invoke runs the portal script of in and returns its result. Debug lines go
// to the actor when it is privileged. Every failure is logged and reported as
// false; Invoke never returns an error or panics.
func (c *Cache) Invoke(ctx context.Context, in *portal.Interaction) bool {
	return c.run(ctx, in, func() Observer {
		if in == nil {
			return nil
		}
		return NewActorObserver(in.Actor)
	})
}

// InvokeWithObserver is Invoke with an explicit observer. A nil observer is
// allowed.
func (c *Cache) InvokeWithObserver(ctx context.Context, in *portal.Interaction, obs Observer) bool {
	return c.run(ctx, in, func() Observer { return obs })
}

// run builds the observer and invokes the script. A panic anywhere in the
// invocation, observer calls included, is reported as an execution failure.
func (c *Cache) run(ctx context.Context, in *portal.Interaction, observer func() Observer) (result bool) {
	name := in.ScriptName()
	path := c.Path(name)

	ctx, span := c.tracer.Start(ctx, "portalscripts.Invoke", trace.WithAttributes(
		attribute.String("script.name", name),
		attribute.String("script.path", path),
	))
	defer span.End()

	reported := false
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		result = false
		if reported {
			return
		}
		err := newScriptError(ErrExecutionFailure, name, path, fmt.Errorf("panic: %v", r))
		c.metrics.Invocations.WithLabelValues(KindLabel(err)).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Warn("Portal script failed",
			"script", name,
			"path", path,
			"kind", KindLabel(err),
			"error", err,
		)
	}()

	obs := observer()
	if obs == nil {
		obs = nopObserver{}
	}

	start := time.Now()
	result, err := c.invoke(ctx, in, obs, name)
	duration := time.Since(start)
	c.metrics.InvokeDuration.Observe(duration.Seconds())

	if err != nil {
		c.metrics.Invocations.WithLabelValues(KindLabel(err)).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		reported = true
		c.report(name, path, err, obs)
		return false
	}

	c.metrics.Invocations.WithLabelValues(strconv.FormatBool(result)).Inc()
	span.SetAttributes(attribute.Bool("script.result", result))
	c.logger.Debug("Portal script executed",
		"script", name,
		"result", result,
		"duration", duration,
	)
	return result
}

func (c *Cache) invoke(ctx context.Context, in *portal.Interaction, obs Observer, name string) (bool, error) {
	if name == "" {
		return false, ErrNoScript
	}

	obs.Resolving(name, c.Path(name))

	h, err := c.Resolve(ctx, name)
	if err != nil {
		return false, err
	}

	obs.Resolved(name)
	return c.enter(ctx, h, in, name)
}

// enter calls the entry behavior, converting errors and panics into
// ErrExecutionFailure.
func (c *Cache) enter(ctx context.Context, h Handle, in *portal.Interaction, name string) (result bool, err error) {
	path := c.Path(name)

	defer func() {
		if r := recover(); r != nil {
			result = false
			err = newScriptError(ErrExecutionFailure, name, path, fmt.Errorf("panic: %v", r))
		}
	}()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	result, err = h.Enter(ctx, in)
	if err != nil {
		return false, newScriptError(ErrExecutionFailure, name, path, err)
	}
	return result, nil
}

// report logs a failed invocation and mirrors it to the observer.
func (c *Cache) report(name, path string, err error, obs Observer) {
	if errors.Is(err, ErrNoScript) {
		c.logger.Debug("Portal has no script")
		return
	}

	if errors.Is(err, ErrNotFound) {
		c.logger.Warn("Portal script not found", "script", name, "path", path)
	} else {
		c.logger.Warn("Portal script failed",
			"script", name,
			"path", path,
			"kind", KindLabel(err),
			"error", err,
		)
	}
	obs.Failed(name, err)
}
