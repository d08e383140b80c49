// Package reloader runs a portal script cache under go-supervisor, turning
// supervisor reloads (SIGHUP) into cache invalidation.
package reloader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/atlanticdynamic/portalscripts/internal/finitestate"
	"github.com/atlanticdynamic/portalscripts/internal/scripting"
	"github.com/robbyt/go-supervisor/supervisor"
)

var (
	_ supervisor.Runnable   = (*Runner)(nil)
	_ supervisor.Reloadable = (*Runner)(nil)
)

// ScriptCache is the part of scripting.Cache the Runner drives.
type ScriptCache interface {
	Resolve(ctx context.Context, name string) (scripting.Handle, error)
	InvalidateAll()
}

type Runner struct {
	cache   ScriptCache
	preload []string

	logger *slog.Logger
	fsm    finitestate.Machine

	mu        sync.Mutex
	runCancel context.CancelFunc
	parentCtx context.Context
}

// NewRunner creates a Runner owning the lifecycle of cache.
func NewRunner(cache ScriptCache, opts ...Option) (*Runner, error) {
	if cache == nil {
		return nil, errors.New("script cache cannot be nil")
	}

	runner := &Runner{
		cache:     cache,
		logger:    slog.Default().WithGroup("reloader.Runner"),
		parentCtx: context.Background(),
	}

	for _, opt := range opts {
		opt(runner)
	}

	fsm, err := finitestate.New(runner.logger.WithGroup("fsm").Handler())
	if err != nil {
		return nil, fmt.Errorf("failed to create state machine: %w", err)
	}
	runner.fsm = fsm

	return runner, nil
}

// String implements the supervisor.Runnable interface
func (r *Runner) String() string {
	return "reloader.Runner"
}

// Run implements the supervisor.Runnable interface
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Debug("Starting Runner")

	if err := r.fsm.Transition(finitestate.StatusBooting); err != nil {
		return fmt.Errorf("failed to transition to booting state: %w", err)
	}

	runCtx, runCancel := context.WithCancel(ctx)
	defer runCancel()
	r.mu.Lock()
	r.runCancel = runCancel
	r.mu.Unlock()

	r.warm(runCtx)

	if err := r.fsm.Transition(finitestate.StatusRunning); err != nil {
		return fmt.Errorf("failed to transition to running state: %w", err)
	}

	select {
	case <-r.parentCtx.Done():
		r.logger.Debug("Parent context canceled")
	case <-runCtx.Done():
		r.logger.Debug("Run context canceled")
	}

	r.logger.Info("Runner shutting down")

	if r.fsm.GetState() != finitestate.StatusStopping {
		if err := r.fsm.Transition(finitestate.StatusStopping); err != nil {
			r.logger.Error("Failed to transition to stopping state", "error", err)
		}
	}

	r.cache.InvalidateAll()

	if err := r.fsm.Transition(finitestate.StatusStopped); err != nil {
		return fmt.Errorf("failed to transition to stopped state: %w", err)
	}
	return nil
}

// Stop implements the supervisor.Runnable interface
func (r *Runner) Stop() {
	r.logger.Debug("Stopping Runner")
	if err := r.fsm.Transition(finitestate.StatusStopping); err != nil {
		r.logger.Error("Failed to transition to stopping state", "error", err)
	}

	r.mu.Lock()
	cancel := r.runCancel
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Reload implements the supervisor.Reloadable interface. Every cached script
// is dropped so the next invocation reads it from disk again, then the preload
// list is resolved under ctx. A canceled ctx stops warming and is returned
// without marking the runner failed.
func (r *Runner) Reload(ctx context.Context) error {
	r.logger.Debug("Starting Reload...")

	if err := r.fsm.TransitionIfCurrentState(finitestate.StatusRunning, finitestate.StatusReloading); err != nil {
		// Not running yet, or shutting down: the cache is still flushed.
		r.logger.Debug("Reloading outside of running state", "state", r.fsm.GetState())
		r.cache.InvalidateAll()
		return nil
	}

	r.cache.InvalidateAll()
	r.warm(ctx)

	if err := r.fsm.Transition(finitestate.StatusRunning); err != nil {
		r.logger.Error("Failed to transition to running state", "error", err)
		if stateErr := r.fsm.SetState(finitestate.StatusError); stateErr != nil {
			r.logger.Error("Failed to set error state", "error", stateErr)
		}
		return fmt.Errorf("failed to transition to running state: %w", err)
	}
	if err := ctx.Err(); err != nil {
		r.logger.Debug("Reload interrupted", "error", err)
		return err
	}

	r.logger.Debug("Reload completed")
	return nil
}

// warm resolves every preload name. Failures are logged and skipped.
func (r *Runner) warm(ctx context.Context) {
	var loaded int
	for _, name := range r.preload {
		if ctx.Err() != nil {
			return
		}
		if _, err := r.cache.Resolve(ctx, name); err != nil {
			r.logger.Warn("Failed to preload portal script", "script", name, "error", err)
			continue
		}
		loaded++
	}
	if len(r.preload) > 0 {
		r.logger.Debug("Preloaded portal scripts", "loaded", loaded, "requested", len(r.preload))
	}
}
