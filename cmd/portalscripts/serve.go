package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/atlanticdynamic/portalscripts/internal/runnables/reloader"
	"github.com/robbyt/go-supervisor/supervisor"
	"github.com/urfave/cli/v3"
)

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "Answer JSON portal interactions read from stdin; SIGHUP clears the script cache",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		rt, err := newRuntime(ctx, cmd)
		if err != nil {
			return cli.Exit(err, 1)
		}
		defer func() { _ = rt.Close() }()

		logger := slog.Default()

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		runner, err := reloader.NewRunner(rt.cache,
			reloader.WithLogger(logger.WithGroup("reloader.Runner")),
			reloader.WithPreload(rt.cfg.Scripts.Preload...),
		)
		if err != nil {
			return cli.Exit(fmt.Errorf("failed to create reloader: %w", err), 1)
		}

		super, err := supervisor.New(
			supervisor.WithRunnables(runner),
			supervisor.WithLogHandler(rt.handler),
			supervisor.WithContext(ctx),
		)
		if err != nil {
			return cli.Exit(fmt.Errorf("failed to create supervisor: %w", err), 1)
		}

		sess := &session{
			cache:  rt.cache,
			in:     os.Stdin,
			out:    cmd.Root().Writer,
			logger: logger.WithGroup("session"),
		}
		go func() {
			defer cancel()
			if err := sess.serve(ctx); err != nil {
				logger.Error("Session ended", "error", err)
			}
		}()

		if err := super.Run(); err != nil {
			return cli.Exit(fmt.Errorf("failed to run: %w", err), 1)
		}

		logger.Info("Shutdown complete")
		return nil
	},
}
