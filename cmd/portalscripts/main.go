package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "portalscripts",
		Version: Version,
		Usage:   "Resolve, check and run portal scripts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to TOML configuration file",
				Sources: cli.EnvVars("PORTALSCRIPTS_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "scripts-dir",
				Aliases: []string{"d"},
				Usage:   "Script root directory; scripts are read from <dir>/portal/",
			},
			&cli.StringFlag{
				Name:    "engine",
				Aliases: []string{"e"},
				Usage:   "Script engine (lua, starlark, risor)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (trace, debug, info, warn or warning, error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format (text, json)",
			},
			&cli.StringFlag{
				Name:    "metrics-file",
				Usage:   "Write prometheus metrics to this file on exit",
				Sources: cli.EnvVars("PORTALSCRIPTS_METRICS_FILE"),
			},
			&cli.StringFlag{
				Name:    "trace-file",
				Usage:   "Export spans as JSON to this destination (stdout, stderr or a path)",
				Sources: cli.EnvVars("PORTALSCRIPTS_TRACE_FILE"),
			},
			&cli.StringFlag{
				Name:    "otlp-endpoint",
				Usage:   "Export spans to an OTLP/HTTP collector, e.g. http://localhost:4318",
				Sources: cli.EnvVars("PORTALSCRIPTS_OTLP_ENDPOINT"),
			},
		},
		Commands: []*cli.Command{
			versionCmd,
			checkCmd,
			enterCmd,
			serveCmd,
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
