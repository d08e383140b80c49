package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/atlanticdynamic/portalscripts/internal/fancy"
	"github.com/atlanticdynamic/portalscripts/internal/scripting"
	"github.com/urfave/cli/v3"
)

var checkCmd = &cli.Command{
	Name:      "check",
	Aliases:   []string{"lint"},
	Usage:     "Load portal scripts and report the ones that would fail",
	ArgsUsage: "<name>...",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "all",
			Aliases: []string{"a"},
			Usage:   "Check every script found under <scripts-dir>/portal/",
		},
	},
	Action: checkAction,
}

func checkAction(ctx context.Context, cmd *cli.Command) error {
	rt, err := newRuntime(ctx, cmd)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer func() { _ = rt.Close() }()

	names := cmd.Args().Slice()
	if cmd.Bool("all") {
		found, err := discover(os.DirFS(rt.cfg.Scripts.Dir), rt.cache.Extension())
		if err != nil {
			return cli.Exit(fmt.Errorf("failed to list scripts: %w", err), 1)
		}
		names = append(names, found...)
	}
	if len(names) == 0 {
		return cli.Exit("at least one script name is required (or use --all)", 1)
	}

	failed := runCheck(ctx, cmd.Root().Writer, rt.cache, rt.cfg.Scripts.Dir, rt.cfg.Scripts.Engine, names)
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d portal scripts failed", failed, len(names)), 1)
	}
	return nil
}

// runCheck resolves every name, renders the report to w, and returns the
// number of failures.
func runCheck(ctx context.Context, w io.Writer, cache *scripting.Cache, root, engine string, names []string) int {
	rows := make([]fancy.ScriptRow, 0, len(names))
	failed := 0
	for _, name := range names {
		row := fancy.ScriptRow{Name: name, Path: cache.Path(name), OK: true}
		if _, err := cache.Resolve(ctx, name); err != nil {
			failed++
			row.OK = false
			row.Kind = scripting.KindLabel(err)
			var se *scripting.ScriptError
			if errors.As(err, &se) {
				row.Detail = se.Detail()
			} else {
				row.Detail = err.Error()
			}
		}
		rows = append(rows, row)
	}

	fmt.Fprintln(w, fancy.ResolutionReport(root, engine, rows))
	return failed
}

// discover lists the script names stored under portal/ with extension ext.
func discover(fsys fs.FS, ext string) ([]string, error) {
	matches, err := fs.Glob(fsys, scripting.Namespace+"*"+ext)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(strings.TrimPrefix(m, scripting.Namespace), ext))
	}
	slices.Sort(names)
	return names, nil
}
