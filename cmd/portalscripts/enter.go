package main

import (
	"context"
	"fmt"
	"io"

	"github.com/atlanticdynamic/portalscripts/internal/fancy"
	"github.com/atlanticdynamic/portalscripts/internal/portal"
	"github.com/atlanticdynamic/portalscripts/internal/scripting"
	"github.com/urfave/cli/v3"
)

var enterCmd = &cli.Command{
	Name:      "enter",
	Usage:     "Run one portal script with a simulated player",
	ArgsUsage: "<name>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "player",
			Usage: "Name of the simulated player",
			Value: "tester",
		},
		&cli.BoolFlag{
			Name:  "gm",
			Usage: "Give the simulated player GM privileges (enables debug messages)",
		},
		&cli.IntFlag{
			Name:  "map",
			Usage: "Map id the portal sits on",
		},
		&cli.StringFlag{
			Name:  "portal",
			Usage: "Portal name",
			Value: "sp",
		},
	},
	Action: enterAction,
}

func enterAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return cli.Exit("exactly one script name is required", 1)
	}

	rt, err := newRuntime(ctx, cmd)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer func() { _ = rt.Close() }()

	req := request{
		Script: cmd.Args().First(),
		Player: cmd.String("player"),
		GM:     cmd.Bool("gm"),
		Map:    int(cmd.Int("map")),
		Portal: cmd.String("portal"),
	}
	res := runRequest(ctx, rt.cache, req)
	printResult(cmd.Root().Writer, res)
	return nil
}

// runRequest invokes the script named by req against a recording bridge.
func runRequest(ctx context.Context, cache *scripting.Cache, req request) result {
	var actor portal.Actor
	var player *portal.Player
	if req.Player != "" {
		player = portal.NewPlayer(req.Player, req.GM)
		actor = player
	}

	recorder := &portal.Recorder{}
	in := portal.NewInteraction(actor, &portal.Portal{
		Name:       req.Portal,
		ScriptName: req.Script,
		MapID:      req.Map,
	}, recorder)

	res := result{
		ID:      req.ID,
		Script:  req.Script,
		Handled: cache.Invoke(ctx, in),
	}
	if player != nil {
		if msgs := player.Messages(); len(msgs) > 0 {
			res.Messages = msgs
		}
	}
	for _, a := range recorder.Actions() {
		res.Actions = append(res.Actions, a.String())
	}
	return res
}

func printResult(w io.Writer, res result) {
	lines := make([]string, 0, len(res.Messages)+len(res.Actions))
	for _, m := range res.Messages {
		lines = append(lines, "message: "+m)
	}
	lines = append(lines, res.Actions...)
	fmt.Fprintln(w, fancy.ActionList(res.Script, res.Handled, lines))
}
