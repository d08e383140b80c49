package lua

import (
	golua "github.com/Shopify/go-lua"
	"github.com/atlanticdynamic/portalscripts/internal/portal"
)

// pushInteraction pushes the "pi" table scripts use to reach the game. The
// functions are meant to be called with method syntax (pi:warp(...)), so
// arguments start at index 2.
func pushInteraction(l *golua.State, in *portal.Interaction) {
	p := in.Portal
	if p == nil {
		p = &portal.Portal{}
	}

	l.NewTable()
	golua.SetFunctions(l, []golua.RegistryFunction{
		{Name: "getPlayerName", Function: func(l *golua.State) int {
			l.PushString(in.PlayerName())
			return 1
		}},
		{Name: "isGM", Function: func(l *golua.State) int {
			l.PushBoolean(in.IsPrivileged())
			return 1
		}},
		{Name: "hasPlayer", Function: func(l *golua.State) int {
			l.PushBoolean(in.Actor != nil)
			return 1
		}},
		{Name: "getPortalName", Function: func(l *golua.State) int {
			l.PushString(p.Name)
			return 1
		}},
		{Name: "getScriptName", Function: func(l *golua.State) int {
			l.PushString(p.ScriptName)
			return 1
		}},
		{Name: "getMapId", Function: func(l *golua.State) int {
			l.PushInteger(p.MapID)
			return 1
		}},
		{Name: "getTargetMapId", Function: func(l *golua.State) int {
			l.PushInteger(p.TargetMapID)
			return 1
		}},
		{Name: "getTargetPortal", Function: func(l *golua.State) int {
			l.PushString(p.TargetPortal)
			return 1
		}},
		{Name: "message", Function: func(l *golua.State) int {
			in.Message(golua.CheckString(l, 2))
			return 0
		}},
		{Name: "playPortalSound", Function: func(l *golua.State) int {
			in.PlayPortalSound()
			return 0
		}},
		{Name: "warp", Function: func(l *golua.State) int {
			mapID := golua.CheckInteger(l, 2)
			target := golua.OptString(l, 3, "")
			if err := in.Warp(mapID, target); err != nil {
				golua.Errorf(l, "%s", err.Error())
			}
			return 0
		}},
	}, 0)
}
