package portal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBridge struct {
	NopBridge
	err error
}

func (f failingBridge) Warp(Actor, int, string) error { return f.err }

func TestInteraction_Data(t *testing.T) {
	t.Parallel()

	p := &Portal{ID: 3, Name: "in00", ScriptName: "warpTower", MapID: 100, TargetMapID: 200, TargetPortal: "out00"}

	t.Run("with actor", func(t *testing.T) {
		in := NewInteraction(NewPlayer("alice", true), p, nil)
		data := in.Data()

		player, ok := data["player"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, true, player["present"])
		assert.Equal(t, "alice", player["name"])
		assert.Equal(t, true, player["gm"])

		portalData, ok := data["portal"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "warpTower", portalData["script"])
		assert.Equal(t, 100, portalData["map_id"])
		assert.Equal(t, "out00", portalData["target_portal"])
	})

	t.Run("without actor", func(t *testing.T) {
		in := NewInteraction(nil, p, nil)
		player, ok := in.Data()["player"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, false, player["present"])
		assert.Empty(t, in.PlayerName())
		assert.False(t, in.IsPrivileged())
	})
}

func TestInteraction_Apply(t *testing.T) {
	t.Parallel()

	t.Run("runs actions in order", func(t *testing.T) {
		player := NewPlayer("bob", false)
		rec := &Recorder{}
		in := NewInteraction(player, &Portal{ScriptName: "x"}, rec)

		err := in.Apply([]Action{
			{Kind: ActionMessage, Text: "hello"},
			{Kind: ActionSound},
			{Kind: ActionWarp, MapID: 910000000, PortalName: "sp"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"hello"}, player.Messages())
		assert.Equal(t, []Action{
			{Kind: ActionSound},
			{Kind: ActionWarp, MapID: 910000000, PortalName: "sp"},
		}, rec.Actions())
	})

	t.Run("unknown action", func(t *testing.T) {
		in := NewInteraction(NewPlayer("bob", false), nil, nil)
		err := in.Apply([]Action{{Kind: "dance"}})
		require.ErrorIs(t, err, ErrUnknownAction)
	})

	t.Run("warp without actor", func(t *testing.T) {
		in := NewInteraction(nil, nil, &Recorder{})
		err := in.Apply([]Action{{Kind: ActionWarp, MapID: 1}})
		require.ErrorIs(t, err, ErrNoActor)
	})

	t.Run("bridge failure stops processing", func(t *testing.T) {
		boom := errors.New("map is closed")
		player := NewPlayer("bob", false)
		in := NewInteraction(player, nil, failingBridge{err: boom})
		err := in.Apply([]Action{
			{Kind: ActionWarp, MapID: 1},
			{Kind: ActionMessage, Text: "never"},
		})
		require.ErrorIs(t, err, boom)
		assert.Empty(t, player.Messages())
	})
}

func TestPortal_String(t *testing.T) {
	t.Parallel()

	var nilPortal *Portal
	assert.Equal(t, "Portal(nil)", nilPortal.String())
	assert.False(t, nilPortal.HasScript())

	p := &Portal{ID: 1, Name: "in00", ScriptName: "warpTower", MapID: 5}
	assert.True(t, p.HasScript())
	assert.Equal(t, "Portal(id=1, name=in00, script=warpTower, map=5)", p.String())
}

func TestAction_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `message("hi")`, Action{Kind: ActionMessage, Text: "hi"}.String())
	assert.Equal(t, "warp(100)", Action{Kind: ActionWarp, MapID: 100}.String())
	assert.Equal(t, "warp(100, sp)", Action{Kind: ActionWarp, MapID: 100, PortalName: "sp"}.String())
	assert.Equal(t, "sound()", Action{Kind: ActionSound}.String())
}
