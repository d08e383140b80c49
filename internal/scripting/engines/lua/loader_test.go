package lua

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/atlanticdynamic/portalscripts/internal/portal"
	"github.com/atlanticdynamic/portalscripts/internal/scripting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testScripts = fstest.MapFS{
	"portal/warpTower.lua": {Data: []byte(`
function enter(pi)
	return true
end
`)},
	"portal/closedGate.lua": {Data: []byte(`
function enter(pi)
	pi:message("The gate is sealed.")
	return false
end
`)},
	"portal/toTown.lua": {Data: []byte(`
function enter(pi)
	pi:playPortalSound()
	if pi:isGM() then
		pi:message("hello " .. pi:getPlayerName())
	end
	pi:warp(pi:getTargetMapId(), pi:getTargetPortal())
	return true
end
`)},
	"portal/noEntry.lua": {Data: []byte(`
local greeting = "nothing to see"
`)},
	"portal/notAFunction.lua": {Data: []byte(`
enter = 42
`)},
	"portal/brokenGate.lua": {Data: []byte(`
function enter(pi)
	return true
`)},
	"portal/explodes.lua": {Data: []byte(`
error("boom at load")
`)},
	"portal/raises.lua": {Data: []byte(`
function enter(pi)
	error("script raised")
end
`)},
	"portal/counter.lua": {Data: []byte(`
local count = 0
function enter(pi)
	count = count + 1
	return count % 2 == 1
end
`)},
}

func load(t *testing.T, path string) (scripting.Unit, error) {
	t.Helper()
	return NewLoader(testScripts).Load(t.Context(), path)
}

func entry(t *testing.T, path string) scripting.Handle {
	t.Helper()
	unit, err := load(t, path)
	require.NoError(t, err)
	h, ok := unit.Entry(scripting.EntryPoint)
	require.True(t, ok)
	return h
}

func TestLoader_Load_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "missing", path: "portal/ghost.lua", wantErr: scripting.ErrNotFound},
		{name: "syntax error", path: "portal/brokenGate.lua", wantErr: scripting.ErrLoadFailure},
		{name: "runtime error at load", path: "portal/explodes.lua", wantErr: scripting.ErrLoadFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit, err := load(t, tt.path)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, unit)
		})
	}
}

func TestLoader_Load_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(testScripts).Load(ctx, "portal/warpTower.lua")
	require.ErrorIs(t, err, context.Canceled)
}

func TestUnit_Entry(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"portal/noEntry.lua", "portal/notAFunction.lua"} {
		t.Run(path, func(t *testing.T) {
			unit, err := load(t, path)
			require.NoError(t, err)
			h, ok := unit.Entry(scripting.EntryPoint)
			assert.False(t, ok)
			assert.Nil(t, h)
		})
	}
}

func TestHandle_Enter(t *testing.T) {
	t.Parallel()

	p := &portal.Portal{Name: "in00", ScriptName: "toTown", MapID: 1, TargetMapID: 100000000, TargetPortal: "sp"}

	t.Run("returns true", func(t *testing.T) {
		ok, err := entry(t, "portal/warpTower.lua").Enter(t.Context(), portal.NewInteraction(nil, p, nil))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("returns false and messages the player", func(t *testing.T) {
		player := portal.NewPlayer("alice", false)
		ok, err := entry(t, "portal/closedGate.lua").Enter(t.Context(), portal.NewInteraction(player, p, nil))
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, []string{"The gate is sealed."}, player.Messages())
	})

	t.Run("drives the bridge", func(t *testing.T) {
		gm := portal.NewPlayer("gm", true)
		rec := &portal.Recorder{}
		ok, err := entry(t, "portal/toTown.lua").Enter(t.Context(), portal.NewInteraction(gm, p, rec))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{"hello gm"}, gm.Messages())
		assert.Equal(t, []portal.Action{
			{Kind: portal.ActionSound},
			{Kind: portal.ActionWarp, MapID: 100000000, PortalName: "sp"},
		}, rec.Actions())
	})

	t.Run("warp without player raises", func(t *testing.T) {
		ok, err := entry(t, "portal/toTown.lua").Enter(t.Context(), portal.NewInteraction(nil, p, &portal.Recorder{}))
		require.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("script error", func(t *testing.T) {
		ok, err := entry(t, "portal/raises.lua").Enter(t.Context(), portal.NewInteraction(nil, p, nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "script raised")
		assert.False(t, ok)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := entry(t, "portal/warpTower.lua").Enter(ctx, portal.NewInteraction(nil, p, nil))
		require.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("nil interaction", func(t *testing.T) {
		ok, err := entry(t, "portal/warpTower.lua").Enter(t.Context(), nil)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestHandle_Enter_StatePersistsAndIsSerialized(t *testing.T) {
	t.Parallel()

	h := entry(t, "portal/counter.lua")
	in := portal.NewInteraction(nil, &portal.Portal{ScriptName: "counter"}, nil)

	const calls = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	trueCount := 0
	for range calls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := h.Enter(context.Background(), in)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				trueCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, calls/2, trueCount)
}

func TestLoader_WithCache(t *testing.T) {
	t.Parallel()

	c, err := scripting.New(NewLoader(testScripts), Extension)
	require.NoError(t, err)

	assert.True(t, c.Invoke(t.Context(), portal.NewInteraction(nil, &portal.Portal{ScriptName: "warpTower"}, nil)))
	assert.False(t, c.Invoke(t.Context(), portal.NewInteraction(nil, &portal.Portal{ScriptName: "noEntry"}, nil)))
	assert.False(t, c.Invoke(t.Context(), portal.NewInteraction(nil, &portal.Portal{ScriptName: "brokenGate"}, nil)))
	assert.Equal(t, []string{"portal/warpTower.lua"}, c.Paths())
}
