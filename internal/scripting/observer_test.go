package scripting

import (
	"errors"
	"testing"

	"github.com/atlanticdynamic/portalscripts/internal/portal"
	"github.com/stretchr/testify/assert"
)

func TestNewActorObserver(t *testing.T) {
	t.Parallel()

	t.Run("privileged actor receives debug lines", func(t *testing.T) {
		gm := portal.NewPlayer("gm", true)
		obs := NewActorObserver(gm)

		obs.Resolving("warpTower", "portal/warpTower.lua")
		obs.Resolved("warpTower")

		assert.Equal(t, []string{
			"[debug] loading portal script: warpTower",
			"[debug] script path: portal/warpTower.lua",
			"[debug] loaded portal script: warpTower",
		}, gm.Messages())
	})

	t.Run("not found", func(t *testing.T) {
		gm := portal.NewPlayer("gm", true)
		NewActorObserver(gm).Failed("ghost", newScriptError(ErrNotFound, "ghost", "portal/ghost.lua", nil))
		assert.Equal(t, []string{"[debug] portal script not found: ghost"}, gm.Messages())
	})

	t.Run("failure with detail", func(t *testing.T) {
		gm := portal.NewPlayer("gm", true)
		err := newScriptError(ErrLoadFailure, "brokenGate", "portal/brokenGate.lua", errors.New("syntax error"))
		NewActorObserver(gm).Failed("brokenGate", err)
		assert.Equal(t, []string{
			"[debug] portal script failed: brokenGate",
			"[debug] error detail: syntax error",
		}, gm.Messages())
	})

	t.Run("regular player gets nothing", func(t *testing.T) {
		player := portal.NewPlayer("p", false)
		obs := NewActorObserver(player)
		obs.Resolving("warpTower", "portal/warpTower.lua")
		obs.Failed("warpTower", errors.New("x"))
		assert.Empty(t, player.Messages())
	})

	t.Run("missing actor", func(t *testing.T) {
		obs := NewActorObserver(nil)
		assert.NotPanics(t, func() {
			obs.Resolving("a", "b")
			obs.Resolved("a")
			obs.Failed("a", errors.New("x"))
		})
	})
}
