package polyscript

import (
	"testing"

	"github.com/atlanticdynamic/portalscripts/internal/portal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOutcome(t *testing.T) {
	t.Parallel()

	t.Run("bool", func(t *testing.T) {
		ok, actions, err := decodeOutcome(true)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, actions)
	})

	t.Run("full map", func(t *testing.T) {
		ok, actions, err := decodeOutcome(map[string]any{
			"handled": true,
			"message": "hi",
			"sound":   true,
			"warp":    map[string]any{"map": int64(100), "portal": "sp"},
		})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []portal.Action{
			{Kind: portal.ActionMessage, Text: "hi"},
			{Kind: portal.ActionSound},
			{Kind: portal.ActionWarp, MapID: 100, PortalName: "sp"},
		}, actions)
	})

	t.Run("sound false is skipped", func(t *testing.T) {
		_, actions, err := decodeOutcome(map[string]any{"handled": false, "sound": false})
		require.NoError(t, err)
		assert.Empty(t, actions)
	})

	t.Run("float map id", func(t *testing.T) {
		_, actions, err := decodeOutcome(map[string]any{"handled": true, "warp": map[string]any{"map": float64(7)}})
		require.NoError(t, err)
		assert.Equal(t, []portal.Action{{Kind: portal.ActionWarp, MapID: 7}}, actions)
	})

	invalid := []struct {
		name  string
		value any
	}{
		{"nil", nil},
		{"string", "yes"},
		{"missing handled", map[string]any{"message": "x"}},
		{"message not string", map[string]any{"handled": true, "message": 1}},
		{"sound not bool", map[string]any{"handled": true, "sound": "loud"}},
		{"warp not map", map[string]any{"handled": true, "warp": 5}},
		{"warp map not int", map[string]any{"handled": true, "warp": map[string]any{"map": 1.5}}},
		{"warp portal not string", map[string]any{"handled": true, "warp": map[string]any{"map": 1, "portal": 2}}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := decodeOutcome(tt.value)
			require.ErrorIs(t, err, ErrInvalidResult)
		})
	}
}
