package scripting

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScriptError_Is(t *testing.T) {
	t.Parallel()

	cause := errors.New("unexpected token")
	err := newScriptError(ErrLoadFailure, "brokenGate", "portal/brokenGate.lua", cause)

	assert.ErrorIs(t, err, ErrLoadFailure)
	assert.ErrorIs(t, err, ErrScript)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), `"brokenGate"`)
	assert.Contains(t, err.Error(), "portal/brokenGate.lua")
	assert.Equal(t, "unexpected token", err.Detail())

	var se *ScriptError
	assert.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &se)
	assert.Equal(t, "brokenGate", se.Name)
}

func TestScriptError_NoCause(t *testing.T) {
	t.Parallel()

	err := newScriptError(ErrNotFound, "ghost", "portal/ghost.lua", nil)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, ErrNotFound.Error(), err.Detail())
	assert.Contains(t, err.Error(), "portal/ghost.lua")
}

func TestKindLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{nil, "none"},
		{newScriptError(ErrNotFound, "a", "p", nil), "not_found"},
		{newScriptError(ErrContractViolation, "a", "p", nil), "contract_violation"},
		{newScriptError(ErrLoadFailure, "a", "p", nil), "load_failure"},
		{newScriptError(ErrExecutionFailure, "a", "p", nil), "execution_failure"},
		{ErrNoScript, "no_script"},
		{errors.New("other"), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, KindLabel(tt.err))
		})
	}
}

func TestResourcePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "portal/warpTower.lua", ResourcePath("warpTower", ".lua"))
	assert.Equal(t, "portal/brokenGate.star", ResourcePath("brokenGate", ".star"))
}
