package finitestate

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	m, err := New(slog.Default().Handler())
	require.NoError(t, err)
	assert.Equal(t, StatusNew, m.GetState())
}

func TestLifecycle(t *testing.T) {
	t.Parallel()

	m, err := New(slog.Default().Handler())
	require.NoError(t, err)

	for _, next := range []string{StatusBooting, StatusRunning, StatusReloading, StatusRunning, StatusStopping, StatusStopped} {
		require.NoError(t, m.Transition(next), "to %s", next)
		assert.Equal(t, next, m.GetState())
	}
}

func TestInvalidTransition(t *testing.T) {
	t.Parallel()

	m, err := New(slog.Default().Handler())
	require.NoError(t, err)

	require.Error(t, m.Transition(StatusReloading))
	assert.False(t, m.TransitionBool(StatusRunning))
	assert.Equal(t, StatusNew, m.GetState())

	require.Error(t, m.TransitionIfCurrentState(StatusRunning, StatusReloading))
}

func TestGetStateChan(t *testing.T) {
	t.Parallel()

	m, err := New(slog.Default().Handler())
	require.NoError(t, err)

	ch := m.GetStateChan(t.Context())
	assert.Equal(t, StatusNew, <-ch)

	require.NoError(t, m.Transition(StatusBooting))
	assert.Equal(t, StatusBooting, <-ch)
}
