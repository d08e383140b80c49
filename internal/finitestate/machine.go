// Package finitestate wraps go-fsm with the lifecycle states shared by the
// portalscripts runnables.
package finitestate

import (
	"context"
	"log/slog"

	"github.com/robbyt/go-fsm"
)

const (
	StatusNew       = fsm.StatusNew
	StatusBooting   = fsm.StatusBooting
	StatusRunning   = fsm.StatusRunning
	StatusReloading = fsm.StatusReloading
	StatusStopping  = fsm.StatusStopping
	StatusStopped   = fsm.StatusStopped
	StatusError     = fsm.StatusError
	StatusUnknown   = fsm.StatusUnknown
)

// TypicalTransitions allows New -> Booting -> Running <-> Reloading, then
// Stopping -> Stopped, with Error reachable from every state.
var TypicalTransitions = fsm.TypicalTransitions

// Machine is the subset of go-fsm used by runnables.
type Machine interface {
	Transition(state string) error
	TransitionBool(state string) bool
	TransitionIfCurrentState(currentState, newState string) error
	SetState(state string) error
	GetState() string

	// GetStateChan emits the state on every change until ctx is canceled.
	GetStateChan(ctx context.Context) <-chan string
}

// New returns a machine in StatusNew using TypicalTransitions.
func New(handler slog.Handler) (Machine, error) {
	return fsm.New(handler, StatusNew, TypicalTransitions)
}
