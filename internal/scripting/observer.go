package scripting

import (
	"errors"

	"github.com/atlanticdynamic/portalscripts/internal/portal"
)

// DebugPrefix marks every message delivered to a privileged observer.
const DebugPrefix = "[debug] "

// Observer receives resolution progress for a single invocation. It is purely
// informational and cannot change the outcome.
type Observer interface {
	// Resolving is called before the cache is consulted.
	Resolving(name, path string)
	// Resolved is called once a handle is available, before it runs.
	Resolved(name string)
	// Failed is called once per failed invocation.
	Failed(name string, err error)
}

type nopObserver struct{}

func (nopObserver) Resolving(string, string) {}
func (nopObserver) Resolved(string)          {}
func (nopObserver) Failed(string, error)     {}

// actorObserver mirrors resolution progress to a privileged actor.
type actorObserver struct {
	actor portal.Actor
}

// NewActorObserver returns an Observer that sends debug lines to actor when it
// is present and privileged. Any other actor gets a no-op observer.
func NewActorObserver(actor portal.Actor) Observer {
	if actor == nil || !actor.IsPrivileged() {
		return nopObserver{}
	}
	return &actorObserver{actor: actor}
}

func (o *actorObserver) Resolving(name, path string) {
	o.actor.DropMessage(DebugPrefix + "loading portal script: " + name)
	o.actor.DropMessage(DebugPrefix + "script path: " + path)
}

func (o *actorObserver) Resolved(name string) {
	o.actor.DropMessage(DebugPrefix + "loaded portal script: " + name)
}

func (o *actorObserver) Failed(name string, err error) {
	if errors.Is(err, ErrNotFound) {
		o.actor.DropMessage(DebugPrefix + "portal script not found: " + name)
		return
	}
	o.actor.DropMessage(DebugPrefix + "portal script failed: " + name)

	detail := err.Error()
	var se *ScriptError
	if errors.As(err, &se) {
		detail = se.Detail()
	}
	o.actor.DropMessage(DebugPrefix + "error detail: " + detail)
}
