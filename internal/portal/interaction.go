package portal

import (
	"errors"
	"fmt"
)

// ErrNoActor is returned by bridge operations that need an actor when none is present.
var ErrNoActor = errors.New("interaction has no actor")

// Interaction is the per-call value handed to a portal script. It is created
// for a single invocation and discarded afterwards. Actor may be nil.
type Interaction struct {
	Actor  Actor
	Portal *Portal
	Bridge Bridge
}

// NewInteraction creates an Interaction. A nil bridge is replaced with NopBridge.
func NewInteraction(actor Actor, p *Portal, bridge Bridge) *Interaction {
	if bridge == nil {
		bridge = NopBridge{}
	}
	return &Interaction{
		Actor:  actor,
		Portal: p,
		Bridge: bridge,
	}
}

// ScriptName returns the script identifier of the portal, or "" when there is none.
func (in *Interaction) ScriptName() string {
	if in == nil || in.Portal == nil {
		return ""
	}
	return in.Portal.ScriptName
}

// PlayerName returns the actor name, or "" when no actor is present.
func (in *Interaction) PlayerName() string {
	if in.Actor == nil {
		return ""
	}
	return in.Actor.Name()
}

// IsPrivileged reports whether an actor is present and privileged.
func (in *Interaction) IsPrivileged() bool {
	return in != nil && in.Actor != nil && in.Actor.IsPrivileged()
}

// Message sends text to the actor. It is a no-op without an actor.
func (in *Interaction) Message(text string) {
	if in.Actor == nil {
		return
	}
	in.Actor.DropMessage(text)
}

// Warp moves the actor through the bridge.
func (in *Interaction) Warp(mapID int, portalName string) error {
	if in.Actor == nil {
		return ErrNoActor
	}
	return in.bridge().Warp(in.Actor, mapID, portalName)
}

// PlayPortalSound plays the portal sound through the bridge.
func (in *Interaction) PlayPortalSound() {
	in.bridge().PlayPortalSound(in.Actor)
}

// Data returns the namespaced data view used by data-only script engines.
func (in *Interaction) Data() map[string]any {
	return map[string]any{
		"player": actorMap(in.Actor),
		"portal": in.Portal.ToMap(),
	}
}

// Apply runs actions in order, stopping at the first failure.
func (in *Interaction) Apply(actions []Action) error {
	for i, a := range actions {
		switch a.Kind {
		case ActionMessage:
			in.Message(a.Text)
		case ActionSound:
			in.PlayPortalSound()
		case ActionWarp:
			if err := in.Warp(a.MapID, a.PortalName); err != nil {
				return fmt.Errorf("action %d (%s): %w", i, a.Kind, err)
			}
		default:
			return fmt.Errorf("action %d: %w: %s", i, ErrUnknownAction, a.Kind)
		}
	}
	return nil
}

func (in *Interaction) bridge() Bridge {
	if in.Bridge == nil {
		return NopBridge{}
	}
	return in.Bridge
}
