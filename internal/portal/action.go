package portal

import (
	"errors"
	"fmt"
)

// ErrUnknownAction is returned when an action kind is not recognized.
var ErrUnknownAction = errors.New("unknown action")

// ActionKind identifies a side effect requested by a data-only portal script.
type ActionKind string

const (
	ActionMessage ActionKind = "message"
	ActionWarp    ActionKind = "warp"
	ActionSound   ActionKind = "sound"
)

// Action is one side effect a script asks the engine to perform.
type Action struct {
	Kind       ActionKind
	Text       string
	MapID      int
	PortalName string
}

// String returns a compact description of the action.
func (a Action) String() string {
	switch a.Kind {
	case ActionMessage:
		return fmt.Sprintf("message(%q)", a.Text)
	case ActionWarp:
		if a.PortalName == "" {
			return fmt.Sprintf("warp(%d)", a.MapID)
		}
		return fmt.Sprintf("warp(%d, %s)", a.MapID, a.PortalName)
	case ActionSound:
		return "sound()"
	default:
		return fmt.Sprintf("%s()", a.Kind)
	}
}
