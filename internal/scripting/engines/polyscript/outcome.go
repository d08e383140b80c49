package polyscript

import (
	"errors"
	"fmt"

	"github.com/atlanticdynamic/portalscripts/internal/portal"
)

// ErrInvalidResult indicates the entry function returned something other than
// a bool or an outcome map.
var ErrInvalidResult = errors.New("invalid portal script result")

// decodeOutcome converts the value returned by enter(ctx). A bool is the
// result. A map carries "handled" plus optional effects, applied in the order
// message, sound, warp:
//
//	{"handled": True, "message": "...", "sound": True, "warp": {"map": 100, "portal": "sp"}}
func decodeOutcome(v any) (bool, []portal.Action, error) {
	switch val := v.(type) {
	case bool:
		return val, nil, nil
	case map[string]any:
		return decodeOutcomeMap(val)
	default:
		return false, nil, fmt.Errorf("%w: got %T", ErrInvalidResult, v)
	}
}

func decodeOutcomeMap(m map[string]any) (bool, []portal.Action, error) {
	handled, ok := m["handled"].(bool)
	if !ok {
		return false, nil, fmt.Errorf("%w: \"handled\" must be a bool", ErrInvalidResult)
	}

	var actions []portal.Action

	if raw, present := m["message"]; present {
		text, ok := raw.(string)
		if !ok {
			return false, nil, fmt.Errorf("%w: \"message\" must be a string", ErrInvalidResult)
		}
		actions = append(actions, portal.Action{Kind: portal.ActionMessage, Text: text})
	}

	if raw, present := m["sound"]; present {
		sound, ok := raw.(bool)
		if !ok {
			return false, nil, fmt.Errorf("%w: \"sound\" must be a bool", ErrInvalidResult)
		}
		if sound {
			actions = append(actions, portal.Action{Kind: portal.ActionSound})
		}
	}

	if raw, present := m["warp"]; present {
		warp, err := decodeWarp(raw)
		if err != nil {
			return false, nil, err
		}
		actions = append(actions, warp)
	}

	return handled, actions, nil
}

func decodeWarp(raw any) (portal.Action, error) {
	w, ok := raw.(map[string]any)
	if !ok {
		return portal.Action{}, fmt.Errorf("%w: \"warp\" must be a map", ErrInvalidResult)
	}
	mapID, ok := toInt(w["map"])
	if !ok {
		return portal.Action{}, fmt.Errorf("%w: \"warp.map\" must be an integer", ErrInvalidResult)
	}
	action := portal.Action{Kind: portal.ActionWarp, MapID: mapID}
	if name, present := w["portal"]; present {
		s, ok := name.(string)
		if !ok {
			return portal.Action{}, fmt.Errorf("%w: \"warp.portal\" must be a string", ErrInvalidResult)
		}
		action.PortalName = s
	}
	return action, nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
