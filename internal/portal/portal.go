// Package portal holds the game-side types a portal script sees: the portal
// being used, the actor using it, and the bridge back into the game engine.
package portal

import "fmt"

// Portal is a map transition point. ScriptName selects the portal script; an
// empty ScriptName means the portal carries no script.
type Portal struct {
	ID           int
	Name         string
	ScriptName   string
	MapID        int
	TargetMapID  int
	TargetPortal string
}

// HasScript reports whether the portal is wired to a script.
func (p *Portal) HasScript() bool {
	return p != nil && p.ScriptName != ""
}

// String returns a short description used in logs.
func (p *Portal) String() string {
	if p == nil {
		return "Portal(nil)"
	}
	return fmt.Sprintf("Portal(id=%d, name=%s, script=%s, map=%d)", p.ID, p.Name, p.ScriptName, p.MapID)
}

// ToMap converts the portal into the namespaced data handed to data-only script
// engines.
func (p *Portal) ToMap() map[string]any {
	if p == nil {
		return map[string]any{}
	}
	return map[string]any{
		"id":            p.ID,
		"name":          p.Name,
		"script":        p.ScriptName,
		"map_id":        p.MapID,
		"target_map_id": p.TargetMapID,
		"target_portal": p.TargetPortal,
	}
}
