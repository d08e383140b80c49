package portal

// Actor is the entity interacting with a portal, usually a player character.
type Actor interface {
	// Name returns the display name of the actor.
	Name() string

	// IsPrivileged reports elevated (GM/debug) access.
	IsPrivileged() bool

	// DropMessage delivers a short status line to this actor only.
	DropMessage(msg string)
}

// actorMap converts an optional actor into script data. A missing actor is
// represented with present=false so scripts never need to handle None.
func actorMap(a Actor) map[string]any {
	if a == nil {
		return map[string]any{
			"present": false,
			"name":    "",
			"gm":      false,
		}
	}
	return map[string]any{
		"present": true,
		"name":    a.Name(),
		"gm":      a.IsPrivileged(),
	}
}
