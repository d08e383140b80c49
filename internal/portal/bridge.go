package portal

// Bridge is the game-engine side of an interaction. Scripts affect game state
// only through it.
type Bridge interface {
	// Warp moves the actor to mapID, optionally to a named portal on that map.
	Warp(actor Actor, mapID int, portalName string) error

	// PlayPortalSound plays the portal transition sound for the actor.
	PlayPortalSound(actor Actor)
}

// NopBridge ignores every request.
type NopBridge struct{}

// Warp implements Bridge.
func (NopBridge) Warp(Actor, int, string) error { return nil }

// PlayPortalSound implements Bridge.
func (NopBridge) PlayPortalSound(Actor) {}
