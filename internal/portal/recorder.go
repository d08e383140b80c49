package portal

import "sync"

var (
	_ Bridge = (*Recorder)(nil)
	_ Actor  = (*Player)(nil)
)

// Player is a simple Actor that keeps the messages it receives. It backs the
// CLI and tests.
type Player struct {
	PlayerName string
	GM         bool

	mu       sync.Mutex
	messages []string
}

// NewPlayer creates a Player.
func NewPlayer(name string, gm bool) *Player {
	return &Player{PlayerName: name, GM: gm}
}

// Name implements Actor.
func (p *Player) Name() string { return p.PlayerName }

// IsPrivileged implements Actor.
func (p *Player) IsPrivileged() bool { return p.GM }

// DropMessage implements Actor.
func (p *Player) DropMessage(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
}

// Messages returns a copy of every message received so far.
func (p *Player) Messages() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.messages))
	copy(out, p.messages)
	return out
}

// Recorder is a Bridge that records the engine-side effects it is asked for.
type Recorder struct {
	mu      sync.Mutex
	actions []Action
}

// Warp implements Bridge.
func (r *Recorder) Warp(_ Actor, mapID int, portalName string) error {
	r.record(Action{Kind: ActionWarp, MapID: mapID, PortalName: portalName})
	return nil
}

// PlayPortalSound implements Bridge.
func (r *Recorder) PlayPortalSound(Actor) {
	r.record(Action{Kind: ActionSound})
}

// Actions returns a copy of the recorded actions.
func (r *Recorder) Actions() []Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Action, len(r.actions))
	copy(out, r.actions)
	return out
}

func (r *Recorder) record(a Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, a)
}
