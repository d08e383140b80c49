package lua

import (
	"context"
	"sync"

	golua "github.com/Shopify/go-lua"
	"github.com/atlanticdynamic/portalscripts/internal/portal"
	"github.com/atlanticdynamic/portalscripts/internal/scripting"
)

// unit is a loaded Lua chunk. A Lua state is single threaded, so every call
// into it holds mu.
type unit struct {
	path  string
	mu    sync.Mutex
	state *golua.State
}

func newUnit(path string, state *golua.State) *unit {
	return &unit{path: path, state: state}
}

// Entry implements scripting.Unit. The entry exists when the chunk defined a
// global function with that name.
func (u *unit) Entry(name string) (scripting.Handle, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.state.Global(name)
	isFunction := u.state.IsFunction(-1)
	u.state.Pop(1)

	if !isFunction {
		return nil, false
	}
	return &handle{unit: u, name: name}, true
}

type handle struct {
	unit *unit
	name string
}

// Enter calls the entry function with the interaction table and converts the
// first result with Lua truthiness. Lua code cannot be interrupted, so the
// context is only checked before the call.
func (h *handle) Enter(ctx context.Context, in *portal.Interaction) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if in == nil {
		in = portal.NewInteraction(nil, nil, nil)
	}

	h.unit.mu.Lock()
	defer h.unit.mu.Unlock()

	l := h.unit.state
	top := l.Top()
	defer l.SetTop(top)

	l.Global(h.name)
	pushInteraction(l, in)
	if err := l.ProtectedCall(1, 1, 0); err != nil {
		return false, err
	}
	return l.ToBoolean(-1), nil
}
