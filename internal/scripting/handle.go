// Package scripting resolves, caches and invokes portal scripts.
package scripting

import (
	"context"

	"github.com/atlanticdynamic/portalscripts/internal/portal"
)

// EntryPoint is the name of the single behavior a portal script must expose.
const EntryPoint = "enter"

// Handle is a loaded portal script that satisfies the entry contract. The
// boolean reports whether the portal interaction was handled.
type Handle interface {
	Enter(ctx context.Context, in *portal.Interaction) (bool, error)
}

// HandleFunc adapts a function to Handle.
type HandleFunc func(ctx context.Context, in *portal.Interaction) (bool, error)

// Enter implements Handle.
func (f HandleFunc) Enter(ctx context.Context, in *portal.Interaction) (bool, error) {
	return f(ctx, in)
}

// Unit is a loaded, compiled script before it has been checked against the
// entry contract.
type Unit interface {
	// Entry returns the named entry behavior, or false if the unit does not
	// expose it.
	Entry(name string) (Handle, bool)
}

// Loader loads the unit stored at a resource path. Missing resources are
// reported with an error matching ErrNotFound (or fs.ErrNotExist); compile and
// top-level runtime errors with ErrLoadFailure. Implementations must be safe
// for concurrent use.
type Loader interface {
	Load(ctx context.Context, path string) (Unit, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, path string) (Unit, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context, path string) (Unit, error) {
	return f(ctx, path)
}

// adapt performs the typed contract check. It fails closed.
func adapt(unit Unit) (Handle, bool) {
	if unit == nil {
		return nil, false
	}
	h, ok := unit.Entry(EntryPoint)
	if !ok || h == nil {
		return nil, false
	}
	return h, true
}
