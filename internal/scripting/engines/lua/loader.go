// Package lua loads portal scripts written in Lua.
//
// A Lua portal script is a chunk that defines a global function:
//
//	function enter(pi)
//	    pi:playPortalSound()
//	    pi:warp(100000000, "sp")
//	    return true
//	end
package lua

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	golua "github.com/Shopify/go-lua"
	"github.com/atlanticdynamic/portalscripts/internal/scripting"
)

// Extension is the file extension of Lua portal scripts.
const Extension = ".lua"

var _ scripting.Loader = (*Loader)(nil)

// Loader compiles Lua portal scripts read from a filesystem. Each load gets a
// fresh Lua state.
type Loader struct {
	fsys   fs.FS
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogHandler sets the log handler.
func WithLogHandler(handler slog.Handler) Option {
	return func(l *Loader) {
		l.logger = slog.New(handler)
	}
}

// NewLoader creates a Loader rooted at fsys.
func NewLoader(fsys fs.FS, opts ...Option) *Loader {
	l := &Loader{
		fsys:   fsys,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.WithGroup("lua.Loader")
	return l
}

// Load reads, compiles and runs the chunk at path, returning the resulting
// Lua state as a unit.
func (l *Loader) Load(ctx context.Context, path string) (scripting.Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", scripting.ErrNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", scripting.ErrLoadFailure, err)
	}

	state := golua.NewState()
	golua.OpenLibraries(state)

	if err := golua.LoadBuffer(state, string(src), "@"+path, ""); err != nil {
		return nil, fmt.Errorf("%w: compile %s: %w", scripting.ErrLoadFailure, path, err)
	}
	if err := state.ProtectedCall(0, 0, 0); err != nil {
		return nil, fmt.Errorf("%w: run %s: %w", scripting.ErrLoadFailure, path, err)
	}

	l.logger.Debug("Lua chunk loaded", "path", path, "bytes", len(src))
	return newUnit(path, state), nil
}
