// Package engines builds the script loaders backing the portal script cache.
package engines

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/atlanticdynamic/portalscripts/internal/scripting"
	"github.com/atlanticdynamic/portalscripts/internal/scripting/engines/lua"
	"github.com/atlanticdynamic/portalscripts/internal/scripting/engines/polyscript"
)

// Type identifies a scripting language.
type Type int

const (
	TypeUnspecified Type = iota
	TypeLua
	TypeStarlark
	TypeRisor
)

var (
	// ErrEngine is the base error for engine selection.
	ErrEngine = errors.New("engine error")

	// ErrInvalidEngineType indicates an unknown engine name or value.
	ErrInvalidEngineType = fmt.Errorf("%w: invalid engine type", ErrEngine)

	// ErrNilFS indicates no script filesystem was provided.
	ErrNilFS = fmt.Errorf("%w: script filesystem cannot be nil", ErrEngine)
)

// String returns the configuration name of the engine.
func (t Type) String() string {
	switch t {
	case TypeLua:
		return "lua"
	case TypeStarlark:
		return "starlark"
	case TypeRisor:
		return "risor"
	case TypeUnspecified:
		return "unspecified"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Extension returns the fixed script file extension, including the dot.
func (t Type) Extension() string {
	switch t {
	case TypeLua:
		return lua.Extension
	case TypeStarlark:
		return polyscript.ExtensionStarlark
	case TypeRisor:
		return polyscript.ExtensionRisor
	default:
		return ""
	}
}

// ParseType converts a configuration name into a Type. The empty string
// selects Lua.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "lua":
		return TypeLua, nil
	case "starlark", "star":
		return TypeStarlark, nil
	case "risor":
		return TypeRisor, nil
	default:
		return TypeUnspecified, fmt.Errorf("%w: %q", ErrInvalidEngineType, name)
	}
}

// New returns the loader for engine t reading scripts from fsys, along with
// the extension the cache must use.
func New(t Type, fsys fs.FS, handler slog.Handler) (scripting.Loader, string, error) {
	if fsys == nil {
		return nil, "", ErrNilFS
	}
	if handler == nil {
		handler = slog.Default().Handler()
	}

	switch t {
	case TypeLua:
		return lua.NewLoader(fsys, lua.WithLogHandler(handler)), t.Extension(), nil
	case TypeStarlark:
		return polyscript.NewLoader(fsys, polyscript.LanguageStarlark, polyscript.WithLogHandler(handler)), t.Extension(), nil
	case TypeRisor:
		return polyscript.NewLoader(fsys, polyscript.LanguageRisor, polyscript.WithLogHandler(handler)), t.Extension(), nil
	default:
		return nil, "", fmt.Errorf("%w: %s", ErrInvalidEngineType, t)
	}
}
