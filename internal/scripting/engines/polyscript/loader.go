// Package polyscript loads Starlark and Risor portal scripts through go-polyscript.
//
// A script declares a top-level enter function taking the interaction data:
//
//	def enter(pi):
//	    if not pi["player"]["present"]:
//	        return False
//	    return {"handled": True, "warp": {"map": pi["portal"]["target_map_id"]}}
//
// or, in Risor:
//
//	function enter(pi) {
//	    if (!pi["player"]["present"]) {
//	        return false
//	    }
//	    return {handled: true, warp: {map: pi["portal"]["target_map_id"]}}
//	}
//
// The compiled program calls enter(ctx) and its value is the script result.
package polyscript

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/atlanticdynamic/portalscripts/internal/portal"
	"github.com/atlanticdynamic/portalscripts/internal/scripting"
	"github.com/robbyt/go-polyscript/engines/risor"
	"github.com/robbyt/go-polyscript/engines/starlark"
	"github.com/robbyt/go-polyscript/platform"
	"github.com/robbyt/go-polyscript/platform/constants"
	"github.com/robbyt/go-polyscript/platform/data"
	"github.com/robbyt/go-polyscript/platform/script/loader"
)

var _ scripting.Loader = (*Loader)(nil)

// Loader compiles portal scripts of one language read from a filesystem.
type Loader struct {
	fsys    fs.FS
	lang    Language
	handler slog.Handler
	logger  *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogHandler sets the log handler, which is also handed to go-polyscript.
func WithLogHandler(handler slog.Handler) Option {
	return func(l *Loader) {
		l.handler = handler
	}
}

// NewLoader creates a Loader for lang rooted at fsys.
func NewLoader(fsys fs.FS, lang Language, opts ...Option) *Loader {
	l := &Loader{
		fsys:    fsys,
		lang:    lang,
		handler: slog.Default().Handler(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = slog.New(l.handler).WithGroup("polyscript.Loader").With("language", lang.String())
	return l
}

// Load reads, compiles and initializes the script at path. Top-level
// statements run once here, so a script that fails at module level is a load
// failure. Scripts that do not declare the entry function still compile, so
// syntax errors surface as load failures rather than contract violations.
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

	declared, err := declaresEntry(ctx, l.lang, path, src, scripting.EntryPoint)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", scripting.ErrLoadFailure, path, err)
	}

	module, err := l.compile(string(src) + l.lang.initTrailer())
	if err != nil {
		return nil, fmt.Errorf("%w: compile %s: %w", scripting.ErrLoadFailure, path, err)
	}
	if err := initialize(ctx, module); err != nil {
		return nil, fmt.Errorf("%w: initialize %s: %w", scripting.ErrLoadFailure, path, err)
	}

	evaluator := module
	if declared {
		evaluator, err = l.compile(string(src) + l.lang.trailer(scripting.EntryPoint))
		if err != nil {
			return nil, fmt.Errorf("%w: compile %s: %w", scripting.ErrLoadFailure, path, err)
		}
	}

	l.logger.Debug("Script compiled", "path", path, "declares_entry", declared)
	return &unit{
		path:      path,
		declared:  declared,
		evaluator: evaluator,
	}, nil
}

// initialize runs the module body once with an empty interaction.
func initialize(ctx context.Context, module platform.Evaluator) error {
	contextProvider := data.NewContextProvider(constants.EvalData)
	initCtx, err := contextProvider.AddDataToContext(ctx, portal.NewInteraction(nil, nil, nil).Data())
	if err != nil {
		return fmt.Errorf("failed to add interaction data: %w", err)
	}
	_, err = module.Eval(initCtx)
	return err
}

func (l *Loader) compile(code string) (platform.Evaluator, error) {
	scriptLoader, err := loader.NewFromString(code)
	if err != nil {
		return nil, fmt.Errorf("failed to create script loader: %w", err)
	}

	switch l.lang {
	case LanguageStarlark:
		ev, err := starlark.FromStarlarkLoader(l.handler, scriptLoader)
		if err != nil {
			return nil, err
		}
		return ev, nil
	case LanguageRisor:
		ev, err := risor.FromRisorLoader(l.handler, scriptLoader)
		if err != nil {
			return nil, err
		}
		return ev, nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", l.lang)
	}
}
