package scripting

import (
	"errors"
	"fmt"
)

var (
	// ErrScript is the base error for portal script failures.
	ErrScript = errors.New("portal script error")

	// ErrNotFound indicates no script exists at the derived resource path.
	ErrNotFound = fmt.Errorf("%w: not found", ErrScript)

	// ErrContractViolation indicates the script loaded but does not expose the entry point.
	ErrContractViolation = fmt.Errorf("%w: contract violation", ErrScript)

	// ErrLoadFailure indicates the script exists but could not be compiled or loaded.
	ErrLoadFailure = fmt.Errorf("%w: load failure", ErrScript)

	// ErrExecutionFailure indicates the entry point failed while running.
	ErrExecutionFailure = fmt.Errorf("%w: execution failure", ErrScript)

	// ErrNoScript indicates the interaction has no portal script to run.
	ErrNoScript = errors.New("portal has no script")
)

// ScriptError describes a failure for one script. Kind is one of ErrNotFound,
// ErrContractViolation, ErrLoadFailure or ErrExecutionFailure; errors.Is matches
// both Kind and the underlying cause.
type ScriptError struct {
	Kind error
	Name string
	Path string
	Err  error
}

func newScriptError(kind error, name, path string, err error) *ScriptError {
	return &ScriptError{Kind: kind, Name: name, Path: path, Err: err}
}

func (e *ScriptError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: script %q (%s)", e.Kind, e.Name, e.Path)
	}
	return fmt.Sprintf("%s: script %q (%s): %s", e.Kind, e.Name, e.Path, e.Err)
}

// Unwrap exposes the kind and the cause to errors.Is and errors.As.
func (e *ScriptError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Detail returns the underlying cause message, or the kind when there is none.
func (e *ScriptError) Detail() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Err.Error()
}

// KindLabel returns a short stable label for the failure kind, used in metrics.
func KindLabel(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrContractViolation):
		return "contract_violation"
	case errors.Is(err, ErrLoadFailure):
		return "load_failure"
	case errors.Is(err, ErrExecutionFailure):
		return "execution_failure"
	case errors.Is(err, ErrNoScript):
		return "no_script"
	default:
		return "unknown"
	}
}
