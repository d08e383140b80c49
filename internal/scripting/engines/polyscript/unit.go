package polyscript

import (
	"context"
	"fmt"

	"github.com/atlanticdynamic/portalscripts/internal/portal"
	"github.com/atlanticdynamic/portalscripts/internal/scripting"
	"github.com/robbyt/go-polyscript/platform"
	"github.com/robbyt/go-polyscript/platform/constants"
	"github.com/robbyt/go-polyscript/platform/data"
)

type unit struct {
	path      string
	declared  bool
	evaluator platform.Evaluator
}

// Entry implements scripting.Unit. Only the declared entry point is exposed.
func (u *unit) Entry(name string) (scripting.Handle, bool) {
	if !u.declared || name != scripting.EntryPoint {
		return nil, false
	}
	return &handle{unit: u}, true
}

type handle struct {
	unit *unit
}

// Enter evaluates the compiled program with the interaction data under ctx,
// then applies any effects the result requests through the bridge.
func (h *handle) Enter(ctx context.Context, in *portal.Interaction) (bool, error) {
	if in == nil {
		in = portal.NewInteraction(nil, nil, nil)
	}

	contextProvider := data.NewContextProvider(constants.EvalData)
	enrichedCtx, err := contextProvider.AddDataToContext(ctx, in.Data())
	if err != nil {
		return false, fmt.Errorf("failed to add interaction data: %w", err)
	}

	result, err := h.unit.evaluator.Eval(enrichedCtx)
	if err != nil {
		return false, err
	}

	handled, actions, err := decodeOutcome(result.Interface())
	if err != nil {
		return false, err
	}
	if err := in.Apply(actions); err != nil {
		return false, err
	}
	return handled, nil
}
