package scripting

import (
	"context"

	"github.com/atlanticdynamic/portalscripts/internal/portal"
	"github.com/stretchr/testify/mock"
)

// MockLoader is a mock implementation of the Loader interface for testing
type MockLoader struct {
	mock.Mock
}

// Load is a mock implementation of the Loader.Load method
func (m *MockLoader) Load(ctx context.Context, path string) (Unit, error) {
	args := m.Called(ctx, path)
	unit, _ := args.Get(0).(Unit)
	return unit, args.Error(1)
}

// stubUnit exposes a fixed set of entry behaviors
type stubUnit map[string]Handle

func (u stubUnit) Entry(name string) (Handle, bool) {
	h, ok := u[name]
	return h, ok
}

func unitReturning(result bool) stubUnit {
	return stubUnit{
		EntryPoint: HandleFunc(func(context.Context, *portal.Interaction) (bool, error) {
			return result, nil
		}),
	}
}

func unitWith(h HandleFunc) stubUnit {
	return stubUnit{EntryPoint: h}
}
