package testutil

import (
	"context"

	"github.com/kbukum/rxkit/component"
)

// TestComponent extends component.Component with state management hooks
// used by tests. A test component can be rolled back to its initial state
// between cases (Reset) or checkpointed and rewound around a destructive
// operation (Snapshot/Restore).
type TestComponent interface {
	component.Component

	// Reset restores the component to its initial state.
	Reset(ctx context.Context) error

	// Snapshot captures the current state of the component.
	Snapshot(ctx context.Context) (interface{}, error)

	// Restore restores the component to a previously captured state.
	Restore(ctx context.Context, snapshot interface{}) error
}
