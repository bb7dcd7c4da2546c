// Package testutil provides testing infrastructure for rxkit components.
//
// The package extends rxkit's component lifecycle pattern with
// testing-specific capabilities: automatic setup and teardown, state
// reset between cases, and snapshot/restore around destructive
// operations.
//
// # Quick Start
//
// Basic usage with automatic cleanup:
//
//	func TestMyFeature(t *testing.T) {
//	    store := testutil.NewDocStore("fixtures")
//	    store.Seed("users", testutil.Document{"name": "ada"})
//	    testutil.T(t).Setup(store)
//	    // store is stopped automatically when the test ends
//	}
//
// Manual cleanup:
//
//	cleanup, err := testutil.Setup(store)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer cleanup()
//
// Managing multiple components:
//
//	manager := testutil.NewManager(ctx)
//	manager.Add(usersStore, ordersStore)
//	manager.StartAll()
//	defer manager.Cleanup()
//
// # Architecture
//
// The TestComponent interface extends component.Component with three
// methods:
//
//   - Reset(ctx): restore the component to its initial state
//   - Snapshot(ctx): capture the current state
//   - Restore(ctx, snapshot): return to a captured state
//
// DocStore is the package's reference implementation: an in-memory
// document store whose collections are exposed as cold publishers, so
// stream and bridge behavior can be tested without a running database.
package testutil
