package testutil_test

import (
	"context"
	"testing"

	"github.com/kbukum/rxkit/bridge"
	"github.com/kbukum/rxkit/component"
	"github.com/kbukum/rxkit/testutil"
)

func TestDocStoreSeedAndDocuments(t *testing.T) {
	store := testutil.NewDocStore("fixtures")
	store.Seed("users",
		testutil.Document{"name": "ada"},
		testutil.Document{"name": "grace"},
	)

	if got := store.Count("users"); got != 2 {
		t.Fatalf("Count(users) = %d, want 2", got)
	}

	docs := store.Documents("users")
	if docs[0]["name"] != "ada" || docs[1]["name"] != "grace" {
		t.Errorf("Documents(users) = %v, want seeded order", docs)
	}

	// Mutating the returned slice must not touch the store.
	docs[0]["name"] = "mallory"
	if got := store.Documents("users")[0]["name"]; got != "ada" {
		t.Errorf("store document changed through returned copy: %v", got)
	}
}

func TestDocStoreResetDropsInserts(t *testing.T) {
	store := testutil.NewDocStore("fixtures")
	store.Seed("users", testutil.Document{"name": "ada"})
	store.Insert("users", testutil.Document{"name": "eve"})

	if got := store.Count("users"); got != 2 {
		t.Fatalf("Count(users) = %d, want 2 before reset", got)
	}

	if err := store.Reset(context.Background()); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}

	if got := store.Count("users"); got != 1 {
		t.Errorf("Count(users) = %d, want 1 after reset", got)
	}
	if got := store.Documents("users")[0]["name"]; got != "ada" {
		t.Errorf("surviving document = %v, want seeded one", got)
	}
}

func TestDocStoreSnapshotRestore(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewDocStore("fixtures")
	store.Seed("users", testutil.Document{"name": "ada"})

	snapshot, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot() failed: %v", err)
	}

	store.Insert("users", testutil.Document{"name": "eve"})
	store.Insert("orders", testutil.Document{"total": 42})

	if err := store.Restore(ctx, snapshot); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}

	if got := store.Count("users"); got != 1 {
		t.Errorf("Count(users) = %d, want 1 after restore", got)
	}
	if got := store.Count("orders"); got != 0 {
		t.Errorf("Count(orders) = %d, want 0 after restore", got)
	}
}

func TestDocStoreRestoreRejectsForeignSnapshot(t *testing.T) {
	store := testutil.NewDocStore("fixtures")
	if err := store.Restore(context.Background(), "not a snapshot"); err == nil {
		t.Error("Restore() should reject snapshots it did not produce")
	}
}

func TestDocStoreHealth(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewDocStore("fixtures")

	if got := store.Health(ctx).Status; got != component.StatusUnhealthy {
		t.Errorf("Health().Status = %q before Start, want %q", got, component.StatusUnhealthy)
	}

	if err := store.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if got := store.Health(ctx).Status; got != component.StatusHealthy {
		t.Errorf("Health().Status = %q after Start, want %q", got, component.StatusHealthy)
	}

	if err := store.Stop(ctx); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if got := store.Health(ctx).Status; got != component.StatusUnhealthy {
		t.Errorf("Health().Status = %q after Stop, want %q", got, component.StatusUnhealthy)
	}
}

func TestDocStorePublisherIsCold(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewDocStore("fixtures")
	store.Seed("users", testutil.Document{"name": "ada"})

	pub := store.Publisher("users")

	// Documents inserted after the publisher was created are invisible to it.
	store.Insert("users", testutil.Document{"name": "eve"})

	docs, err := bridge.Collect(ctx, pub)
	if err != nil {
		t.Fatalf("Collect() failed: %v", err)
	}
	if len(docs) != 1 || docs[0]["name"] != "ada" {
		t.Errorf("Collect() = %v, want snapshot as of Publisher()", docs)
	}

	// A fresh publisher sees the insert.
	docs, err = bridge.Collect(ctx, store.Publisher("users"))
	if err != nil {
		t.Fatalf("Collect() failed: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("Collect() returned %d documents, want 2", len(docs))
	}
}

func TestDocStorePublisherEmptyCollection(t *testing.T) {
	store := testutil.NewDocStore("fixtures")

	docs, err := bridge.Collect(context.Background(), store.Publisher("missing"))
	if err != nil {
		t.Fatalf("Collect() failed: %v", err)
	}
	if docs == nil {
		t.Error("Collect() over an unknown collection should yield an empty slice, not nil")
	}
	if len(docs) != 0 {
		t.Errorf("Collect() returned %d documents, want 0", len(docs))
	}
}
