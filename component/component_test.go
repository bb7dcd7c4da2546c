package component

import (
	"context"
	"fmt"
	"testing"
)

// fakeComponent implements Component for testing.
type fakeComponent struct {
	name       string
	startErr   error
	stopErr    error
	health     Health
	startOrder *[]string
	stopOrder  *[]string
}

func (f *fakeComponent) Name() string { return f.name }

func (f *fakeComponent) Start(ctx context.Context) error {
	if f.startOrder != nil {
		*f.startOrder = append(*f.startOrder, f.name)
	}
	return f.startErr
}

func (f *fakeComponent) Stop(ctx context.Context) error {
	if f.stopOrder != nil {
		*f.stopOrder = append(*f.stopOrder, f.name)
	}
	return f.stopErr
}

func (f *fakeComponent) Health(ctx context.Context) Health {
	return f.health
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	c := &fakeComponent{name: "mongo", health: Health{Name: "mongo", Status: StatusHealthy}}

	if err := r.Register(c); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeComponent{name: "mongo"})

	if err := r.Register(&fakeComponent{name: "mongo"}); err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeComponent{name: "mongo"})

	got := r.Get("mongo")
	if got == nil {
		t.Fatal("expected to get registered component")
	}
	if got.Name() != "mongo" {
		t.Errorf("expected 'mongo', got %q", got.Name())
	}
}

func TestGetNotFound(t *testing.T) {
	r := NewRegistry()
	if got := r.Get("missing"); got != nil {
		t.Error("expected nil for unregistered component")
	}
}

func TestStartAll(t *testing.T) {
	r := NewRegistry()
	order := []string{}

	r.Register(&fakeComponent{
		name: "observability", startOrder: &order,
		health: Health{Name: "observability", Status: StatusHealthy},
	})
	r.Register(&fakeComponent{
		name: "mongo", startOrder: &order,
		health: Health{Name: "mongo", Status: StatusHealthy},
	})

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}

	if len(order) != 2 {
		t.Fatalf("expected 2 starts, got %d", len(order))
	}
	if order[0] != "observability" || order[1] != "mongo" {
		t.Errorf("expected start order [observability, mongo], got %v", order)
	}
}

func TestStartAllError(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeComponent{name: "mongo", startErr: fmt.Errorf("connection refused")})

	if err := r.StartAll(context.Background()); err == nil {
		t.Error("expected error from StartAll")
	}
}

func TestStopAllReverseOrder(t *testing.T) {
	r := NewRegistry()
	order := []string{}

	r.Register(&fakeComponent{name: "observability", stopOrder: &order, health: Health{Name: "observability", Status: StatusHealthy}})
	r.Register(&fakeComponent{name: "mongo", stopOrder: &order, health: Health{Name: "mongo", Status: StatusHealthy}})
	r.Register(&fakeComponent{name: "worker", stopOrder: &order, health: Health{Name: "worker", Status: StatusHealthy}})

	r.StartAll(context.Background())
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}

	if len(order) != 3 {
		t.Fatalf("expected 3 stops, got %d", len(order))
	}
	if order[0] != "worker" || order[1] != "mongo" || order[2] != "observability" {
		t.Errorf("expected reverse stop order [worker, mongo, observability], got %v", order)
	}
}

func TestStopAllSkipsUnstarted(t *testing.T) {
	r := NewRegistry()
	order := []string{}
	r.Register(&fakeComponent{name: "mongo", stopOrder: &order})

	// Never started, so nothing to stop.
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	if len(order) != 0 {
		t.Errorf("expected 0 stops for unstarted components, got %d", len(order))
	}
}

func TestStopAllWithErrors(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeComponent{
		name: "mongo", stopErr: fmt.Errorf("stop failed"),
		health: Health{Name: "mongo", Status: StatusHealthy},
	})
	r.StartAll(context.Background())

	if err := r.StopAll(context.Background()); err == nil {
		t.Error("expected error from StopAll")
	}
}

func TestStopAllContinuesPastFailures(t *testing.T) {
	r := NewRegistry()
	order := []string{}

	r.Register(&fakeComponent{name: "observability", stopOrder: &order})
	r.Register(&fakeComponent{name: "mongo", stopOrder: &order, stopErr: fmt.Errorf("stop failed")})

	r.StartAll(context.Background())
	r.StopAll(context.Background())

	if len(order) != 2 {
		t.Errorf("expected both components stopped despite the failure, got %v", order)
	}
}

func TestHealthAll(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeComponent{
		name:   "mongo",
		health: Health{Name: "mongo", Status: StatusHealthy, Message: "connected"},
	})
	r.Register(&fakeComponent{
		name:   "observability",
		health: Health{Name: "observability", Status: StatusUnhealthy, Message: "exporter timeout"},
	})

	results := r.HealthAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Status != StatusHealthy {
		t.Errorf("expected mongo healthy, got %s", results[0].Status)
	}
	if results[1].Status != StatusUnhealthy {
		t.Errorf("expected observability unhealthy, got %s", results[1].Status)
	}
}

func TestAll(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeComponent{name: "observability"})
	r.Register(&fakeComponent{name: "mongo"})

	all := r.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 components, got %d", len(all))
	}
	if all[0].Name() != "observability" || all[1].Name() != "mongo" {
		t.Errorf("expected registration order preserved, got [%s, %s]", all[0].Name(), all[1].Name())
	}
}
