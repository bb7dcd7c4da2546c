package testutil_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kbukum/rxkit/component"
	"github.com/kbukum/rxkit/testutil"
)

// mockComponent is a minimal TestComponent used across the package tests.
type mockComponent struct {
	name        string
	started     bool
	stopped     bool
	resetCalled bool
	restoreData interface{}

	startErr    error
	stopErr     error
	resetErr    error
	snapshotErr error
	restoreErr  error
}

func newMockComponent(name string) *mockComponent {
	return &mockComponent{name: name}
}

func (m *mockComponent) Name() string { return m.name }

func (m *mockComponent) Start(ctx context.Context) error {
	if m.startErr != nil {
		return m.startErr
	}
	m.started = true
	m.stopped = false
	return nil
}

func (m *mockComponent) Stop(ctx context.Context) error {
	if m.stopErr != nil {
		return m.stopErr
	}
	m.stopped = true
	m.started = false
	return nil
}

func (m *mockComponent) Health(ctx context.Context) component.Health {
	status := component.StatusUnhealthy
	if m.started {
		status = component.StatusHealthy
	}
	return component.Health{Name: m.name, Status: status}
}

func (m *mockComponent) Reset(ctx context.Context) error {
	if m.resetErr != nil {
		return m.resetErr
	}
	m.resetCalled = true
	return nil
}

func (m *mockComponent) Snapshot(ctx context.Context) (interface{}, error) {
	if m.snapshotErr != nil {
		return nil, m.snapshotErr
	}
	return map[string]interface{}{m.name: "state"}, nil
}

func (m *mockComponent) Restore(ctx context.Context, snapshot interface{}) error {
	if m.restoreErr != nil {
		return m.restoreErr
	}
	m.restoreData = snapshot
	return nil
}

func TestComponentInterface(t *testing.T) {
	mock := newMockComponent("test")

	var _ component.Component = mock
	var _ testutil.TestComponent = mock
}

func TestComponentLifecycle(t *testing.T) {
	ctx := context.Background()
	mock := newMockComponent("test")

	if mock.started {
		t.Error("component should not be started initially")
	}

	if err := mock.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !mock.started {
		t.Error("component should be started after Start()")
	}

	health := mock.Health(ctx)
	if health.Status != component.StatusHealthy {
		t.Errorf("Health().Status = %q, want %q", health.Status, component.StatusHealthy)
	}

	if err := mock.Stop(ctx); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if !mock.stopped {
		t.Error("component should be stopped after Stop()")
	}
}

func TestComponentErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		setupErr  func(*mockComponent)
		operation func(*mockComponent) error
	}{
		{
			name:      "start error",
			setupErr:  func(m *mockComponent) { m.startErr = errors.New("start failed") },
			operation: func(m *mockComponent) error { return m.Start(ctx) },
		},
		{
			name:      "stop error",
			setupErr:  func(m *mockComponent) { m.stopErr = errors.New("stop failed") },
			operation: func(m *mockComponent) error { return m.Stop(ctx) },
		},
		{
			name:      "reset error",
			setupErr:  func(m *mockComponent) { m.resetErr = errors.New("reset failed") },
			operation: func(m *mockComponent) error { return m.Reset(ctx) },
		},
		{
			name:     "snapshot error",
			setupErr: func(m *mockComponent) { m.snapshotErr = errors.New("snapshot failed") },
			operation: func(m *mockComponent) error {
				_, err := m.Snapshot(ctx)
				return err
			},
		},
		{
			name:      "restore error",
			setupErr:  func(m *mockComponent) { m.restoreErr = errors.New("restore failed") },
			operation: func(m *mockComponent) error { return m.Restore(ctx, nil) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockComponent("test")
			tt.setupErr(mock)

			if err := tt.operation(mock); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
