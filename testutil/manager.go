package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Manager handles the lifecycle of a group of test components: start them
// together, reset them between cases, stop them in reverse order at the end.
type Manager struct {
	ctx        context.Context
	components []TestComponent
	mu         sync.RWMutex
}

// NewManager creates a manager bound to the given context. The context is
// passed to every lifecycle call on the managed components.
func NewManager(ctx context.Context) *Manager {
	return &Manager{
		ctx:        ctx,
		components: make([]TestComponent, 0),
	}
}

// Add registers one or more test components with the manager.
func (m *Manager) Add(components ...TestComponent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.components = append(m.components, components...)
}

// Components returns all registered components in registration order.
func (m *Manager) Components() []TestComponent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]TestComponent, len(m.components))
	copy(result, m.components)
	return result
}

// Get retrieves a component by name, or nil if none matches.
func (m *Manager) Get(name string) TestComponent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, comp := range m.components {
		if comp.Name() == name {
			return comp
		}
	}
	return nil
}

// StartAll starts all registered components in registration order.
// If a component fails to start, the ones already started are stopped
// again in reverse order before the error is returned.
func (m *Manager) StartAll() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i, comp := range m.components {
		if err := comp.Start(m.ctx); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = m.components[j].Stop(m.ctx)
			}
			return fmt.Errorf("failed to start component %s: %w", comp.Name(), err)
		}
	}
	return nil
}

// StopAll stops all registered components in reverse order. Failures do
// not interrupt the shutdown; all errors are joined into the result.
func (m *Manager) StopAll() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var errs []error
	for i := len(m.components) - 1; i >= 0; i-- {
		comp := m.components[i]
		if err := comp.Stop(m.ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop component %s: %w", comp.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// ResetAll restores all registered components to their initial state.
func (m *Manager) ResetAll() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, comp := range m.components {
		if err := comp.Reset(m.ctx); err != nil {
			return fmt.Errorf("failed to reset component %s: %w", comp.Name(), err)
		}
	}
	return nil
}

// Cleanup is an alias for StopAll, convenient with defer or testing.T.Cleanup.
func (m *Manager) Cleanup() error {
	return m.StopAll()
}
