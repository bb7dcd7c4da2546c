package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kbukum/rxkit/component"
)

// ComponentStatus is the tracked startup status of a single component.
type ComponentStatus struct {
	Name    string
	Status  string
	Healthy bool
}

// InfrastructureInfo describes an infrastructure component in detail,
// typically sourced from component.Describable.
type InfrastructureInfo struct {
	Name    string
	Type    string
	Status  string
	Details string
	Healthy bool
}

// Summary tracks the bootstrap process and renders it once startup
// completes.
type Summary struct {
	serviceName     string
	version         string
	environment     string
	startupDuration time.Duration
	components      []ComponentStatus
	infrastructure  []InfrastructureInfo
}

// NewSummary creates a bootstrap summary tracker.
func NewSummary(serviceName, version, environment string) *Summary {
	return &Summary{
		serviceName:    serviceName,
		version:        version,
		environment:    environment,
		components:     make([]ComponentStatus, 0),
		infrastructure: make([]InfrastructureInfo, 0),
	}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// TrackComponent adds a component's startup status to the summary.
func (s *Summary) TrackComponent(name, status string, healthy bool) {
	s.components = append(s.components, ComponentStatus{
		Name:    name,
		Status:  status,
		Healthy: healthy,
	})
}

// TrackInfrastructure adds an infrastructure row with detailed metadata.
func (s *Summary) TrackInfrastructure(name, componentType, status, details string, healthy bool) {
	s.infrastructure = append(s.infrastructure, InfrastructureInfo{
		Name:    name,
		Type:    componentType,
		Status:  status,
		Details: details,
		Healthy: healthy,
	})
}

// Collect gathers infrastructure rows from every registered component
// that implements component.Describable, pairing each description with
// the component's current health.
func (s *Summary) Collect(ctx context.Context, registry *component.Registry) {
	if registry == nil {
		return
	}

	health := make(map[string]component.Health)
	for _, h := range registry.HealthAll(ctx) {
		health[h.Name] = h
	}

	for _, c := range registry.All() {
		d, ok := c.(component.Describable)
		if !ok {
			continue
		}
		desc := d.Describe()
		if desc.Name == "" {
			desc.Name = c.Name()
		}
		h := health[c.Name()]
		s.TrackInfrastructure(desc.Name, desc.Type, string(h.Status), desc.Details,
			h.Status == component.StatusHealthy)
	}
}

// DisplaySummary prints the summary, including live health from the
// registry when one is given.
func (s *Summary) DisplaySummary(registry *component.Registry) {
	fmt.Printf("\n🚀 %s v%s (%s) started in %.2fs\n\n",
		s.serviceName, s.version, s.environment, s.startupDuration.Seconds())

	if len(s.infrastructure) > 0 {
		fmt.Printf("📊 Infrastructure\n")
		for i, inf := range s.infrastructure {
			fmt.Printf("   %s %s %s [%s]: %s\n",
				treePrefix(i, len(s.infrastructure)), statusIcon(inf.Status, inf.Healthy),
				inf.Name, inf.Type, inf.Details)
		}
		fmt.Printf("\n")
	}

	if len(s.components) > 0 {
		fmt.Printf("📦 Components\n")
		healthy := 0
		for i, c := range s.components {
			fmt.Printf("   %s %s %s (%s)\n",
				treePrefix(i, len(s.components)), statusIcon(c.Status, c.Healthy), c.Name, c.Status)
			if c.Healthy {
				healthy++
			}
		}
		fmt.Printf("\n")

		if healthy == len(s.components) {
			fmt.Printf("✅ All components healthy (%d/%d)\n", healthy, len(s.components))
		} else {
			fmt.Printf("⚠️  Some components have issues (%d/%d healthy)\n", healthy, len(s.components))
		}
	}

	if len(s.infrastructure) == 0 && len(s.components) == 0 {
		fmt.Printf("   └── No components registered\n")
	}

	if registry != nil {
		results := registry.HealthAll(context.Background())
		if len(results) > 0 {
			fmt.Printf("\n🏥 Health Check\n")
			for i, h := range results {
				msg := ""
				if h.Message != "" {
					msg = fmt.Sprintf(": %s", h.Message)
				}
				fmt.Printf("   %s %s %s is %s%s\n",
					treePrefix(i, len(results)), healthStatusIcon(h.Status),
					h.Name, strings.ToLower(string(h.Status)), msg)
			}
		}
	}

	fmt.Printf("\n")
}

func treePrefix(i, total int) string {
	if i == total-1 {
		return "└──"
	}
	return "├──"
}

func statusIcon(status string, healthy bool) string {
	if !healthy {
		return "❌"
	}
	switch status {
	case "started", "active", "connected", "healthy":
		return "✅"
	case "error", "failed":
		return "❌"
	default:
		return "⚠️"
	}
}

func healthStatusIcon(status component.HealthStatus) string {
	switch status {
	case component.StatusHealthy:
		return "✅"
	case component.StatusDegraded:
		return "⚠️"
	case component.StatusUnhealthy:
		return "❌"
	default:
		return "❓"
	}
}
