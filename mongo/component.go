package mongo

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbukum/rxkit/component"
	"github.com/kbukum/rxkit/logger"
)

// Component wraps Database and implements component.Component for
// lifecycle management.
type Component struct {
	db  *Database
	cfg Config
	log *logger.Logger
}

// NewComponent creates a MongoDB component for use with the component
// registry.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Nop()
	}
	return &Component{
		cfg: cfg,
		log: log.WithComponent("mongo"),
	}
}

// Database returns the underlying *Database, or nil if not started.
func (c *Component) Database() *Database {
	return c.db
}

var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// Name returns the component name.
func (c *Component) Name() string { return "mongo" }

// Start connects the client and verifies connectivity.
func (c *Component) Start(ctx context.Context) error {
	db, err := New(ctx, c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("mongo start: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("mongo start ping: %w", err)
	}

	c.db = db
	c.log.Info("MongoDB component started")
	return nil
}

// Stop gracefully disconnects the client.
func (c *Component) Stop(ctx context.Context) error {
	if c.db == nil {
		return nil
	}
	c.log.Info("MongoDB component stopping")
	return c.db.Close(ctx)
}

// Health reports connectivity by pinging the server.
func (c *Component) Health(ctx context.Context) component.Health {
	if c.db == nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: "mongo not initialized",
		}
	}

	if err := c.db.Ping(ctx); err != nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: fmt.Sprintf("ping failed: %v", err),
		}
	}

	return component.Health{
		Name:   c.Name(),
		Status: component.StatusHealthy,
	}
}

// Describe returns infrastructure summary info for the startup display.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    "MongoDB",
		Type:    "mongo",
		Details: fmt.Sprintf("%s db=%s pool=%d", redactURI(c.cfg.URI), c.cfg.Database, c.cfg.MaxPoolSize),
	}
}

// redactURI strips credentials from a connection string for display.
func redactURI(uri string) string {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return uri
	}
	if _, host, found := strings.Cut(rest, "@"); found {
		return scheme + "://" + host
	}
	return uri
}
