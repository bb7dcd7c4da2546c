package mongo

import (
	"context"
	"fmt"

	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/kbukum/rxkit/logger"
	"github.com/kbukum/rxkit/observability"
)

const meterName = "github.com/kbukum/rxkit/mongo"

// Database wraps a driver client scoped to a single logical database.
type Database struct {
	client  *driver.Client
	db      *driver.Database
	cfg     Config
	log     *logger.Logger
	metrics *observability.Metrics
}

// New connects a client and returns a Database handle. The connection is
// established eagerly but not verified; call Ping to check reachability.
func New(ctx context.Context, cfg Config, log *logger.Logger) (*Database, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("mongo config: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("mongo")

	rp, err := readPreference(cfg.ReadPreference)
	if err != nil {
		return nil, fmt.Errorf("mongo config: %w", err)
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(cfg.AppName).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetReadPreference(rp)
	if cfg.Timeout > 0 {
		opts.SetTimeout(cfg.Timeout)
	}

	client, err := driver.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	metrics, err := observability.NewMetrics(observability.Meter(meterName))
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo metrics: %w", err)
	}

	log.Info("MongoDB client created", map[string]interface{}{
		logger.FieldDatabase: cfg.Database,
		"pool_size":          cfg.MaxPoolSize,
		"app_name":           cfg.AppName,
	})

	return &Database{
		client:  client,
		db:      client.Database(cfg.Database),
		cfg:     cfg,
		log:     log,
		metrics: metrics,
	}, nil
}

// Ping verifies the server is reachable.
func (d *Database) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the underlying client.
func (d *Database) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// Name returns the database name.
func (d *Database) Name() string {
	return d.db.Name()
}

// Client returns the underlying driver client for operations the wrapper
// does not cover.
func (d *Database) Client() *driver.Client {
	return d.client
}

// Raw returns the underlying driver database.
func (d *Database) Raw() *driver.Database {
	return d.db
}

// Drop removes the database and all its collections.
func (d *Database) Drop(ctx context.Context) error {
	return d.db.Drop(ctx)
}

func readPreference(mode string) (*readpref.ReadPref, error) {
	switch mode {
	case "", "primary":
		return readpref.Primary(), nil
	case "primaryPreferred":
		return readpref.PrimaryPreferred(), nil
	case "secondary":
		return readpref.Secondary(), nil
	case "secondaryPreferred":
		return readpref.SecondaryPreferred(), nil
	case "nearest":
		return readpref.Nearest(), nil
	default:
		return nil, fmt.Errorf("unknown read preference %q", mode)
	}
}
