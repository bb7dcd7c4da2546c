package mongo

import (
	"time"

	"github.com/kbukum/rxkit/validation"
)

// Config holds MongoDB connection configuration.
type Config struct {
	// URI is the MongoDB connection string (mongodb:// or mongodb+srv://).
	URI string `yaml:"uri" mapstructure:"uri" validate:"required,startswith=mongodb"`

	// Database is the database name queries run against.
	Database string `yaml:"database" mapstructure:"database" validate:"required"`

	// AppName is reported to the server in the connection handshake.
	AppName string `yaml:"app_name" mapstructure:"app_name"`

	// MaxPoolSize is the maximum number of connections in the pool.
	MaxPoolSize uint64 `yaml:"max_pool_size" mapstructure:"max_pool_size"`

	// MinPoolSize is the minimum number of connections kept in the pool.
	MinPoolSize uint64 `yaml:"min_pool_size" mapstructure:"min_pool_size"`

	// ConnectTimeout bounds the initial connection establishment (e.g. "10s").
	ConnectTimeout time.Duration `yaml:"connect_timeout" mapstructure:"connect_timeout"`

	// Timeout is the client-wide default for single operations. Zero means
	// no client-side limit; per-query limits are set with WithMaxTime.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// ReadPreference selects which servers queries are routed to.
	ReadPreference string `yaml:"read_preference" mapstructure:"read_preference" validate:"omitempty,oneof=primary primaryPreferred secondary secondaryPreferred nearest"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.AppName == "" {
		c.AppName = "rxkit"
	}
	if c.MaxPoolSize == 0 {
		c.MaxPoolSize = 100
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 10 * time.Second
	}
	if c.ReadPreference == "" {
		c.ReadPreference = "primary"
	}
}

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
