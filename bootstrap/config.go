package bootstrap

import "github.com/kbukum/rxkit/config"

// Config is the contract application config structs must satisfy.
// Embedding config.ServiceConfig provides GetServiceConfig and default
// implementations of ApplyDefaults and Validate, so a typical app config
// satisfies this interface with no extra code:
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Mongo mongo.Config `yaml:"mongo" mapstructure:"mongo"`
//	}
//
// Structs that add their own fields override ApplyDefaults and Validate
// and delegate to the embedded implementations first.
type Config interface {
	// GetServiceConfig exposes the base service fields (name, environment,
	// version, logging) regardless of the concrete config type.
	GetServiceConfig() *config.ServiceConfig

	// ApplyDefaults fills in zero-valued fields before validation.
	ApplyDefaults()

	// Validate reports the first configuration problem found.
	Validate() error
}
