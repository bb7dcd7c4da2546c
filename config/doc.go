// Package config provides configuration loading and validation for
// applications built on rxkit.
//
// It uses Viper to layer a config.yml file, the process environment, and
// an optional .env file, then unmarshals the merged result into an
// application config struct via mapstructure tags.
//
// # Usage
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Mongo mongo.Config `yaml:"mongo" mapstructure:"mongo"`
//	}
//
//	var cfg AppConfig
//	err := config.LoadConfig("myapp", &cfg)
//
// Environment variables override file values using underscore-separated
// paths (e.g. MONGO_URI maps to the mongo.uri key).
package config
