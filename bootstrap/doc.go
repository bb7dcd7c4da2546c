// Package bootstrap orchestrates application lifecycle for services and
// tools built on rxkit.
//
// It ties together typed configuration, the global logger, optional
// OpenTelemetry tracing and metrics, and the component registry into one
// startup/shutdown sequence with lifecycle hooks.
//
// # Quick Start
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Mongo mongo.Config `yaml:"mongo" mapstructure:"mongo"`
//	}
//
//	var cfg AppConfig
//	if err := config.LoadConfig("myservice", &cfg); err != nil {
//	    log.Fatal(err)
//	}
//
//	app, err := bootstrap.NewApp(&cfg, bootstrap.WithTracing(observability.TracerConfig{}))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app.RegisterComponent(mongo.NewComponent(cfg.Mongo, app.Logger))
//	if err := app.Run(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
// Run blocks until SIGINT/SIGTERM and then shuts down gracefully. For
// batch jobs use RunTask, which runs a finite function with the same
// lifecycle around it.
package bootstrap
