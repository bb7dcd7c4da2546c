package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/rxkit/component"
	"github.com/kbukum/rxkit/logger"
	"github.com/kbukum/rxkit/observability"
	"github.com/kbukum/rxkit/version"
)

// App wires configuration, logging, telemetry, and component lifecycle
// into a uniform startup/shutdown sequence. The type parameter C is the
// application's config type; any struct embedding config.ServiceConfig
// satisfies the Config constraint.
//
// Example:
//
//	app, err := bootstrap.NewApp(&cfg, bootstrap.WithTracing(observability.TracerConfig{}))
//	app.RegisterComponent(mongo.NewComponent(cfg.Mongo, app.Logger))
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*AppConfig]) error {
//	    // a.Cfg is *AppConfig, fully typed
//	    return nil
//	})
//	app.Run(context.Background())
type App[C Config] struct {
	Name       string
	Version    string
	Cfg        C
	Components *component.Registry
	Logger     *logger.Logger
	Summary    *Summary

	gracefulTimeout time.Duration
	tracing         *observability.TracerConfig
	metrics         *observability.MeterConfig
	tracerProvider  *sdktrace.TracerProvider
	meterProvider   *sdkmetric.MeterProvider

	onConfigure []func(ctx context.Context, app *App[C]) error
	onStart     []Hook
	onReady     []Hook
	onStop      []Hook
}

// NewApp builds an application from a typed config. It applies defaults,
// validates, and initializes the logger. The version falls back to the
// binary's build stamp when the config leaves it empty.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	base := cfg.GetServiceConfig()

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		Components:      component.NewRegistry(),
		gracefulTimeout: 15 * time.Second,
	}
	if app.Version == "" {
		app.Version = version.Short()
	}

	o := resolveOptions(opts)
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	if o.tracing != nil {
		tc := fillTracerConfig(*o.tracing, app.Name, app.Version, base.Environment)
		app.tracing = &tc
	}
	if o.metrics != nil {
		mc := fillMeterConfig(*o.metrics, app.Name, app.Version, base.Environment)
		app.metrics = &mc
	}

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(base.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	app.Summary = NewSummary(app.Name, app.Version, base.Environment)
	return app, nil
}

// RegisterComponent adds a component to the application's registry.
// Components start in registration order, so register dependencies first.
func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// OnConfigure registers a callback for the configure phase. The callback
// receives the app with its typed config, after infrastructure has started.
func (a *App[C]) OnConfigure(fn func(ctx context.Context, app *App[C]) error) {
	a.onConfigure = append(a.onConfigure, fn)
}

// ReadyCheck verifies that every registered component reports healthy.
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	results := a.Components.HealthAll(ctx)
	var unhealthy []string
	for _, h := range results {
		if h.Status != component.StatusHealthy {
			detail := h.Name + "=" + string(h.Status)
			if h.Message != "" {
				detail += "(" + h.Message + ")"
			}
			unhealthy = append(unhealthy, detail)
		}
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("unhealthy components: %v", unhealthy)
	}
	return nil
}

// Run executes the full lifecycle for a long-running service: start
// telemetry and components, run hooks and configure callbacks, then block
// until a shutdown signal arrives and shut everything down gracefully.
func (a *App[C]) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	a.Logger.Info("Application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)

	return a.stop()
}

// RunTask executes a finite task with the full bootstrap lifecycle.
// Unlike Run, it does not block on shutdown signals: the task function
// runs to completion (or until SIGINT/SIGTERM cancels its context) and
// the application then shuts down. Use it for batch jobs and CLI tools
// that want the same config, logging, and component handling as a
// service but have a finite workflow.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.Info("Received signal, canceling task", map[string]interface{}{
				"signal": sig.String(),
			})
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskErr := task(taskCtx)

	if stopErr := a.stop(); stopErr != nil {
		if taskErr != nil {
			return taskErr
		}
		return stopErr
	}
	return taskErr
}

// startup is the initialization sequence shared by Run and RunTask.
func (a *App[C]) startup(ctx context.Context) error {
	start := time.Now()

	a.Logger.Info("Starting application", map[string]interface{}{
		"name":    a.Name,
		"version": a.Version,
	})

	if err := a.initTelemetry(ctx); err != nil {
		return fmt.Errorf("telemetry initialization failed: %w", err)
	}

	if err := a.initialize(ctx); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	if err := a.configure(ctx); err != nil {
		return fmt.Errorf("configuration failed: %w", err)
	}

	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := runHooks(ctx, a.onReady); err != nil {
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	a.Summary.SetStartupDuration(time.Since(start))
	a.DisplaySummary()

	return nil
}

// initTelemetry sets up the tracer and meter providers when enabled.
// The OTLP exporters connect lazily, so this succeeds without a collector.
func (a *App[C]) initTelemetry(ctx context.Context) error {
	if a.tracing != nil {
		tp, err := observability.InitTracer(ctx, *a.tracing)
		if err != nil {
			return fmt.Errorf("init tracer: %w", err)
		}
		a.tracerProvider = tp
		a.Logger.Info("Tracing enabled", map[string]interface{}{
			"endpoint":    a.tracing.Endpoint,
			"sample_rate": a.tracing.SampleRate,
		})
	}
	if a.metrics != nil {
		mp, err := observability.InitMeter(ctx, *a.metrics)
		if err != nil {
			return fmt.Errorf("init meter: %w", err)
		}
		a.meterProvider = mp
		a.Logger.Info("Metrics enabled", map[string]interface{}{
			"endpoint": a.metrics.Endpoint,
			"interval": a.metrics.Interval.String(),
		})
	}
	return nil
}

// initialize starts all registered components in order.
func (a *App[C]) initialize(ctx context.Context) error {
	a.Logger.Info("Phase 1: Starting components")

	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("failed to start components: %w", err)
	}

	for _, c := range a.Components.All() {
		a.Summary.TrackComponent(c.Name(), "started", true)
	}

	a.Logger.Info("Phase 1: All components started")
	return nil
}

// configure runs registered configuration callbacks.
func (a *App[C]) configure(ctx context.Context) error {
	if len(a.onConfigure) == 0 {
		return nil
	}

	a.Logger.Info("Phase 2: Running configuration callbacks", map[string]interface{}{
		"count": len(a.onConfigure),
	})

	for _, fn := range a.onConfigure {
		if err := fn(ctx, a); err != nil {
			return err
		}
	}

	a.Logger.Info("Phase 2: Configuration complete")
	return nil
}

// DisplaySummary prints the startup summary, folding in details from
// components that implement component.Describable.
func (a *App[C]) DisplaySummary() {
	a.Summary.Collect(context.Background(), a.Components)
	a.Summary.DisplaySummary(a.Components)
}

// WaitForSignal blocks until an interrupt/terminate signal or context
// cancellation. It returns the received signal, or nil for cancellation.
func (a *App[C]) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("Received shutdown signal", map[string]interface{}{
			"signal": sig.String(),
		})
		return sig
	case <-ctx.Done():
		a.Logger.Info("Context canceled, shutting down")
		return nil
	}
}

// Shutdown performs graceful shutdown. Use it when managing the
// application's lifecycle without Run or RunTask.
func (a *App[C]) Shutdown(ctx context.Context) error {
	return a.stop()
}

// stop runs the shutdown sequence within the graceful timeout: onStop
// hooks, then components in reverse order, then telemetry providers so
// buffered spans and metrics get a final flush.
func (a *App[C]) stop() error {
	a.Logger.Info("Shutting down application", map[string]interface{}{
		"timeout": a.gracefulTimeout.String(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var shutdownErr error

	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("OnStop hook error", map[string]interface{}{
			"error": err.Error(),
		})
		shutdownErr = err
	}

	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("Shutdown completed with errors", map[string]interface{}{
			"error": err.Error(),
		})
		if shutdownErr == nil {
			shutdownErr = err
		}
	}

	if a.meterProvider != nil {
		if err := a.meterProvider.Shutdown(ctx); err != nil {
			a.Logger.Error("Meter provider shutdown error", map[string]interface{}{
				"error": err.Error(),
			})
			if shutdownErr == nil {
				shutdownErr = err
			}
		}
		a.meterProvider = nil
	}
	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			a.Logger.Error("Tracer provider shutdown error", map[string]interface{}{
				"error": err.Error(),
			})
			if shutdownErr == nil {
				shutdownErr = err
			}
		}
		a.tracerProvider = nil
	}

	a.Logger.Info("Application shutdown complete")
	return shutdownErr
}

// fillTracerConfig completes a tracer config with the app's identity and
// development-friendly transport defaults.
func fillTracerConfig(cfg observability.TracerConfig, name, ver, env string) observability.TracerConfig {
	if cfg.ServiceName == "" {
		cfg.ServiceName = name
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = ver
	}
	if cfg.Environment == "" {
		cfg.Environment = env
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4318"
		cfg.Insecure = true
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 1.0
	}
	return cfg
}

func fillMeterConfig(cfg observability.MeterConfig, name, ver, env string) observability.MeterConfig {
	if cfg.ServiceName == "" {
		cfg.ServiceName = name
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = ver
	}
	if cfg.Environment == "" {
		cfg.Environment = env
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4318"
		cfg.Insecure = true
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Second
	}
	return cfg
}
