package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/rxkit/logger"
	"github.com/kbukum/rxkit/version"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development. The
// service version defaults to the build's version stamp.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: version.Short(),
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds OpenTelemetry metric instruments for driver observability.
type Metrics struct {
	queryTotal          metric.Int64Counter
	queryDuration       metric.Float64Histogram
	queryItems          metric.Int64Histogram
	subscriptionsActive metric.Int64UpDownCounter
	errorTotal          metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	queryTotal, err := meter.Int64Counter("query.total",
		metric.WithDescription("Total number of queries"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating query.total counter: %w", err)
	}

	queryDuration, err := meter.Float64Histogram("query.duration",
		metric.WithDescription("Duration of queries in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating query.duration histogram: %w", err)
	}

	queryItems, err := meter.Int64Histogram("query.items",
		metric.WithDescription("Items emitted per query"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating query.items histogram: %w", err)
	}

	subscriptionsActive, err := meter.Int64UpDownCounter("subscription.active",
		metric.WithDescription("Number of currently active subscriptions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating subscription.active gauge: %w", err)
	}

	errorTotal, err := meter.Int64Counter("error.total",
		metric.WithDescription("Total errors by type and component"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error.total counter: %w", err)
	}

	return &Metrics{
		queryTotal:          queryTotal,
		queryDuration:       queryDuration,
		queryItems:          queryItems,
		subscriptionsActive: subscriptionsActive,
		errorTotal:          errorTotal,
	}, nil
}

// RecordSubscribe increments the active subscription count.
func (m *Metrics) RecordSubscribe(ctx context.Context) {
	m.subscriptionsActive.Add(ctx, 1)
}

// RecordQueryEnd decrements active subscriptions and records the completed
// query with its outcome.
func (m *Metrics) RecordQueryEnd(ctx context.Context, collection, operation, status string, items int64, duration time.Duration) {
	m.subscriptionsActive.Add(ctx, -1)
	m.queryTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("collection", collection),
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
	m.queryDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("collection", collection),
		attribute.String("operation", operation),
	))
	m.queryItems.Record(ctx, items, metric.WithAttributes(
		attribute.String("collection", collection),
	))
}

// RecordError records an error by type and component.
func (m *Metrics) RecordError(ctx context.Context, errType, component string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", errType),
		attribute.String("component", component),
	))
}
