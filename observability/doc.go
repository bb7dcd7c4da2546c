// Package observability provides OpenTelemetry tracing and metrics for
// rxkit components.
//
// InitTracer and InitMeter configure global OTLP HTTP exporters; the mongo
// package then records a span per query and per-query metrics (totals,
// durations, items emitted, active subscriptions) through the helpers here.
//
// # Usage
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("my-app"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanFind)
//	defer span.End()
package observability
