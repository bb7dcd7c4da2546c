// Package logger provides structured logging for rxkit components
// using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields. WithContext enriches a
// logger with the trace and span IDs of the OpenTelemetry span active in a
// context, tying driver logs to traces.
//
// # Configuration
//
//	logger:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("mongo")
//	log.Info("query completed", logger.Fields("collection", "users", "items", 42))
package logger
