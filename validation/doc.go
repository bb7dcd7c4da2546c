// Package validation provides input and configuration validation for rxkit.
//
// Two styles are supported: a fluent Validator for hand-written checks,
// and tag-based struct validation backed by go-playground/validator.
// Both report failures as *ValidationError carrying per-field details.
//
// # Usage
//
//	err := validation.New().
//	    Required("uri", cfg.URI).
//	    Min("max_pool_size", int(cfg.MaxPoolSize), 0).
//	    Validate()
//
//	err := validation.Validate(cfg) // uses `validate:"..."` tags
package validation
