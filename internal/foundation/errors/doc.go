// Package errors provides the classified error primitives used across navexpand.
//
// Errors carry a broad category (config, validation, navigation, filesystem,
// internal), a severity, and a retry strategy, plus free-form context. The
// CLI adapter maps categories to process exit codes.
//
// Example usage:
//
//	err := errors.ConfigError("invalid file_pattern").
//		WithContext("pattern", pattern).
//		WithCause(compileErr).
//		Build()
package errors
