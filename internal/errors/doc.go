// Package apperrors holds the error types of the benchmark and maps them to
// process exit codes. Wrapping types implement Unwrap so that errors.Is and
// errors.As see through them.
package apperrors
