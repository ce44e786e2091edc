// Package logging defines the Logger used by the benchmark and its zerolog
// implementation.
package logging
