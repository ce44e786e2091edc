// Package app wires configuration, dataset generation, the benchmark
// harness and presentation into the accbench command.
package app
