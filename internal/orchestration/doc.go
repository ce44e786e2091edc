// Package orchestration runs the benchmark trials and aggregates their
// timings for comparison. It decouples the measurement loop from
// presentation via the ProgressReporter and ResultPresenter interfaces.
package orchestration
