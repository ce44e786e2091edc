// Package metrics records benchmark measurements. Trial durations, outcomes
// and the parallelism degree go to a private Prometheus registry that can be
// exported as a node_exporter textfile or served over HTTP. Runtime memory
// snapshots bracket a run for the verbose report.
package metrics
