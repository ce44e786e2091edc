// Package calibration finds the parallelism degree that sums the benchmark
// dataset fastest on this machine and caches it in a profile file so that
// later runs can reuse it without sweeping again.
package calibration
