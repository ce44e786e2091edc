// Package server exposes the benchmark's Prometheus metrics over HTTP while
// a run is in progress, so that an external scraper can follow long
// benchmarks live.
package server
