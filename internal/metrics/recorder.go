package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Trial outcome labels.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Recorder collects per-trial measurements into its own registry so that
// several recorders (one per run or per test) never collide.
type Recorder struct {
	registry    *prometheus.Registry
	duration    *prometheus.HistogramVec
	trials      *prometheus.CounterVec
	parallelism prometheus.Gauge
}

// NewRecorder builds a Recorder with a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "accbench",
			Name:      "trial_duration_seconds",
			Help:      "Wall-clock duration of a single summation trial.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 16),
		}, []string{"strategy"}),
		trials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "accbench",
			Name:      "trials_total",
			Help:      "Number of summation trials by strategy and outcome.",
		}, []string{"strategy", "status"}),
		parallelism: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "accbench",
			Name:      "parallelism",
			Help:      "Parallelism degree used by the parallel strategy.",
		}),
	}
	r.registry.MustRegister(r.duration, r.trials, r.parallelism)
	return r
}

// ObserveTrial records one trial. Failed trials are counted but their
// duration is not added to the histogram.
func (r *Recorder) ObserveTrial(strategy string, d time.Duration, err error) {
	if r == nil {
		return
	}
	if err != nil {
		r.trials.WithLabelValues(strategy, StatusError).Inc()
		return
	}
	r.trials.WithLabelValues(strategy, StatusOK).Inc()
	r.duration.WithLabelValues(strategy).Observe(d.Seconds())
}

// SetParallelism records the degree used by the parallel strategy.
func (r *Recorder) SetParallelism(p int) {
	if r == nil {
		return
	}
	r.parallelism.Set(float64(p))
}

// Registry exposes the underlying registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the current metrics in the text exposition format,
// suitable for the node_exporter textfile collector. The file is written
// atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

// Handler returns an HTTP handler serving the recorder's metrics.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
