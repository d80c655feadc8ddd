package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/agbru/aggbench/internal/aggregate"
	apperrors "github.com/agbru/aggbench/internal/errors"
)

const namespace = "aggbench"

// Recorder collects benchmark measurements in a private Prometheus registry
// so that they can be exported as a node-exporter textfile after the run.
type Recorder struct {
	registry *prometheus.Registry

	runDuration *prometheus.HistogramVec
	runsTotal   *prometheus.CounterVec
	minDuration *prometheus.GaugeVec
	partitions  *prometheus.GaugeVec
	result      *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with its metrics registered. Go runtime
// metrics are included.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of a single aggregation run.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"strategy", "threads"}),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Number of aggregation runs performed.",
		}, []string{"strategy"}),
		minDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "min_duration_seconds",
			Help:      "Minimum run duration of the last benchmark.",
		}, []string{"strategy", "threads"}),
		partitions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "partitions",
			Help:      "Effective number of partitions or workers used.",
		}, []string{"strategy"}),
		result: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "result",
			Help:      "Reported aggregation metrics of the last benchmark.",
		}, []string{"strategy", "metric"}),
	}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		r.runDuration,
		r.runsTotal,
		r.minDuration,
		r.partitions,
		r.result,
	)
	return r
}

// ObserveRun records one timed run.
func (r *Recorder) ObserveRun(strategy string, threads int, d time.Duration) {
	r.runDuration.WithLabelValues(strategy, strconv.Itoa(threads)).Observe(d.Seconds())
	r.runsTotal.WithLabelValues(strategy).Inc()
}

// ObserveResult records the outcome of a whole benchmark.
func (r *Recorder) ObserveResult(strategy string, threads int, minDuration time.Duration, m aggregate.Metrics) {
	r.minDuration.WithLabelValues(strategy, strconv.Itoa(threads)).Set(minDuration.Seconds())
	r.partitions.WithLabelValues(strategy).Set(float64(threads))
	r.result.WithLabelValues(strategy, "mode").Set(m.Mode)
	r.result.WithLabelValues(strategy, "stddev").Set(m.StdDev)
	r.result.WithLabelValues(strategy, "sum").Set(m.Sum)
}

// Gatherer exposes the underlying registry.
func (r *Recorder) Gatherer() prometheus.Gatherer { return r.registry }

// WriteTextfile writes all metrics to path in the Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return apperrors.ResourceError{Resource: path, Cause: err}
	}
	return nil
}
