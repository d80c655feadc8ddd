package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/aggbench/internal/aggregate"
	"github.com/agbru/aggbench/internal/metrics"
	"github.com/agbru/aggbench/internal/sysmon"
)

// RunSample is the measurement of a single timed run.
type RunSample struct {
	// Index is the zero-based position of the run.
	Index int
	// Duration is the wall-clock time of the executor call.
	Duration time.Duration
	// Metrics are the figures that run produced.
	Metrics aggregate.Metrics
}

// BenchmarkResult is the outcome of one Measure call.
type BenchmarkResult struct {
	// Strategy is the executor name, e.g. "ThreadPool".
	Strategy string
	// Param is the raw concurrency parameter (split depth or worker count).
	Param int
	// Threads is the effective number of partitions or workers after clamping.
	Threads int
	// MinDuration is the fastest of all runs.
	MinDuration time.Duration
	// Metrics are taken from the final run.
	Metrics aggregate.Metrics
	// Totals are the merged accumulator of the final run.
	Totals aggregate.Accumulator
	// Runs holds every run in order.
	Runs []RunSample
	// Memory is the allocation activity across all runs.
	Memory metrics.MemoryDelta
	// Deterministic is false when a run's metrics drifted from the first run.
	Deterministic bool
	// System is the machine load while the runs executed. Filled in by the
	// caller; Measure leaves it zero.
	System sysmon.Stats
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Format  string
	Verbose bool
}

// RunUpdate is sent to the progress reporter after each run.
type RunUpdate struct {
	Run      int
	Total    int
	Duration time.Duration
}

// ProgressReporter defines the interface for displaying benchmark progress.
// This interface decouples the orchestration layer from the presentation
// layer.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed, then
	// calls wg.Done.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan RunUpdate, totalRuns int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan RunUpdate, totalRuns int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan RunUpdate, totalRuns int, out io.Writer) {
	f(wg, progressChan, totalRuns, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan RunUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		// Drain channel silently
	}
}

// ResultPresenter renders a finished benchmark.
type ResultPresenter interface {
	PresentResult(result BenchmarkResult, opts PresentationOptions, out io.Writer) error
}

// RunRecorder receives measurements for export.
type RunRecorder interface {
	ObserveRun(strategy string, threads int, d time.Duration)
	ObserveResult(strategy string, threads int, minDuration time.Duration, m aggregate.Metrics)
}
