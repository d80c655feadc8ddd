package orchestration

import (
	"context"
	"io"
	"runtime"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/aggbench/internal/errors"
	"github.com/agbru/aggbench/internal/executor"
	"github.com/agbru/aggbench/internal/logging"
	"github.com/agbru/aggbench/internal/metrics"
)

const (
	// DefaultRuns is the number of timed runs when Options.Runs is unset.
	DefaultRuns = 5
	// DefaultTolerance is the relative difference above which two runs'
	// metrics are reported as diverging.
	DefaultTolerance = 1e-9
)

var tracer = otel.Tracer("aggbench.orchestration")

// Options configure Measure. The zero value runs DefaultRuns times with no
// progress output, no recorder and a discarding logger.
type Options struct {
	Runs      int
	Tolerance float64
	Reporter  ProgressReporter
	Out       io.Writer
	Recorder  RunRecorder
	Logger    logging.Logger
}

func (o Options) withDefaults() Options {
	if o.Runs < 1 {
		o.Runs = DefaultRuns
	}
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.Reporter == nil {
		o.Reporter = NullProgressReporter{}
	}
	if o.Out == nil {
		o.Out = io.Discard
	}
	if o.Logger == nil {
		o.Logger = logging.Nop()
	}
	return o
}

// Measure runs exec over data opts.Runs times and keeps the minimum
// duration. Metrics come from the final run. The parameter is validated
// before the first run so that an invalid value never starts a goroutine.
func Measure(ctx context.Context, exec executor.Executor, data []float64, param int, opts Options) (BenchmarkResult, error) {
	opts = opts.withDefaults()
	if err := exec.Validate(param); err != nil {
		return BenchmarkResult{}, err
	}

	ctx, span := tracer.Start(ctx, "orchestration.Measure",
		trace.WithAttributes(
			attribute.String("strategy", exec.Name()),
			attribute.Int("param", param),
			attribute.Int("runs", opts.Runs),
			attribute.Int("dataset.size", len(data)),
		))
	defer span.End()

	progressChan := make(chan RunUpdate, opts.Runs)
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go opts.Reporter.DisplayProgress(&displayWg, progressChan, opts.Runs, opts.Out)

	result, err := runAll(ctx, exec, data, param, opts, progressChan)

	close(progressChan)
	displayWg.Wait()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return BenchmarkResult{}, err
	}
	span.SetAttributes(
		attribute.Int("threads", result.Threads),
		attribute.Int64("min_duration_us", result.MinDuration.Microseconds()),
	)
	if opts.Recorder != nil {
		opts.Recorder.ObserveResult(result.Strategy, result.Threads, result.MinDuration, result.Metrics)
	}
	return result, nil
}

func runAll(ctx context.Context, exec executor.Executor, data []float64, param int, opts Options, progressChan chan<- RunUpdate) (BenchmarkResult, error) {
	result := BenchmarkResult{
		Strategy:      exec.Name(),
		Param:         param,
		Runs:          make([]RunSample, 0, opts.Runs),
		Deterministic: true,
	}

	before := metrics.ReadMemory()
	for i := 0; i < opts.Runs; i++ {
		out, elapsed, err := measureOnce(ctx, exec, data, param, i)
		if err != nil {
			return BenchmarkResult{}, apperrors.WrapError(err, "run %d of %d", i+1, opts.Runs)
		}

		result.Runs = append(result.Runs, RunSample{Index: i, Duration: elapsed, Metrics: out.Metrics})
		if i == 0 || elapsed < result.MinDuration {
			result.MinDuration = elapsed
		}
		result.Threads = out.Partitions
		result.Metrics = out.Metrics
		result.Totals = out.Totals

		if i > 0 && !out.Metrics.Equal(result.Runs[0].Metrics, opts.Tolerance) {
			result.Deterministic = false
			opts.Logger.Warn("metrics differ between runs",
				logging.String("strategy", result.Strategy),
				logging.Int("run", i+1),
				logging.Float64("mode", out.Metrics.Mode),
				logging.Float64("first_mode", result.Runs[0].Metrics.Mode))
		}
		if opts.Recorder != nil {
			opts.Recorder.ObserveRun(result.Strategy, out.Partitions, elapsed)
		}
		opts.Logger.Debug("run finished",
			logging.String("strategy", result.Strategy),
			logging.Int("run", i+1),
			logging.Duration("elapsed", elapsed))
		progressChan <- RunUpdate{Run: i + 1, Total: opts.Runs, Duration: elapsed}
	}
	result.Memory = metrics.ReadMemory().Since(before)
	return result, nil
}

func measureOnce(ctx context.Context, exec executor.Executor, data []float64, param, index int) (executor.Outcome, time.Duration, error) {
	ctx, span := tracer.Start(ctx, "orchestration.run",
		trace.WithAttributes(attribute.Int("run.index", index)))
	defer span.End()

	out, elapsed, err := timedRun(ctx, exec, data, param)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return executor.Outcome{}, 0, err
	}
	span.SetAttributes(
		attribute.Int("partitions", out.Partitions),
		attribute.Int64("duration_us", elapsed.Microseconds()),
	)
	return out, elapsed, nil
}

// timedRun is kept out of line so the timed region is a real call that the
// compiler cannot interleave with the surrounding bookkeeping.
//
//go:noinline
func timedRun(ctx context.Context, exec executor.Executor, data []float64, param int) (executor.Outcome, time.Duration, error) {
	runtime.KeepAlive(data)
	start := time.Now()
	out, err := exec.Run(ctx, data, param)
	elapsed := time.Since(start)
	runtime.KeepAlive(out)
	return out, elapsed, err
}
