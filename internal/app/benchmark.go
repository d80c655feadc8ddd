package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/aggbench/internal/cli"
	"github.com/agbru/aggbench/internal/dataset"
	apperrors "github.com/agbru/aggbench/internal/errors"
	"github.com/agbru/aggbench/internal/logging"
	"github.com/agbru/aggbench/internal/metrics"
	"github.com/agbru/aggbench/internal/orchestration"
	"github.com/agbru/aggbench/internal/results"
	"github.com/agbru/aggbench/internal/sysmon"
	"github.com/agbru/aggbench/internal/ui"
)

// runBenchmark generates the dataset, measures the selected strategy and
// presents and persists the outcome.
func (a *Application) runBenchmark(ctx context.Context, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	exec, err := orchestration.GetExecutor(a.Factory, a.Config.Strategy, a.Config.Param)
	if err != nil {
		return apperrors.HandleBenchmarkError(err, a.ErrWriter)
	}

	data := dataset.Generate(uint32(a.Config.Seed), a.Config.Size)

	// Skip banner and spinner in quiet mode and for machine-readable output
	chatty := !a.Config.Quiet && a.Config.Format == "text"
	if chatty {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(exec, a.Config.Param, len(data), out)
	}

	var progressReporter orchestration.ProgressReporter = orchestration.NullProgressReporter{}
	progressOut := io.Discard
	if chatty {
		progressReporter = cli.CLIProgressReporter{}
		progressOut = out
	}

	recorder := metrics.NewRecorder()
	window := sysmon.Start()
	result, err := orchestration.Measure(ctx, exec, data, a.Config.Param, orchestration.Options{
		Runs:     a.Config.Runs,
		Reporter: progressReporter,
		Out:      progressOut,
		Recorder: recorder,
		Logger:   a.Logger,
	})
	if err != nil {
		return apperrors.HandleBenchmarkError(err, a.ErrWriter)
	}
	result.System = window.Stop()

	if chatty {
		fmt.Fprintf(out, "\n--- Results ---\n")
	}
	presOpts := orchestration.PresentationOptions{Format: a.Config.Format, Verbose: a.Config.Verbose}
	if err := (cli.CLIResultPresenter{}).PresentResult(result, presOpts, out); err != nil {
		return apperrors.HandleBenchmarkError(apperrors.WrapError(err, "failed to write report"), a.ErrWriter)
	}

	a.persist(result, recorder, out, chatty)
	return apperrors.ExitSuccess
}

// persist appends the result to the results log and writes the metrics
// textfile. Failures are reported but do not change the exit code.
func (a *Application) persist(result orchestration.BenchmarkResult, recorder *metrics.Recorder, out io.Writer, chatty bool) {
	if path := a.Config.ResultsFile; path != "" {
		rec := results.Record{Strategy: result.Strategy, Threads: result.Threads, Duration: result.MinDuration}
		if err := results.Append(path, rec); err != nil {
			a.Logger.Error("failed to append results", err, logging.String("path", path))
			fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		} else if chatty {
			fmt.Fprintf(out, "\n%s✓ Result appended to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
		}
	}
	if path := a.Config.MetricsFile; path != "" {
		if err := recorder.WriteTextfile(path); err != nil {
			a.Logger.Error("failed to write metrics", err, logging.String("path", path))
			fmt.Fprintf(a.ErrWriter, "Error writing metrics: %v\n", err)
		}
	}
}
