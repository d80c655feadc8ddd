// Package cli renders benchmark progress and results on the console.
package cli

import (
	"io"
	"sync"

	"github.com/agbru/aggbench/internal/orchestration"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// terminal spinner.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar while runs execute.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.RunUpdate, totalRuns int, out io.Writer) {
	DisplayProgress(wg, progressChan, totalRuns, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for the
// console in text, JSON or YAML form.
type CLIResultPresenter struct{}

// Verify interface compliance.
var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentResult writes the report in the requested format.
func (CLIResultPresenter) PresentResult(result orchestration.BenchmarkResult, opts orchestration.PresentationOptions, out io.Writer) error {
	report := NewReport(result, opts.Verbose)
	switch opts.Format {
	case "json":
		return WriteJSON(report, out)
	case "yaml":
		return WriteYAML(report, out)
	default:
		DisplayReport(report, out)
		if opts.Verbose {
			DisplayRunTable(result, out)
			DisplayMemoryStats(result.Memory, out)
			DisplaySystemStats(result.System, out)
		}
		return nil
	}
}
