package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"

	"github.com/agbru/aggbench/internal/format"
	"github.com/agbru/aggbench/internal/orchestration"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner.
	ProgressRefreshRate = 100 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 20
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows DisplayProgress to be tested without a real terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// isTerminal reports whether out is attached to a terminal.
var isTerminal = func(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// DisplayProgress shows a spinner with a run counter until progressChan is
// closed. Nothing is drawn when out is not a terminal; the channel is still
// drained so that the harness never blocks.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.RunUpdate, totalRuns int, out io.Writer) {
	defer wg.Done()
	if totalRuns <= 0 || !isTerminal(out) {
		for range progressChan {
		}
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(runSuffix(orchestration.RunUpdate{Total: totalRuns}))
	s.Start()
	for update := range progressChan {
		s.UpdateSuffix(runSuffix(update))
	}
	s.Stop()
}

func runSuffix(u orchestration.RunUpdate) string {
	progress := 0.0
	if u.Total > 0 {
		progress = float64(u.Run) / float64(u.Total)
	}
	suffix := fmt.Sprintf(" Run %d/%d %s", u.Run, u.Total, format.ProgressBar(progress, ProgressBarWidth))
	if u.Run > 0 {
		suffix += " last " + format.FormatExecutionDuration(u.Duration)
	}
	return suffix
}
