// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write human-readable output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayReport], [DisplayRunTable], [DisplayProgress].
//
//   - Write* functions encode a machine-readable document to an [io.Writer].
//     Examples: [WriteJSON], [WriteYAML].

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/agbru/aggbench/internal/format"
	"github.com/agbru/aggbench/internal/metrics"
	"github.com/agbru/aggbench/internal/orchestration"
	"github.com/agbru/aggbench/internal/sysmon"
	"github.com/agbru/aggbench/internal/ui"
)

// Number is a float64 that encodes non-finite values as JSON strings.
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	switch {
	case math.IsInf(f, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Inf"`), nil
	case math.IsNaN(f):
		return []byte(`"NaN"`), nil
	}
	return []byte(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

// RunReport is one timed run in a verbose report.
type RunReport struct {
	Run    int   `json:"run" yaml:"run"`
	Micros int64 `json:"time_us" yaml:"time_us"`
}

// Report is the presentation form of a benchmark result.
type Report struct {
	Strategy      string               `json:"strategy" yaml:"strategy"`
	Threads       int                  `json:"threads" yaml:"threads"`
	Mode          Number               `json:"mode" yaml:"mode"`
	StdDev        Number               `json:"stddev" yaml:"stddev"`
	Sum           Number               `json:"sum" yaml:"sum"`
	MinMicros     int64                `json:"min_time_us" yaml:"min_time_us"`
	Deterministic bool                 `json:"deterministic" yaml:"deterministic"`
	Runs          []RunReport          `json:"runs,omitempty" yaml:"runs,omitempty"`
	Memory        *metrics.MemoryDelta `json:"memory,omitempty" yaml:"memory,omitempty"`
	System        *sysmon.Stats        `json:"system,omitempty" yaml:"system,omitempty"`
}

// NewReport converts a result. Per-run timings and memory statistics are
// only included when verbose is set.
func NewReport(res orchestration.BenchmarkResult, verbose bool) Report {
	r := Report{
		Strategy:      res.Strategy,
		Threads:       res.Threads,
		Mode:          Number(res.Metrics.Mode),
		StdDev:        Number(res.Metrics.StdDev),
		Sum:           Number(res.Metrics.Sum),
		MinMicros:     res.MinDuration.Microseconds(),
		Deterministic: res.Deterministic,
	}
	if verbose {
		for _, s := range res.Runs {
			r.Runs = append(r.Runs, RunReport{Run: s.Index + 1, Micros: s.Duration.Microseconds()})
		}
		mem, sys := res.Memory, res.System
		r.Memory, r.System = &mem, &sys
	}
	return r
}

// DisplayReport prints the six-line console report.
func DisplayReport(r Report, out io.Writer) {
	label := ui.LabelStyle()
	fmt.Fprintf(out, "%s %s\n", label.Render("Strategy:"), r.Strategy)
	fmt.Fprintf(out, "%s %d\n", label.Render("Threads:"), r.Threads)
	fmt.Fprintf(out, "%s %v\n", label.Render("Mode:"), float64(r.Mode))
	fmt.Fprintf(out, "%s %v\n", label.Render("Standard deviation:"), float64(r.StdDev))
	fmt.Fprintf(out, "%s %v\n", label.Render("Sum:"), float64(r.Sum))
	fmt.Fprintf(out, "%s %d microseconds\n", label.Render("Minimum time:"), r.MinMicros)
}

// DisplayRunTable prints one row per run and a duration summary.
func DisplayRunTable(res orchestration.BenchmarkResult, out io.Writer) {
	if len(res.Runs) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s--- Runs ---%s\n", ui.ColorUnderline(), ui.ColorReset())
	table := newTable(out)
	table.SetHeader([]string{"RUN", "TIME", "MODE", "STDDEV", "SUM"})
	for _, s := range res.Runs {
		marker := ""
		if s.Duration == res.MinDuration {
			marker = " *"
		}
		table.Append([]string{
			strconv.Itoa(s.Index + 1),
			format.FormatExecutionDuration(s.Duration) + marker,
			strconv.FormatFloat(s.Metrics.Mode, 'g', -1, 64),
			strconv.FormatFloat(s.Metrics.StdDev, 'g', -1, 64),
			strconv.FormatFloat(s.Metrics.Sum, 'g', 6, 64),
		})
	}
	table.Render()

	sum := res.Summary()
	fmt.Fprintf(out, "min %s  median %s  mean %s  max %s\n",
		format.FormatExecutionDuration(sum.Min), format.FormatExecutionDuration(sum.Median),
		format.FormatExecutionDuration(sum.Mean), format.FormatExecutionDuration(sum.Max))
	if !res.Deterministic {
		fmt.Fprintf(out, "%sWarning: metrics differed between runs.%s\n", ui.ColorYellow(), ui.ColorReset())
	}
}

// DisplayMemoryStats shows the allocation activity of the benchmark.
func DisplayMemoryStats(d metrics.MemoryDelta, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Allocated:   %s\n", format.FormatBytes(d.Allocated))
	fmt.Fprintf(out, "  Allocations: %s\n", format.FormatNumberString(strconv.FormatUint(d.Mallocs, 10)))
	fmt.Fprintf(out, "  GC cycles:   %d\n", d.GCCycles)
	if d.PauseNs > 0 {
		fmt.Fprintf(out, "  GC pause:    %.3fms\n", float64(d.PauseNs)/1e6)
	}
}

// DisplaySystemStats shows the machine load during the benchmark.
func DisplaySystemStats(s sysmon.Stats, out io.Writer) {
	fmt.Fprintf(out, "\nSystem:\n")
	fmt.Fprintf(out, "  CPU:    %.1f%% of %d logical CPUs\n", s.CPUPercent, s.LogicalCPUs)
	fmt.Fprintf(out, "  Memory: %.1f%% used\n", s.MemPercent)
}

// WriteJSON encodes r as indented JSON.
func WriteJSON(r Report, out io.Writer) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// WriteYAML encodes r as a YAML document.
func WriteYAML(r Report, out io.Writer) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(r)
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	return table
}
