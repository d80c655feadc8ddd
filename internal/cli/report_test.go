package cli

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/agbru/aggbench/internal/aggregate"
	"github.com/agbru/aggbench/internal/metrics"
	"github.com/agbru/aggbench/internal/orchestration"
	"github.com/agbru/aggbench/internal/sysmon"
	"github.com/agbru/aggbench/internal/ui"
)

func TestMain(m *testing.M) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	os.Exit(m.Run())
}

func sampleResult() orchestration.BenchmarkResult {
	m := aggregate.Metrics{Mode: 3.16, StdDev: 2633, Sum: 5266}
	return orchestration.BenchmarkResult{
		Strategy:    "ThreadPool",
		Param:       4,
		Threads:     4,
		MinDuration: 42 * time.Microsecond,
		Metrics:     m,
		Runs: []orchestration.RunSample{
			{Index: 0, Duration: 90 * time.Microsecond, Metrics: m},
			{Index: 1, Duration: 42 * time.Microsecond, Metrics: m},
		},
		Memory:        metrics.MemoryDelta{Allocated: 2048, Mallocs: 1234, GCCycles: 1, PauseNs: 1500000},
		Deterministic: true,
		System:        sysmon.Stats{CPUPercent: 37.5, MemPercent: 61.25, LogicalCPUs: 8},
	}
}

func TestDisplayReport(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayReport(NewReport(sampleResult(), false), &buf)

	want := []string{
		"Strategy: ThreadPool",
		"Threads: 4",
		"Mode: 3.16",
		"Standard deviation: 2633",
		"Sum: 5266",
		"Minimum time: 42 microseconds",
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), buf.String())
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestNewReport(t *testing.T) {
	t.Parallel()
	res := sampleResult()

	plain := NewReport(res, false)
	if plain.Runs != nil || plain.Memory != nil || plain.System != nil {
		t.Error("non-verbose report should omit runs, memory and system load")
	}
	if plain.MinMicros != 42 {
		t.Errorf("MinMicros = %d, want 42", plain.MinMicros)
	}

	verbose := NewReport(res, true)
	if len(verbose.Runs) != 2 || verbose.Runs[1].Run != 2 || verbose.Runs[1].Micros != 42 {
		t.Errorf("unexpected runs: %+v", verbose.Runs)
	}
	if verbose.Memory == nil || verbose.Memory.Allocated != 2048 {
		t.Errorf("unexpected memory: %+v", verbose.Memory)
	}
	if verbose.System == nil || verbose.System.LogicalCPUs != 8 {
		t.Errorf("unexpected system stats: %+v", verbose.System)
	}
}

func TestNumberMarshalJSON(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   float64
		want string
	}{
		{3.16, "3.16"},
		{0, "0"},
		{1e170, "1e+170"},
		{math.Inf(1), `"+Inf"`},
		{math.Inf(-1), `"-Inf"`},
		{math.NaN(), `"NaN"`},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			got, err := json.Marshal(Number(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal(%v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()
	res := sampleResult()
	res.Metrics.Sum = math.Inf(1)

	var buf bytes.Buffer
	if err := WriteJSON(NewReport(res, false), &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if decoded["strategy"] != "ThreadPool" {
		t.Errorf("strategy = %v", decoded["strategy"])
	}
	if decoded["sum"] != "+Inf" {
		t.Errorf("sum = %v, want +Inf", decoded["sum"])
	}
	if decoded["min_time_us"] != float64(42) {
		t.Errorf("min_time_us = %v", decoded["min_time_us"])
	}
	if _, ok := decoded["runs"]; ok {
		t.Error("runs should be omitted when not verbose")
	}
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := WriteYAML(NewReport(sampleResult(), true), &buf); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	var decoded struct {
		Strategy string  `yaml:"strategy"`
		Threads  int     `yaml:"threads"`
		Mode     float64 `yaml:"mode"`
		Runs     []RunReport
	}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, buf.String())
	}
	if decoded.Strategy != "ThreadPool" || decoded.Threads != 4 || decoded.Mode != 3.16 {
		t.Errorf("unexpected document: %+v", decoded)
	}
	if !strings.Contains(buf.String(), "time_us: 90") {
		t.Errorf("expected per-run timings in YAML, got:\n%s", buf.String())
	}
}

func TestDisplayRunTable(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayRunTable(sampleResult(), &buf)
	out := buf.String()

	for _, want := range []string{"--- Runs ---", "RUN", "TIME", "90µs", "42µs *", "median"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Warning") {
		t.Error("deterministic result should not warn")
	}

	res := sampleResult()
	res.Deterministic = false
	buf.Reset()
	DisplayRunTable(res, &buf)
	if !strings.Contains(buf.String(), "metrics differed") {
		t.Error("non-deterministic result should warn")
	}

	buf.Reset()
	DisplayRunTable(orchestration.BenchmarkResult{}, &buf)
	if buf.Len() != 0 {
		t.Errorf("empty result should print nothing, got %q", buf.String())
	}
}

func TestDisplayMemoryStats(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayMemoryStats(sampleResult().Memory, &buf)
	out := buf.String()
	for _, want := range []string{"Memory Stats:", "1,234", "GC cycles:   1", "1.500ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
}

func TestDisplaySystemStats(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplaySystemStats(sampleResult().System, &buf)
	out := buf.String()
	for _, want := range []string{"System:", "37.5% of 8 logical CPUs", "61.2% used"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
}

func TestCLIResultPresenter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		opts     orchestration.PresentationOptions
		contains []string
		excludes []string
	}{
		{
			name:     "text",
			opts:     orchestration.PresentationOptions{Format: "text"},
			contains: []string{"Strategy: ThreadPool", "Minimum time: 42 microseconds"},
			excludes: []string{"Memory Stats"},
		},
		{
			name:     "text verbose",
			opts:     orchestration.PresentationOptions{Format: "text", Verbose: true},
			contains: []string{"Minimum time:", "--- Runs ---", "Memory Stats", "System:"},
		},
		{
			name:     "json",
			opts:     orchestration.PresentationOptions{Format: "json"},
			contains: []string{`"strategy": "ThreadPool"`},
		},
		{
			name:     "yaml",
			opts:     orchestration.PresentationOptions{Format: "yaml"},
			contains: []string{"strategy: ThreadPool"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := (CLIResultPresenter{}).PresentResult(sampleResult(), tt.opts, &buf); err != nil {
				t.Fatalf("PresentResult: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output should contain %q, got:\n%s", want, buf.String())
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(buf.String(), bad) {
					t.Errorf("output should not contain %q", bad)
				}
			}
		})
	}
}
