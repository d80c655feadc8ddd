// Package config parses the command line and environment into an AppConfig.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	apperrors "github.com/agbru/aggbench/internal/errors"
	"github.com/agbru/aggbench/internal/executor"
	"github.com/agbru/aggbench/internal/logging"
	"github.com/agbru/aggbench/internal/orchestration"
	"github.com/agbru/aggbench/internal/partition"
	"github.com/agbru/aggbench/internal/results"
	"github.com/agbru/aggbench/internal/workerpool"
)

// EnvPrefix is prepended to every environment override key.
const EnvPrefix = "AGGBENCH_"

// Output formats accepted by -format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// AppConfig is the fully resolved run configuration.
type AppConfig struct {
	// Strategy and Param are derived from -d or -p.
	Strategy string
	Param    int

	Runs          int
	Seed          uint
	Size          int
	MaxPartitions int
	ResultsFile   string
	MetricsFile   string
	Format        string
	Timeout       time.Duration
	LogLevel      string
	Verbose       bool
	Quiet         bool
	NoColor       bool
}

// Policy returns the partition policy selected by -max-partitions.
func (c AppConfig) Policy() partition.Policy {
	return partition.Policy{Ceiling: c.MaxPartitions}
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Flags take precedence over AGGBENCH_* variables, which take precedence
// over defaults. The strategy selectors -d and -p are never read from the
// environment. Usage problems are returned as apperrors.ConfigError or
// apperrors.ValidationError; -h returns flag.ErrHelp.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s (-d DEPTH | -p WORKERS) [options]\n\n", programName)
		fmt.Fprintf(errWriter, "Benchmarks parallel aggregation of a fixed dataset.\n\nOptions:\n")
		fs.PrintDefaults()
	}

	cfg := AppConfig{}
	var depth, workers int
	fs.IntVar(&depth, "d", 0, fmt.Sprintf("split depth for the %s strategy (0-%d, 2^d partitions)", executor.DivideConquerName, partition.MaxSplitDepth))
	fs.IntVar(&workers, "p", 0, fmt.Sprintf("worker count for the %s strategy (1-%d)", executor.ThreadPoolName, workerpool.MaxWorkers))
	fs.IntVar(&cfg.Runs, "runs", orchestration.DefaultRuns, "number of timed runs; the minimum is reported")
	fs.UintVar(&cfg.Seed, "seed", 42, "dataset seed")
	fs.IntVar(&cfg.Size, "size", 100, "dataset size")
	fs.IntVar(&cfg.MaxPartitions, "max-partitions", 0, "upper bound on partitions for both strategies (0 = none)")
	fs.StringVar(&cfg.ResultsFile, "results", results.DefaultPath, "CSV file results are appended to (empty to disable)")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	fs.StringVar(&cfg.Format, "format", FormatText, "report format: text, json or yaml")
	fs.DurationVar(&cfg.Timeout, "timeout", time.Minute, "maximum time for the whole benchmark")
	fs.StringVar(&cfg.LogLevel, "log-level", "warn", "log level: debug, info, warn or error")
	fs.BoolVar(&cfg.Verbose, "v", false, "show per-run timings and memory statistics")
	fs.BoolVar(&cfg.Quiet, "q", false, "suppress banner and progress output")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable colored output")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	depthSet, workersSet := isFlagSet(fs, "d"), isFlagSet(fs, "p")
	switch {
	case depthSet && workersSet:
		return AppConfig{}, apperrors.NewConfigError("-d and -p are mutually exclusive")
	case depthSet:
		cfg.Strategy, cfg.Param = executor.DivideConquerName, depth
	case workersSet:
		cfg.Strategy, cfg.Param = executor.ThreadPoolName, workers
	default:
		return AppConfig{}, apperrors.NewConfigError("either -d or -p must be given")
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks every field that has bounds.
func (c AppConfig) Validate() error {
	switch c.Strategy {
	case executor.DivideConquerName:
		if c.Param < 0 || c.Param > partition.MaxSplitDepth {
			return apperrors.ValidationError{Field: "d", Message: fmt.Sprintf("split depth must be between 0 and %d, got %d", partition.MaxSplitDepth, c.Param)}
		}
	case executor.ThreadPoolName:
		if c.Param < 1 || c.Param > workerpool.MaxWorkers {
			return apperrors.ValidationError{Field: "p", Message: fmt.Sprintf("worker count must be between 1 and %d, got %d", workerpool.MaxWorkers, c.Param)}
		}
	default:
		return apperrors.NewConfigError("unknown strategy %q", c.Strategy)
	}
	if c.Runs < 1 {
		return apperrors.ValidationError{Field: "runs", Message: fmt.Sprintf("must be at least 1, got %d", c.Runs)}
	}
	if c.Size < 0 {
		return apperrors.ValidationError{Field: "size", Message: fmt.Sprintf("must not be negative, got %d", c.Size)}
	}
	if c.Seed > math.MaxUint32 {
		return apperrors.ValidationError{Field: "seed", Message: fmt.Sprintf("must fit in 32 bits, got %d", c.Seed)}
	}
	if c.MaxPartitions < 0 {
		return apperrors.ValidationError{Field: "max-partitions", Message: fmt.Sprintf("must not be negative, got %d", c.MaxPartitions)}
	}
	if c.Timeout <= 0 {
		return apperrors.ValidationError{Field: "timeout", Message: "must be positive"}
	}
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return apperrors.ValidationError{Field: "format", Message: fmt.Sprintf("must be text, json or yaml, got %q", c.Format)}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.ValidationError{Field: "log-level", Message: err.Error()}
	}
	return nil
}
