//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks

// Package executor implements the two parallel aggregation strategies and
// the registry used to select them by name.
package executor

import (
	"context"
	"fmt"

	"github.com/agbru/aggbench/internal/aggregate"
	apperrors "github.com/agbru/aggbench/internal/errors"
	"github.com/agbru/aggbench/internal/logging"
	"github.com/agbru/aggbench/internal/partition"
)

// Executor runs one aggregation over a dataset with a strategy-specific
// concurrency parameter.
type Executor interface {
	// Name returns the strategy name reported in results.
	Name() string
	// Validate checks param against the strategy's bounds.
	Validate(param int) error
	// Threads returns the effective number of partitions or workers a run
	// over n items with param would use.
	Threads(n, param int) int
	// Run aggregates data. Validation happens before any goroutine starts.
	Run(ctx context.Context, data []float64, param int) (Outcome, error)
}

// Outcome is the result of a single Run.
type Outcome struct {
	Metrics    aggregate.Metrics
	Totals     aggregate.Accumulator
	Partitions int
}

// Options configure how executors plan and log their work.
type Options struct {
	Policy partition.Policy
	Logger logging.Logger
}

func (o Options) logger() logging.Logger {
	if o.Logger == nil {
		return logging.Nop()
	}
	return o.Logger
}

func checkRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return apperrors.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be between %d and %d, got %d", lo, hi, v),
		}
	}
	return nil
}

func finish(shared *aggregate.Shared, parts int) Outcome {
	totals := shared.Totals()
	return Outcome{
		Metrics:    aggregate.Finalize(totals),
		Totals:     totals,
		Partitions: parts,
	}
}
