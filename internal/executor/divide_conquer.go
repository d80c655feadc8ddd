package executor

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/aggbench/internal/aggregate"
	apperrors "github.com/agbru/aggbench/internal/errors"
	"github.com/agbru/aggbench/internal/logging"
	"github.com/agbru/aggbench/internal/parallel"
	"github.com/agbru/aggbench/internal/partition"
)

// DivideConquerName is the registry name of the fan-out strategy.
const DivideConquerName = "DivideConquer"

// DivideConquer spawns one goroutine per partition and joins them all.
// Its parameter is the split depth d, giving 2^d partitions.
type DivideConquer struct {
	opts Options
}

// NewDivideConquer returns a DivideConquer executor.
func NewDivideConquer(opts Options) *DivideConquer {
	return &DivideConquer{opts: opts}
}

func (*DivideConquer) Name() string { return DivideConquerName }

func (*DivideConquer) Validate(depth int) error {
	return checkRange("split-depth", depth, 0, partition.MaxSplitDepth)
}

func (e *DivideConquer) Threads(n, depth int) int {
	return e.opts.Policy.Effective(n, partition.DivideConquerParts(depth))
}

func (e *DivideConquer) Run(ctx context.Context, data []float64, depth int) (Outcome, error) {
	if err := e.Validate(depth); err != nil {
		return Outcome{}, err
	}
	if len(data) == 0 {
		return Outcome{}, nil
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	ranges := partition.Plan(len(data), partition.DivideConquerParts(depth), e.opts.Policy)
	e.opts.logger().Debug("planned partitions",
		logging.String("strategy", DivideConquerName),
		logging.Int("depth", depth),
		logging.Int("partitions", len(ranges)))

	var shared aggregate.Shared
	task := func(r partition.Range) func() {
		return func() { shared.Merge(aggregate.Compute(data, r)) }
	}

	if len(ranges) == 1 {
		if err := parallel.Recover(task(ranges[0])); err != nil {
			return Outcome{}, apperrors.CalculationError{Strategy: DivideConquerName, Cause: err}
		}
		return finish(&shared, 1), nil
	}

	var g errgroup.Group
	for _, r := range ranges {
		fn := task(r)
		g.Go(func() error { return parallel.Recover(fn) })
	}
	if err := g.Wait(); err != nil {
		return Outcome{}, apperrors.CalculationError{Strategy: DivideConquerName, Cause: err}
	}
	return finish(&shared, len(ranges)), nil
}
