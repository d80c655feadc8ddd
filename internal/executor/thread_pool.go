package executor

import (
	"context"

	"github.com/agbru/aggbench/internal/aggregate"
	apperrors "github.com/agbru/aggbench/internal/errors"
	"github.com/agbru/aggbench/internal/logging"
	"github.com/agbru/aggbench/internal/partition"
	"github.com/agbru/aggbench/internal/workerpool"
)

// ThreadPoolName is the registry name of the pooled-worker strategy.
const ThreadPoolName = "ThreadPool"

// ThreadPool queues one task per partition on a fixed pool of workers and
// drains the pool before reading the totals. Its parameter is the worker
// count.
type ThreadPool struct {
	opts Options
}

// NewThreadPool returns a ThreadPool executor.
func NewThreadPool(opts Options) *ThreadPool {
	return &ThreadPool{opts: opts}
}

func (*ThreadPool) Name() string { return ThreadPoolName }

func (*ThreadPool) Validate(workers int) error {
	return checkRange("workers", workers, 1, workerpool.MaxWorkers)
}

func (e *ThreadPool) Threads(n, workers int) int {
	return e.opts.Policy.Effective(n, workers)
}

func (e *ThreadPool) Run(ctx context.Context, data []float64, workers int) (Outcome, error) {
	if err := e.Validate(workers); err != nil {
		return Outcome{}, err
	}
	if len(data) == 0 {
		return Outcome{}, nil
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	ranges := partition.Plan(len(data), workers, e.opts.Policy)
	log := e.opts.logger()
	log.Debug("planned partitions",
		logging.String("strategy", ThreadPoolName),
		logging.Int("workers", workers),
		logging.Int("partitions", len(ranges)))

	pool, err := workerpool.New(
		workerpool.WithWorkers(len(ranges)),
		workerpool.WithQueueSize(len(ranges)),
		workerpool.WithLogger(log),
	)
	if err != nil {
		return Outcome{}, apperrors.WrapError(err, "start worker pool")
	}
	defer pool.Close()

	var shared aggregate.Shared
	for _, r := range ranges {
		if err := pool.Submit(ctx, func() {
			shared.Merge(aggregate.Compute(data, r))
		}); err != nil {
			_ = pool.Wait()
			return Outcome{}, err
		}
	}
	if err := pool.Wait(); err != nil {
		return Outcome{}, apperrors.CalculationError{Strategy: ThreadPoolName, Cause: err}
	}
	return finish(&shared, len(ranges)), nil
}
