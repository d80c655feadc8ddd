// Package workerpool provides a fixed-size pool of long-lived workers that
// drain a bounded task queue. Submitters block while the queue is full and
// Wait blocks until every submitted task has finished.
package workerpool

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/agbru/aggbench/internal/logging"
	"github.com/agbru/aggbench/internal/parallel"
)

// Pool is a bounded worker pool.
type Pool struct {
	cfg   Config
	queue chan func()

	mu     sync.RWMutex
	closed bool

	workers sync.WaitGroup
	pending sync.WaitGroup
	errs    parallel.ErrorCollector

	counters counters
}

type counters struct {
	submitted atomic.Uint64
	_         cpu.CacheLinePad
	completed atomic.Uint64
	_         cpu.CacheLinePad
	panicked  atomic.Uint64
}

// Stats is a snapshot of pool activity.
type Stats struct {
	Workers   int
	QueueSize int
	Submitted uint64
	Completed uint64
	Panicked  uint64
}

// New starts a pool configured by opts.
//
// Example:
//
//	pool, err := workerpool.New(workerpool.WithWorkers(4))
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
func New(opts ...Option) (*Pool, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	p := &Pool{
		cfg:   cfg,
		queue: make(chan func(), cfg.QueueSize),
	}
	p.workers.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go p.run(i)
	}
	cfg.Logger.Debug("worker pool started",
		logging.Int("workers", cfg.Workers),
		logging.Int("queue_size", cfg.QueueSize))
	return p, nil
}

func (p *Pool) run(id int) {
	defer p.workers.Done()
	for task := range p.queue {
		p.execute(id, task)
	}
}

func (p *Pool) execute(id int, task func()) {
	defer p.pending.Done()
	err := parallel.Recover(task)
	p.counters.completed.Add(1)
	if err == nil {
		return
	}
	p.counters.panicked.Add(1)
	if pe, ok := err.(*parallel.PanicError); ok && p.cfg.PanicHandler != nil {
		p.cfg.PanicHandler(pe.Value)
	}
	p.cfg.Logger.Error("task panicked", err, logging.Int("worker", id))
	p.errs.SetError(errWorker(id, err))
}

// Submit enqueues task, blocking while the queue is full. It returns
// ctx.Err() if ctx is done before the task could be queued.
func (p *Pool) Submit(ctx context.Context, task func()) error {
	if task == nil {
		return ErrNilTask
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}

	p.pending.Add(1)
	select {
	case p.queue <- task:
		p.counters.submitted.Add(1)
		return nil
	case <-ctx.Done():
		p.pending.Done()
		return ctx.Err()
	}
}

// Wait blocks until the queue is empty and no task is running, then
// returns the first task failure recorded since the pool started.
func (p *Pool) Wait() error {
	p.pending.Wait()
	return p.errs.Err()
}

// Close stops accepting tasks, lets the workers finish what is queued and
// waits for them to exit. Calling Close more than once is safe.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.workers.Wait()
	p.cfg.Logger.Debug("worker pool stopped", logging.Uint64("completed", p.counters.completed.Load()))
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int { return p.cfg.Workers }

// Stats returns the current counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Workers:   p.cfg.Workers,
		QueueSize: p.cfg.QueueSize,
		Submitted: p.counters.submitted.Load(),
		Completed: p.counters.completed.Load(),
		Panicked:  p.counters.panicked.Load(),
	}
}
