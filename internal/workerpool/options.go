package workerpool

import (
	"fmt"

	"github.com/agbru/aggbench/internal/logging"
)

// MaxWorkers is the largest pool size New accepts.
const MaxWorkers = 32

// Config holds the pool settings assembled from Options.
type Config struct {
	// Workers is the number of long-lived worker goroutines.
	Workers int
	// QueueSize bounds the number of tasks waiting for a worker.
	// Zero means one slot per worker.
	QueueSize int
	// PanicHandler, if set, is called with the recovered value of a
	// panicking task in addition to the error being recorded.
	PanicHandler func(any)
	Logger       logging.Logger
}

// Option configures a Pool.
type Option func(*Config)

// WithWorkers sets the number of workers.
func WithWorkers(n int) Option {
	return func(c *Config) { c.Workers = n }
}

// WithQueueSize sets the capacity of the task queue.
func WithQueueSize(n int) Option {
	return func(c *Config) { c.QueueSize = n }
}

// WithPanicHandler installs a callback for recovered task panics.
func WithPanicHandler(h func(any)) Option {
	return func(c *Config) { c.PanicHandler = h }
}

// WithLogger sets the logger used for worker lifecycle events.
func WithLogger(l logging.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

func defaultConfig() Config {
	return Config{Workers: 1, Logger: logging.Nop()}
}

func (c *Config) validate() error {
	if c.Workers < 1 || c.Workers > MaxWorkers {
		return errInvalidConfig(fmt.Sprintf("workers must be between 1 and %d, got %d", MaxWorkers, c.Workers))
	}
	if c.QueueSize < 0 {
		return errInvalidConfig(fmt.Sprintf("queue size must be >= 0, got %d", c.QueueSize))
	}
	if c.QueueSize == 0 {
		c.QueueSize = c.Workers
	}
	if c.Logger == nil {
		c.Logger = logging.Nop()
	}
	return nil
}
