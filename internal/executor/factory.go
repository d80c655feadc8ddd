package executor

import (
	"fmt"
	"sort"
	"sync"
)

// Creator builds an Executor from shared options.
type Creator func(Options) Executor

// Factory creates executors by strategy name.
type Factory interface {
	// List returns the registered names in sorted order.
	List() []string
	// Get returns the executor registered under name.
	Get(name string) (Executor, error)
	// Register adds or replaces a creator.
	Register(name string, c Creator)
}

// DefaultFactory is a concurrency-safe Factory.
type DefaultFactory struct {
	mu       sync.RWMutex
	opts     Options
	creators map[string]Creator
}

// NewDefaultFactory returns a factory with both built-in strategies
// registered, each configured with opts.
func NewDefaultFactory(opts Options) *DefaultFactory {
	f := &DefaultFactory{opts: opts, creators: make(map[string]Creator)}
	f.Register(DivideConquerName, func(o Options) Executor { return NewDivideConquer(o) })
	f.Register(ThreadPoolName, func(o Options) Executor { return NewThreadPool(o) })
	return f
}

func (f *DefaultFactory) Register(name string, c Creator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creators[name] = c
}

func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (f *DefaultFactory) Get(name string) (Executor, error) {
	f.mu.RLock()
	c, ok := f.creators[name]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (available: %v)", name, f.List())
	}
	return c(f.opts), nil
}

// MustGet is like Get but panics for unknown names.
func (f *DefaultFactory) MustGet(name string) Executor {
	e, err := f.Get(name)
	if err != nil {
		panic(err)
	}
	return e
}
