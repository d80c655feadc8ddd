// Package parallel contains small concurrency helpers shared by the
// aggregation executors.
package parallel

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// ErrorCollector records the first non-nil error reported by a set of
// concurrent tasks. The zero value is ready to use.
type ErrorCollector struct {
	once sync.Once
	err  error
}

// SetError records err if it is the first non-nil error seen. Nil errors
// are ignored so that successful tasks can report unconditionally.
func (c *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	c.once.Do(func() {
		c.err = err
	})
}

// Err returns the first recorded error, or nil.
// It must only be called after all reporting goroutines have finished.
func (c *ErrorCollector) Err() error {
	return c.err
}

// PanicError is the error produced when a task panics.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

// Recover turns a panic in fn into a *PanicError.
func Recover(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	fn()
	return nil
}
