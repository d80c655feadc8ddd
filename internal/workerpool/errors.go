package workerpool

import "fmt"

var (
	// ErrClosed is returned by Submit after Close has been called.
	ErrClosed = &PoolError{msg: "pool is closed"}
	// ErrNilTask is returned when Submit is given a nil function.
	ErrNilTask = &PoolError{msg: "task is nil"}
)

// PoolError is returned by pool operations.
type PoolError struct {
	msg string
	err error
}

func (e *PoolError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("workerpool: %s: %v", e.msg, e.err)
	}
	return "workerpool: " + e.msg
}

func (e *PoolError) Unwrap() error { return e.err }

func errInvalidConfig(msg string) error {
	return &PoolError{msg: "invalid config: " + msg}
}

func errWorker(id int, err error) error {
	return &PoolError{msg: fmt.Sprintf("worker %d", id), err: err}
}
