package orchestration

import (
	apperrors "github.com/agbru/aggbench/internal/errors"
	"github.com/agbru/aggbench/internal/executor"
)

// GetExecutor resolves a strategy name through the factory and checks the
// concurrency parameter against the executor's bounds.
func GetExecutor(factory executor.Factory, strategy string, param int) (executor.Executor, error) {
	exec, err := factory.Get(strategy)
	if err != nil {
		return nil, apperrors.NewConfigError("%v", err)
	}
	if err := exec.Validate(param); err != nil {
		return nil, err
	}
	return exec, nil
}
