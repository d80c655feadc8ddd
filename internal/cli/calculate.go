package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/aggbench/internal/config"
	"github.com/agbru/aggbench/internal/executor"
	"github.com/agbru/aggbench/internal/ui"
)

// PrintExecutionConfig displays the benchmark configuration to the user.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Dataset: %s%d%s values, seed %s%d%s.\n",
		ui.ColorCyan(), cfg.Size, ui.ColorReset(), ui.ColorCyan(), cfg.Seed, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	ceiling := "none"
	if cfg.MaxPartitions > 0 {
		ceiling = fmt.Sprint(cfg.MaxPartitions)
	}
	fmt.Fprintf(out, "Runs: %s%d%s, partition ceiling: %s%s%s, timeout %s%s%s.\n",
		ui.ColorCyan(), cfg.Runs, ui.ColorReset(), ui.ColorCyan(), ceiling, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
}

// PrintExecutionMode displays the selected strategy and its parameter.
func PrintExecutionMode(exec executor.Executor, param, size int, out io.Writer) {
	var paramDesc string
	if exec.Name() == executor.DivideConquerName {
		paramDesc = fmt.Sprintf("split depth %d", param)
	} else {
		paramDesc = fmt.Sprintf("%d workers", param)
	}
	fmt.Fprintf(out, "Execution mode: %s%s%s with %s (%d partitions).\n",
		ui.ColorGreen(), exec.Name(), ui.ColorReset(), paramDesc, exec.Threads(size, param))
	fmt.Fprintf(out, "\n--- Starting Benchmark ---\n")
}
