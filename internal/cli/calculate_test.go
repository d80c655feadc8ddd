package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/aggbench/internal/config"
	"github.com/agbru/aggbench/internal/executor"
)

func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		cfg      config.AppConfig
		contains []string
	}{
		{
			name:     "no ceiling",
			cfg:      config.AppConfig{Size: 100, Seed: 42, Runs: 5, Timeout: time.Minute},
			contains: []string{"100 values", "seed 42", "Runs: 5", "ceiling: none", "1m0s"},
		},
		{
			name:     "with ceiling",
			cfg:      config.AppConfig{Size: 10, Seed: 7, Runs: 1, MaxPartitions: 8, Timeout: time.Second},
			contains: []string{"ceiling: 8", "logical processors"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			PrintExecutionConfig(tt.cfg, &buf)
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output should contain %q, got:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestPrintExecutionMode(t *testing.T) {
	t.Parallel()
	factory := executor.NewDefaultFactory(executor.Options{})

	t.Run("DivideConquer", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		PrintExecutionMode(factory.MustGet(executor.DivideConquerName), 3, 100, &buf)
		out := buf.String()
		if !strings.Contains(out, "split depth 3") || !strings.Contains(out, "(8 partitions)") {
			t.Errorf("unexpected output: %s", out)
		}
	})

	t.Run("ThreadPool", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		PrintExecutionMode(factory.MustGet(executor.ThreadPoolName), 4, 100, &buf)
		out := buf.String()
		if !strings.Contains(out, "4 workers") || !strings.Contains(out, "(4 partitions)") {
			t.Errorf("unexpected output: %s", out)
		}
	})
}
