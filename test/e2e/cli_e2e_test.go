package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func buildBinary(t *testing.T) string {
	t.Helper()
	binName := "aggbench"
	if runtime.GOOS == "windows" {
		binName = "aggbench.exe"
	}
	binPath := filepath.Join(t.TempDir(), binName)

	// go test runs from the package directory; build from the module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/aggbench")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build aggbench: %v", err)
	}
	return binPath
}

func run(binPath, dir string, args ...string) (string, int, error) {
	cmd := exec.Command(binPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	output, err := cmd.CombinedOutput()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return string(output), exitErr.ExitCode(), nil
	}
	return string(output), 0, err
}

// TestCLI_E2E verifies the built binary functions correctly
func TestCLI_E2E(t *testing.T) {
	binPath := buildBinary(t)

	tests := []struct {
		name     string
		args     []string
		wantOut  []string
		wantCode int
	}{
		{
			name:     "DivideConquer",
			args:     []string{"-d", "2", "-q"},
			wantOut:  []string{"Strategy: DivideConquer", "Threads: 4", "Mode: 3.16", "Standard deviation: 2633", "microseconds"},
			wantCode: 0,
		},
		{
			name:     "ThreadPool",
			args:     []string{"-p", "8", "-q"},
			wantOut:  []string{"Strategy: ThreadPool", "Threads: 8", "Mode: 3.16"},
			wantCode: 0,
		},
		{
			name:     "Verbose",
			args:     []string{"-p", "2", "-v", "-runs", "3"},
			wantOut:  []string{"Execution Configuration", "Memory Stats", "median"},
			wantCode: 0,
		},
		{
			name:     "YAML",
			args:     []string{"-d", "1", "-format", "yaml"},
			wantOut:  []string{"strategy: DivideConquer", "threads: 2"},
			wantCode: 0,
		},
		{
			name:     "Help",
			args:     []string{"-h"},
			wantOut:  []string{"usage"},
			wantCode: 0,
		},
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  []string{"aggbench"},
			wantCode: 0,
		},
		{
			name:     "Missing Selector",
			args:     []string{},
			wantOut:  []string{"either -d or -p"},
			wantCode: 4,
		},
		{
			name:     "Both Selectors",
			args:     []string{"-d", "1", "-p", "1"},
			wantOut:  []string{"mutually exclusive"},
			wantCode: 4,
		},
		{
			name:     "Depth Out Of Range",
			args:     []string{"-d", "6"},
			wantOut:  []string{"split depth"},
			wantCode: 4,
		},
		{
			name:     "Workers Out Of Range",
			args:     []string{"-p", "0"},
			wantOut:  []string{"worker count"},
			wantCode: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			outStr, code, err := run(binPath, dir, tt.args...)
			if err != nil {
				t.Fatalf("failed to run binary: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput: %s", code, tt.wantCode, outStr)
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(strings.ToLower(outStr), strings.ToLower(want)) {
					t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", want, outStr)
				}
			}
			if tt.wantCode != 0 {
				if _, err := os.Stat(filepath.Join(dir, "results.csv")); err == nil {
					t.Error("a rejected invocation must not write results.csv")
				}
			}
		})
	}
}

// TestCLI_E2E_ResultsLog verifies that each successful run appends one line.
func TestCLI_E2E_ResultsLog(t *testing.T) {
	binPath := buildBinary(t)
	dir := t.TempDir()

	for _, args := range [][]string{{"-d", "3", "-q"}, {"-p", "5", "-q"}} {
		if out, code, err := run(binPath, dir, args...); err != nil || code != 0 {
			t.Fatalf("run %v failed (code %d, err %v): %s", args, code, err, out)
		}
	}

	content, err := os.ReadFile(filepath.Join(dir, "results.csv"))
	if err != nil {
		t.Fatalf("results.csv not written: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), content)
	}
	if !strings.HasPrefix(lines[0], "DivideConquer,8,") {
		t.Errorf("line 1 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "ThreadPool,5,") {
		t.Errorf("line 2 = %q", lines[1])
	}
}
