package app

import (
	"fmt"
	"io"
	"runtime"
)

// Build information, set with -ldflags "-X".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args request the version banner.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--version", "-version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner to out.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "aggbench %s (commit %s, built %s) %s %s/%s\n",
		Version, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
