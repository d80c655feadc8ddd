// Package results appends benchmark outcomes to a CSV log.
package results

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	apperrors "github.com/agbru/aggbench/internal/errors"
)

// DefaultPath is the log file used when none is configured.
const DefaultPath = "results.csv"

// Record is one row of the results log.
type Record struct {
	Strategy string
	Threads  int
	Duration time.Duration
}

func (r Record) row() []string {
	return []string{
		r.Strategy,
		strconv.Itoa(r.Threads),
		strconv.FormatInt(r.Duration.Microseconds(), 10),
	}
}

// Append writes rec as "strategy,threads,micros" to the end of path,
// creating the file if needed. Failures are returned as
// apperrors.ResourceError.
func Append(path string, rec Record) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return apperrors.ResourceError{Resource: path, Cause: err}
	}
	w := csv.NewWriter(f)
	if err := w.Write(rec.row()); err != nil {
		f.Close()
		return apperrors.ResourceError{Resource: path, Cause: err}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return apperrors.ResourceError{Resource: path, Cause: err}
	}
	if err := f.Close(); err != nil {
		return apperrors.ResourceError{Resource: path, Cause: err}
	}
	return nil
}

// Load reads every record in path.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.ResourceError{Resource: path, Cause: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 3
	rows, err := r.ReadAll()
	if err != nil {
		return nil, apperrors.ResourceError{Resource: path, Cause: err}
	}
	out := make([]Record, 0, len(rows))
	for i, row := range rows {
		threads, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: threads: %w", path, i+1, err)
		}
		micros, err := strconv.ParseInt(row[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: duration: %w", path, i+1, err)
		}
		out = append(out, Record{Strategy: row[0], Threads: threads, Duration: time.Duration(micros) * time.Microsecond})
	}
	return out, nil
}
