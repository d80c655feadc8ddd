// Package metrics collects benchmark measurements for export and reads
// runtime memory statistics for verbose reports.
package metrics
