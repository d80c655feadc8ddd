// Package orchestration runs a selected aggregation executor repeatedly and
// keeps the fastest run. It decouples measurement from presentation via the
// ProgressReporter and ResultPresenter interfaces.
package orchestration
