// Package app wires configuration, executors, the benchmark harness and the
// console presentation into a runnable application.
package app

import (
	"context"
	"errors"
	"flag"
	"io"

	"github.com/rs/zerolog"

	"github.com/agbru/aggbench/internal/config"
	apperrors "github.com/agbru/aggbench/internal/errors"
	"github.com/agbru/aggbench/internal/executor"
	"github.com/agbru/aggbench/internal/logging"
	"github.com/agbru/aggbench/internal/ui"
)

// Application represents the aggbench application instance.
type Application struct {
	Config    config.AppConfig
	Factory   executor.Factory
	Logger    logging.Logger
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom executor Factory for the application.
func WithFactory(f executor.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithLogger sets the logger used by the executors and the harness.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "aggbench"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.Logger == nil {
		app.Logger = newConsoleLogger(errWriter, cfg.NoColor)
	}
	if app.Factory == nil {
		app.Factory = executor.NewDefaultFactory(executor.Options{
			Policy: cfg.Policy(),
			Logger: app.Logger,
		})
	}
	return app, nil
}

// Run executes the benchmark and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	level, err := logging.ParseLevel(a.Config.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)
	ui.InitTheme(a.Config.NoColor)

	return a.runBenchmark(ctx, out)
}

// IsHelpError checks if the error is a help flag error (-h was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// HandleStartupError prints an error returned by New to errWriter and maps
// it to an exit code. Help requests exit successfully; every other startup
// failure is a usage error.
func HandleStartupError(err error, errWriter io.Writer) int {
	if IsHelpError(err) {
		return apperrors.ExitSuccess
	}
	apperrors.HandleBenchmarkError(err, errWriter)
	return apperrors.ExitErrorConfig
}

func newConsoleLogger(w io.Writer, noColor bool) logging.Logger {
	out := zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: "15:04:05"}
	zl := zerolog.New(out).With().Timestamp().Str("component", "aggbench").Logger()
	return logging.NewZerologAdapter(zl)
}
