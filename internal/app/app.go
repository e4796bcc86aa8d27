// Package app wires configuration, logging, telemetry and the
// evaluator into the zcalc executable.
package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"zint"

	"zint/internal/alloc"
	"zint/internal/config"
	apperrors "zint/internal/errors"
	"zint/internal/logging"
	"zint/internal/server"
	"zint/internal/ui"
)

// Application represents the zcalc application instance.
type Application struct {
	Config    config.AppConfig
	Logger    logging.Logger
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger sets a custom logger for the application.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line
// arguments (excluding the program name).
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	cfg, err := config.Load(args, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.Logger == nil {
		app.Logger = logging.NewLogger(errWriter, "zcalc")
	}
	return app, nil
}

// Run executes the application based on the configured mode and
// returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	switch {
	case a.Config.Quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case a.Config.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	// Color only when writing to a real terminal; piped or captured
	// output stays free of escape sequences.
	noColor := true
	if f, ok := out.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	ui.InitTheme(noColor)

	if a.Config.Verbose {
		a.Logger.Debug("resolved configuration", logging.String("config", a.Config.String()))
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	budget, code := a.installMemoryBudget()
	if code != apperrors.ExitSuccess {
		return code
	}
	if budget != nil {
		defer zint.SetAllocator(nil)
	}

	var metrics *server.Metrics
	var srv *server.Server
	if a.Config.MetricsAddr != "" {
		if budget != nil {
			metrics = server.NewMetricsWithLiveWords(func() float64 {
				return float64(budget.Live())
			})
		} else {
			metrics = server.NewMetrics()
		}
		srv = server.New(a.Config.MetricsAddr, metrics, a.Logger)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)
	if srv != nil {
		g.Go(func() error { return srv.Run(gctx) })
	}

	eval := a.instrumentedEval(gctx, metrics)
	var exitCode int
	if a.Config.Expr != "" {
		exitCode = a.runOneShot(out, eval)
	} else {
		exitCode = a.runREPL(out, eval)
	}

	cancel()
	if err := g.Wait(); err != nil {
		a.Logger.Error("telemetry server failed", err)
		if exitCode == apperrors.ExitSuccess {
			exitCode = apperrors.ExitErrorGeneric
		}
	}

	if errors.Is(ctx.Err(), context.Canceled) && exitCode == apperrors.ExitSuccess {
		return apperrors.ExitErrorCanceled
	}
	return exitCode
}

// installMemoryBudget activates the configured allocator cap, if any.
func (a *Application) installMemoryBudget() (*alloc.Budget, int) {
	if a.Config.MemoryLimit == "" {
		return nil, apperrors.ExitSuccess
	}
	limitBytes, err := config.ParseMemoryLimit(a.Config.MemoryLimit)
	if err != nil {
		// Load validated this already; a failure here is a config bug.
		a.Logger.Error("invalid memory limit", err)
		return nil, apperrors.ExitErrorConfig
	}

	budget := alloc.NewBudget(limitBytes / 8)
	zint.SetAllocator(budget)
	a.Logger.Debug("memory budget installed",
		logging.String("limit", a.Config.MemoryLimit))
	return budget, apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
