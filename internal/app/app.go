// Package app wires configuration, persistence, the calculation engine,
// and the interactive front ends into a runnable application.
package app

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/deccalc/internal/calculator"
	"github.com/agbru/deccalc/internal/cli"
	"github.com/agbru/deccalc/internal/config"
	apperrors "github.com/agbru/deccalc/internal/errors"
	"github.com/agbru/deccalc/internal/logging"
	"github.com/agbru/deccalc/internal/persistence"
	"github.com/agbru/deccalc/internal/tui"
	"github.com/agbru/deccalc/internal/ui"
)

// Application represents the deccalc application instance.
type Application struct {
	Config    config.AppConfig
	Store     calculator.HistoryStore
	ErrWriter io.Writer

	input io.Reader
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithStore sets a custom history store for the application.
func WithStore(store calculator.HistoryStore) AppOption {
	return func(a *Application) { a.Store = store }
}

// WithInput sets a custom input reader for the interactive shell.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.input = in }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, input: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}
	if app.Store == nil {
		app.Store = persistence.NewOsStore()
	}

	programName := "deccalc"
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
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Version {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	zerolog.SetGlobalLevel(a.logLevel())
	ui.InitTheme(a.Config.Theme, a.Config.NoColor)

	log := logging.NewLogger(a.ErrWriter, "deccalc")

	calc := calculator.New(calculator.Options{
		MaxHistory: a.Config.MaxHistory,
		Rounding:   a.Config.RoundingConfig(),
	}, a.Store, log)

	calc.Subscribe(calculator.NewLoggingObserver(log))
	if a.Config.AutoSave {
		calc.Subscribe(calculator.NewAutoSaveObserver(calc, a.Config.HistoryFile))
	}

	a.loadExistingHistory(calc, log)

	if a.Config.TUI {
		ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stopSignals()
		return tui.Run(ctx, calc, Version)
	}

	return a.runShell(calc, out)
}

// logLevel maps the verbosity flags to a zerolog level. Verbose wins over
// quiet when both are set.
func (a *Application) logLevel() zerolog.Level {
	switch {
	case a.Config.Verbose:
		return zerolog.DebugLevel
	case a.Config.Quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// loadExistingHistory restores a previous session's ledger. A missing file
// is the normal first run. A corrupt file is reported and left untouched
// on disk; the session starts with an empty ledger.
func (a *Application) loadExistingHistory(calc *calculator.Calculator, log logging.Logger) {
	err := calc.LoadHistory(a.Config.HistoryFile)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return
	}
	log.Warn("existing history not loaded",
		logging.String("path", a.Config.HistoryFile),
		logging.Err(err))
}

// runShell starts the interactive REPL session.
func (a *Application) runShell(calc *calculator.Calculator, out io.Writer) int {
	repl := cli.NewREPL(calc, cli.REPLConfig{
		HistoryFile: a.Config.HistoryFile,
		AutoSave:    a.Config.AutoSave,
		Precision:   a.Config.Precision,
		Rounding:    a.Config.Rounding,
	})
	repl.SetInput(a.input)
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}
