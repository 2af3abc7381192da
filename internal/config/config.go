// Package config resolves the application configuration from defaults, an
// optional .env file, DECCALC_-prefixed environment variables, and CLI
// flags, in ascending priority. The core packages receive the resolved
// values and never read the environment themselves.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/joho/godotenv"

	apperrors "github.com/agbru/deccalc/internal/errors"
	"github.com/agbru/deccalc/internal/operation"
)

// EnvPrefix is prepended to every environment variable key.
const EnvPrefix = "DECCALC_"

// Defaults for the configuration surface.
const (
	DefaultPrecision   = 10
	DefaultMaxHistory  = 100
	DefaultHistoryFile = "deccalc_history.json"
)

// AppConfig holds the resolved configuration for a session.
type AppConfig struct {
	// Precision is the number of fractional digits kept in results.
	Precision int
	// Rounding is the validated rounding mode name.
	Rounding string
	// MaxHistory bounds the history ledger.
	MaxHistory int
	// AutoSave persists the ledger after every calculation.
	AutoSave bool
	// HistoryFile is where the ledger is saved and loaded.
	HistoryFile string
	// Theme selects the terminal color scheme ("dark", "light", "none").
	Theme string
	// NoColor disables all color output.
	NoColor bool
	// Quiet suppresses the banner and informational output.
	Quiet bool
	// Verbose enables debug logging.
	Verbose bool
	// TUI opens the full-screen history browser instead of the REPL.
	TUI bool
	// Version requests printing the version and exiting.
	Version bool
}

// defaultConfig returns the configuration before .env, environment, and
// flag resolution.
func defaultConfig() AppConfig {
	return AppConfig{
		Precision:   DefaultPrecision,
		Rounding:    string(operation.RoundHalfUp),
		MaxHistory:  DefaultMaxHistory,
		HistoryFile: DefaultHistoryFile,
		Theme:       "dark",
	}
}

// ParseConfig resolves the configuration from args. errWriter receives flag
// usage output. Priority: CLI flags > environment variables > .env file >
// defaults. Validation failures come back as ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	// A .env file in the working directory seeds the environment; already
	// set variables win.
	godotenv.Load() //nolint:errcheck

	cfg := defaultConfig()

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.IntVar(&cfg.Precision, "precision", cfg.Precision, "number of fractional digits kept in results")
	fs.StringVar(&cfg.Rounding, "rounding", cfg.Rounding,
		fmt.Sprintf("rounding mode (%s)", strings.Join(operation.RoundingModes(), ", ")))
	fs.IntVar(&cfg.MaxHistory, "max-history", cfg.MaxHistory, "maximum number of history records")
	fs.BoolVar(&cfg.AutoSave, "auto-save", cfg.AutoSave, "save history after every calculation")
	fs.StringVar(&cfg.HistoryFile, "history-file", cfg.HistoryFile, "path of the history file")
	fs.StringVar(&cfg.Theme, "theme", cfg.Theme, "color theme (dark, light, none)")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable color output")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "suppress banner and informational output")
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "shorthand for -quiet")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable debug logging")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "shorthand for -verbose")
	fs.BoolVar(&cfg.TUI, "tui", cfg.TUI, "open the history browser instead of the REPL")
	fs.BoolVar(&cfg.Version, "version", cfg.Version, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := validate(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// validate enforces the configuration surface contract.
func validate(cfg AppConfig) error {
	if cfg.Precision <= 0 {
		return apperrors.NewConfigError("precision must be a positive integer, got %d", cfg.Precision)
	}
	if cfg.MaxHistory <= 0 {
		return apperrors.NewConfigError("max-history must be a positive integer, got %d", cfg.MaxHistory)
	}
	if _, err := operation.ParseRoundingMode(cfg.Rounding); err != nil {
		return err
	}
	switch cfg.Theme {
	case "dark", "light", "none":
	default:
		return apperrors.NewConfigError("unknown theme %q (valid: dark, light, none)", cfg.Theme)
	}
	return nil
}

// RoundingConfig converts the validated precision and mode into the
// operation layer's rounding value.
func (c AppConfig) RoundingConfig() operation.Rounding {
	mode, err := operation.ParseRoundingMode(c.Rounding)
	if err != nil {
		// Unreachable after validate; fall back to the default mode.
		mode = operation.RoundHalfUp
	}
	return operation.Rounding{Scale: int32(c.Precision), Mode: mode}
}
