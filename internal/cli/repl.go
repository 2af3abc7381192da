// Package cli provides the REPL (Read-Eval-Print Loop) functionality
// for interactive decimal calculations.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/deccalc/internal/calculator"
	"github.com/agbru/deccalc/internal/operation"
	"github.com/agbru/deccalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// HistoryFile is the default path for save and load commands.
	HistoryFile string
	// AutoSave indicates whether history is persisted after each calculation.
	AutoSave bool
	// Precision is the number of fractional digits kept in results.
	Precision int
	// Rounding is the name of the active rounding mode.
	Rounding string
}

// REPL represents an interactive decimal calculator session.
type REPL struct {
	calc   *calculator.Calculator
	config REPLConfig
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - calc: The calculation engine driving the session.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(calc *calculator.Calculator, config REPLConfig) *REPL {
	return &REPL{
		calc:   calc,
		config: config,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.Success()+"calc> "+ui.Reset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.saveOnExit()
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.Error(), err, ui.Reset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(input) {
			return // Exit command received
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.Info(), ui.Reset())
	fmt.Fprintf(r.out, "%s║%s     %s🧮 Decimal Calculator - Interactive Mode%s              %s║%s\n",
		ui.Info(), ui.Reset(), ui.Bold(), ui.Reset(), ui.Info(), ui.Reset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.Info(), ui.Reset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "history", "hist":
		DisplayHistory(r.out, r.calc.Registry(), r.calc.History())
	case "undo", "u":
		r.cmdUndo()
	case "redo", "r":
		r.cmdRedo()
	case "clear":
		r.cmdClear()
	case "save":
		r.cmdSave(args)
	case "load":
		r.cmdLoad(args)
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		r.saveOnExit()
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.Success(), ui.Reset())
		return false
	default:
		r.cmdCalculate(cmd, args)
	}

	return true
}

// cmdCalculate handles any input whose first word is not a built-in
// command: it is treated as an operation identifier followed by two
// operands.
func (r *REPL) cmdCalculate(identifier string, args []string) {
	if _, err := r.calc.Registry().Resolve(identifier); err != nil {
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.Error(), identifier, ui.Reset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.Warn(), ui.Reset())
		return
	}

	if len(args) != operation.Arity {
		fmt.Fprintf(r.out, "%sUsage: %s <a> <b>%s\n", ui.Error(), identifier, ui.Reset())
		return
	}

	start := time.Now()
	record, err := r.calc.Perform(identifier, args[0], args[1])
	duration := time.Since(start)

	if err != nil {
		DisplayError(r.out, err)
		return
	}

	DisplayRecord(r.out, r.calc.Registry(), record, duration)
}

// cmdUndo handles the "undo" command.
func (r *REPL) cmdUndo() {
	record, err := r.calc.Undo()
	if err != nil {
		DisplayError(r.out, err)
		return
	}
	fmt.Fprintf(r.out, "Undid: %s%s%s\n",
		ui.Warn(), FormatRecord(r.calc.Registry(), record), ui.Reset())
}

// cmdRedo handles the "redo" command.
func (r *REPL) cmdRedo() {
	record, err := r.calc.Redo()
	if err != nil {
		DisplayError(r.out, err)
		return
	}
	fmt.Fprintf(r.out, "Redid: %s%s%s\n",
		ui.Success(), FormatRecord(r.calc.Registry(), record), ui.Reset())
}

// saveOnExit persists the session to the configured history file so an
// unsaved session survives the next start. A failed save is a warning;
// exit proceeds regardless.
func (r *REPL) saveOnExit() {
	if r.config.HistoryFile == "" {
		return
	}
	if err := r.calc.SaveHistory(r.config.HistoryFile); err != nil {
		fmt.Fprintf(r.out, "%sWarning: history not saved: %v%s\n", ui.Warn(), err, ui.Reset())
	}
}

// cmdClear handles the "clear" command.
func (r *REPL) cmdClear() {
	r.calc.ClearHistory()
	fmt.Fprintf(r.out, "%sHistory cleared.%s\n", ui.Success(), ui.Reset())
}

// historyPath resolves the target path for save and load commands: an
// explicit argument wins over the configured default.
func (r *REPL) historyPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return r.config.HistoryFile
}

// cmdSave handles the "save" command.
func (r *REPL) cmdSave(args []string) {
	path := r.historyPath(args)

	spin := newSpinner(spinner.WithWriter(r.out))
	spin.UpdateSuffix(" Saving history...")
	spin.Start()
	err := r.calc.SaveHistory(path)
	spin.Stop()

	if err != nil {
		DisplayError(r.out, err)
		return
	}
	fmt.Fprintf(r.out, "%s✓ History saved to: %s%s%s\n",
		ui.Success(), ui.Info(), path, ui.Reset())
}

// cmdLoad handles the "load" command.
func (r *REPL) cmdLoad(args []string) {
	path := r.historyPath(args)

	spin := newSpinner(spinner.WithWriter(r.out))
	spin.UpdateSuffix(" Loading history...")
	spin.Start()
	err := r.calc.LoadHistory(path)
	spin.Stop()

	if err != nil {
		DisplayError(r.out, err)
		return
	}
	fmt.Fprintf(r.out, "%s✓ History loaded from: %s%s%s (%d entries)\n",
		ui.Success(), ui.Info(), path, ui.Reset(), len(r.calc.History()))
}

// cmdStatus displays current session configuration.
func (r *REPL) cmdStatus() {
	autoSave := "off"
	if r.config.AutoSave {
		autoSave = "on"
	}

	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.Bold(), ui.Reset())
	fmt.Fprintf(r.out, "  Precision:    %s%d%s fractional digits\n", ui.Info(), r.config.Precision, ui.Reset())
	fmt.Fprintf(r.out, "  Rounding:     %s%s%s\n", ui.Info(), r.config.Rounding, ui.Reset())
	fmt.Fprintf(r.out, "  History:      %s%d%s entries\n", ui.Info(), len(r.calc.History()), ui.Reset())
	fmt.Fprintf(r.out, "  Auto-save:    %s%s%s\n", ui.Info(), autoSave, ui.Reset())
	fmt.Fprintf(r.out, "  History file: %s%s%s\n", ui.Info(), r.config.HistoryFile, ui.Reset())
	fmt.Fprintln(r.out)
}
