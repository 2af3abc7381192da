package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/briandowns/spinner"
	"github.com/spf13/afero"

	"github.com/agbru/deccalc/internal/calculator"
	"github.com/agbru/deccalc/internal/persistence"
	"github.com/agbru/deccalc/internal/ui"
)

// nopSpinner satisfies the Spinner interface without touching the
// terminal, keeping test output deterministic.
type nopSpinner struct{}

func (nopSpinner) Start()                {}
func (nopSpinner) Stop()                 {}
func (nopSpinner) UpdateSuffix(_ string) {}

// newTestREPL builds a REPL wired to an in-memory filesystem and a
// capture buffer, with colors and the spinner disabled.
func newTestREPL(t *testing.T, config REPLConfig) (*REPL, *bytes.Buffer) {
	t.Helper()

	ui.SetTheme("none")
	t.Cleanup(func() { ui.SetTheme("dark") })

	prevSpinner := newSpinner
	newSpinner = func(_ ...spinner.Option) Spinner { return nopSpinner{} }
	t.Cleanup(func() { newSpinner = prevSpinner })

	store := persistence.NewStore(afero.NewMemMapFs())
	calc := calculator.New(calculator.Options{}, store, nil)

	repl := NewREPL(calc, config)
	out := &bytes.Buffer{}
	repl.SetOutput(out)
	return repl, out
}

// runSession feeds a script of commands to the REPL and returns the
// full session transcript.
func runSession(t *testing.T, repl *REPL, out *bytes.Buffer, script string) string {
	t.Helper()
	repl.SetInput(strings.NewReader(script))
	repl.Start()
	return out.String()
}

func TestREPL_Calculate(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"addition", "add 2 3\nexit\n", "2 + 3 = 5"},
		{"division rounds", "divide 1 3\nexit\n", "1 / 3 = 0.3333333333"},
		{"percentage", "percentage 25 200\nexit\n", "25 % 200 = 12.5"},
		{"word symbol reads infix", "modulus 10 3\nexit\n", "10 mod 3 = 1"},
		{"case insensitive", "ADD 2 3\nexit\n", "2 + 3 = 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repl, out := newTestREPL(t, REPLConfig{})
			got := runSession(t, repl, out, tt.script)
			if !strings.Contains(got, tt.want) {
				t.Errorf("transcript missing %q:\n%s", tt.want, got)
			}
		})
	}
}

func TestREPL_InputErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"unknown command", "frobnicate 1 2\nexit\n", "Unknown command: frobnicate"},
		{"missing operand", "add 2\nexit\n", "Usage: add <a> <b>"},
		{"extra operand", "add 1 2 3\nexit\n", "Usage: add <a> <b>"},
		{"non-numeric operand", "add two 3\nexit\n", "Error:"},
		{"division by zero", "divide 5 0\nexit\n", "division by zero is not allowed"},
		{"negative exponent", "power 2 -1\nexit\n", "Error:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repl, out := newTestREPL(t, REPLConfig{})
			got := runSession(t, repl, out, tt.script)
			if !strings.Contains(got, tt.want) {
				t.Errorf("transcript missing %q:\n%s", tt.want, got)
			}
		})
	}
}

func TestREPL_UndoRedo(t *testing.T) {
	repl, out := newTestREPL(t, REPLConfig{})
	got := runSession(t, repl, out, "add 1 2\nundo\nredo\nexit\n")

	if !strings.Contains(got, "Undid: 1 + 2 = 3") {
		t.Errorf("missing undo confirmation:\n%s", got)
	}
	if !strings.Contains(got, "Redid: 1 + 2 = 3") {
		t.Errorf("missing redo confirmation:\n%s", got)
	}
}

func TestREPL_UndoRedoUnavailable(t *testing.T) {
	repl, out := newTestREPL(t, REPLConfig{})
	got := runSession(t, repl, out, "undo\nredo\nexit\n")

	if !strings.Contains(got, "Nothing to undo") {
		t.Errorf("missing undo no-op notice:\n%s", got)
	}
	if !strings.Contains(got, "Nothing to redo") {
		t.Errorf("missing redo no-op notice:\n%s", got)
	}
}

func TestREPL_History(t *testing.T) {
	repl, out := newTestREPL(t, REPLConfig{})
	got := runSession(t, repl, out, "history\nadd 1 2\nmultiply 3 4\nhistory\nclear\nhistory\nexit\n")

	if !strings.Contains(got, "History is empty.") {
		t.Errorf("missing empty-history notice:\n%s", got)
	}
	if !strings.Contains(got, "1. 1 + 2 = 3") || !strings.Contains(got, "2. 3 * 4 = 12") {
		t.Errorf("missing numbered history entries:\n%s", got)
	}
	if !strings.Contains(got, "History cleared.") {
		t.Errorf("missing clear confirmation:\n%s", got)
	}
}

func TestREPL_SaveLoad(t *testing.T) {
	repl, out := newTestREPL(t, REPLConfig{HistoryFile: "default.json"})
	got := runSession(t, repl, out,
		"add 1 2\nsave session.json\nclear\nload session.json\nhistory\nexit\n")

	if !strings.Contains(got, "History saved to: session.json") {
		t.Errorf("missing save confirmation:\n%s", got)
	}
	if !strings.Contains(got, "History loaded from: session.json") {
		t.Errorf("missing load confirmation:\n%s", got)
	}
	if !strings.Contains(got, "1. 1 + 2 = 3") {
		t.Errorf("loaded history not displayed:\n%s", got)
	}
}

func TestREPL_SaveUsesDefaultPath(t *testing.T) {
	repl, out := newTestREPL(t, REPLConfig{HistoryFile: "default.json"})
	got := runSession(t, repl, out, "add 1 2\nsave\nexit\n")

	if !strings.Contains(got, "History saved to: default.json") {
		t.Errorf("save should fall back to the configured path:\n%s", got)
	}
}

func TestREPL_LoadMissingFileKeepsHistory(t *testing.T) {
	repl, out := newTestREPL(t, REPLConfig{})
	got := runSession(t, repl, out, "add 1 2\nload nothere.json\nhistory\nexit\n")

	if !strings.Contains(got, "Error:") {
		t.Errorf("missing load error:\n%s", got)
	}
	if !strings.Contains(got, "1. 1 + 2 = 3") {
		t.Errorf("history should be unchanged after a failed load:\n%s", got)
	}
}

func TestREPL_ExitSavesHistory(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"exit command", "add 2 3\nexit\n"},
		{"quit alias", "add 2 3\nquit\n"},
		{"EOF", "add 2 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noColor(t)
			memFs := afero.NewMemMapFs()
			store := persistence.NewStore(memFs)

			calc := calculator.New(calculator.Options{}, store, nil)
			repl := NewREPL(calc, REPLConfig{HistoryFile: "h.json"})
			out := &bytes.Buffer{}
			repl.SetOutput(out)
			runSession(t, repl, out, tt.script)

			if ok, _ := afero.Exists(memFs, "h.json"); !ok {
				t.Fatal("history file not written on exit")
			}

			// A fresh session over the same store sees the saved records.
			next := calculator.New(calculator.Options{}, store, nil)
			if err := next.LoadHistory("h.json"); err != nil {
				t.Fatalf("LoadHistory() failed: %v", err)
			}
			if got := len(next.History()); got != 1 {
				t.Errorf("restored history length = %d, want 1", got)
			}
		})
	}
}

func TestREPL_ExitSaveFailureWarns(t *testing.T) {
	noColor(t)

	// No store configured: the save fails, the exit still completes.
	calc := calculator.New(calculator.Options{}, nil, nil)
	repl := NewREPL(calc, REPLConfig{HistoryFile: "h.json"})
	out := &bytes.Buffer{}
	repl.SetOutput(out)
	got := runSession(t, repl, out, "add 1 2\nexit\n")

	if !strings.Contains(got, "Warning: history not saved") {
		t.Errorf("transcript missing save warning:\n%s", got)
	}
	if !strings.Contains(got, "Goodbye!") {
		t.Errorf("a failed save must not block exit:\n%s", got)
	}
}

func TestREPL_ExitWithoutHistoryFileSkipsSave(t *testing.T) {
	noColor(t)

	calc := calculator.New(calculator.Options{}, nil, nil)
	repl := NewREPL(calc, REPLConfig{})
	out := &bytes.Buffer{}
	repl.SetOutput(out)
	got := runSession(t, repl, out, "add 1 2\nexit\n")

	if strings.Contains(got, "Warning") {
		t.Errorf("no history file configured, nothing to warn about:\n%s", got)
	}
}

func TestREPL_Status(t *testing.T) {
	repl, out := newTestREPL(t, REPLConfig{
		HistoryFile: "calc.json",
		AutoSave:    true,
		Precision:   10,
		Rounding:    "half-up",
	})
	got := runSession(t, repl, out, "status\nexit\n")

	for _, want := range []string{"Precision:", "10", "half-up", "Auto-save:", "on", "calc.json"} {
		if !strings.Contains(got, want) {
			t.Errorf("status output missing %q:\n%s", want, got)
		}
	}
}

func TestREPL_Help(t *testing.T) {
	repl, out := newTestREPL(t, REPLConfig{})
	got := runSession(t, repl, out, "exit\n")

	for _, want := range []string{
		"Basic Operations:",
		"Advanced Operations:",
		"History Management:",
		"File Operations:",
		"add <a> <b>",
		"percentage <a> <b>",
		"save [path]",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("help output missing %q:\n%s", want, got)
		}
	}
}

func TestREPL_ExitAndEOF(t *testing.T) {
	t.Run("quit alias", func(t *testing.T) {
		repl, out := newTestREPL(t, REPLConfig{})
		got := runSession(t, repl, out, "quit\n")
		if !strings.Contains(got, "Goodbye!") {
			t.Errorf("missing goodbye:\n%s", got)
		}
	})

	t.Run("EOF exits cleanly", func(t *testing.T) {
		repl, out := newTestREPL(t, REPLConfig{})
		got := runSession(t, repl, out, "add 1 1\n")
		if !strings.Contains(got, "Goodbye!") {
			t.Errorf("missing goodbye on EOF:\n%s", got)
		}
	})
}
