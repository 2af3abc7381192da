// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayRecord], [DisplayHistory], [DisplayError].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatRecord], [FormatExecutionDuration].

package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/deccalc/internal/errors"
	"github.com/agbru/deccalc/internal/history"
	"github.com/agbru/deccalc/internal/operation"
	"github.com/agbru/deccalc/internal/ui"
)

// FormatRecord renders a calculation record as a single equation line,
// e.g. "2 + 3 = 5". Word-form symbols like "mod" read as infix too:
// "10 mod 3 = 1". When the operation is not registered (a record loaded
// from a file written by a newer build), the raw identifier is used.
//
// Parameters:
//   - registry: The operation registry used to look up the display symbol.
//   - record: The record to render.
//
// Returns:
//   - string: The formatted equation.
func FormatRecord(registry *operation.Registry, record history.Record) string {
	symbol := record.Op
	if descriptor, err := registry.Resolve(record.Op); err == nil {
		symbol = descriptor.Symbol
	}
	return fmt.Sprintf("%s %s %s = %s",
		record.OperandA.String(), symbol, record.OperandB.String(), record.Result.String())
}

// DisplayRecord outputs a freshly computed record with its result
// highlighted and the execution duration appended.
//
// Parameters:
//   - out: The output writer.
//   - registry: The operation registry used for symbol lookup.
//   - record: The record to display.
//   - duration: The command execution duration.
func DisplayRecord(out io.Writer, registry *operation.Registry, record history.Record, duration time.Duration) {
	fmt.Fprintf(out, "%s%s%s  %s(%s)%s\n",
		ui.Success(), FormatRecord(registry, record), ui.Reset(),
		ui.Secondary(), FormatExecutionDuration(duration), ui.Reset())
}

// DisplayHistory outputs the active portion of the calculation history,
// oldest first, each entry numbered from 1.
//
// Parameters:
//   - out: The output writer.
//   - registry: The operation registry used for symbol lookup.
//   - records: The history snapshot to display.
func DisplayHistory(out io.Writer, registry *operation.Registry, records []history.Record) {
	if len(records) == 0 {
		fmt.Fprintf(out, "%sHistory is empty.%s\n", ui.Secondary(), ui.Reset())
		return
	}

	fmt.Fprintf(out, "\n%sCalculation history:%s\n", ui.Bold(), ui.Reset())
	for i, record := range records {
		fmt.Fprintf(out, "  %s%3d.%s %s  %s[%s]%s\n",
			ui.Info(), i+1, ui.Reset(),
			FormatRecord(registry, record),
			ui.Secondary(), record.Timestamp.Local().Format("15:04:05"), ui.Reset())
	}
	fmt.Fprintln(out)
}

// DisplayError outputs an error with a severity color matched to its kind.
// History no-ops (nothing to undo or redo) are informational and render in
// the warning color; everything else is a failure and renders in red.
//
// Parameters:
//   - out: The output writer.
//   - err: The error to display.
func DisplayError(out io.Writer, err error) {
	if apperrors.IsHistoryNoOp(err) {
		fmt.Fprintf(out, "%s%s%s\n", ui.Warn(), capitalize(err.Error()), ui.Reset())
		return
	}

	var corrupt apperrors.CorruptHistoryError
	if errors.As(err, &corrupt) {
		fmt.Fprintf(out, "%sError: %v%s\n", ui.Error(), err, ui.Reset())
		fmt.Fprintf(out, "The existing history was kept unchanged.\n")
		return
	}

	fmt.Fprintf(out, "%sError: %v%s\n", ui.Error(), err, ui.Reset())
}

// capitalize upper-cases the first byte of an ASCII message for display.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
