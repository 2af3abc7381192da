package cli

import (
	"fmt"

	"github.com/agbru/deccalc/internal/operation"
	"github.com/agbru/deccalc/internal/ui"
)

// printHelp displays available commands, with the registered operations
// grouped by category ahead of the session commands.
func (r *REPL) printHelp() {
	descriptors := r.calc.Registry().Descriptors()

	for _, category := range []string{operation.CategoryBasic, operation.CategoryAdvanced} {
		fmt.Fprintf(r.out, "%s%s:%s\n", ui.Bold(), category, ui.Reset())
		for _, d := range descriptors {
			if d.Category != category {
				continue
			}
			usage := fmt.Sprintf("%s <a> <b>", d.Identifier)
			fmt.Fprintf(r.out, "  %s%-18s%s - %s\n", ui.Warn(), usage, ui.Reset(), d.Description)
		}
	}

	fmt.Fprintf(r.out, "%sHistory Management:%s\n", ui.Bold(), ui.Reset())
	fmt.Fprintf(r.out, "  %shistory%s            - Show active calculation history\n", ui.Warn(), ui.Reset())
	fmt.Fprintf(r.out, "  %sundo%s               - Step back over the last calculation\n", ui.Warn(), ui.Reset())
	fmt.Fprintf(r.out, "  %sredo%s               - Replay an undone calculation\n", ui.Warn(), ui.Reset())
	fmt.Fprintf(r.out, "  %sclear%s              - Discard the entire history\n", ui.Warn(), ui.Reset())

	fmt.Fprintf(r.out, "%sFile Operations:%s\n", ui.Bold(), ui.Reset())
	fmt.Fprintf(r.out, "  %ssave [path]%s        - Save history to a JSON file\n", ui.Warn(), ui.Reset())
	fmt.Fprintf(r.out, "  %sload [path]%s        - Replace history from a JSON file\n", ui.Warn(), ui.Reset())

	fmt.Fprintf(r.out, "%sOther:%s\n", ui.Bold(), ui.Reset())
	fmt.Fprintf(r.out, "  %sstatus%s             - Display current configuration\n", ui.Warn(), ui.Reset())
	fmt.Fprintf(r.out, "  %shelp%s               - Display this help\n", ui.Warn(), ui.Reset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s        - Exit interactive mode\n", ui.Warn(), ui.Reset(), ui.Warn(), ui.Reset())
}
