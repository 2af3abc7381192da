package history

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// applyOps drives a ledger through an encoded operation sequence: 0 appends,
// 1 undoes, 2 redoes, 3 clears. Unavailability errors are expected and
// ignored; they must leave the ledger unchanged.
func applyOps(l *Ledger, ops []int) {
	appended := 0
	for _, op := range ops {
		switch op % 4 {
		case 0:
			l.Append(rec(appended))
			appended++
		case 1:
			l.Undo() //nolint:errcheck
		case 2:
			l.Redo() //nolint:errcheck
		case 3:
			l.Clear()
		}
	}
}

// TestLedger_InvariantsHoldForAnyOpSequence drives random operation
// sequences and checks the structural invariants after every run.
func TestLedger_InvariantsHoldForAnyOpSequence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("size bound and cursor range", prop.ForAll(
		func(ops []int, maxSize int) bool {
			l := NewLedger(maxSize)
			applyOps(l, ops)
			return l.Len() <= l.MaxSize() &&
				l.Cursor() >= 0 &&
				l.Cursor() <= l.Len() &&
				len(l.Snapshot()) == l.Cursor()
		},
		gen.SliceOf(gen.IntRange(0, 3)),
		gen.IntRange(1, 8),
	))

	properties.TestingRun(t)
}

// TestLedger_DocumentRoundTripForAnyReachableState verifies the
// serialize/deserialize law over randomly reached ledger states.
func TestLedger_DocumentRoundTripForAnyReachableState(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("round-trip reproduces records and cursor", prop.ForAll(
		func(ops []int, maxSize int) bool {
			original := NewLedger(maxSize)
			applyOps(original, ops)

			restored, err := FromDocument(original.Document(), original.MaxSize())
			if err != nil {
				return false
			}
			if restored.Len() != original.Len() || restored.Cursor() != original.Cursor() {
				return false
			}
			for i := range original.records {
				if !restored.records[i].Equal(original.records[i]) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 3)),
		gen.IntRange(1, 8),
	))

	properties.TestingRun(t)
}

// TestLedger_UndoRedoIsIdentityWhenAvailable checks the round-trip law:
// undo followed by redo restores the pre-undo cursor.
func TestLedger_UndoRedoIsIdentityWhenAvailable(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("undo then redo restores cursor", prop.ForAll(
		func(ops []int) bool {
			l := NewLedger(16)
			applyOps(l, ops)

			before := l.Cursor()
			undone, err := l.Undo()
			if err != nil {
				return before == 0 // unavailability only at the start
			}
			redone, err := l.Redo()
			if err != nil {
				return false
			}
			return l.Cursor() == before && undone.Equal(redone)
		},
		gen.SliceOf(gen.IntRange(0, 3)),
	))

	properties.TestingRun(t)
}
