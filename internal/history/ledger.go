package history

import (
	apperrors "github.com/agbru/deccalc/internal/errors"
)

// DefaultMaxSize bounds the ledger when no maximum is configured.
const DefaultMaxSize = 100

// Ledger is the ordered, bounded sequence of calculation records with
// cursor-based undo/redo. The cursor counts active records: records at
// indices [0, cursor) are the active history, records at [cursor, len) are
// kept only so a redo can reactivate them.
//
// The ledger is not safe for concurrent use; it is owned and mutated by a
// single calculator instance serving one interactive session.
type Ledger struct {
	records []Record
	cursor  int
	maxSize int
}

// NewLedger creates an empty ledger holding at most maxSize records.
// Non-positive sizes fall back to DefaultMaxSize.
func NewLedger(maxSize int) *Ledger {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Ledger{maxSize: maxSize}
}

// Len returns the total number of records, active and redo-only.
func (l *Ledger) Len() int { return len(l.records) }

// Cursor returns the number of active records.
func (l *Ledger) Cursor() int { return l.cursor }

// MaxSize returns the configured record bound.
func (l *Ledger) MaxSize() int { return l.maxSize }

// Append adds a record as the newest active entry and returns its index.
// Any redo-only tail is discarded first (a new action invalidates the redo
// stack), then FIFO eviction enforces the size bound. Eviction clamps the
// cursor so it never references an evicted slot.
func (l *Ledger) Append(record Record) int {
	l.records = append(l.records[:l.cursor], record)
	l.cursor = len(l.records)

	if evicted := len(l.records) - l.maxSize; evicted > 0 {
		l.records = append(l.records[:0], l.records[evicted:]...)
		l.cursor -= evicted
		if l.cursor < 0 {
			l.cursor = 0
		}
	}
	return l.cursor - 1
}

// Undo deactivates the newest active record and returns it. It fails with
// UndoUnavailableError when there is nothing to undo; this is an
// informational no-op, not a failure, and leaves the ledger unchanged.
func (l *Ledger) Undo() (Record, error) {
	if l.cursor == 0 {
		return Record{}, apperrors.UndoUnavailableError{}
	}
	l.cursor--
	return l.records[l.cursor], nil
}

// Redo reactivates the oldest redo-only record and returns it. It fails
// with RedoUnavailableError when the cursor is already at the end.
func (l *Ledger) Redo() (Record, error) {
	if l.cursor == len(l.records) {
		return Record{}, apperrors.RedoUnavailableError{}
	}
	record := l.records[l.cursor]
	l.cursor++
	return record, nil
}

// CanUndo reports whether at least one record is active.
func (l *Ledger) CanUndo() bool { return l.cursor > 0 }

// CanRedo reports whether any redo-only records exist.
func (l *Ledger) CanRedo() bool { return l.cursor < len(l.records) }

// Clear empties the sequence and resets the cursor. Irreversible.
func (l *Ledger) Clear() {
	l.records = nil
	l.cursor = 0
}

// Snapshot returns a copy of the active records, oldest first. Redo-only
// records are not part of the active view.
func (l *Ledger) Snapshot() []Record {
	out := make([]Record, l.cursor)
	copy(out, l.records[:l.cursor])
	return out
}
