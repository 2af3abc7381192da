// Package history implements the calculation history engine: immutable
// calculation records, the bounded cursor-tracked ledger with undo/redo
// semantics, and the structured document form the ledger persists to.
package history

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is a single calculation held by the ledger. It is immutable once
// created: records are only produced by a successful command execution and
// are never mutated afterwards.
type Record struct {
	// Op is the case-normalized operation identifier.
	Op string
	// OperandA is the first operand.
	OperandA decimal.Decimal
	// OperandB is the second operand.
	OperandB decimal.Decimal
	// Result is the rounded operation result.
	Result decimal.Decimal
	// Timestamp is when the calculation was executed.
	Timestamp time.Time
}

// NewRecord creates a record stamped with the current time.
func NewRecord(op string, a, b, result decimal.Decimal) Record {
	return Record{
		Op:        op,
		OperandA:  a,
		OperandB:  b,
		Result:    result,
		Timestamp: time.Now().UTC(),
	}
}

// Equal reports field-wise equality between two records. Decimal fields
// compare by value (1.50 equals 1.5) and timestamps by instant.
func (r Record) Equal(other Record) bool {
	return r.Op == other.Op &&
		r.OperandA.Equal(other.OperandA) &&
		r.OperandB.Equal(other.OperandB) &&
		r.Result.Equal(other.Result) &&
		r.Timestamp.Equal(other.Timestamp)
}
