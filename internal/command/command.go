// Package command encapsulates "apply operation X to operands (a, b)" as an
// executable unit. Executing a command validates and computes but does not
// touch the ledger; attaching the resulting record to history is the
// calculator's responsibility, keeping commands re-executable and testable
// independent of ledger state.
package command

import (
	"fmt"

	"github.com/agbru/deccalc/internal/history"
	"github.com/agbru/deccalc/internal/operation"
)

// Command pairs an operation descriptor with two raw operand inputs.
type Command struct {
	descriptor *operation.Descriptor
	rawA       string
	rawB       string
}

// New constructs a command from a resolved descriptor and raw operand
// strings. Operands are not parsed until Execute so that construction never
// fails.
func New(descriptor *operation.Descriptor, rawA, rawB string) *Command {
	return &Command{descriptor: descriptor, rawA: rawA, rawB: rawB}
}

// Describe returns a short human-readable form of the command.
func (c *Command) Describe() string {
	return fmt.Sprintf("%s(%s, %s)", c.descriptor.Identifier, c.rawA, c.rawB)
}

// Execute parses and validates the operands, computes the rounded result,
// and returns a fresh record. Parse and validation failures surface the
// strategy's typed errors. The ledger is never touched here.
func (c *Command) Execute() (history.Record, error) {
	a, err := operation.ParseOperand("operand_a", c.rawA)
	if err != nil {
		return history.Record{}, err
	}
	b, err := operation.ParseOperand("operand_b", c.rawB)
	if err != nil {
		return history.Record{}, err
	}

	if err := c.descriptor.Validate(a, b); err != nil {
		return history.Record{}, err
	}

	result := c.descriptor.Compute(a, b)
	return history.NewRecord(c.descriptor.Identifier, a, b, result), nil
}
