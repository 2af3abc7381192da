package operation

import (
	"strings"

	"github.com/shopspring/decimal"

	apperrors "github.com/agbru/deccalc/internal/errors"
)

// Operation categories, used to group entries in generated help text.
const (
	CategoryBasic    = "Basic Operations"
	CategoryAdvanced = "Advanced Operations"
)

// Arity is the number of operands every registered operation takes.
const Arity = 2

// Descriptor is the static metadata of a registered operation: its
// identifier, display information, and validate/compute strategy. Created
// once at registry initialization and immutable for the process lifetime.
type Descriptor struct {
	// Identifier is the case-normalized operation name (e.g. "add").
	Identifier string
	// Symbol is a short display form used in rendered history ("+", "mod").
	Symbol string
	// Description is the one-line help text for the operation.
	Description string
	// Category groups the operation in help output.
	Category string

	strategy Strategy
	rounding Rounding
}

// Validate checks the operand pair against the operation's rules.
func (d *Descriptor) Validate(a, b decimal.Decimal) error {
	return d.strategy.Validate(a, b)
}

// Compute calculates the result for a validated operand pair, rounded to
// the registry's configured scale and mode.
func (d *Descriptor) Compute(a, b decimal.Decimal) decimal.Decimal {
	return d.rounding.Apply(d.strategy.Compute(a, b))
}

// Registry maps operation identifiers to their descriptors. Registration is
// static and exhaustive at construction; nothing is added at runtime.
type Registry struct {
	descriptors map[string]*Descriptor
	order       []string
}

// NewRegistry builds the full operation registry with results rounded
// according to r.
func NewRegistry(r Rounding) *Registry {
	reg := &Registry{descriptors: make(map[string]*Descriptor)}

	divScale := r.divScale()
	entries := []*Descriptor{
		{Identifier: "add", Symbol: "+", Description: "Add two numbers", Category: CategoryBasic, strategy: addOp{}},
		{Identifier: "subtract", Symbol: "-", Description: "Subtract second number from first", Category: CategoryBasic, strategy: subtractOp{}},
		{Identifier: "multiply", Symbol: "*", Description: "Multiply two numbers", Category: CategoryBasic, strategy: multiplyOp{}},
		{Identifier: "divide", Symbol: "/", Description: "Divide first number by second", Category: CategoryBasic, strategy: divideOp{scale: divScale}},
		{Identifier: "power", Symbol: "^", Description: "Raise first number to second power", Category: CategoryAdvanced, strategy: powerOp{}},
		{Identifier: "root", Symbol: "root", Description: "Calculate nth root of first number", Category: CategoryAdvanced, strategy: rootOp{}},
		{Identifier: "modulus", Symbol: "mod", Description: "Calculate remainder of division", Category: CategoryAdvanced, strategy: modulusOp{}},
		{Identifier: "intdiv", Symbol: "//", Description: "Integer division (quotient only)", Category: CategoryAdvanced, strategy: intDivOp{}},
		{Identifier: "percentage", Symbol: "%", Description: "Calculate percentage (a/b x 100)", Category: CategoryAdvanced, strategy: percentageOp{scale: divScale}},
		{Identifier: "absdiff", Symbol: "absdiff", Description: "Absolute difference between numbers", Category: CategoryAdvanced, strategy: absDiffOp{}},
	}

	for _, d := range entries {
		d.rounding = r
		reg.descriptors[d.Identifier] = d
		reg.order = append(reg.order, d.Identifier)
	}
	return reg
}

// NormalizeIdentifier lowercases and trims an operation name so lookups are
// case-insensitive exact matches.
func NormalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

// Resolve returns the descriptor registered under identifier, or an
// UnknownOperationError.
func (r *Registry) Resolve(identifier string) (*Descriptor, error) {
	d, ok := r.descriptors[NormalizeIdentifier(identifier)]
	if !ok {
		return nil, apperrors.UnknownOperationError{Identifier: identifier}
	}
	return d, nil
}

// Descriptors returns all descriptors in registration order.
func (r *Registry) Descriptors() []*Descriptor {
	out := make([]*Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.descriptors[id])
	}
	return out
}

// Identifiers returns the registered operation names in registration order.
func (r *Registry) Identifiers() []string {
	return append([]string(nil), r.order...)
}
