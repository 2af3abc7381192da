package operation

import (
	"math"

	"github.com/shopspring/decimal"

	apperrors "github.com/agbru/deccalc/internal/errors"
)

// Strategy is the capability pair shared by every operation: operand
// validation and computation. Compute is only invoked on operand pairs that
// passed Validate, and returns the raw, un-rounded result.
type Strategy interface {
	// Validate checks the operand pair against the operation's rules.
	Validate(a, b decimal.Decimal) error
	// Compute calculates the raw result for a validated operand pair.
	Compute(a, b decimal.Decimal) decimal.Decimal
}

// ParseOperand converts a raw operand string into a decimal. field names the
// operand for error messages ("operand_a" or "operand_b").
func ParseOperand(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, apperrors.NewValidationError(field, "cannot parse %q as a decimal", raw)
	}
	return d, nil
}

// noValidation is embedded by strategies whose operands are unrestricted.
type noValidation struct{}

func (noValidation) Validate(_, _ decimal.Decimal) error { return nil }

// ─────────────────────────────────────────────────────────────────────────────
// Basic operations
// ─────────────────────────────────────────────────────────────────────────────

type addOp struct{ noValidation }

func (addOp) Compute(a, b decimal.Decimal) decimal.Decimal { return a.Add(b) }

type subtractOp struct{ noValidation }

func (subtractOp) Compute(a, b decimal.Decimal) decimal.Decimal { return a.Sub(b) }

type multiplyOp struct{ noValidation }

func (multiplyOp) Compute(a, b decimal.Decimal) decimal.Decimal { return a.Mul(b) }

type divideOp struct{ scale int32 }

func (divideOp) Validate(_, b decimal.Decimal) error {
	if b.IsZero() {
		return apperrors.DivisionByZeroError{Operation: "division"}
	}
	return nil
}

// Compute divides at the guarded scale; the registry's rounding step then
// reduces the quotient to the configured scale. The guard digits are a
// finite window, not exact division: a quotient whose deciding digits lie
// past the window can round differently than a single rounding of the
// exact quotient would.
func (o divideOp) Compute(a, b decimal.Decimal) decimal.Decimal {
	return a.DivRound(b, o.scale)
}

// ─────────────────────────────────────────────────────────────────────────────
// Advanced operations
// ─────────────────────────────────────────────────────────────────────────────

type powerOp struct{}

func (powerOp) Validate(_, b decimal.Decimal) error {
	if b.IsNegative() {
		return apperrors.NewValidationError("operand_b", "negative exponents are not supported")
	}
	if !b.IsInteger() {
		return apperrors.NewValidationError("operand_b", "exponent must be an integer")
	}
	return nil
}

func (powerOp) Compute(a, b decimal.Decimal) decimal.Decimal { return a.Pow(b) }

type rootOp struct{}

func (rootOp) Validate(a, b decimal.Decimal) error {
	if b.IsZero() {
		return apperrors.NewValidationError("operand_b", "zero root is undefined")
	}
	if !b.IsInteger() {
		return apperrors.NewValidationError("operand_b", "root degree must be an integer")
	}
	if a.IsNegative() && b.Mod(decimal.NewFromInt(2)).IsZero() {
		return apperrors.NewValidationError("operand_a", "cannot calculate even root of a negative number")
	}
	return nil
}

// Compute evaluates the b-th root of a through float64 exponentiation.
// The configured rounding step absorbs the float conversion noise, so
// exact roots like root(16, 2) come back as exact decimals. Accuracy is
// bounded by float64: roughly 15 significant digits. Scales beyond that
// keep the digits float64 produced, which are not meaningful.
func (rootOp) Compute(a, b decimal.Decimal) decimal.Decimal {
	if a.IsZero() {
		return decimal.Zero
	}
	af, _ := a.Abs().Float64()
	bf, _ := b.Float64()
	result := decimal.NewFromFloat(math.Pow(af, 1/bf))
	if a.IsNegative() {
		// Only reachable for odd degrees; even degrees fail validation.
		result = result.Neg()
	}
	return result
}

type modulusOp struct{}

func (modulusOp) Validate(_, b decimal.Decimal) error {
	if b.IsZero() {
		return apperrors.DivisionByZeroError{Operation: "modulus"}
	}
	return nil
}

// Compute returns the remainder with the sign of the dividend:
// modulus(-10, 3) is -1, not 2.
func (modulusOp) Compute(a, b decimal.Decimal) decimal.Decimal { return a.Mod(b) }

type intDivOp struct{}

func (intDivOp) Validate(_, b decimal.Decimal) error {
	if b.IsZero() {
		return apperrors.DivisionByZeroError{Operation: "integer division"}
	}
	return nil
}

// Compute truncates the quotient toward zero: intdiv(-10, 3) is -3.
func (intDivOp) Compute(a, b decimal.Decimal) decimal.Decimal {
	q, _ := a.QuoRem(b, 0)
	return q
}

type percentageOp struct{ scale int32 }

func (percentageOp) Validate(_, b decimal.Decimal) error {
	if b.IsZero() {
		return apperrors.NewValidationError("operand_b", "cannot calculate percentage with zero denominator")
	}
	return nil
}

// Compute returns a as a percentage of b: percentage(25, 200) is 12.5.
func (o percentageOp) Compute(a, b decimal.Decimal) decimal.Decimal {
	return a.DivRound(b, o.scale).Mul(decimal.NewFromInt(100))
}

type absDiffOp struct{ noValidation }

func (absDiffOp) Compute(a, b decimal.Decimal) decimal.Decimal { return a.Sub(b).Abs() }
