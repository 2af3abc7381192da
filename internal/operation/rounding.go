package operation

import (
	"strings"

	"github.com/shopspring/decimal"

	apperrors "github.com/agbru/deccalc/internal/errors"
)

// RoundingMode identifies one of the supported result rounding strategies.
type RoundingMode string

// Supported rounding modes. HalfUp is the default: ties round away from
// zero, matching the behavior users expect from hand arithmetic.
const (
	RoundHalfUp   RoundingMode = "half-up"
	RoundHalfEven RoundingMode = "half-even"
	RoundCeiling  RoundingMode = "ceiling"
	RoundFloor    RoundingMode = "floor"
	RoundAwayZero RoundingMode = "up"
	RoundToZero   RoundingMode = "down"
)

// DefaultScale is the number of fractional digits kept in results when no
// precision is configured.
const DefaultScale = 10

// guardDigits is the extra scale carried through intermediate divisions so
// the final rounding step decides the last kept digit, not the division.
const guardDigits = 4

// RoundingModes returns the valid mode names, for flag usage messages.
func RoundingModes() []string {
	return []string{
		string(RoundHalfUp),
		string(RoundHalfEven),
		string(RoundCeiling),
		string(RoundFloor),
		string(RoundAwayZero),
		string(RoundToZero),
	}
}

// ParseRoundingMode converts a user-supplied mode name to a RoundingMode.
// Names are case-insensitive. Unknown names fail with a ConfigError.
func ParseRoundingMode(name string) (RoundingMode, error) {
	switch RoundingMode(strings.ToLower(strings.TrimSpace(name))) {
	case RoundHalfUp:
		return RoundHalfUp, nil
	case RoundHalfEven:
		return RoundHalfEven, nil
	case RoundCeiling:
		return RoundCeiling, nil
	case RoundFloor:
		return RoundFloor, nil
	case RoundAwayZero:
		return RoundAwayZero, nil
	case RoundToZero:
		return RoundToZero, nil
	default:
		return "", apperrors.NewConfigError("unknown rounding mode %q (valid: %s)",
			name, strings.Join(RoundingModes(), ", "))
	}
}

// Rounding bundles the fixed decimal scale and rounding mode applied to
// every operation result. Reproducibility of results under a fixed Rounding
// is a correctness property, not a display nicety.
type Rounding struct {
	// Scale is the number of digits kept after the decimal point.
	Scale int32
	// Mode selects how the digit at Scale is decided.
	Mode RoundingMode
}

// DefaultRounding returns the half-up rounding at the default scale.
func DefaultRounding() Rounding {
	return Rounding{Scale: DefaultScale, Mode: RoundHalfUp}
}

// Apply rounds d to the configured scale using the configured mode.
func (r Rounding) Apply(d decimal.Decimal) decimal.Decimal {
	switch r.Mode {
	case RoundHalfEven:
		return d.RoundBank(r.Scale)
	case RoundCeiling:
		return d.RoundCeil(r.Scale)
	case RoundFloor:
		return d.RoundFloor(r.Scale)
	case RoundAwayZero:
		return d.RoundUp(r.Scale)
	case RoundToZero:
		return d.RoundDown(r.Scale)
	default:
		return d.Round(r.Scale)
	}
}

// divScale returns the scale used for intermediate division results.
func (r Rounding) divScale() int32 {
	return r.Scale + guardDigits
}
