// Package operation implements the arithmetic strategy layer of the
// calculator: ten pure, stateless operations over high-precision decimals,
// each with its own operand validation rules, plus the registry that maps
// case-normalized identifiers to immutable operation descriptors.
//
// Every result is rounded to a configured scale with a configured rounding
// mode. This is applied uniformly by the descriptor, not by individual
// strategies, so results are reproducible across runs for a fixed
// configuration.
package operation
