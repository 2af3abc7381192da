// Package apperrors defines the structured error taxonomy of the calculator:
// operand validation failures, division by zero, unknown operations, undo/redo
// no-op conditions, and corrupt history documents. Types carry enough context
// for precise user messaging while remaining inspectable with errors.Is and
// errors.As.
//
// All recoverable conditions are recovered at the calculator facade boundary;
// only internal invariant violations are allowed to terminate the process.
package apperrors
