package internal

import (
	"errors"
	"fmt"
)

// Error taxonomy for the formula engine. Every public Board operation
// absorbs these internally and reflects them as cell state; they are
// exposed for tests and for the lower-level per-cell helpers.
var (
	// ErrParse marks a parser failure: the scannerless parser could not
	// produce a Node for the given formula text.
	ErrParse = errors.New("parse error")

	// ErrEval marks an evaluation failure: recursion cap exceeded, or a
	// cell reference resolved outside the tile's bounds.
	ErrEval = errors.New("eval error")

	// ErrNum marks a numeric coercion failure beyond the value algebra's
	// total dispatch (reserved for callers that want stricter behavior
	// than the default "unmatched coercions yield Num(0)" policy).
	ErrNum = errors.New("numeric error")

	// ErrParseCellID is returned when a label names no column or row of the
	// tile, or when a CellRef has no recognised form.
	ErrParseCellID = errors.New("could not resolve cell reference")

	// ErrOutOfBounds marks a position outside ROW_MAX/COL_MAX.
	ErrOutOfBounds = errors.New("cell reference out of tile bounds")
)

// ParseError carries the byte offset at which parsing gave up, per the
// Parse{pos} error variant.
type ParseError struct {
	Pos int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: at byte offset %d", ErrParse, e.Pos)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// EvalError carries a human-readable reason for an evaluation failure.
type EvalError struct {
	Reason string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s: %s", ErrEval, e.Reason)
}

func (e *EvalError) Unwrap() error {
	return ErrEval
}
