package game

import "errors"

var (
	// ErrInvalidSelection rejects a source selection: wrong turn, empty cell,
	// or a game that is already over. No state is mutated.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrIllegalMove rejects a destination that is not in the legal set
	// computed for the current selection. No state is mutated.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvariantViolation reports an internal consistency failure such as a
	// missing king. It indicates a bug, not a recoverable condition.
	ErrInvariantViolation = errors.New("invariant violation")
)
