package mines

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyPopulated = errors.New("board is already populated with mines")
	ErrNotPopulated     = errors.New("board has no mines placed yet")
	ErrDuplicateMine    = errors.New("duplicate mine")
)

// OutOfBoundsError is returned when a coordinate falls outside the board.
type OutOfBoundsError struct {
	X, Y          int
	Width, Height int
}

// [OutOfBoundsError] implements [error]
func (e OutOfBoundsError) Error() string {
	return fmt.Sprintf(
		"cell (%d, %d) is out of bounds of %dx%d board",
		e.X, e.Y, e.Width, e.Height,
	)
}

// OverPopulationError is returned when the requested mine count cannot be
// placed outside the safe zone.
type OverPopulationError struct {
	MineCount int
	Available int
}

// [OverPopulationError] implements [error]
func (e OverPopulationError) Error() string {
	if e.MineCount < 0 {
		return fmt.Sprintf("mine count must not be negative (got %d)", e.MineCount)
	}
	return fmt.Sprintf(
		"cannot place %d mines: only %d cells are outside the safe zone",
		e.MineCount, e.Available,
	)
}

type InvalidDimensionsError struct {
	Width, Height int
}

// [InvalidDimensionsError] implements [error]
func (e InvalidDimensionsError) Error() string {
	return fmt.Sprintf(
		"board dimensions must be positive (got %dx%d)", e.Width, e.Height,
	)
}

// IsValidationError reports whether err was caused by invalid caller input
// rather than an internal failure.
func IsValidationError(err error) bool {
	var (
		oob OutOfBoundsError
		op  OverPopulationError
		dim InvalidDimensionsError
	)
	return errors.As(err, &oob) || errors.As(err, &op) || errors.As(err, &dim) ||
		errors.Is(err, ErrAlreadyPopulated) || errors.Is(err, ErrNotPopulated) ||
		errors.Is(err, ErrDuplicateMine)
}
