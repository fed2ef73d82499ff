package field

import "errors"

// Domain errors for field evaluation.
var (
	// ErrBadSpacing indicates a non-positive grid spacing.
	ErrBadSpacing = errors.New("field: grid spacing must be positive")

	// ErrBadBounds indicates a degenerate canvas region.
	ErrBadBounds = errors.New("field: bounds must have positive width and height")
)
