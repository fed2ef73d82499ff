package scene

import "errors"

// Domain errors for scene mutations.
var (
	// ErrSceneFull indicates the charge limit was reached.
	ErrSceneFull = errors.New("scene: charge limit reached")

	// ErrNoCharge indicates no charge exists at or near the given point.
	ErrNoCharge = errors.New("scene: no charge at point")

	// ErrNotDragging indicates a drag update without an active drag.
	ErrNotDragging = errors.New("scene: no active drag")
)
