package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for arena operations.
var (
	// ErrNoSurface indicates the arena was started without a render surface.
	ErrNoSurface = errors.New("dynamo: no render surface")

	// ErrCapacityExceeded indicates the layout cannot hold the requested bodies.
	ErrCapacityExceeded = errors.New("dynamo: body count exceeds arena capacity")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrInvalidPointer indicates a pointer event with NaN or Inf coordinates.
	ErrInvalidPointer = errors.New("dynamo: invalid pointer coordinates")

	// ErrStopped indicates the scheduler was stopped.
	ErrStopped = errors.New("dynamo: scheduler stopped")
)

// FrameError wraps an error with the frame it occurred in.
type FrameError struct {
	Frame   int
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Frame, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
