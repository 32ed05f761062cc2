package dataset

import (
	"errors"
	"fmt"
)

// Domain errors for loading and indexing frame data.
var (
	// ErrShape indicates an array whose rank or dimensions do not fit its role.
	ErrShape = errors.New("dataset: malformed array shape")

	// ErrEndOfSequence indicates a frame index past the last frame.
	ErrEndOfSequence = errors.New("dataset: end of frame sequence")

	// ErrNegativeIndex indicates a frame index below zero.
	ErrNegativeIndex = errors.New("dataset: negative frame index")

	// ErrBadScalarRange indicates scalars that cannot be normalized
	// (maximum not positive or not finite).
	ErrBadScalarRange = errors.New("dataset: scalar maximum must be positive and finite")

	// ErrUnsupportedDType indicates a .npy element type the loader does not read.
	ErrUnsupportedDType = errors.New("dataset: unsupported npy dtype")
)

// ShapeError reports which array had an unexpected shape.
type ShapeError struct {
	Array string
	Shape []int
	Want  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("dataset: %s has shape %v, want %s", e.Array, e.Shape, e.Want)
}

func (e *ShapeError) Unwrap() error {
	return ErrShape
}

// IndexError wraps an index failure with the offending index and bound.
type IndexError struct {
	Index   int
	Len     int
	Wrapped error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%v (index %d, length %d)", e.Wrapped, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error {
	return e.Wrapped
}
