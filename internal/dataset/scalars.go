package dataset

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Scalars carries one value per point, either per frame (frames x points)
// or constant across frames (points).
type Scalars struct {
	values   []float64
	frames   int
	points   int
	perFrame bool
}

// NewFrameScalars wraps a row-major frames x points buffer.
func NewFrameScalars(values []float64, frames, points int) (*Scalars, error) {
	if frames*points != len(values) {
		return nil, &ShapeError{Array: "scalars", Shape: []int{frames, points}, Want: fmt.Sprintf("%d values", len(values))}
	}
	return &Scalars{values: values, frames: frames, points: points, perFrame: true}, nil
}

// NewConstantScalars wraps one value per point shared by every frame.
func NewConstantScalars(values []float64) *Scalars {
	return &Scalars{values: values, frames: 1, points: len(values)}
}

// PerFrame reports whether values vary from frame to frame.
func (s *Scalars) PerFrame() bool { return s.perFrame }

// Frames returns the number of frames stored (1 for constant scalars).
func (s *Scalars) Frames() int { return s.frames }

// Points returns the number of points.
func (s *Scalars) Points() int { return s.points }

// Row returns the values for frame i. Constant scalars ignore i.
func (s *Scalars) Row(i int) ([]float64, error) {
	if !s.perFrame {
		return s.values, nil
	}
	switch {
	case i < 0:
		return nil, &IndexError{Index: i, Len: s.frames, Wrapped: ErrNegativeIndex}
	case i >= s.frames:
		return nil, &IndexError{Index: i, Len: s.frames, Wrapped: ErrEndOfSequence}
	}
	return s.values[i*s.points : (i+1)*s.points], nil
}

// Max returns the global maximum over all frames.
func (s *Scalars) Max() float64 {
	if len(s.values) == 0 {
		return math.NaN()
	}
	return floats.Max(s.values)
}

// Normalize divides every value by the global maximum, so the maximum
// becomes exactly 1. It runs once over the whole dataset, never per frame.
func (s *Scalars) Normalize() error {
	m := s.Max()
	if !(m > 0) || math.IsInf(m, 0) {
		return fmt.Errorf("%w: got %v", ErrBadScalarRange, m)
	}
	// Divide rather than scale by 1/m: m/m is exactly 1, m*(1/m) may not be.
	for i := range s.values {
		s.values[i] /= m
	}
	return nil
}

// Types holds one category id per point.
type Types []int
