package dataset

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Frame holds every point position for one time step.
type Frame []r3.Vec

// Clone returns a copy that shares no memory with f.
func (f Frame) Clone() Frame {
	c := make(Frame, len(f))
	copy(c, f)
	return c
}

// Sequence is the ordered, fixed-length list of frames of one simulation.
type Sequence struct {
	frames []Frame
	points int
}

// NewSequence validates that all frames carry the same number of points.
func NewSequence(frames []Frame) (*Sequence, error) {
	if len(frames) == 0 {
		return nil, &ShapeError{Array: "positions", Shape: []int{0}, Want: "at least one frame"}
	}
	points := len(frames[0])
	for i, f := range frames {
		if len(f) != points {
			return nil, fmt.Errorf("%w: frame %d has %d points, frame 0 has %d", ErrShape, i, len(f), points)
		}
	}
	return &Sequence{frames: frames, points: points}, nil
}

// FromFlat builds a sequence from a row-major (frames, points, 3) buffer.
func FromFlat(data []float64, frames, points int) (*Sequence, error) {
	if frames*points*3 != len(data) {
		return nil, &ShapeError{Array: "positions", Shape: []int{frames, points, 3}, Want: fmt.Sprintf("%d values", len(data))}
	}
	out := make([]Frame, frames)
	for i := range out {
		f := make(Frame, points)
		base := i * points * 3
		for j := range f {
			k := base + j*3
			f[j] = r3.Vec{X: data[k], Y: data[k+1], Z: data[k+2]}
		}
		out[i] = f
	}
	return NewSequence(out)
}

// Len returns the number of frames.
func (s *Sequence) Len() int { return len(s.frames) }

// Points returns the number of points per frame.
func (s *Sequence) Points() int { return s.points }

// At returns frame i. Indices past the end report ErrEndOfSequence so callers
// can tell looping apart from genuine data errors.
func (s *Sequence) At(i int) (Frame, error) {
	switch {
	case i < 0:
		return nil, &IndexError{Index: i, Len: len(s.frames), Wrapped: ErrNegativeIndex}
	case i >= len(s.frames):
		return nil, &IndexError{Index: i, Len: len(s.frames), Wrapped: ErrEndOfSequence}
	}
	return s.frames[i], nil
}

// MaxAbs returns the largest absolute coordinate over all frames and axes.
func (s *Sequence) MaxAbs() float64 {
	m := 0.0
	for _, f := range s.frames {
		for _, p := range f {
			m = math.Max(m, math.Max(math.Abs(p.X), math.Max(math.Abs(p.Y), math.Abs(p.Z))))
		}
	}
	return m
}

// Bounds returns the axis-aligned box enclosing every point of every frame.
func (s *Sequence) Bounds() r3.Box {
	first := s.frames[0]
	if len(first) == 0 {
		return r3.Box{}
	}
	b := r3.Box{Min: first[0], Max: first[0]}
	for _, f := range s.frames {
		for _, p := range f {
			b.Min = r3.Vec{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)}
			b.Max = r3.Vec{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)}
		}
	}
	return b
}

// Recenter subtracts center from every point of every frame.
func (s *Sequence) Recenter(center r3.Vec) {
	for _, f := range s.frames {
		for j := range f {
			f[j] = r3.Sub(f[j], center)
		}
	}
}
