package dataset

import (
	"fmt"
	"math"
)

// Paths names the on-disk arrays of one simulation run.
type Paths struct {
	Positions string
	Scalars   string
	Types     string // optional
}

// Dataset is a validated set of positions, scalars and optional types
// that agree on frame and point counts.
type Dataset struct {
	Frames  *Sequence
	Scalars *Scalars
	Types   Types
}

// New checks that the three arrays describe the same frames and points.
func New(frames *Sequence, scalars *Scalars, types Types) (*Dataset, error) {
	if frames == nil || scalars == nil {
		return nil, fmt.Errorf("%w: positions and scalars are required", ErrShape)
	}
	if scalars.Points() != frames.Points() {
		return nil, &ShapeError{Array: "scalars", Shape: scalarShape(scalars), Want: fmt.Sprintf("%d points", frames.Points())}
	}
	if scalars.PerFrame() && scalars.Frames() != frames.Len() {
		return nil, &ShapeError{Array: "scalars", Shape: scalarShape(scalars), Want: fmt.Sprintf("%d frames", frames.Len())}
	}
	if types != nil && len(types) != frames.Points() {
		return nil, &ShapeError{Array: "types", Shape: []int{len(types)}, Want: fmt.Sprintf("(%d)", frames.Points())}
	}
	return &Dataset{Frames: frames, Scalars: scalars, Types: types}, nil
}

// Load reads and validates the arrays named by p.
func Load(p Paths) (*Dataset, error) {
	if p.Positions == "" || p.Scalars == "" {
		return nil, fmt.Errorf("%w: positions and scalars files are required", ErrShape)
	}

	pos, err := LoadNPY(p.Positions)
	if err != nil {
		return nil, err
	}
	frames, err := PositionsFromArray(pos)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Positions, err)
	}

	sc, err := LoadNPY(p.Scalars)
	if err != nil {
		return nil, err
	}
	scalars, err := ScalarsFromArray(sc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Scalars, err)
	}

	var types Types
	if p.Types != "" {
		ta, err := LoadNPY(p.Types)
		if err != nil {
			return nil, err
		}
		if types, err = TypesFromArray(ta); err != nil {
			return nil, fmt.Errorf("%s: %w", p.Types, err)
		}
	}

	return New(frames, scalars, types)
}

// PositionsFromArray interprets a (frames, points, 3) array.
func PositionsFromArray(a *Array) (*Sequence, error) {
	if a.Rank() != 3 || a.Shape[2] != 3 {
		return nil, &ShapeError{Array: "positions", Shape: a.Shape, Want: "(frames, points, 3)"}
	}
	return FromFlat(a.Data, a.Shape[0], a.Shape[1])
}

// ScalarsFromArray interprets a (frames, points) or (points) array.
func ScalarsFromArray(a *Array) (*Scalars, error) {
	switch a.Rank() {
	case 2:
		return NewFrameScalars(a.Data, a.Shape[0], a.Shape[1])
	case 1:
		return NewConstantScalars(a.Data), nil
	}
	return nil, &ShapeError{Array: "scalars", Shape: a.Shape, Want: "(frames, points) or (points)"}
}

// TypesFromArray interprets a (points) array of integral category ids.
func TypesFromArray(a *Array) (Types, error) {
	if a.Rank() != 1 {
		return nil, &ShapeError{Array: "types", Shape: a.Shape, Want: "(points)"}
	}
	t := make(Types, len(a.Data))
	for i, v := range a.Data {
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("%w: types[%d] = %v is not an integer", ErrShape, i, v)
		}
		t[i] = int(v)
	}
	return t, nil
}

func scalarShape(s *Scalars) []int {
	if s.PerFrame() {
		return []int{s.Frames(), s.Points()}
	}
	return []int{s.Points()}
}
