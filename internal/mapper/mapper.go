// Package mapper derives per-point marker colors and radii from scalar
// attributes (temperature) or discrete molecule types.
package mapper

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/san-kum/molvis/internal/colormap"
	"github.com/san-kum/molvis/internal/dataset"
)

var (
	ErrUnknownType = errors.New("mapper: unknown point type")
	ErrNoTypes     = errors.New("mapper: type coloring requires a types array")
	ErrFrameIndex  = errors.New("mapper: frame index out of range")
)

// Mode selects how colors are derived.
type Mode int

const (
	// ModeTemperature maps each normalized scalar through the colormap.
	ModeTemperature Mode = iota
	// ModeType uses a fixed color per type, the same every frame.
	ModeType
)

func (m Mode) String() string {
	switch m {
	case ModeTemperature:
		return "temperature"
	case ModeType:
		return "type"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Radii of the two known molecule types.
const (
	SizeType0 = 1.28
	SizeType1 = 1.91
)

var typeColors = []color.RGBA{
	colormap.FromFloat(0.4, 0.4, 1),
	colormap.FromFloat(1, 1, 0),
}

// SizeFor returns the marker radius of a molecule type.
func SizeFor(t int) (float64, error) {
	switch t {
	case 0:
		return SizeType0, nil
	case 1:
		return SizeType1, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownType, t)
}

// ColorFor returns the fixed color of a molecule type.
func ColorFor(t int) (color.RGBA, error) {
	if t < 0 || t >= len(typeColors) {
		return color.RGBA{}, fmt.Errorf("%w: %d", ErrUnknownType, t)
	}
	return typeColors[t], nil
}

// Options configures New.
type Options struct {
	Mode     Mode
	Colormap *colormap.Colormap
	// Frames bounds the valid frame indices passed to Colors.
	Frames int
	// Scalars must already be normalized.
	Scalars *dataset.Scalars
	Types   dataset.Types
	// DefaultSize is used for every point when Types is nil.
	DefaultSize float64
}

// Mapper produces colors and sizes for any frame index.
type Mapper struct {
	mode    Mode
	cm      *colormap.Colormap
	frames  int
	scalars *dataset.Scalars
	fixed   []color.RGBA
	sizes   []float64
}

// New validates opts and precomputes everything that does not depend on
// the frame index. Unknown type ids are rejected here, not at render time.
func New(opts Options) (*Mapper, error) {
	if opts.Frames <= 0 {
		return nil, fmt.Errorf("mapper: frame count must be positive, got %d", opts.Frames)
	}
	m := &Mapper{mode: opts.Mode, cm: opts.Colormap, frames: opts.Frames, scalars: opts.Scalars}

	var points int
	switch opts.Mode {
	case ModeTemperature:
		if opts.Scalars == nil || opts.Colormap == nil {
			return nil, errors.New("mapper: temperature coloring needs scalars and a colormap")
		}
		points = opts.Scalars.Points()
	case ModeType:
		if opts.Types == nil {
			return nil, ErrNoTypes
		}
		points = len(opts.Types)
		m.fixed = make([]color.RGBA, points)
		for i, t := range opts.Types {
			c, err := ColorFor(t)
			if err != nil {
				return nil, fmt.Errorf("point %d: %w", i, err)
			}
			m.fixed[i] = c
		}
	default:
		return nil, fmt.Errorf("mapper: unknown mode %v", opts.Mode)
	}

	m.sizes = make([]float64, points)
	if opts.Types == nil {
		for i := range m.sizes {
			m.sizes[i] = opts.DefaultSize
		}
		return m, nil
	}
	if len(opts.Types) != points {
		return nil, fmt.Errorf("%w: %d types for %d points", dataset.ErrShape, len(opts.Types), points)
	}
	for i, t := range opts.Types {
		s, err := SizeFor(t)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		m.sizes[i] = s
	}
	return m, nil
}

// Mode reports the coloring mode.
func (m *Mapper) Mode() Mode { return m.mode }

// Colors returns the per-point colors of frame i.
func (m *Mapper) Colors(i int) ([]color.RGBA, error) {
	if i < 0 || i >= m.frames {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrFrameIndex, i, m.frames)
	}
	if m.mode == ModeType {
		return m.fixed, nil
	}
	row, err := m.scalars.Row(i)
	if err != nil {
		return nil, err
	}
	return m.cm.MapAll(nil, row), nil
}

// Sizes returns the per-point radii. Callers must not modify the slice.
func (m *Mapper) Sizes() []float64 { return m.sizes }

// ScaledSizes returns a fresh copy of the radii multiplied by scale.
func (m *Mapper) ScaledSizes(scale float64) []float64 {
	out := make([]float64, len(m.sizes))
	for i, s := range m.sizes {
		out[i] = s * scale
	}
	return out
}
