package render

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"
)

var ErrLengthMismatch = errors.New("render: points, colors and sizes differ in length")

// Markers is the scatter visual: one disc per point.
type Markers struct {
	Points []r3.Vec
	Colors []color.RGBA
	Sizes  []float64
	// EdgeColor outlines each disc; EdgeWidthRel is the outline width as a
	// fraction of the radius (0 disables it).
	EdgeColor    color.RGBA
	EdgeWidthRel float64
}

func NewMarkers() *Markers {
	return &Markers{EdgeColor: color.RGBA{A: 255}, EdgeWidthRel: 0.08}
}

// SetData replaces the displayed points.
func (m *Markers) SetData(points []r3.Vec, colors []color.RGBA, sizes []float64) error {
	if len(colors) != len(points) || len(sizes) != len(points) {
		return fmt.Errorf("%w: %d points, %d colors, %d sizes", ErrLengthMismatch, len(points), len(colors), len(sizes))
	}
	m.Points, m.Colors, m.Sizes = points, colors, sizes
	return nil
}

// Len returns the number of markers.
func (m *Markers) Len() int { return len(m.Points) }

type Edge struct {
	Start, End r3.Vec
}

// Wireframe is a static set of line segments.
type Wireframe struct {
	Edges []Edge
	Color color.RGBA
}

// Box returns the twelve edges of an axis-aligned box centred on center
// with the given full side lengths.
func Box(center, size r3.Vec, c color.RGBA) *Wireframe {
	h := r3.Scale(0.5, size)
	v := [8]r3.Vec{
		{X: -h.X, Y: -h.Y, Z: -h.Z}, {X: h.X, Y: -h.Y, Z: -h.Z}, {X: h.X, Y: h.Y, Z: -h.Z}, {X: -h.X, Y: h.Y, Z: -h.Z},
		{X: -h.X, Y: -h.Y, Z: h.Z}, {X: h.X, Y: -h.Y, Z: h.Z}, {X: h.X, Y: h.Y, Z: h.Z}, {X: -h.X, Y: h.Y, Z: h.Z},
	}
	ei := [12][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	w := &Wireframe{Edges: make([]Edge, 0, len(ei)), Color: c}
	for _, e := range ei {
		w.Edges = append(w.Edges, Edge{Start: r3.Add(center, v[e[0]]), End: r3.Add(center, v[e[1]])})
	}
	return w
}
