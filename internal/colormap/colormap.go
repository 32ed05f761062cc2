// Package colormap maps normalized scalars in [0, 1] to RGBA colors through
// piecewise-linear control points.
package colormap

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	ErrStops          = errors.New("colormap: invalid control points")
	ErrUnknownColor   = errors.New("colormap: unknown color")
	ErrUnknownPalette = errors.New("colormap: unknown palette")
)

// Blend selects the color space stops are interpolated in.
type Blend string

const (
	BlendRGB Blend = "rgb"
	BlendLab Blend = "lab"
)

// Stop is one control point of a colormap.
type Stop struct {
	Pos   float64
	Color colorful.Color
}

// Colormap is immutable after construction; Map has no hidden state.
type Colormap struct {
	stops []Stop
	blend Blend
}

// New builds a colormap from color names or hex codes and their positions.
// Positions must start at 0, end at 1 and increase strictly.
func New(colors []string, positions []float64, blend Blend) (*Colormap, error) {
	if len(colors) < 2 || len(colors) != len(positions) {
		return nil, fmt.Errorf("%w: need at least two colors and one position per color (got %d colors, %d positions)",
			ErrStops, len(colors), len(positions))
	}
	stops := make([]Stop, len(colors))
	for i, name := range colors {
		c, err := Parse(name)
		if err != nil {
			return nil, err
		}
		stops[i] = Stop{Pos: positions[i], Color: c}
	}
	return FromStops(stops, blend)
}

// FromStops validates stops and builds a colormap.
func FromStops(stops []Stop, blend Blend) (*Colormap, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("%w: need at least two stops", ErrStops)
	}
	if stops[0].Pos != 0 || stops[len(stops)-1].Pos != 1 {
		return nil, fmt.Errorf("%w: positions must start at 0 and end at 1", ErrStops)
	}
	for i := 1; i < len(stops); i++ {
		if !(stops[i].Pos > stops[i-1].Pos) {
			return nil, fmt.Errorf("%w: positions must increase strictly (%v after %v)", ErrStops, stops[i].Pos, stops[i-1].Pos)
		}
	}
	switch blend {
	case "":
		blend = BlendRGB
	case BlendRGB, BlendLab:
	default:
		return nil, fmt.Errorf("%w: unknown blend mode %q", ErrStops, blend)
	}
	return &Colormap{stops: append([]Stop(nil), stops...), blend: blend}, nil
}

// Stops returns a copy of the control points.
func (m *Colormap) Stops() []Stop {
	return append([]Stop(nil), m.stops...)
}

// Map returns the color for v. Values outside [0, 1] are clamped and NaN
// maps to the first stop.
func (m *Colormap) Map(v float64) color.RGBA {
	if math.IsNaN(v) || v <= 0 {
		return toRGBA(m.stops[0].Color)
	}
	if v >= 1 {
		return toRGBA(m.stops[len(m.stops)-1].Color)
	}
	// first stop with Pos >= v; v in (0,1) so 1 <= i <= len-1
	i := sort.Search(len(m.stops), func(i int) bool { return m.stops[i].Pos >= v })
	lo, hi := m.stops[i-1], m.stops[i]
	t := (v - lo.Pos) / (hi.Pos - lo.Pos)

	var c colorful.Color
	if m.blend == BlendLab {
		c = lo.Color.BlendLab(hi.Color, t)
	} else {
		c = lo.Color.BlendRgb(hi.Color, t)
	}
	return toRGBA(c.Clamped())
}

// MapAll maps every value of vs into dst, allocating when dst is too short.
func (m *Colormap) MapAll(dst []color.RGBA, vs []float64) []color.RGBA {
	if cap(dst) < len(vs) {
		dst = make([]color.RGBA, len(vs))
	}
	dst = dst[:len(vs)]
	for i, v := range vs {
		dst[i] = m.Map(v)
	}
	return dst
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Parse resolves a CSS color name or a #rrggbb code.
func Parse(s string) (colorful.Color, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[key]; ok {
		key = hex
	}
	if !strings.HasPrefix(key, "#") {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	c, err := colorful.Hex(key)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	return c, nil
}

// FromFloat builds a color from components in [0, 1].
func FromFloat(r, g, b float64) color.RGBA {
	return toRGBA(colorful.Color{R: r, G: g, B: b}.Clamped())
}

var namedColors = map[string]string{
	"black":       "#000000",
	"white":       "#ffffff",
	"red":         "#ff0000",
	"green":       "#008000",
	"blue":        "#0000ff",
	"yellow":      "#ffff00",
	"orange":      "#ffa500",
	"purple":      "#800080",
	"cyan":        "#00ffff",
	"magenta":     "#ff00ff",
	"gray":        "#808080",
	"grey":        "#808080",
	"navy":        "#000080",
	"darkred":     "#8b0000",
	"lightblue":   "#add8e6",
	"lightgreen":  "#90ee90",
	"lightyellow": "#ffffe0",
	"lightgray":   "#d3d3d3",
	"lightgrey":   "#d3d3d3",
}
