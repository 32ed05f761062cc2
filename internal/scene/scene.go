// Package scene performs the one-time setup shared by every presentation
// mode: camera range, optional re-centering, frame 0 and the container box.
//
// A Scene is the explicit context handed to the frame advancer (as its
// renderer) and to the presentation drivers; nothing here is global.
package scene

import (
	"fmt"
	"image"
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/molvis/internal/dataset"
	"github.com/san-kum/molvis/internal/player"
	"github.com/san-kum/molvis/internal/render"
)

type Options struct {
	// Cube is the container size; the wireframe box uses it as full extents.
	Cube r3.Vec
	// Recenter shifts every frame by -Cube/2 after the range is computed.
	Recenter    bool
	RangeFactor float64

	Width, Height int
	Background    color.RGBA
	BoxColor      color.RGBA
	MarkerScale   float64
}

type Scene struct {
	Camera  *render.Camera
	Markers *render.Markers
	Box     *render.Wireframe
	// Range is the half-extent framed by the camera at zoom 1.
	Range float64

	canvas *render.Canvas
}

// Init builds the scene and shows frame 0 with unscaled sizes.
func Init(frames *dataset.Sequence, src player.Source, opts Options) (*Scene, error) {
	if opts.RangeFactor <= 0 {
		opts.RangeFactor = 1
	}
	if opts.MarkerScale <= 0 {
		opts.MarkerScale = 1
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("scene: invalid surface size %dx%d", opts.Width, opts.Height)
	}

	s := &Scene{
		Camera:  render.NewCamera(),
		Markers: render.NewMarkers(),
		Range:   frames.MaxAbs() * opts.RangeFactor,
		canvas:  render.NewCanvas(opts.Width, opts.Height, opts.Background),
	}
	s.canvas.MarkerScale = opts.MarkerScale
	s.Camera.SetRange(s.Range)

	if opts.Recenter {
		frames.Recenter(r3.Scale(0.5, opts.Cube))
	}

	first, err := frames.At(0)
	if err != nil {
		return nil, err
	}
	colors, err := src.Colors(0)
	if err != nil {
		return nil, fmt.Errorf("frame 0: %w", err)
	}
	if err := s.Markers.SetData(first, colors, src.ScaledSizes(1)); err != nil {
		return nil, err
	}

	s.Box = render.Box(r3.Vec{}, opts.Cube, opts.BoxColor)
	return s, nil
}

// SetData forwards frame data to the markers visual.
func (s *Scene) SetData(points []r3.Vec, colors []color.RGBA, sizes []float64) error {
	return s.Markers.SetData(points, colors, sizes)
}

// Render draws the current state. The image is reused by the next call.
func (s *Scene) Render() *image.RGBA {
	return s.canvas.Render(s.Camera, s.Markers, s.Box)
}

// Background is the colour the surface is cleared to.
func (s *Scene) Background() color.RGBA { return s.canvas.Background }

// MarkerScale converts marker sizes to pixels at an 800px surface.
func (s *Scene) MarkerScale() float64 { return s.canvas.MarkerScale }

// Size returns the render surface dimensions.
func (s *Scene) Size() (int, int) { return s.canvas.Width, s.canvas.Height }
