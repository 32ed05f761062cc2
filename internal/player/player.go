// Package player advances a cursor over a frame sequence and pushes each
// frame's positions, colors and sizes into a renderer.
//
// The cursor starts at 1 because scene setup already shows frame 0. When
// the cursor runs past the last frame it wraps to 0 and the step reports
// Wrapped; wrapping is never an error. Any other failure (bad data, a
// renderer error) is returned and leaves the cursor where it was.
package player

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/molvis/internal/dataset"
)

// Renderer receives the data of one frame.
type Renderer interface {
	SetData(points []r3.Vec, colors []color.RGBA, sizes []float64) error
}

// Source supplies per-frame colors and per-point base sizes.
type Source interface {
	Colors(i int) ([]color.RGBA, error)
	ScaledSizes(scale float64) []float64
}

// Step describes what one Advance call displayed.
type Step struct {
	Index   int
	Wrapped bool
}

// Advancer is not safe for concurrent use.
type Advancer struct {
	frames   *dataset.Sequence
	source   Source
	renderer Renderer
	cursor   int
}

// New returns an Advancer whose next step shows frame 1.
func New(frames *dataset.Sequence, source Source, renderer Renderer) *Advancer {
	return &Advancer{frames: frames, source: source, renderer: renderer, cursor: 1}
}

// Cursor returns the index the next Advance will show (before wrapping).
func (a *Advancer) Cursor() int { return a.cursor }

// Len returns the number of frames.
func (a *Advancer) Len() int { return a.frames.Len() }

// Reset makes the next Advance show frame 0.
func (a *Advancer) Reset() { a.cursor = 0 }

// Advance pushes the frame at the cursor with sizes multiplied by scale and
// moves the cursor forward.
func (a *Advancer) Advance(scale float64) (Step, error) {
	step := Step{Index: a.cursor}
	if step.Index >= a.frames.Len() {
		step = Step{Index: 0, Wrapped: true}
	}

	frame, err := a.frames.At(step.Index)
	if err != nil {
		return Step{}, err
	}
	colors, err := a.source.Colors(step.Index)
	if err != nil {
		return Step{}, fmt.Errorf("frame %d: %w", step.Index, err)
	}
	if err := a.renderer.SetData(frame, colors, a.source.ScaledSizes(scale)); err != nil {
		return Step{}, fmt.Errorf("frame %d: %w", step.Index, err)
	}

	a.cursor = step.Index + 1
	return step, nil
}
