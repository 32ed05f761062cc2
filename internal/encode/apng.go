package encode

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"github.com/setanarut/apng"
)

// APNG keeps full-color copies of every frame and writes them on Close.
type APNG struct {
	path   string
	delay  uint16
	frames []image.Image
	guard  sizeGuard
	closed bool
}

func NewAPNG(path string, fps int) *APNG {
	return &APNG{path: path, delay: uint16(centiseconds(fps))}
}

func (a *APNG) Append(img image.Image) error {
	if a.closed {
		return ErrClosed
	}
	if err := a.guard.check(img); err != nil {
		return err
	}
	b := img.Bounds()
	cp := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(cp, cp.Bounds(), img, b.Min, draw.Src)
	a.frames = append(a.frames, cp)
	return nil
}

// Frames returns the number of frames appended so far.
func (a *APNG) Frames() int { return len(a.frames) }

func (a *APNG) Close() error {
	if a.closed {
		return ErrClosed
	}
	a.closed = true
	if len(a.frames) == 0 {
		return ErrNoFrames
	}
	delays := make([]uint16, len(a.frames))
	for i := range delays {
		delays[i] = a.delay
	}
	f, err := os.Create(a.path)
	if err != nil {
		return err
	}
	if err := apng.EncodeAll(f, &apng.APNG{Images: a.frames, Delays: delays}); err != nil {
		f.Close()
		return fmt.Errorf("encode: apng: %w", err)
	}
	return f.Close()
}
