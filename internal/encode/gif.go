package encode

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
)

// GIF buffers quantized frames and writes the animation on Close.
type GIF struct {
	path   string
	delay  int
	anim   gif.GIF
	guard  sizeGuard
	closed bool
}

func NewGIF(path string, fps int) *GIF {
	return &GIF{path: path, delay: centiseconds(fps), anim: gif.GIF{LoopCount: 0}}
}

func (g *GIF) Append(img image.Image) error {
	if g.closed {
		return ErrClosed
	}
	if err := g.guard.check(img); err != nil {
		return err
	}
	b := img.Bounds()
	p := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
	draw.FloydSteinberg.Draw(p, p.Bounds(), img, b.Min)
	g.anim.Image = append(g.anim.Image, p)
	g.anim.Delay = append(g.anim.Delay, g.delay)
	return nil
}

// Frames returns the number of frames appended so far.
func (g *GIF) Frames() int { return len(g.anim.Image) }

func (g *GIF) Close() error {
	if g.closed {
		return ErrClosed
	}
	g.closed = true
	if len(g.anim.Image) == 0 {
		return ErrNoFrames
	}
	f, err := os.Create(g.path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &g.anim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
