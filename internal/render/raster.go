package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sort"

	"golang.org/x/image/vector"
)

// kappa places cubic Bézier control points so four segments approximate a circle.
const kappa = 0.5522847498

// Canvas rasterizes markers and wireframes into an RGBA image.
type Canvas struct {
	Width, Height int
	Background    color.RGBA
	// MarkerScale converts marker sizes to pixel diameters at an 800px view.
	MarkerScale float64

	img  *image.RGBA
	rast *vector.Rasterizer
}

func NewCanvas(w, h int, bg color.RGBA) *Canvas {
	return &Canvas{
		Width:       w,
		Height:      h,
		Background:  bg,
		MarkerScale: 1,
		img:         image.NewRGBA(image.Rect(0, 0, w, h)),
		rast:        vector.NewRasterizer(1, 1),
	}
}

type projectedMarker struct {
	x, y, r float64
	depth   float64
	color   color.RGBA
}

// Render draws the scene back to front and returns the canvas image. The
// returned image is reused by the next call.
func (c *Canvas) Render(cam *Camera, m *Markers, frames ...*Wireframe) *image.RGBA {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.Background), image.Point{}, draw.Src)

	for _, w := range frames {
		c.drawWireframe(cam, w)
	}
	if m == nil {
		return c.img
	}

	pxScale := math.Min(float64(c.Width), float64(c.Height)) / 800 * c.MarkerScale
	proj := make([]projectedMarker, 0, m.Len())
	for i, p := range m.Points {
		pr := cam.Project(p, c.Width, c.Height)
		if pr.Scale == 0 {
			continue
		}
		r := m.Sizes[i] / 2 * pxScale * pr.Scale
		if pr.X+r < 0 || pr.Y+r < 0 || pr.X-r > float64(c.Width) || pr.Y-r > float64(c.Height) {
			continue
		}
		proj = append(proj, projectedMarker{x: pr.X, y: pr.Y, r: r, depth: pr.Depth, color: m.Colors[i]})
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })

	for _, p := range proj {
		if m.EdgeWidthRel > 0 {
			c.fillDisc(p.x, p.y, p.r, m.EdgeColor)
			c.fillDisc(p.x, p.y, p.r*(1-m.EdgeWidthRel), p.color)
		} else {
			c.fillDisc(p.x, p.y, p.r, p.color)
		}
	}
	return c.img
}

// Image returns the last rendered image.
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) drawWireframe(cam *Camera, w *Wireframe) {
	if w == nil {
		return
	}
	for _, e := range w.Edges {
		a := cam.Project(e.Start, c.Width, c.Height)
		b := cam.Project(e.End, c.Width, c.Height)
		if a.Scale == 0 || b.Scale == 0 {
			continue
		}
		c.strokeLine(a.X, a.Y, b.X, b.Y, 1, w.Color)
	}
}

// fillDisc rasterizes a circle into a mask sized to its bounding box.
func (c *Canvas) fillDisc(cx, cy, r float64, col color.RGBA) {
	r = math.Max(0.35, math.Min(r, float64(2*max(c.Width, c.Height))))
	bounds := image.Rect(int(math.Floor(cx-r)), int(math.Floor(cy-r)), int(math.Ceil(cx+r))+1, int(math.Ceil(cy+r))+1)
	x, y := float32(cx-float64(bounds.Min.X)), float32(cy-float64(bounds.Min.Y))
	rr, k := float32(r), float32(r*kappa)

	c.fill(bounds, col, func(z *vector.Rasterizer) {
		z.MoveTo(x+rr, y)
		z.CubeTo(x+rr, y+k, x+k, y+rr, x, y+rr)
		z.CubeTo(x-k, y+rr, x-rr, y+k, x-rr, y)
		z.CubeTo(x-rr, y-k, x-k, y-rr, x, y-rr)
		z.CubeTo(x+k, y-rr, x+rr, y-k, x+rr, y)
		z.ClosePath()
	})
}

// strokeLine draws a segment as a thin quad.
func (c *Canvas) strokeLine(x0, y0, x1, y1, width float64, col color.RGBA) {
	var ok bool
	x0, y0, x1, y1, ok = clipSegment(x0, y0, x1, y1, -width, -width, float64(c.Width)+width, float64(c.Height)+width)
	if !ok {
		return
	}
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2

	bounds := image.Rect(
		int(math.Floor(math.Min(x0, x1)-width)), int(math.Floor(math.Min(y0, y1)-width)),
		int(math.Ceil(math.Max(x0, x1)+width))+1, int(math.Ceil(math.Max(y0, y1)+width))+1,
	)
	ox, oy := float64(bounds.Min.X), float64(bounds.Min.Y)
	pt := func(x, y float64) (float32, float32) { return float32(x - ox), float32(y - oy) }

	c.fill(bounds, col, func(z *vector.Rasterizer) {
		z.MoveTo(pt(x0+nx, y0+ny))
		z.LineTo(pt(x1+nx, y1+ny))
		z.LineTo(pt(x1-nx, y1-ny))
		z.LineTo(pt(x0-nx, y0-ny))
		z.ClosePath()
	})
}

// fill rasterizes a path given in bounds-local coordinates into a coverage
// mask, then composites col through the mask onto the visible part of bounds.
func (c *Canvas) fill(bounds image.Rectangle, col color.RGBA, path func(z *vector.Rasterizer)) {
	clip := bounds.Intersect(c.img.Bounds())
	if clip.Empty() {
		return
	}
	c.rast.Reset(bounds.Dx(), bounds.Dy())
	c.rast.DrawOp = draw.Src
	path(c.rast)

	mask := image.NewAlpha(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	c.rast.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(c.img, clip, image.NewUniform(col), image.Point{}, mask, clip.Min.Sub(bounds.Min), draw.Over)
}

// clipSegment is Liang-Barsky clipping against [xmin,xmax] x [ymin,ymax].
func clipSegment(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (float64, float64, float64, float64, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := x1-x0, y1-y0
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0 - xmin, xmax - x0, y0 - ymin, ymax - y0}
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			t0 = math.Max(t0, t)
		} else {
			t1 = math.Min(t1, t)
		}
		if t0 > t1 {
			return 0, 0, 0, 0, false
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}
