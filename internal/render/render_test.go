package render

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestCamera_RotateAccumulates(t *testing.T) {
	cam := NewCamera()
	for i := 0; i < 3; i++ {
		cam.Rotate(3, AxisZ)
	}
	if got := cam.Angle(); math.Abs(got-9) > 1e-9 {
		t.Errorf("Angle = %v, want 9", got)
	}

	p := cam.View(r3.Vec{X: 1})
	want := r3.Vec{X: math.Cos(9 * math.Pi / 180), Y: math.Sin(9 * math.Pi / 180)}
	if r3.Norm(r3.Sub(p, want)) > 1e-9 {
		t.Errorf("View((1,0,0)) = %v, want %v", p, want)
	}
}

func TestCamera_RotateNoop(t *testing.T) {
	cam := NewCamera()
	cam.Rotate(0, AxisZ)
	cam.Rotate(10, r3.Vec{})
	if cam.Angle() != 0 {
		t.Errorf("expected no rotation, got %v", cam.Angle())
	}
}

func TestCamera_ScaleFactorFollowsZoom(t *testing.T) {
	cam := NewCamera()
	cam.SetRange(500)
	if cam.ScaleFactor() != 1000 {
		t.Errorf("ScaleFactor = %v, want 1000", cam.ScaleFactor())
	}
	before := cam.ScaleFactor()
	cam.ZoomIn()
	if cam.ScaleFactor() >= before {
		t.Error("zooming in should shrink the scale factor")
	}
	cam.ZoomOut()
	cam.ZoomOut()
	if cam.ScaleFactor() <= before {
		t.Error("zooming out should grow the scale factor")
	}
}

func TestCamera_Project(t *testing.T) {
	cam := NewCamera()
	cam.SetRange(10)

	center := cam.Project(r3.Vec{}, 200, 100)
	if center.X != 100 || center.Y != 50 || !center.Visible {
		t.Errorf("origin projected to %+v", center)
	}

	right := cam.Project(r3.Vec{X: 5}, 200, 100)
	up := cam.Project(r3.Vec{Y: 5}, 200, 100)
	if right.X <= center.X || up.Y >= center.Y {
		t.Errorf("unexpected axis directions: right=%+v up=%+v", right, up)
	}

	near := cam.Project(r3.Vec{Z: 5}, 200, 100)
	far := cam.Project(r3.Vec{Z: -5}, 200, 100)
	if near.Scale <= far.Scale || near.Depth <= far.Depth {
		t.Errorf("perspective: near=%+v far=%+v", near, far)
	}

	behind := cam.Project(r3.Vec{Z: 1000}, 200, 100)
	if behind.Visible || behind.Scale != 0 {
		t.Errorf("point behind the eye should be culled: %+v", behind)
	}
}

func TestMarkers_SetData(t *testing.T) {
	m := NewMarkers()
	err := m.SetData([]r3.Vec{{}, {}}, []color.RGBA{{}}, []float64{1, 1})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
	if err := m.SetData([]r3.Vec{{}}, []color.RGBA{{}}, []float64{1}); err != nil {
		t.Fatal(err)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d", m.Len())
	}
}

func TestBox(t *testing.T) {
	w := Box(r3.Vec{X: 1}, r3.Vec{X: 2, Y: 4, Z: 6}, color.RGBA{A: 255})
	if len(w.Edges) != 12 {
		t.Fatalf("expected 12 edges, got %d", len(w.Edges))
	}
	for _, e := range w.Edges {
		for _, p := range []r3.Vec{e.Start, e.End} {
			if math.Abs(p.X-1) != 1 || math.Abs(p.Y) != 2 || math.Abs(p.Z) != 3 {
				t.Errorf("corner %v not on the box", p)
			}
		}
	}
}

func TestCanvas_Render(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}

	cam := NewCamera()
	cam.SetRange(10)
	c := NewCanvas(100, 100, white)
	c.MarkerScale = 80

	m := NewMarkers()
	m.EdgeWidthRel = 0
	// blue sits in front of red at the same screen position
	if err := m.SetData([]r3.Vec{{Z: 1}, {Z: -1}}, []color.RGBA{blue, red}, []float64{1, 1}); err != nil {
		t.Fatal(err)
	}

	img := c.Render(cam, m)
	if got := img.RGBAAt(50, 50); got != blue {
		t.Errorf("center pixel = %v, want front marker %v", got, blue)
	}
	if got := img.RGBAAt(1, 1); got != white {
		t.Errorf("corner pixel = %v, want background", got)
	}
}

func TestCanvas_RenderWireframeAndClipping(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{A: 255}

	cam := NewCamera()
	cam.SetRange(1)
	cam.Zoom = 20
	c := NewCanvas(64, 48, white)

	m := NewMarkers()
	if err := m.SetData([]r3.Vec{{X: 0.5}, {X: -100}}, []color.RGBA{black, black}, []float64{500, 1}); err != nil {
		t.Fatal(err)
	}
	// edges run far outside the canvas at this zoom and must be clipped
	img := c.Render(cam, m, Box(r3.Vec{}, r3.Vec{X: 2, Y: 2, Z: 2}, black))
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 48 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
	if c.Image() != img {
		t.Error("Image should return the last render")
	}
}

func TestClipSegment(t *testing.T) {
	x0, y0, x1, y1, ok := clipSegment(-10, 5, 20, 5, 0, 0, 10, 10)
	if !ok || x0 != 0 || x1 != 10 || y0 != 5 || y1 != 5 {
		t.Errorf("clip = %v %v %v %v %v", x0, y0, x1, y1, ok)
	}
	if _, _, _, _, ok := clipSegment(-10, -5, 20, -5, 0, 0, 10, 10); ok {
		t.Error("segment above the box should be rejected")
	}
}

func TestCamera_FieldOfViewMatchesProjection(t *testing.T) {
	cam := NewCamera()
	cam.SetRange(50)
	cam.ZoomIn()

	half := math.Tan(cam.FieldOfView()/2*math.Pi/180) * cam.EyeDistance()
	edge := cam.Project(r3.Vec{Y: half}, 100, 100)
	if math.Abs(edge.Y) > 1e-9 {
		t.Errorf("point at the frustum edge projected to y=%v, want 0", edge.Y)
	}
}

func TestCamera_WorldRadius(t *testing.T) {
	cam := NewCamera()
	cam.SetRange(400)
	// an 800px disc of diameter s*scale covers s*scale/800 of the 2*range view
	r := cam.WorldRadius(2, 3)
	pr := cam.PixelsPerUnit(800, 800) * r
	if math.Abs(pr-3) > 1e-9 {
		t.Errorf("radius in pixels = %v, want 3", pr)
	}
}
