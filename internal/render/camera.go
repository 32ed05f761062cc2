package render

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Axis of the batch-mode turntable rotation.
var AxisZ = r3.Vec{Z: 1}

// Camera is an orbit camera looking at the origin. It rotates the scene
// rather than moving an eye point, which keeps projection a single rotation.
type Camera struct {
	orientation quat.Number
	// Range is the half-extent of the region kept in view at zoom 1.
	Range float64
	Zoom  float64
	// Distance of the eye from the origin, in units of Range.
	Distance float64
}

func NewCamera() *Camera {
	return &Camera{orientation: quat.Number{Real: 1}, Range: 1, Zoom: 1, Distance: 4}
}

// SetRange frames [-r, r] on every axis and resets zoom.
func (c *Camera) SetRange(r float64) {
	if r <= 0 {
		r = 1
	}
	c.Range = r
	c.Zoom = 1
}

// Rotate turns the scene by deg degrees around axis.
func (c *Camera) Rotate(deg float64, axis r3.Vec) {
	if r3.Norm(axis) == 0 || deg == 0 {
		return
	}
	r := r3.NewRotation(deg*math.Pi/180, axis)
	c.orientation = quat.Mul(quat.Number(r), c.orientation)
}

// Orientation returns the accumulated rotation as a unit quaternion.
func (c *Camera) Orientation() quat.Number { return c.orientation }

// Angle returns the magnitude of the accumulated rotation in degrees, in [0, 360).
func (c *Camera) Angle() float64 {
	w := math.Max(-1, math.Min(1, c.orientation.Real))
	return 2 * math.Acos(w) * 180 / math.Pi
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(20, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.05, c.Zoom/1.2) }

// ScaleFactor is the visible extent of the scene; it shrinks as the camera
// zooms in.
func (c *Camera) ScaleFactor() float64 {
	return 2 * c.Range / c.Zoom
}

// View rotates a world point into camera space.
func (c *Camera) View(p r3.Vec) r3.Vec {
	return r3.Rotation(c.orientation).Rotate(p)
}

// Projection is a point mapped to screen space.
type Projection struct {
	X, Y    float64
	Depth   float64
	Scale   float64 // perspective magnification at this depth
	Visible bool
}

// Project maps p onto a w x h surface. Depth grows towards the viewer.
func (c *Camera) Project(p r3.Vec, w, h int) Projection {
	v := c.View(p)
	eye := c.Distance * c.Range
	if v.Z >= eye*0.999 {
		return Projection{}
	}
	persp := eye / (eye - v.Z)
	ppu := c.PixelsPerUnit(w, h)
	x := float64(w)/2 + v.X*persp*ppu
	y := float64(h)/2 - v.Y*persp*ppu
	return Projection{
		X:       x,
		Y:       y,
		Depth:   v.Z,
		Scale:   persp,
		Visible: x >= 0 && x < float64(w) && y >= 0 && y < float64(h),
	}
}

// PixelsPerUnit converts world units to pixels at the origin plane.
func (c *Camera) PixelsPerUnit(w, h int) float64 {
	minDim := math.Min(float64(w), float64(h))
	return minDim / 2 / c.Range * c.Zoom
}

// FieldOfView returns the vertical field of view, in degrees, of a
// perspective camera at the eye distance that frames the same region as
// Project.
func (c *Camera) FieldOfView() float64 {
	return 2 * math.Atan(1/(c.Distance*c.Zoom)) * 180 / math.Pi
}

// EyeDistance is the distance of the eye from the origin in world units.
func (c *Camera) EyeDistance() float64 { return c.Distance * c.Range }

// WorldRadius converts a marker size (a pixel diameter at an 800px view,
// times markerScale) into a radius in world units at the origin plane.
func (c *Camera) WorldRadius(size, markerScale float64) float64 {
	return size * markerScale * c.Range / (800 * c.Zoom)
}
