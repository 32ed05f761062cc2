package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"
)

// syncCamera places the raylib camera so it frames what render.Camera
// would. Orientation is applied to the geometry, so the eye stays on +Z.
func (a *App) syncCamera() {
	cam := a.scene.Camera
	a.camera.Position = rl.NewVector3(0, 0, float32(cam.EyeDistance()))
	a.camera.Target = rl.NewVector3(0, 0, 0)
	a.camera.Fovy = float32(cam.FieldOfView())
}

func (a *App) drawMarkers() {
	cam := a.scene.Camera
	mk := a.scene.Markers
	for i, p := range mk.Points {
		r := cam.WorldRadius(mk.Sizes[i], a.opts.MarkerScale)
		rl.DrawSphereEx(toVector3(cam.View(p)), float32(r), 6, 8, toColor(mk.Colors[i]))
	}
}

func (a *App) drawBox() {
	box := a.scene.Box
	if box == nil {
		return
	}
	cam := a.scene.Camera
	col := toColor(box.Color)
	for _, e := range box.Edges {
		rl.DrawLine3D(toVector3(cam.View(e.Start)), toVector3(cam.View(e.End)), col)
	}
}

func toVector3(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func toColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
