// Package gui plays a frame sequence in a raylib window.
package gui

import (
	"context"
	"fmt"
	"image/color"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/molvis/internal/logging"
	"github.com/san-kum/molvis/internal/player"
	"github.com/san-kum/molvis/internal/present"
	"github.com/san-kum/molvis/internal/scene"
)

var log = logging.New("gui")

// degrees of camera turn per pixel of mouse drag
const dragSpeed = 0.3

type Options struct {
	Title         string
	FPS           int
	Koeff         float64
	Width, Height int
	Background    color.RGBA
	MarkerScale   float64
}

type App struct {
	scene   *scene.Scene
	adv     *player.Advancer
	opts    Options
	cadence *present.Cadence

	camera rl.Camera3D
	step   player.Step
	loops  int
	paused bool
	err    error
}

func initWindow(opts Options) {
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	rl.SetTargetFPS(60)
	rl.SetExitKey(rl.KeyEscape)
}

func NewApp(sc *scene.Scene, adv *player.Advancer, opts Options) (*App, error) {
	if opts.Title == "" {
		opts.Title = "molvis"
	}
	if opts.MarkerScale <= 0 {
		opts.MarkerScale = 1
	}
	cad, err := present.NewCadence(opts.FPS)
	if err != nil {
		return nil, err
	}
	return &App{
		scene:   sc,
		adv:     adv,
		opts:    opts,
		cadence: cad,
		camera: rl.NewCamera3D(
			rl.NewVector3(0, 0, 1),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			45.0,
			rl.CameraPerspective,
		),
	}, nil
}

// Run opens the window and blocks until it is closed, ctx is cancelled or
// playback fails.
func Run(ctx context.Context, sc *scene.Scene, adv *player.Advancer, opts Options) error {
	app, err := NewApp(sc, adv, opts)
	if err != nil {
		return err
	}
	initWindow(app.opts)
	defer rl.CloseWindow()
	return app.RunLoop(ctx)
}

func (a *App) RunLoop(ctx context.Context) error {
	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			return nil
		}
		a.Update(time.Duration(float64(rl.GetFrameTime()) * float64(time.Second)))
		a.Draw()
		if a.err != nil {
			return a.err
		}
	}
	return nil
}

// Update handles input and runs the frame ticks that came due.
func (a *App) Update(elapsed time.Duration) {
	cam := a.scene.Camera

	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		delta := rl.GetMouseDelta()
		cam.Rotate(float64(delta.X)*dragSpeed, r3.Vec{Y: 1})
		cam.Rotate(float64(delta.Y)*dragSpeed, r3.Vec{X: 1})
	}
	if wheel := rl.GetMouseWheelMove(); wheel > 0 {
		cam.ZoomIn()
	} else if wheel < 0 {
		cam.ZoomOut()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
		a.cadence.Reset()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.adv.Reset()
	}

	if a.paused {
		return
	}
	for n := a.cadence.Due(elapsed); n > 0; n-- {
		step, err := present.Tick(a.adv, cam, a.opts.Koeff)
		if err != nil {
			a.err = err
			log.Errorf("playback stopped: %v", err)
			return
		}
		a.step = step
		if step.Wrapped {
			a.loops++
		}
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(toColor(a.opts.Background))

	a.syncCamera()
	rl.BeginMode3D(a.camera)
	a.drawBox()
	a.drawMarkers()
	rl.EndMode3D()

	a.drawHUD()
	rl.EndDrawing()
}

func (a *App) drawHUD() {
	fg := rl.DarkGray
	rl.DrawText(fmt.Sprintf("frame %d/%d  loop %d", a.step.Index, a.adv.Len(), a.loops), 10, 10, 16, fg)
	if a.paused {
		rl.DrawText("PAUSED", 10, 30, 16, rl.Red)
	}
	rl.DrawText("[DRAG] ROTATE  [WHEEL] ZOOM  [SPACE] PAUSE  [R] RESTART  [ESC] QUIT", 10, int32(a.opts.Height)-24, 14, rl.Gray)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), int32(a.opts.Width)-70, 10, 14, rl.Gray)
}
