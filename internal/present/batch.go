package present

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/molvis/internal/encode"
	"github.com/san-kum/molvis/internal/player"
	"github.com/san-kum/molvis/internal/render"
	"github.com/san-kum/molvis/internal/scene"
)

type BatchOptions struct {
	RotateAngle float64
	Koeff       float64
	// Axis defaults to +Z.
	Axis r3.Vec
	// Progress, if set, is called after each encoded frame.
	Progress func(done, total int)
}

type BatchResult struct {
	Encoded  int
	Rotation float64
	Elapsed  time.Duration
}

// Batch renders frames 1..N-1 into enc, rotating the camera after each
// one, so N-1 images are written for N frames. enc is closed on return.
func Batch(ctx context.Context, sc *scene.Scene, adv *player.Advancer, enc encode.Encoder, opts BatchOptions) (res BatchResult, err error) {
	start := time.Now()
	defer func() {
		if cerr := enc.Close(); err == nil && cerr != nil {
			err = cerr
		}
		res.Elapsed = time.Since(start)
	}()

	axis := opts.Axis
	if axis == (r3.Vec{}) {
		axis = render.AxisZ
	}

	total := adv.Len() - 1
	log.Infof("encoding %d frames", total)
	for i := 1; i < adv.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		step, err := adv.Advance(opts.Koeff)
		if err != nil {
			return res, err
		}
		if err := enc.Append(sc.Render()); err != nil {
			return res, fmt.Errorf("frame %d: %w", step.Index, err)
		}
		res.Encoded++
		sc.Camera.Rotate(opts.RotateAngle, axis)
		res.Rotation += opts.RotateAngle
		if opts.Progress != nil {
			opts.Progress(res.Encoded, total)
		}
	}
	if res.Encoded == 0 {
		return res, fmt.Errorf("%w: a single frame has nothing to animate", encode.ErrNoFrames)
	}
	return res, nil
}

// IsCancel reports whether err came from the context.
func IsCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
