// Package present drives frame playback: the shared interactive tick, the
// wall-clock cadence used by the viewers and the batch video loop.
package present

import (
	"errors"
	"time"

	"github.com/san-kum/molvis/internal/config"
	"github.com/san-kum/molvis/internal/logging"
	"github.com/san-kum/molvis/internal/player"
	"github.com/san-kum/molvis/internal/render"
)

var log = logging.New("present")

var ErrFPS = errors.New("present: fps out of range")

// Scale is the interactive marker scale. Zooming in shrinks the scale
// factor, which enlarges markers on screen so they keep their size relative
// to the data.
func Scale(koeff float64, cam *render.Camera) float64 {
	sf := cam.ScaleFactor()
	if !(sf > 0) {
		return koeff
	}
	return koeff * config.ReferenceScale / sf
}

// Tick advances one frame at the interactive scale.
func Tick(adv *player.Advancer, cam *render.Camera, koeff float64) (player.Step, error) {
	step, err := adv.Advance(Scale(koeff, cam))
	if err != nil {
		return step, err
	}
	if step.Wrapped {
		log.Debugf("wrapped to frame 0 of %d", adv.Len())
	}
	return step, nil
}

// Cadence turns elapsed wall time into whole ticks at a fixed rate. It is
// for loops that run at their own pace (a display refresh) and must advance
// frames at fps regardless.
type Cadence struct {
	period  time.Duration
	pending time.Duration
	// MaxBurst caps ticks per call so a stall does not fast-forward.
	MaxBurst int
}

func NewCadence(fps int) (*Cadence, error) {
	if fps <= 0 || fps > config.MaxFPS {
		return nil, ErrFPS
	}
	return &Cadence{period: time.Second / time.Duration(fps), MaxBurst: 2}, nil
}

func (c *Cadence) Period() time.Duration { return c.period }

// Due adds elapsed to the pending time and returns how many ticks to run.
func (c *Cadence) Due(elapsed time.Duration) int {
	if elapsed > 0 {
		c.pending += elapsed
	}
	n := int(c.pending / c.period)
	c.pending -= time.Duration(n) * c.period
	if c.MaxBurst > 0 && n > c.MaxBurst {
		n = c.MaxBurst
		c.pending = 0
	}
	return n
}

// Reset drops any accumulated time, e.g. after a pause.
func (c *Cadence) Reset() { c.pending = 0 }
