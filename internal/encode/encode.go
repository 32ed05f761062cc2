// Package encode writes rendered frames to animation files. The container
// is chosen from the output extension.
package encode

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
)

var (
	ErrNoFrames     = errors.New("encode: no frames appended")
	ErrFrameSize    = errors.New("encode: frame size differs from the first frame")
	ErrClosed       = errors.New("encode: encoder already closed")
	ErrUnsupported  = errors.New("encode: unsupported output format")
	ErrFFmpegAbsent = errors.New("encode: ffmpeg not found in PATH")
)

// Encoder receives frames in order. Append must copy what it keeps: callers
// reuse the image between calls. Close flushes and must be called once.
type Encoder interface {
	Append(img image.Image) error
	Close() error
}

// New returns the encoder for path's extension.
func New(path string, fps int) (Encoder, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("encode: fps must be positive, got %d", fps)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gif":
		return NewGIF(path, fps), nil
	case ".png", ".apng":
		return NewAPNG(path, fps), nil
	case ".mp4", ".mkv", ".webm":
		f, err := NewFFmpeg(path, fps)
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// sizeGuard rejects frames whose bounds differ from the first one.
type sizeGuard struct {
	size image.Point
	set  bool
}

func (g *sizeGuard) check(img image.Image) error {
	sz := img.Bounds().Size()
	if !g.set {
		g.size, g.set = sz, true
		return nil
	}
	if sz != g.size {
		return fmt.Errorf("%w: got %v, want %v", ErrFrameSize, sz, g.size)
	}
	return nil
}

// centiseconds converts a frame rate to GIF/APNG frame delay units.
func centiseconds(fps int) int {
	d := (100 + fps/2) / fps
	if d < 1 {
		d = 1
	}
	return d
}
