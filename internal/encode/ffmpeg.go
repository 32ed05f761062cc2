package encode

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
	"strconv"
)

// FFmpeg streams raw RGBA frames into an ffmpeg subprocess. The process is
// started on the first Append, once the frame size is known.
type FFmpeg struct {
	path   string
	fps    int
	bin    string
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	guard  sizeGuard
	buf    *image.RGBA
	frames int
	closed bool
}

func NewFFmpeg(path string, fps int) (*FFmpeg, error) {
	bin, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, ErrFFmpegAbsent
	}
	return &FFmpeg{path: path, fps: fps, bin: bin}, nil
}

// Args returns the ffmpeg command line for a w x h stream.
func (f *FFmpeg) Args(w, h int) []string {
	return []string{
		"-y", "-loglevel", "error",
		"-f", "rawvideo", "-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", w, h),
		"-r", strconv.Itoa(f.fps),
		"-i", "-",
		"-an", "-c:v", "libx264", "-pix_fmt", "yuv420p",
		// yuv420p needs even dimensions
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2",
		f.path,
	}
}

func (f *FFmpeg) start(w, h int) error {
	f.cmd = exec.Command(f.bin, f.Args(w, h)...)
	f.cmd.Stderr = &f.stderr
	stdin, err := f.cmd.StdinPipe()
	if err != nil {
		return err
	}
	f.stdin = stdin
	f.buf = image.NewRGBA(image.Rect(0, 0, w, h))
	return f.cmd.Start()
}

func (f *FFmpeg) Append(img image.Image) error {
	if f.closed {
		return ErrClosed
	}
	if err := f.guard.check(img); err != nil {
		return err
	}
	b := img.Bounds()
	if f.cmd == nil {
		if err := f.start(b.Dx(), b.Dy()); err != nil {
			return fmt.Errorf("encode: start ffmpeg: %w", err)
		}
	}
	draw.Draw(f.buf, f.buf.Bounds(), img, b.Min, draw.Src)
	if _, err := f.stdin.Write(f.buf.Pix); err != nil {
		return fmt.Errorf("encode: write frame %d: %w (%s)", f.frames, err, f.stderr.String())
	}
	f.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (f *FFmpeg) Frames() int { return f.frames }

func (f *FFmpeg) Close() error {
	if f.closed {
		return ErrClosed
	}
	f.closed = true
	if f.cmd == nil {
		return ErrNoFrames
	}
	if err := f.stdin.Close(); err != nil {
		return err
	}
	if err := f.cmd.Wait(); err != nil {
		return fmt.Errorf("encode: ffmpeg: %w (%s)", err, f.stderr.String())
	}
	return nil
}
