package display

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"sync"

	"github.com/matzehuels/scrambler/pkg/errors"
	"github.com/matzehuels/scrambler/pkg/frame"
	"github.com/matzehuels/scrambler/pkg/observability"
)

// FFplayOptions configures an [FFplay] window.
type FFplayOptions struct {
	Title  string
	Width  int
	Height int
	FPS    float64
	// Scale enlarges the window relative to the frame size. Zero means 1.
	Scale float64
}

// FFplay pipes raw rgb24 frames into an ffplay window.
type FFplay struct {
	width, height int
	pipe          io.WriteCloser
	cmd           *exec.Cmd
	once          sync.Once
	err           error
}

// FFplayArgs builds the ffplay command line.
func FFplayArgs(opts FFplayOptions) []string {
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-f", "rawvideo",
		"-pixel_format", "rgb24",
		"-video_size", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
	}
	if opts.FPS > 0 {
		args = append(args, "-framerate", strconv.FormatFloat(opts.FPS, 'f', -1, 64))
	}
	return append(args,
		"-i", "-",
		"-window_title", title,
		"-x", strconv.Itoa(int(float64(opts.Width)*scale)),
		"-y", strconv.Itoa(int(float64(opts.Height)*scale)),
		"-fflags", "nobuffer",
		"-flags", "low_delay",
	)
}

// StartFFplay launches ffplay configured for frames of the given size.
func StartFFplay(ctx context.Context, opts FFplayOptions) (*FFplay, error) {
	path, err := exec.LookPath("ffplay")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeToolNotFound, err, "ffplay not found in PATH")
	}

	args := FFplayArgs(opts)
	cmd := exec.CommandContext(ctx, path, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("ffplay stdin pipe: %w", err)
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDisplayFailed, err, "start ffplay")
	}
	observability.Process().OnProcessStart(ctx, "ffplay", args)

	return &FFplay{width: opts.Width, height: opts.Height, pipe: stdin, cmd: cmd}, nil
}

// NewPipe returns a sink writing rgb24 frames of the given size to w.
func NewPipe(w io.WriteCloser, width, height int) *FFplay {
	return &FFplay{width: width, height: height, pipe: w}
}

// Show writes one frame. A failed write usually means the window was closed.
func (f *FFplay) Show(fr frame.Frame) error {
	if fr.Width != f.width || fr.Height != f.height {
		return errors.New(errors.ErrCodeInvalidInput, "frame is %dx%d, display expects %dx%d",
			fr.Width, fr.Height, f.width, f.height)
	}
	if _, err := f.pipe.Write(fr.Bytes()); err != nil {
		return errors.Wrap(errors.ErrCodeDisplayFailed, err, "write frame to display")
	}
	return nil
}

// Close closes the pipe and stops ffplay. It is safe to call more than once.
func (f *FFplay) Close() error {
	f.once.Do(func() {
		f.err = f.pipe.Close()
		if f.cmd == nil || f.cmd.Process == nil {
			return
		}
		_ = f.cmd.Process.Kill()
		werr := f.cmd.Wait()
		observability.Process().OnProcessExit(context.Background(), "ffplay", werr)
	})
	return f.err
}
