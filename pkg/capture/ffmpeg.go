package capture

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strconv"
	"sync"

	"github.com/matzehuels/scrambler/pkg/errors"
	"github.com/matzehuels/scrambler/pkg/frame"
	"github.com/matzehuels/scrambler/pkg/observability"
)

// FFmpegOptions configures an [FFmpeg] source.
type FFmpegOptions struct {
	// Device is the camera to open. Empty selects the platform default
	// (/dev/video0, avfoundation device 0, or "Integrated Webcam").
	Device string
	// Input, when set, reads a video file instead of a camera, paced in real
	// time and looped forever.
	Input  string
	Width  int
	Height int
	FPS    float64
}

func (o FFmpegOptions) withDefaults() FFmpegOptions {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.FPS <= 0 {
		o.FPS = DefaultFPS
	}
	return o
}

// FFmpeg reads raw rgb24 frames from an ffmpeg process's stdout.
type FFmpeg struct {
	opts    FFmpegOptions
	cmd     *exec.Cmd
	stdout  io.ReadCloser
	reading sync.Mutex // held while a Read is inside the pipe
	once    sync.Once
	err     error
}

// FFmpegArgs builds the ffmpeg command line for goos.
func FFmpegArgs(goos string, opts FFmpegOptions) ([]string, error) {
	opts = opts.withDefaults()

	var input []string
	if opts.Input != "" {
		input = []string{"-re", "-stream_loop", "-1", "-i", opts.Input}
	} else {
		switch goos {
		case "linux":
			dev := opts.Device
			if dev == "" {
				dev = "/dev/video0"
			}
			input = []string{"-f", "v4l2", "-i", dev}
		case "darwin":
			dev := opts.Device
			if dev == "" {
				dev = "0"
			}
			input = []string{"-f", "avfoundation", "-framerate", formatFPS(opts.FPS), "-i", dev}
		case "windows":
			dev := opts.Device
			if dev == "" {
				dev = "Integrated Webcam"
			}
			input = []string{"-f", "dshow", "-i", "video=" + dev}
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "camera capture is not supported on %s", goos)
		}
	}

	vf := fmt.Sprintf("scale=%d:%d,fps=%s", opts.Width, opts.Height, formatFPS(opts.FPS))
	common := []string{
		"-hide_banner", "-loglevel", "error",
		"-fflags", "nobuffer", "-flags", "low_delay",
		"-an", "-vf", vf,
		"-f", "rawvideo", "-pix_fmt", "rgb24", "-",
	}
	return append(input, common...), nil
}

func formatFPS(fps float64) string {
	return strconv.FormatFloat(fps, 'f', -1, 64)
}

// StartFFmpeg launches ffmpeg and returns a source reading its output.
// ctx bounds the lifetime of the child process.
func StartFFmpeg(ctx context.Context, opts FFmpegOptions) (*FFmpeg, error) {
	opts = opts.withDefaults()

	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeToolNotFound, err, "ffmpeg not found in PATH")
	}
	args, err := FFmpegArgs(runtime.GOOS, opts)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, path, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCaptureFailed, err, "start ffmpeg")
	}
	observability.Process().OnProcessStart(ctx, "ffmpeg", args)

	return &FFmpeg{opts: opts, cmd: cmd, stdout: stdout}, nil
}

// NewFFmpegReader wraps an existing rgb24 stream, such as a pipe from an
// already running process. Close closes r.
func NewFFmpegReader(r io.ReadCloser, width, height int) *FFmpeg {
	return &FFmpeg{opts: FFmpegOptions{Width: width, Height: height}.withDefaults(), stdout: r}
}

// Size returns the frame dimensions ffmpeg was asked to produce.
func (f *FFmpeg) Size() (int, int) { return f.opts.Width, f.opts.Height }

// Read returns the next frame. Short reads and EOF are capture failures.
func (f *FFmpeg) Read(ctx context.Context) (frame.Frame, error) {
	if err := ctx.Err(); err != nil {
		return frame.Frame{}, err
	}
	f.reading.Lock()
	defer f.reading.Unlock()
	out := frame.New(f.opts.Width, f.opts.Height)
	if _, err := io.ReadFull(f.stdout, out.Pix); err != nil {
		return frame.Frame{}, errors.Wrap(errors.ErrCodeCaptureFailed, err, "read frame from ffmpeg")
	}
	return out, nil
}

// Close stops ffmpeg and releases the pipe. It is safe to call more than once
// and from another goroutine than Read.
//
// Killing ffmpeg closes the write end of the pipe, which ends a pending Read.
// Wait closes the read end, so it only runs once no Read is in progress.
func (f *FFmpeg) Close() error {
	f.once.Do(func() {
		if f.cmd == nil || f.cmd.Process == nil {
			f.err = f.stdout.Close()
			return
		}
		_ = f.cmd.Process.Kill()
		f.reading.Lock()
		defer f.reading.Unlock()
		werr := f.cmd.Wait()
		observability.Process().OnProcessExit(context.Background(), "ffmpeg", werr)
	})
	return f.err
}
