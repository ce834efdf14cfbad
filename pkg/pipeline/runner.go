// Package pipeline runs the capture → scramble → display control loop.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scrambler/pkg/capture"
	"github.com/matzehuels/scrambler/pkg/display"
	"github.com/matzehuels/scrambler/pkg/frame"
	"github.com/matzehuels/scrambler/pkg/observability"
	"github.com/matzehuels/scrambler/pkg/scramble"
)

// Stats summarizes a run.
type Stats struct {
	Frames     uint64
	Reshuffles uint64
	Elapsed    time.Duration
}

// FPS returns the average frame rate over the run.
func (s Stats) FPS() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Elapsed.Seconds()
}

// Runner wires a frame source, a scrambler and a display sink.
//
// Capture, Render and Step must be called from a single goroutine, the same
// one that mutates the scrambler's config.
type Runner struct {
	Source    capture.Source
	Sink      display.Sink
	Scrambler *scramble.Scrambler
	Logger    *log.Logger

	start     time.Time
	frames    uint64
	closing   atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
// Regenerations that happened before the runner existed are not reported.
func NewRunner(src capture.Source, sink display.Sink, s *scramble.Scrambler, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	s.TakeRegenerations()
	return &Runner{
		Source:    src,
		Sink:      sink,
		Scrambler: s,
		Logger:    logger,
		start:     time.Now(),
	}
}

// Capture reads the next frame from the source. Errors are fatal.
// It may run on another goroutine than Render; a read that fails because the
// runner is closing or ctx is done is not reported as a capture error.
func (r *Runner) Capture(ctx context.Context) (frame.Frame, error) {
	f, err := r.Source.Read(ctx)
	if err != nil {
		if ctx.Err() == nil && !r.closing.Load() {
			observability.Frames().OnCaptureError(ctx, err)
		}
		return frame.Frame{}, err
	}
	return f, nil
}

// Render scrambles f and shows the result.
func (r *Runner) Render(ctx context.Context, f frame.Frame) error {
	start := time.Now()
	out, err := r.Scrambler.Process(f)
	if err != nil {
		return fmt.Errorf("scramble frame %d: %w", r.frames, err)
	}
	for _, g := range r.Scrambler.TakeRegenerations() {
		r.Logger.Debug("reshuffled", "reason", g.Reason, "blocks", g.Blocks)
		observability.Frames().OnReshuffle(ctx, string(g.Reason), g.Blocks)
	}
	if err := r.Sink.Show(out); err != nil {
		return err
	}
	observability.Frames().OnFrame(ctx, r.frames, time.Since(start))
	r.frames++
	return nil
}

// Step captures, scrambles and shows one frame.
func (r *Runner) Step(ctx context.Context) error {
	f, err := r.Capture(ctx)
	if err != nil {
		return err
	}
	return r.Render(ctx, f)
}

// Run steps until ctx is cancelled or a frame fails, then closes the source
// and sink. Cancellation is a normal exit and returns nil.
func (r *Runner) Run(ctx context.Context) (err error) {
	defer func() {
		if cerr := r.Close(); err == nil {
			err = cerr
		}
	}()

	r.Logger.Info("scrambling", "grid", fmt.Sprintf("%dx%d", r.Scrambler.Config().Rows(), r.Scrambler.Config().Columns()))
	for {
		if err := r.Step(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// Close releases the source and sink once. A Capture still blocked on the
// source returns an error that is not reported to the hooks.
func (r *Runner) Close() error {
	r.closeOnce.Do(func() {
		r.closing.Store(true)
		r.closeErr = errors.Join(r.Source.Close(), r.Sink.Close())
		s := r.Stats()
		r.Logger.Info("stopped", "frames", s.Frames, "reshuffles", s.Reshuffles,
			"fps", fmt.Sprintf("%.1f", s.FPS()))
	})
	return r.closeErr
}

// Stats returns counters for the run so far.
func (r *Runner) Stats() Stats {
	return Stats{
		Frames:     r.frames,
		Reshuffles: r.Scrambler.Generation() - 1,
		Elapsed:    time.Since(r.start),
	}
}
