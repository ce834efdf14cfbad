package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scrambler/pkg/capture"
	"github.com/matzehuels/scrambler/pkg/config"
	"github.com/matzehuels/scrambler/pkg/display"
	"github.com/matzehuels/scrambler/pkg/metrics"
	"github.com/matzehuels/scrambler/pkg/observability"
	"github.com/matzehuels/scrambler/pkg/pipeline"
	"github.com/matzehuels/scrambler/pkg/scramble"
)

// runCommand creates the run command that scrambles the live feed.
func (c *CLI) runCommand() *cobra.Command {
	var (
		headless    bool
		logFile     string
		metricsFile string
	)
	flags := config.Default()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Scramble a live video feed",
		Long: `Scramble a live video feed.

The run command captures frames from a camera (or a video file, or a test
pattern) with ffmpeg, scrambles them, and shows the result in an ffplay window.

An interactive control panel in the terminal adjusts the grid while it runs:

  ↑/↓  select a control     ←/→  adjust it
  c    toggle color shift   s    reshuffle now
  r    reset to defaults    q    quit

With --headless the panel is skipped and Ctrl+C stops the feed.
Flags override values from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := c.loadConfig()
			if err != nil {
				return err
			}
			mergeFlags(cmd, &cfg, flags)
			if err := cfg.Validate(); err != nil {
				return err
			}
			c.Logger.Debug("loaded config", "path", path)
			return c.runLive(cmd.Context(), cfg, liveOptions{headless: headless, logFile: logFile, metricsFile: metricsFile})
		},
	}

	addGridFlags(cmd, &flags)
	addCaptureFlags(cmd, &flags)
	cmd.Flags().BoolVar(&headless, "headless", false, "run without the interactive control panel")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file when the run ends")
	cmd.Flags().StringVar(&logFile, "log-file", "", "log destination while the control panel is open (default $XDG_STATE_HOME/scrambler/scrambler.log)")

	return cmd
}

// liveOptions holds the run flags that are not part of the config file.
type liveOptions struct {
	headless    bool
	logFile     string
	metricsFile string
}

// runLive opens the source and sink and runs the control loop until quit or
// capture failure.
func (c *CLI) runLive(ctx context.Context, cfg config.Config, opts liveOptions) error {
	if !opts.headless {
		f, err := openLogFile(opts.logFile)
		if err != nil {
			printWarning("logging to stderr: %v", err)
		} else {
			defer f.Close()
			c.Logger.SetOutput(f)
			defer c.Logger.SetOutput(os.Stderr)
		}
	}

	runID := uuid.NewString()
	logger := c.Logger.With("run", runID[:8])
	ctx = withLogger(ctx, logger)

	var extra []observability.FrameHooks
	var m *metrics.Metrics
	if opts.metricsFile != "" {
		m = metrics.New()
		extra = append(extra, m)
	}
	registerHooks(logger, extra...)
	defer observability.Reset()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	seed := resolveSeed(cfg.Grid.Seed)
	grid := scramble.NewGridConfig()
	cfg.Apply(grid)
	s := scramble.New(grid, scramble.WithSeed(seed))
	if m != nil {
		m.Blocks.Set(float64(grid.Blocks()))
	}
	logger.Info("starting", "grid", fmt.Sprintf("%dx%d", grid.Rows(), grid.Columns()),
		"interval", grid.ShuffleInterval(), "color_shift", grid.ColorShift(), "seed", seed)

	src, err := openSource(ctx, cfg.Capture)
	if err != nil {
		return err
	}
	width, height := src.Size()
	sink, err := display.StartFFplay(ctx, display.FFplayOptions{
		Title:  cfg.Display.Title,
		Width:  width,
		Height: height,
		FPS:    cfg.Capture.FPS,
		Scale:  cfg.Display.Scale,
	})
	if err != nil {
		src.Close()
		return err
	}

	runner := pipeline.NewRunner(src, sink, s, logger)
	if opts.headless {
		err = c.runHeadless(ctx, runner)
	} else {
		err = runPanel(ctx, runner)
	}
	printStats(runner.Stats())

	if m != nil {
		if werr := m.WriteTextfile(opts.metricsFile); werr != nil {
			logger.Warn("metrics not written", "path", opts.metricsFile, "err", werr)
		} else {
			printFile(opts.metricsFile)
		}
	}
	return err
}

// runHeadless waits for the first frame behind a spinner, then loops until
// ctx is cancelled or capture fails.
func (c *CLI) runHeadless(ctx context.Context, runner *pipeline.Runner) error {
	spinner := newSpinner(ctx, os.Stderr, "Waiting for the first frame...")
	spinner.Start()

	f, err := runner.Capture(ctx)
	if err != nil {
		spinner.StopWithError("No frames received")
		runner.Close()
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	spinner.Stop()

	if err := runner.Render(ctx, f); err != nil {
		runner.Close()
		return err
	}
	loggerFromContext(ctx).Info("press Ctrl+C to stop")
	return runner.Run(ctx)
}

// openSource picks the frame source described by cfg.
func openSource(ctx context.Context, cfg config.Capture) (capture.Source, error) {
	if cfg.Test {
		return capture.NewTestPattern(cfg.Width, cfg.Height, cfg.FPS), nil
	}
	return capture.StartFFmpeg(ctx, capture.FFmpegOptions{
		Device: cfg.Device,
		Input:  cfg.Input,
		Width:  cfg.Width,
		Height: cfg.Height,
		FPS:    cfg.FPS,
	})
}

// openLogFile opens path for appending, defaulting to the state directory.
func openLogFile(path string) (*os.File, error) {
	if path == "" {
		dir, err := stateDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, logFileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// printStats prints a short run summary.
func printStats(s pipeline.Stats) {
	printKeyValue("frames", fmt.Sprint(s.Frames))
	printKeyValue("reshuffles", fmt.Sprint(s.Reshuffles))
	printKeyValue("fps", fmt.Sprintf("%.1f", s.FPS()))
	printKeyValue("elapsed", s.Elapsed.Round(100*time.Millisecond).String())
}
