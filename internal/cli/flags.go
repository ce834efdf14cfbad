package cli

import (
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scrambler/pkg/config"
)

// override copies one flag-backed field from src into dst.
type override func(dst *config.Config, src config.Config)

// overrides maps flag names to the config field they set. Flags only replace
// file values when given explicitly on the command line.
var overrides = map[string]override{
	"rows":         func(d *config.Config, s config.Config) { d.Grid.Rows = s.Grid.Rows },
	"columns":      func(d *config.Config, s config.Config) { d.Grid.Columns = s.Grid.Columns },
	"interval":     func(d *config.Config, s config.Config) { d.Grid.ShuffleInterval = s.Grid.ShuffleInterval },
	"color-shift":  func(d *config.Config, s config.Config) { d.Grid.ColorShift = s.Grid.ColorShift },
	"shift-range":  func(d *config.Config, s config.Config) { d.Grid.ShiftRange = s.Grid.ShiftRange },
	"seed":         func(d *config.Config, s config.Config) { d.Grid.Seed = s.Grid.Seed },
	"device":       func(d *config.Config, s config.Config) { d.Capture.Device = s.Capture.Device },
	"input":        func(d *config.Config, s config.Config) { d.Capture.Input = s.Capture.Input },
	"test-pattern": func(d *config.Config, s config.Config) { d.Capture.Test = s.Capture.Test },
	"width":        func(d *config.Config, s config.Config) { d.Capture.Width = s.Capture.Width },
	"height":       func(d *config.Config, s config.Config) { d.Capture.Height = s.Capture.Height },
	"fps":          func(d *config.Config, s config.Config) { d.Capture.FPS = s.Capture.FPS },
	"title":        func(d *config.Config, s config.Config) { d.Display.Title = s.Display.Title },
	"scale":        func(d *config.Config, s config.Config) { d.Display.Scale = s.Display.Scale },
}

// addGridFlags registers the scrambling flags, storing values in cfg.
func addGridFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	f.IntVarP(&cfg.Grid.Rows, "rows", "r", cfg.Grid.Rows, "block rows (1-20)")
	f.IntVarP(&cfg.Grid.Columns, "columns", "c", cfg.Grid.Columns, "block columns (1-20)")
	f.DurationVarP(&cfg.Grid.ShuffleInterval.Duration, "interval", "i", cfg.Grid.ShuffleInterval.Duration, "time between reshuffles (0-30s)")
	f.BoolVar(&cfg.Grid.ColorShift, "color-shift", cfg.Grid.ColorShift, "jitter the color of every block")
	f.IntVar(&cfg.Grid.ShiftRange, "shift-range", cfg.Grid.ShiftRange, "maximum color jitter per channel (0-255)")
	f.Uint64Var(&cfg.Grid.Seed, "seed", cfg.Grid.Seed, "random seed (0 picks one)")
}

// addCaptureFlags registers the source and window flags, storing values in cfg.
func addCaptureFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	f.StringVarP(&cfg.Capture.Device, "device", "d", cfg.Capture.Device, "camera device name or index (OS-dependent)")
	f.StringVar(&cfg.Capture.Input, "input", cfg.Capture.Input, "read a video file instead of a camera")
	f.BoolVar(&cfg.Capture.Test, "test-pattern", cfg.Capture.Test, "use SMPTE color bars instead of a camera")
	f.IntVar(&cfg.Capture.Width, "width", cfg.Capture.Width, "capture width in pixels")
	f.IntVar(&cfg.Capture.Height, "height", cfg.Capture.Height, "capture height in pixels")
	f.Float64Var(&cfg.Capture.FPS, "fps", cfg.Capture.FPS, "capture frame rate")
	f.StringVar(&cfg.Display.Title, "title", cfg.Display.Title, "window title")
	f.Float64Var(&cfg.Display.Scale, "scale", cfg.Display.Scale, "window scale factor")
}

// mergeFlags applies every explicitly set flag of cmd from src onto dst.
func mergeFlags(cmd *cobra.Command, dst *config.Config, src config.Config) {
	for name, apply := range overrides {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			apply(dst, src)
		}
	}
}

// resolveSeed returns seed, or a fresh random seed when seed is zero, so the
// value actually used can be reported and replayed.
func resolveSeed(seed uint64) uint64 {
	for seed == 0 {
		seed = rand.Uint64()
	}
	return seed
}
