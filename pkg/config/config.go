// Package config loads scrambler settings from a TOML file.
//
// A missing file is not an error: every field has a default (8×8 grid, 5 s
// shuffle interval, color shift off).
//
//	[grid]
//	rows = 8
//	columns = 8
//	shuffle_interval = "5s"
//	color_shift = false
//	shift_range = 100
//
//	[capture]
//	device = "/dev/video0"
//	width = 640
//	height = 480
//	fps = 30
//
//	[display]
//	title = "Scrambled Webcam Feed"
//	scale = 1.0
package config

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/scrambler/pkg/capture"
	"github.com/matzehuels/scrambler/pkg/display"
	"github.com/matzehuels/scrambler/pkg/errors"
	"github.com/matzehuels/scrambler/pkg/scramble"
)

// FileName is the config file looked up in the user config directory.
const FileName = "config.toml"

// Duration is a time.Duration that encodes as a TOML string like "5s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Grid holds the scrambling parameters.
type Grid struct {
	Rows            int      `toml:"rows"`
	Columns         int      `toml:"columns"`
	ShuffleInterval Duration `toml:"shuffle_interval"`
	ColorShift      bool     `toml:"color_shift"`
	ShiftRange      int      `toml:"shift_range"`
	Seed            uint64   `toml:"seed,omitempty"`
}

// Capture selects and sizes the video source.
type Capture struct {
	Device string  `toml:"device,omitempty"`
	Input  string  `toml:"input,omitempty"`
	Test   bool    `toml:"test_pattern"`
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	FPS    float64 `toml:"fps"`
}

// Display configures the output window.
type Display struct {
	Title string  `toml:"title"`
	Scale float64 `toml:"scale"`
}

// Config is the complete file layout.
type Config struct {
	Grid    Grid    `toml:"grid"`
	Capture Capture `toml:"capture"`
	Display Display `toml:"display"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Grid: Grid{
			Rows:            scramble.DefaultRows,
			Columns:         scramble.DefaultColumns,
			ShuffleInterval: Duration{scramble.DefaultShuffleInterval},
			ShiftRange:      scramble.DefaultShiftRange,
		},
		Capture: Capture{
			Width:  capture.DefaultWidth,
			Height: capture.DefaultHeight,
			FPS:    capture.DefaultFPS,
		},
		Display: Display{
			Title: display.DefaultTitle,
			Scale: 1,
		},
	}
}

// Load reads path on top of the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// Validate checks every field against its allowed range.
func (c Config) Validate() error {
	checks := []struct {
		field  string
		value  float64
		lo, hi float64
	}{
		{"grid.rows", float64(c.Grid.Rows), scramble.MinBlocks, scramble.MaxBlocks},
		{"grid.columns", float64(c.Grid.Columns), scramble.MinBlocks, scramble.MaxBlocks},
		{"grid.shuffle_interval", c.Grid.ShuffleInterval.Seconds(), 0, scramble.MaxShuffleInterval.Seconds()},
		{"grid.shift_range", float64(c.Grid.ShiftRange), 0, scramble.MaxShiftRange},
		{"capture.width", float64(c.Capture.Width), 16, 7680},
		{"capture.height", float64(c.Capture.Height), 16, 4320},
		{"capture.fps", c.Capture.FPS, 1, 240},
		{"display.scale", c.Display.Scale, 0.1, 8},
	}
	for _, ck := range checks {
		if err := errors.ValidateRange(ck.field, ck.value, ck.lo, ck.hi); err != nil {
			return err
		}
	}
	if c.Capture.Input != "" {
		if err := errors.ValidatePath(c.Capture.Input); err != nil {
			return err
		}
	}
	return nil
}

// Apply copies the grid settings into g through its clamping setters.
func (c Config) Apply(g *scramble.GridConfig) {
	g.SetRows(c.Grid.Rows)
	g.SetColumns(c.Grid.Columns)
	g.SetShuffleInterval(c.Grid.ShuffleInterval.Duration)
	g.SetColorShift(c.Grid.ColorShift)
	g.SetShiftRange(c.Grid.ShiftRange)
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Save writes c to path as TOML, creating the parent directory. The file is
// written to a temporary name first and renamed, so path is never left
// truncated and may be the file c was loaded from.
func (c Config) Save(path string) (err error) {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if err := c.Encode(tmp); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/scrambler/config.toml).
func DefaultPath(appName string) (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, FileName), nil
}
