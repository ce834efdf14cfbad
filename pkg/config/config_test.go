package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/scrambler/pkg/errors"
	"github.com/matzehuels/scrambler/pkg/scramble"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(missing) = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[grid]
rows = 4
shuffle_interval = "1.5s"
color_shift = true

[capture]
device = "/dev/video2"
width = 320
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Grid.Rows != 4 || cfg.Grid.Columns != scramble.DefaultColumns {
		t.Errorf("grid = %dx%d, want 4x%d", cfg.Grid.Rows, cfg.Grid.Columns, scramble.DefaultColumns)
	}
	if cfg.Grid.ShuffleInterval.Duration != 1500*time.Millisecond {
		t.Errorf("shuffle_interval = %v, want 1.5s", cfg.Grid.ShuffleInterval)
	}
	if !cfg.Grid.ColorShift {
		t.Error("color_shift not loaded")
	}
	if cfg.Capture.Device != "/dev/video2" || cfg.Capture.Width != 320 || cfg.Capture.Height != 480 {
		t.Errorf("capture = %+v", cfg.Capture)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[grid\nrows = 4"},
		{"unknown key", "[grid]\nblocks = 4"},
		{"rows out of range", "[grid]\nrows = 21"},
		{"negative interval", "[grid]\nshuffle_interval = \"-1s\""},
		{"bad duration", "[grid]\nshuffle_interval = \"soon\""},
		{"fps zero", "[capture]\nfps = 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestApply(t *testing.T) {
	cfg := Default()
	cfg.Grid.Rows = 3
	cfg.Grid.Columns = 5
	cfg.Grid.ShuffleInterval = Duration{2 * time.Second}
	cfg.Grid.ColorShift = true
	cfg.Grid.ShiftRange = 40

	g := scramble.NewGridConfig()
	cfg.Apply(g)

	if g.Rows() != 3 || g.Columns() != 5 || g.ShuffleInterval() != 2*time.Second || !g.ColorShift() || g.ShiftRange() != 40 {
		t.Errorf("Apply() produced %dx%d interval=%v shift=%v range=%d",
			g.Rows(), g.Columns(), g.ShuffleInterval(), g.ColorShift(), g.ShiftRange())
	}
	if !g.TakeDirty() {
		t.Error("Apply() changing the grid should mark it dirty")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Grid.Rows = 12
	cfg.Capture.Input = "clip.mp4"

	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(buf.String(), `shuffle_interval = "5s"`) {
		t.Errorf("encoded config missing duration string:\n%s", buf.String())
	}

	back, err := Load(writeConfig(t, buf.String()))
	if err != nil {
		t.Fatalf("Load(encoded) error = %v", err)
	}
	if back != cfg {
		t.Errorf("round trip = %+v, want %+v", back, cfg)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultPath("scrambler")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", "scrambler", FileName); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}

func TestSaveCreatesDirAndRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scrambler", FileName)
	cfg := Default()
	cfg.Grid.Rows = 3

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != cfg {
		t.Errorf("Load(Save(cfg)) = %+v, want %+v", got, cfg)
	}
}

func TestSaveOverSourceKeepsValues(t *testing.T) {
	path := writeConfig(t, "[grid]\nrows = 4\ncolumns = 6\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Grid.Rows != 4 || got.Grid.Columns != 6 {
		t.Errorf("rows, columns = %d, %d, want 4, 6", got.Grid.Rows, got.Grid.Columns)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}
