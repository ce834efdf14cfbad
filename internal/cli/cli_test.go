package cli

import (
	"bytes"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/scrambler/pkg/errors"
)

// captureOutput redirects status lines to a buffer for the test's duration.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })
	return &buf
}

// execute runs the root command with args and a config file that does not
// exist, returning the command's stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	captureOutput(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	for _, name := range []string{"run", "snapshot", "config", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestConfigCommand(t *testing.T) {
	got, err := execute(t, "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	for _, want := range []string{"[grid]", "rows = 8", `shuffle_interval = "5s"`, "[capture]", "[display]"} {
		if !strings.Contains(got, want) {
			t.Errorf("config output missing %q:\n%s", want, got)
		}
	}
}

func TestConfigCommandPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	got, err := execute(t, "config", "--path", "--config", path)
	if err != nil {
		t.Fatalf("config --path: %v", err)
	}
	if strings.TrimSpace(got) != path {
		t.Errorf("config --path = %q, want %q", got, path)
	}
}

func TestConfigCommandWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "config.toml")
	if _, err := execute(t, "config", "--write", "--config", path); err != nil {
		t.Fatalf("config --write: %v", err)
	}

	// Rewriting the file keeps its values.
	if err := os.WriteFile(path, []byte("[grid]\nrows = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "config", "--write", "--config", path); err != nil {
		t.Fatalf("config --write over existing file: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "rows = 3") || !strings.Contains(string(data), "[capture]") {
		t.Errorf("written config lost values:\n%s", data)
	}
}

func TestConfigCommandInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[grid]\nrows = 99\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := execute(t, "config", "--config", path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("config with rows = 99: err = %v, want INVALID_CONFIG", err)
	}
}

func TestCompletionCommand(t *testing.T) {
	got, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion bash: %v", err)
	}
	if !strings.Contains(got, "scrambler") {
		t.Error("bash completion does not mention the program name")
	}
}

// writeTestImage saves a 40x30 gradient PNG and returns its path.
func writeTestImage(t *testing.T) string {
	t.Helper()
	img := imaging.New(40, 30, color.Black)
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 6), uint8(y * 8), 128, 255})
		}
	}
	path := filepath.Join(t.TempDir(), "input.png")
	if err := imaging.Save(img, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func openImage(t *testing.T, path string) image.Image {
	t.Helper()
	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	return img
}

func TestSnapshotCommand(t *testing.T) {
	in := writeTestImage(t)
	dir := t.TempDir()
	first := filepath.Join(dir, "a.png")
	second := filepath.Join(dir, "b.png")

	for _, dst := range []string{first, second} {
		if _, err := execute(t, "snapshot", in, "-r", "3", "-c", "4", "--seed", "42", "-o", dst); err != nil {
			t.Fatalf("snapshot: %v", err)
		}
	}

	a, b := openImage(t, first), openImage(t, second)
	if a.Bounds() != image.Rect(0, 0, 40, 30) {
		t.Fatalf("output bounds = %v, want 40x30", a.Bounds())
	}
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			if a.At(x, y) != b.At(x, y) {
				t.Fatalf("same seed gave different pixels at (%d,%d)", x, y)
			}
		}
	}
}

func TestSnapshotDefaultOutput(t *testing.T) {
	in := writeTestImage(t)
	if _, err := execute(t, "snapshot", in); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if _, err := os.Stat(strings.TrimSuffix(in, ".png") + "-scrambled.png"); err != nil {
		t.Errorf("default output not written: %v", err)
	}
}

func TestSnapshotErrors(t *testing.T) {
	in := writeTestImage(t)
	garbage := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want errors.Code
	}{
		{"missing input", []string{"snapshot", filepath.Join(t.TempDir(), "missing.png")}, errors.ErrCodeFileNotFound},
		{"undecodable input", []string{"snapshot", garbage}, errors.ErrCodeInvalidFormat},
		{"bad output extension", []string{"snapshot", in, "-o", "out.txt"}, errors.ErrCodeInvalidFormat},
		{"rows out of range", []string{"snapshot", in, "-r", "21"}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want code %s", err, tt.want)
			}
		})
	}
}
