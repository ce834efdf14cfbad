package metrics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/matzehuels/scrambler/pkg/errors"
)

func TestFrameHooks(t *testing.T) {
	m := New()
	ctx := context.Background()

	m.OnFrame(ctx, 0, 5*time.Millisecond)
	m.OnFrame(ctx, 1, 7*time.Millisecond)
	m.OnReshuffle(ctx, "interval", 64)
	m.OnReshuffle(ctx, "resize", 16)
	m.OnReshuffle(ctx, "interval", 16)
	m.OnCaptureError(ctx, errors.New(errors.ErrCodeCaptureFailed, "eof"))
	m.OnCaptureError(ctx, fmt.Errorf("plain"))

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"frames", testutil.ToFloat64(m.FramesTotal), 2},
		{"interval reshuffles", testutil.ToFloat64(m.ReshufflesTotal.WithLabelValues("interval")), 2},
		{"resize reshuffles", testutil.ToFloat64(m.ReshufflesTotal.WithLabelValues("resize")), 1},
		{"blocks", testutil.ToFloat64(m.Blocks), 16},
		{"capture errors", testutil.ToFloat64(m.CaptureErrorsTotal.WithLabelValues("CAPTURE_FAILED")), 1},
		{"uncoded errors", testutil.ToFloat64(m.CaptureErrorsTotal.WithLabelValues("INTERNAL_ERROR")), 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.OnFrame(context.Background(), 0, time.Millisecond)

	path := filepath.Join(t.TempDir(), "scrambler.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "scrambler_frames_total 1") {
		t.Errorf("textfile missing frame counter:\n%s", data)
	}
}

func TestWriteTextfileInvalidPath(t *testing.T) {
	if err := New().WriteTextfile(""); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("WriteTextfile(\"\") = %v, want INVALID_PATH", err)
	}
}
