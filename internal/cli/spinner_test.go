package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

func TestSpinnerDraws(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Waiting for the first frame...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Waiting for the first frame...") {
		t.Errorf("spinner output %q does not contain message", buf.String())
	}
}

func TestSpinnerStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, io.Discard, "Testing...")
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner still running after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner(context.Background(), io.Discard, "Testing...")
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithMessage(t *testing.T) {
	buf := captureOutput(t)

	s := newSpinner(context.Background(), io.Discard, "Testing...")
	s.Start()
	s.StopWithError("No frames received")

	if !strings.Contains(buf.String(), "No frames received") {
		t.Errorf("StopWithError output = %q", buf.String())
	}
}
