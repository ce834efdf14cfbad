package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	f := NoopFrameHooks{}
	f.OnFrame(ctx, 1, time.Millisecond)
	f.OnReshuffle(ctx, "interval", 64)
	f.OnCaptureError(ctx, errors.New("eof"))

	p := NoopProcessHooks{}
	p.OnProcessStart(ctx, "ffmpeg", []string{"-f", "v4l2"})
	p.OnProcessExit(ctx, "ffmpeg", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Frames().(NoopFrameHooks); !ok {
		t.Error("Frames() should return NoopFrameHooks by default")
	}
	if _, ok := Process().(NoopProcessHooks); !ok {
		t.Error("Process() should return NoopProcessHooks by default")
	}

	custom := &testFrameHooks{}
	SetFrameHooks(custom)
	if Frames() != custom {
		t.Error("SetFrameHooks should set custom hooks")
	}

	customProc := &testProcessHooks{}
	SetProcessHooks(customProc)
	if Process() != customProc {
		t.Error("SetProcessHooks should set custom hooks")
	}

	// nil must not replace registered hooks
	SetFrameHooks(nil)
	if Frames() != custom {
		t.Error("SetFrameHooks(nil) should keep the current hooks")
	}

	Frames().OnReshuffle(context.Background(), "resize", 16)
	if custom.reshuffles != 1 {
		t.Errorf("reshuffles = %d, want 1", custom.reshuffles)
	}

	Reset()
	if _, ok := Frames().(NoopFrameHooks); !ok {
		t.Error("Reset() should restore NoopFrameHooks")
	}
}

type testFrameHooks struct {
	NoopFrameHooks
	reshuffles int
}

func (h *testFrameHooks) OnReshuffle(context.Context, string, int) { h.reshuffles++ }

type testProcessHooks struct {
	NoopProcessHooks
}

func TestMultiFrameHooks(t *testing.T) {
	a, b := &testFrameHooks{}, &testFrameHooks{}
	m := MultiFrameHooks{a, NoopFrameHooks{}, b}

	m.OnReshuffle(context.Background(), "manual", 4)
	m.OnFrame(context.Background(), 0, time.Millisecond)
	m.OnCaptureError(context.Background(), errors.New("eof"))

	if a.reshuffles != 1 || b.reshuffles != 1 {
		t.Errorf("reshuffles = %d, %d, want 1, 1", a.reshuffles, b.reshuffles)
	}
}
