// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about frame processing and the external video processes.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetFrameHooks(&myFrameHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Frames().OnFrame(ctx, index, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Frame Hooks
// =============================================================================

// FrameHooks receives events from the frame pipeline.
type FrameHooks interface {
	// OnFrame records a frame that was scrambled and displayed.
	OnFrame(ctx context.Context, index uint64, duration time.Duration)

	// OnReshuffle records a permutation regeneration.
	// reason is one of "resize", "interval" or "manual".
	OnReshuffle(ctx context.Context, reason string, blocks int)

	// OnCaptureError records the fatal capture failure that ends a run.
	OnCaptureError(ctx context.Context, err error)
}

// =============================================================================
// Process Hooks
// =============================================================================

// ProcessHooks receives lifecycle events of external helper processes
// (ffmpeg for capture, ffplay for display).
type ProcessHooks interface {
	OnProcessStart(ctx context.Context, name string, args []string)
	OnProcessExit(ctx context.Context, name string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopFrameHooks is a no-op implementation of FrameHooks.
type NoopFrameHooks struct{}

func (NoopFrameHooks) OnFrame(context.Context, uint64, time.Duration) {}
func (NoopFrameHooks) OnReshuffle(context.Context, string, int)       {}
func (NoopFrameHooks) OnCaptureError(context.Context, error)          {}

// NoopProcessHooks is a no-op implementation of ProcessHooks.
type NoopProcessHooks struct{}

func (NoopProcessHooks) OnProcessStart(context.Context, string, []string) {}
func (NoopProcessHooks) OnProcessExit(context.Context, string, error)     {}

// MultiFrameHooks forwards every event to each of its hooks in order.
type MultiFrameHooks []FrameHooks

func (m MultiFrameHooks) OnFrame(ctx context.Context, index uint64, d time.Duration) {
	for _, h := range m {
		h.OnFrame(ctx, index, d)
	}
}

func (m MultiFrameHooks) OnReshuffle(ctx context.Context, reason string, blocks int) {
	for _, h := range m {
		h.OnReshuffle(ctx, reason, blocks)
	}
}

func (m MultiFrameHooks) OnCaptureError(ctx context.Context, err error) {
	for _, h := range m {
		h.OnCaptureError(ctx, err)
	}
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	frameHooks   FrameHooks   = NoopFrameHooks{}
	processHooks ProcessHooks = NoopProcessHooks{}
	hooksMu      sync.RWMutex
)

// SetFrameHooks registers custom frame hooks.
// This should be called once at application startup before any frames flow.
func SetFrameHooks(h FrameHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		frameHooks = h
	}
}

// SetProcessHooks registers custom process hooks.
func SetProcessHooks(h ProcessHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		processHooks = h
	}
}

// Frames returns the registered frame hooks.
func Frames() FrameHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return frameHooks
}

// Process returns the registered process hooks.
func Process() ProcessHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return processHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	frameHooks = NoopFrameHooks{}
	processHooks = NoopProcessHooks{}
}
