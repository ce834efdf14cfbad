// Package display shows scrambled frames, either in an ffplay window or
// nowhere at all for headless runs.
package display

import (
	"sync"

	"github.com/matzehuels/scrambler/pkg/frame"
)

// DefaultTitle is the window title used when none is configured.
const DefaultTitle = "Scrambled Webcam Feed"

// Sink consumes frames. Show must not retain f after returning.
type Sink interface {
	Show(f frame.Frame) error
	Close() error
}

// Discard is a sink that drops frames, remembering only how many it saw and
// a copy of the last one.
type Discard struct {
	mu     sync.Mutex
	count  int
	last   frame.Frame
	closed bool
}

func (d *Discard) Show(f frame.Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.count++
	d.last = f.Clone()
	return nil
}

func (d *Discard) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// Count returns the number of frames shown.
func (d *Discard) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.count
}

// Last returns the most recent frame shown.
func (d *Discard) Last() frame.Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

// Closed reports whether Close was called.
func (d *Discard) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}
