// Package capture provides live frame sources: a camera or video file decoded
// by an ffmpeg child process, and a synthetic color-bar pattern.
package capture

import (
	"context"

	"github.com/matzehuels/scrambler/pkg/frame"
)

// Default capture geometry.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
	DefaultFPS    = 30.0
)

// Source yields frames one at a time. Read blocks until a frame is available.
// Any error from Read is final: the source is not expected to recover.
type Source interface {
	Read(ctx context.Context) (frame.Frame, error)
	Size() (width, height int)
	Close() error
}
