package capture

import (
	"context"
	"time"

	"github.com/matzehuels/scrambler/pkg/frame"
)

// SMPTE color bars: gray, yellow, cyan, green, magenta, red, blue.
var barColors = [7][3]uint8{
	{192, 192, 192},
	{192, 192, 0},
	{0, 192, 192},
	{0, 192, 0},
	{192, 0, 192},
	{192, 0, 0},
	{0, 0, 192},
}

// FillColorBars paints seven vertical SMPTE bars across f.
func FillColorBars(f frame.Frame) {
	barWidth := max(f.Width/len(barColors), 1)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := barColors[min(x/barWidth, len(barColors)-1)]
			f.Set(x, y, c[0], c[1], c[2])
		}
	}
}

// TestPattern is a source of color-bar frames paced at a fixed rate.
// It never fails; Read only returns an error when ctx is done.
type TestPattern struct {
	width, height int
	pattern       frame.Frame
	ticker        *time.Ticker
}

// NewTestPattern returns a color-bar source. fps <= 0 disables pacing.
func NewTestPattern(width, height int, fps float64) *TestPattern {
	p := frame.New(width, height)
	FillColorBars(p)
	tp := &TestPattern{width: width, height: height, pattern: p}
	if fps > 0 {
		tp.ticker = time.NewTicker(time.Duration(float64(time.Second) / fps))
	}
	return tp
}

func (t *TestPattern) Size() (int, int) { return t.width, t.height }

func (t *TestPattern) Read(ctx context.Context) (frame.Frame, error) {
	if t.ticker == nil {
		if err := ctx.Err(); err != nil {
			return frame.Frame{}, err
		}
		return t.pattern.Clone(), nil
	}
	select {
	case <-ctx.Done():
		return frame.Frame{}, ctx.Err()
	case <-t.ticker.C:
		return t.pattern.Clone(), nil
	}
}

func (t *TestPattern) Close() error {
	if t.ticker != nil {
		t.ticker.Stop()
	}
	return nil
}
