package scramble

import (
	"math/rand/v2"

	"github.com/matzehuels/scrambler/pkg/frame"
)

// Shift transforms a block before it is placed. It must not modify its input.
type Shift func(block frame.Frame) frame.Frame

// Jitter returns a copy of block with one random offset per color channel
// added to every pixel. Offsets are uniform in [-shiftRange, shiftRange) and
// results are clamped to [0, 255]. A shiftRange of zero or less returns an
// unchanged copy.
func Jitter(rng *rand.Rand, block frame.Frame, shiftRange int) frame.Frame {
	out := block.Clone()
	if shiftRange <= 0 {
		return out
	}

	var offsets [frame.Channels]int
	for c := range offsets {
		offsets[c] = rng.IntN(2*shiftRange) - shiftRange
	}

	for i := 0; i < len(out.Pix); i += frame.Channels {
		for c, off := range offsets {
			out.Pix[i+c] = uint8(max(0, min(int(out.Pix[i+c])+off, 255)))
		}
	}
	return out
}

// JitterWith returns a [Shift] applying [Jitter] with rng and shiftRange.
func JitterWith(rng *rand.Rand, shiftRange int) Shift {
	return func(block frame.Frame) frame.Frame {
		return Jitter(rng, block, shiftRange)
	}
}
