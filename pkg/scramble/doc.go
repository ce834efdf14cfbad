// Package scramble turns video frames into shuffled mosaics.
//
// # Overview
//
// A frame is cut into a grid of rows×columns equally sized blocks, the blocks
// are moved to new slots according to a random permutation, and each block can
// optionally have its colour jittered. The package is made of four small
// transformations plus the timing policy that ties them together:
//
//   - [Partition] cuts a frame into row-major blocks
//   - [Generate] draws a uniform random [Permutation] of block indices
//   - [Jitter] shifts each colour channel of a block by a random offset
//   - [Compose] writes every source block into its permuted destination slot
//
// [Scrambler] holds a [GridConfig] and the current permutation and applies the
// transformations to each frame. The permutation is kept across frames and
// regenerated when the grid dimensions change or when the shuffle interval has
// elapsed.
//
// # Remainders
//
// Block sizes use integer division: blockH = H / rows and blockW = W / columns.
// Pixels in the bottom rows and right columns that do not fill a whole block
// belong to no block and stay black in the output.
//
// # Determinism
//
// All randomness comes from an injected *rand.Rand and all timing from an
// injected clock, so tests can reproduce exact permutations:
//
//	cfg := scramble.NewGridConfig()
//	s := scramble.New(cfg, scramble.WithSeed(42))
//	out, err := s.Process(in)
//
// # Concurrency
//
// [GridConfig] and [Scrambler] are not safe for concurrent use. Configuration
// changes and frame processing are expected to happen on the same goroutine,
// as they do in the interactive control panel.
package scramble
