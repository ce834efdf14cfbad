package scramble

import "github.com/matzehuels/scrambler/pkg/frame"

// BlockSize returns the height and width of one block when a width×height
// frame is cut into rows×columns blocks. Remainders are truncated.
func BlockSize(width, height, rows, columns int) (blockH, blockW int) {
	return height / max(rows, 1), width / max(columns, 1)
}

// Partition cuts f into rows×columns blocks in row-major order.
//
// Block (i, j) covers rows [i·blockH, (i+1)·blockH) and columns
// [j·blockW, (j+1)·blockW) of f. Blocks are views sharing memory with f and
// never overlap. Trailing pixels that do not fill a whole block are not part of
// any block. rows and columns below 1 are treated as 1.
func Partition(f frame.Frame, rows, columns int) []frame.Frame {
	rows, columns = max(rows, 1), max(columns, 1)
	bh, bw := BlockSize(f.Width, f.Height, rows, columns)

	blocks := make([]frame.Frame, 0, rows*columns)
	for i := range rows {
		for j := range columns {
			blocks = append(blocks, f.Sub(j*bw, i*bh, bw, bh))
		}
	}
	return blocks
}
