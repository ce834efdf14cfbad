package scramble

import (
	"github.com/matzehuels/scrambler/pkg/errors"
	"github.com/matzehuels/scrambler/pkg/frame"
)

// Compose builds a new frame of the same size as f with blocks rearranged by
// perm: slot index (row index/columns, column index%columns) receives
// blocks[perm[index]], passed through shift when shift is non-nil.
//
// The output starts zeroed, so pixels outside the rows×columns block area
// stay black. f itself is only used for its dimensions and is not modified.
func Compose(f frame.Frame, blocks []frame.Frame, perm Permutation, rows, columns int, shift Shift) (frame.Frame, error) {
	if rows < 1 || columns < 1 {
		return frame.Frame{}, errors.New(errors.ErrCodeInvalidInput, "grid %dx%d must have at least one block", rows, columns)
	}
	if n := rows * columns; len(blocks) != n || len(perm) != n {
		return frame.Frame{}, errors.New(errors.ErrCodeInvalidInput,
			"grid %dx%d needs %d blocks and slots, got %d blocks and %d slots", rows, columns, n, len(blocks), len(perm))
	}
	if !perm.Valid() {
		return frame.Frame{}, errors.New(errors.ErrCodeInvalidInput, "slot order %v is not a permutation", perm)
	}

	bh, bw := BlockSize(f.Width, f.Height, rows, columns)
	out := frame.New(f.Width, f.Height)
	for index, source := range perm {
		block := blocks[source]
		if shift != nil {
			block = shift(block)
		}
		destRow, destCol := index/columns, index%columns
		out.Draw(block, destCol*bw, destRow*bh)
	}
	return out, nil
}
