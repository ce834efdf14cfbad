package scramble_test

import (
	"fmt"

	"github.com/matzehuels/scrambler/pkg/frame"
	"github.com/matzehuels/scrambler/pkg/scramble"
)

func ExampleCompose() {
	// A 4x4 frame split into a 2x2 grid, each block filled with its index.
	f := frame.New(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			v := uint8((y/2)*2 + x/2)
			f.Set(x, y, v, v, v)
		}
	}

	blocks := scramble.Partition(f, 2, 2)
	out, _ := scramble.Compose(f, blocks, scramble.Permutation{2, 0, 3, 1}, 2, 2, nil)

	for y := 0; y < 4; y++ {
		row := make([]uint8, 4)
		for x := range row {
			row[x], _, _ = out.At(x, y)
		}
		fmt.Println(row)
	}
	// Output:
	// [2 2 0 0]
	// [2 2 0 0]
	// [3 3 1 1]
	// [3 3 1 1]
}

func ExamplePermutation_Inverse() {
	p := scramble.Permutation{2, 0, 3, 1}
	fmt.Println(p.Inverse())
	// Output:
	// [1 3 0 2]
}

func ExampleBlockSize() {
	h, w := scramble.BlockSize(640, 480, 8, 8)
	fmt.Println(h, w)
	// Output:
	// 60 80
}
