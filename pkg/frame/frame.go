// Package frame provides the raw RGB video frame shared by capture, scrambling
// and display.
//
// A [Frame] is a height×width×3 array of 8-bit samples stored row-major with
// interleaved channels, the same layout ffmpeg emits for the rgb24 pixel
// format. Frames carry an explicit row stride so that [Frame.Sub] can return a
// view onto a rectangular region without copying, much like
// [image.RGBA.SubImage].
package frame

import (
	"bytes"
	"image"
	"image/color"
)

// Channels is the number of samples per pixel (R, G, B).
const Channels = 3

// Frame is an RGB24 image. The zero value is an empty 0×0 frame.
type Frame struct {
	Width  int
	Height int
	Stride int // bytes between the starts of two consecutive rows
	Pix    []uint8
}

// New returns a zero-filled frame of the given size.
// Negative dimensions are treated as zero.
func New(width, height int) Frame {
	width, height = max(width, 0), max(height, 0)
	return Frame{
		Width:  width,
		Height: height,
		Stride: width * Channels,
		Pix:    make([]uint8, width*height*Channels),
	}
}

// FromBytes wraps a packed rgb24 buffer without copying.
// It returns false if buf is too short for the requested size.
func FromBytes(buf []byte, width, height int) (Frame, bool) {
	if width < 0 || height < 0 || len(buf) < width*height*Channels {
		return Frame{}, false
	}
	return Frame{Width: width, Height: height, Stride: width * Channels, Pix: buf}, true
}

// Empty reports whether the frame has no pixels.
func (f Frame) Empty() bool { return f.Width == 0 || f.Height == 0 }

// Len returns the size in bytes of a packed copy of f.
func (f Frame) Len() int { return f.Width * f.Height * Channels }

func (f Frame) offset(x, y int) int { return y*f.Stride + x*Channels }

// At returns the samples at (x, y). The coordinates must be in range.
func (f Frame) At(x, y int) (r, g, b uint8) {
	i := f.offset(x, y)
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2]
}

// Set writes the samples at (x, y). The coordinates must be in range.
func (f Frame) Set(x, y int, r, g, b uint8) {
	i := f.offset(x, y)
	f.Pix[i], f.Pix[i+1], f.Pix[i+2] = r, g, b
}

// Row returns the samples of row y, Width*Channels bytes long.
func (f Frame) Row(y int) []uint8 {
	i := y * f.Stride
	return f.Pix[i : i+f.Width*Channels]
}

// Sub returns a view of the w×h region whose top-left corner is (x, y).
// The view shares pixel memory with f; writes through it are visible in f.
// The region is clipped to the bounds of f.
func (f Frame) Sub(x, y, w, h int) Frame {
	x, y = min(max(x, 0), f.Width), min(max(y, 0), f.Height)
	w, h = min(max(w, 0), f.Width-x), min(max(h, 0), f.Height-y)
	if w == 0 || h == 0 {
		return Frame{Stride: f.Stride}
	}
	start := f.offset(x, y)
	end := f.offset(x+w-1, y+h-1) + Channels
	return Frame{Width: w, Height: h, Stride: f.Stride, Pix: f.Pix[start:end:end]}
}

// Clone returns a packed deep copy of f.
func (f Frame) Clone() Frame {
	out := New(f.Width, f.Height)
	for y := 0; y < f.Height; y++ {
		copy(out.Row(y), f.Row(y))
	}
	return out
}

// Bytes returns the frame as a packed rgb24 buffer. Packed frames are
// returned without copying.
func (f Frame) Bytes() []byte {
	if f.Stride == f.Width*Channels {
		return f.Pix[:f.Len()]
	}
	return f.Clone().Pix
}

// Draw copies src into f with its top-left corner at (x, y).
// Parts of src falling outside f are ignored.
func (f Frame) Draw(src Frame, x, y int) {
	dst := f.Sub(x, y, src.Width, src.Height)
	for row := 0; row < dst.Height; row++ {
		copy(dst.Row(row), src.Row(row)[:dst.Width*Channels])
	}
}

// Equal reports whether a and b have the same size and samples.
func Equal(a, b Frame) bool {
	if a.Width != b.Width || a.Height != b.Height {
		return false
	}
	for y := 0; y < a.Height; y++ {
		if !bytes.Equal(a.Row(y), b.Row(y)) {
			return false
		}
	}
	return true
}

// FromImage converts any image to a packed frame, dropping alpha.
func FromImage(img image.Image) Frame {
	b := img.Bounds()
	out := New(b.Dx(), b.Dy())
	if rgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < out.Height; y++ {
			src := rgba.Pix[rgba.PixOffset(b.Min.X, b.Min.Y+y):]
			dst := out.Row(y)
			for x := 0; x < out.Width; x++ {
				copy(dst[x*Channels:x*Channels+Channels], src[x*4:x*4+3])
			}
		}
		return out
	}
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			out.Set(x, y, c.R, c.G, c.B)
		}
	}
	return out
}

// Image returns an opaque RGBA copy of f.
func (f Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		row := f.Row(y)
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < f.Width; x++ {
			dst[x*4], dst[x*4+1], dst[x*4+2], dst[x*4+3] = row[x*3], row[x*3+1], row[x*3+2], 0xff
		}
	}
	return img
}
