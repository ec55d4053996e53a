package raster

import (
	"image"

	"mandel-renderer/internal/plane"
)

// Buffer is a row-major grayscale raster, one byte per pixel.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8 // len = W*H
}

// NewBuffer allocates a zeroed buffer for bounds.
func NewBuffer(bounds plane.Bounds) *Buffer {
	return &Buffer{
		Width:  bounds.Width,
		Height: bounds.Height,
		Pix:    make([]uint8, bounds.Len()),
	}
}

// Bounds returns the raster size.
func (b *Buffer) Bounds() plane.Bounds {
	return plane.Bounds{Width: b.Width, Height: b.Height}
}

// Image wraps the buffer as an *image.Gray without copying.
func (b *Buffer) Image() *image.Gray {
	return &image.Gray{
		Pix:    b.Pix,
		Stride: b.Width,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}
