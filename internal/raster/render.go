package raster

import (
	"fmt"
	"image"

	"mandel-renderer/internal/fractal"
	"mandel-renderer/internal/plane"
)

// Render fills pixels, a bounds.Width x bounds.Height grayscale region, with
// the part of the Mandelbrot set between upperLeft and lowerRight.
//
// It panics if len(pixels) does not match bounds. A zero-height region is a
// no-op.
func Render(pixels []uint8, bounds plane.Bounds, upperLeft, lowerRight complex128) {
	if len(pixels) != bounds.Len() {
		panic(fmt.Sprintf("raster: region has %d bytes, %v band needs %d", len(pixels), bounds, bounds.Len()))
	}

	for row := 0; row < bounds.Height; row++ {
		off := row * bounds.Width
		for column := 0; column < bounds.Width; column++ {
			point := plane.PixelToPoint(bounds, image.Pt(column, row), upperLeft, lowerRight)
			pixels[off+column] = fractal.Shade(fractal.EscapeTime(point, fractal.Limit))
		}
	}
}
