package plane

import (
	"fmt"
	"image"
)

// Bounds is the size of a pixel raster.
type Bounds struct {
	Width  int
	Height int
}

// Len returns the number of pixels covered by b.
func (b Bounds) Len() int {
	return b.Width * b.Height
}

// Valid reports whether both dimensions are positive.
func (b Bounds) Valid() bool {
	return b.Width > 0 && b.Height > 0
}

func (b Bounds) String() string {
	return fmt.Sprintf("%dx%d", b.Width, b.Height)
}

// Viewport is the rectangle of the complex plane mapped onto a raster.
type Viewport struct {
	UpperLeft  complex128
	LowerRight complex128
}

// PixelToPoint maps pixel (X = column, Y = row) of a raster with the given
// bounds to the complex plane. Rows grow downward while the imaginary part
// shrinks. Corner coordinates X == Width and Y == Height are allowed.
//
// Width and Height must be non-zero.
func PixelToPoint(bounds Bounds, pixel image.Point, upperLeft, lowerRight complex128) complex128 {
	width := real(lowerRight) - real(upperLeft)
	height := imag(upperLeft) - imag(lowerRight)

	return complex(
		real(upperLeft)+float64(pixel.X)*width/float64(bounds.Width),
		imag(upperLeft)-float64(pixel.Y)*height/float64(bounds.Height),
	)
}

// At is PixelToPoint over v.
func (v Viewport) At(bounds Bounds, pixel image.Point) complex128 {
	return PixelToPoint(bounds, pixel, v.UpperLeft, v.LowerRight)
}
