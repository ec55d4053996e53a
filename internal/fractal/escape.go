// Package fractal implements the Mandelbrot escape-time test.
package fractal

// Limit is the iteration cap used by the renderer. It keeps every escape
// count inside one grayscale byte.
const Limit = 255

// EscapeTime iterates z = z*z + c from z = 0 at most limit times.
//
// If |z| leaves the circle of radius two, it returns the 0-based iteration
// at which that was detected and true. If the limit is reached first, c is
// presumed to be in the set and it returns 0, false.
func EscapeTime(c complex128, limit int) (int, bool) {
	var z complex128
	for i := 0; i < limit; i++ {
		z = z*z + c
		if normSqr(z) > 4.0 {
			return i, true
		}
	}
	return 0, false
}

// Shade maps an escape result to a gray level: black for presumed members,
// brighter the faster the point escaped.
func Shade(count int, escaped bool) uint8 {
	if !escaped {
		return 0
	}
	return uint8(Limit - count)
}

func normSqr(z complex128) float64 {
	re, im := real(z), imag(z)
	return re*re + im*im
}
