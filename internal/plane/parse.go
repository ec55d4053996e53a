package plane

import (
	"strconv"
	"strings"
)

// ParsePair splits s at the first sep and parses both sides with parse.
// It returns ok == false if sep is missing or either side fails to parse.
func ParsePair[T any](s string, sep byte, parse func(string) (T, error)) (left, right T, ok bool) {
	i := strings.IndexByte(s, sep)
	if i < 0 {
		return left, right, false
	}

	l, errL := parse(s[:i])
	r, errR := parse(s[i+1:])
	if errL != nil || errR != nil {
		return left, right, false
	}
	return l, r, true
}

// ParseBounds parses a "WIDTHxHEIGHT" token such as "1000x750".
func ParseBounds(s string) (Bounds, bool) {
	w, h, ok := ParsePair(s, 'x', parseDim)
	if !ok {
		return Bounds{}, false
	}
	return Bounds{Width: w, Height: h}, true
}

// ParseComplex parses a "RE,IM" token such as "-1.20,0.35".
func ParseComplex(s string) (complex128, bool) {
	re, im, ok := ParsePair(s, ',', parseFloat)
	if !ok {
		return 0, false
	}
	return complex(re, im), true
}

// ParseViewport parses the two corner tokens of a viewport.
func ParseViewport(upperLeft, lowerRight string) (Viewport, bool) {
	ul, ok := ParseComplex(upperLeft)
	if !ok {
		return Viewport{}, false
	}
	lr, ok := ParseComplex(lowerRight)
	if !ok {
		return Viewport{}, false
	}
	return Viewport{UpperLeft: ul, LowerRight: lr}, true
}

func parseDim(s string) (int, error) {
	n, err := strconv.ParseUint(s, 10, 31)
	return int(n), err
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// FormatComplex renders c in the "RE,IM" form ParseComplex accepts.
func FormatComplex(c complex128) string {
	return strconv.FormatFloat(real(c), 'g', -1, 64) + "," + strconv.FormatFloat(imag(c), 'g', -1, 64)
}
