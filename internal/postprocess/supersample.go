package postprocess

import (
	"image"

	"golang.org/x/image/draw"

	"mandel-renderer/internal/plane"
)

// Supersampled returns the bounds to render at for a supersample factor.
// Factors below 2 leave bounds unchanged.
func Supersampled(bounds plane.Bounds, factor int) plane.Bounds {
	if factor < 2 {
		return bounds
	}
	return plane.Bounds{Width: bounds.Width * factor, Height: bounds.Height * factor}
}

// Downsample scales a supersampled grayscale image down to target with
// CatmullRom filtering. Images already at or below target are returned as is.
func Downsample(img *image.Gray, target plane.Bounds) *image.Gray {
	b := img.Bounds()
	if b.Dx() <= target.Width && b.Dy() <= target.Height {
		return img
	}

	dst := image.NewGray(image.Rect(0, 0, target.Width, target.Height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
