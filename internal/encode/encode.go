// Package encode writes grayscale rasters to image files.
package encode

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format names an output encoding.
type Format string

const (
	PNG  Format = "png"
	WebP Format = "webp"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	TGA  Format = "tga"
)

// FormatFor picks the format from a file name's extension.
func FormatFor(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return PNG, nil
	case ".webp":
		return WebP, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	case ".tga":
		return TGA, nil
	default:
		return "", fmt.Errorf("encode: unknown extension %q", ext)
	}
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, format Format, img *image.Gray) error {
	var err error
	switch format {
	case PNG:
		err = png.Encode(w, img)
	case WebP:
		// VP8L has no gray mode; store gray as opaque RGB.
		err = nativewebp.Encode(w, toNRGBA(img), nil)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case TGA:
		err = tga.Encode(w, toNRGBA(img))
	default:
		return fmt.Errorf("encode: unsupported format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encode: %s: %w", format, err)
	}
	return nil
}

// Write encodes img into path, choosing the format from the extension.
// The image goes to a temporary file in the same directory first, so a
// failed encode never leaves a truncated file at path.
func Write(path string, img *image.Gray) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("encode: mkdir %s: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("encode: create %s: %w", path, err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := Encode(f, format, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("encode: write %s: %w", path, err)
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		return fmt.Errorf("encode: chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("encode: rename %s: %w", path, err)
	}
	return nil
}

// toNRGBA converts a gray image to opaque NRGBA.
func toNRGBA(src *image.Gray) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}
