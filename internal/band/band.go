// Package band splits a raster into horizontal bands, one per worker.
package band

import (
	"fmt"
	"image"

	"mandel-renderer/internal/plane"
)

// Band is a contiguous run of rows and the part of the plane they cover.
type Band struct {
	Index    int
	StartRow int
	RowCount int
	Bounds   plane.Bounds   // Width x RowCount
	View     plane.Viewport // corners relative to the full image
}

// RowsPerBand returns the band height used for workers bands over height
// rows. It always over-allocates by one row so that workers bands cover
// every row; the last bands are shorter, possibly empty.
func RowsPerBand(height, workers int) int {
	return height/workers + 1
}

// Partition splits bounds into exactly workers bands, top to bottom.
// Every band's viewport is derived from the full viewport, so rendering the
// bands one by one reproduces a single render of the whole image.
//
// workers must be positive and bounds valid.
func Partition(bounds plane.Bounds, view plane.Viewport, workers int) []Band {
	rows := RowsPerBand(bounds.Height, workers)
	bands := make([]Band, workers)

	for i := range bands {
		top := min(i*rows, bounds.Height)
		count := min(rows, bounds.Height-top)

		bands[i] = Band{
			Index:    i,
			StartRow: top,
			RowCount: count,
			Bounds:   plane.Bounds{Width: bounds.Width, Height: count},
			View: plane.Viewport{
				UpperLeft:  view.At(bounds, image.Pt(0, top)),
				LowerRight: view.At(bounds, image.Pt(bounds.Width, top+count)),
			},
		}
	}
	return bands
}

// Split cuts pix, a row-major raster width pixels wide, into one region per
// band. Each region's capacity ends at its own last byte, so no region can
// grow into its neighbour.
//
// It panics if the bands do not tile pix exactly.
func Split(pix []uint8, width int, bands []Band) [][]uint8 {
	regions := make([][]uint8, len(bands))
	next := 0
	for i, b := range bands {
		lo := b.StartRow * width
		hi := lo + b.RowCount*width
		if lo != next || hi > len(pix) {
			panic(fmt.Sprintf("band: band %d spans bytes [%d,%d), expected start %d in %d bytes", i, lo, hi, next, len(pix)))
		}
		regions[i] = pix[lo:hi:hi]
		next = hi
	}
	if next != len(pix) {
		panic(fmt.Sprintf("band: bands cover %d of %d bytes", next, len(pix)))
	}
	return regions
}
