package band

import (
	"fmt"
	"image"
	"testing"

	"mandel-renderer/internal/plane"
)

var testView = plane.Viewport{UpperLeft: complex(-2, 1), LowerRight: complex(1, -1)}

func TestPartitionCoversRows(t *testing.T) {
	for _, height := range []int{1, 2, 7, 64, 100, 101} {
		for _, workers := range []int{1, 2, 3, 4, 8, 63, 64, 65, 200} {
			t.Run(fmt.Sprintf("h%d_w%d", height, workers), func(t *testing.T) {
				bounds := plane.Bounds{Width: 9, Height: height}
				bands := Partition(bounds, testView, workers)

				if len(bands) != workers {
					t.Fatalf("got %d bands, want %d", len(bands), workers)
				}
				next := 0
				for i, b := range bands {
					if b.Index != i {
						t.Errorf("band %d has index %d", i, b.Index)
					}
					if b.StartRow != next {
						t.Fatalf("band %d starts at row %d, want %d", i, b.StartRow, next)
					}
					if b.RowCount < 0 {
						t.Fatalf("band %d has %d rows", i, b.RowCount)
					}
					if b.Bounds != (plane.Bounds{Width: 9, Height: b.RowCount}) {
						t.Errorf("band %d bounds = %v", i, b.Bounds)
					}
					next += b.RowCount
				}
				if next != height {
					t.Errorf("bands cover %d rows, want %d", next, height)
				}
			})
		}
	}
}

func TestPartitionRowsPerBand(t *testing.T) {
	bands := Partition(plane.Bounds{Width: 4, Height: 10}, testView, 3)
	// 10/3 + 1 = 4 rows: 4, 4, 2.
	want := []int{4, 4, 2}
	for i, b := range bands {
		if b.RowCount != want[i] {
			t.Errorf("band %d has %d rows, want %d", i, b.RowCount, want[i])
		}
	}
}

func TestPartitionMoreWorkersThanRows(t *testing.T) {
	bands := Partition(plane.Bounds{Width: 4, Height: 3}, testView, 5)
	// 3/5 + 1 = 1 row each: 1, 1, 1, 0, 0.
	want := []int{1, 1, 1, 0, 0}
	for i, b := range bands {
		if b.RowCount != want[i] {
			t.Errorf("band %d has %d rows, want %d", i, b.RowCount, want[i])
		}
		if b.StartRow > 3 {
			t.Errorf("band %d starts past the image at row %d", i, b.StartRow)
		}
	}
}

func TestPartitionViewports(t *testing.T) {
	bounds := plane.Bounds{Width: 96, Height: 64}
	bands := Partition(bounds, testView, 3)

	if bands[0].View.UpperLeft != testView.UpperLeft {
		t.Errorf("first band starts at %v, want %v", bands[0].View.UpperLeft, testView.UpperLeft)
	}
	if last := bands[len(bands)-1]; last.View.LowerRight != testView.LowerRight {
		t.Errorf("last band ends at %v, want %v", last.View.LowerRight, testView.LowerRight)
	}
	for i, b := range bands {
		wantUL := testView.At(bounds, image.Pt(0, b.StartRow))
		wantLR := testView.At(bounds, image.Pt(bounds.Width, b.StartRow+b.RowCount))
		if b.View.UpperLeft != wantUL || b.View.LowerRight != wantLR {
			t.Errorf("band %d view = %+v, want %v..%v", i, b.View, wantUL, wantLR)
		}
		if i > 0 && imag(b.View.UpperLeft) != imag(bands[i-1].View.LowerRight) {
			t.Errorf("band %d does not start where band %d ends", i, i-1)
		}
	}
}

func TestSplit(t *testing.T) {
	bounds := plane.Bounds{Width: 5, Height: 7}
	pix := make([]uint8, bounds.Len())
	bands := Partition(bounds, testView, 3)
	regions := Split(pix, bounds.Width, bands)

	if len(regions) != len(bands) {
		t.Fatalf("got %d regions, want %d", len(regions), len(bands))
	}
	for i, r := range regions {
		if len(r) != bands[i].Bounds.Len() {
			t.Errorf("region %d has %d bytes, want %d", i, len(r), bands[i].Bounds.Len())
		}
		if cap(r) != len(r) {
			t.Errorf("region %d has spare capacity %d", i, cap(r)-len(r))
		}
		for j := range r {
			r[j] = uint8(i + 1)
		}
	}

	// Every byte written exactly once, in band order.
	for row := 0; row < bounds.Height; row++ {
		for col := 0; col < bounds.Width; col++ {
			want := uint8(row/RowsPerBand(bounds.Height, 3) + 1)
			if got := pix[row*bounds.Width+col]; got != want {
				t.Fatalf("pixel (%d,%d) owned by band %d, want %d", col, row, got-1, want-1)
			}
		}
	}
}

func TestSplitEmptyBands(t *testing.T) {
	bounds := plane.Bounds{Width: 2, Height: 2}
	pix := make([]uint8, bounds.Len())
	regions := Split(pix, bounds.Width, Partition(bounds, testView, 6))

	total := 0
	for _, r := range regions {
		total += len(r)
	}
	if total != len(pix) {
		t.Errorf("regions cover %d bytes, want %d", total, len(pix))
	}
	if len(regions[5]) != 0 {
		t.Errorf("last region has %d bytes, want 0", len(regions[5]))
	}
}

func TestSplitRejectsGaps(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Split accepted bands that skip a row")
		}
	}()
	bands := []Band{
		{StartRow: 0, RowCount: 1},
		{StartRow: 2, RowCount: 1},
	}
	Split(make([]uint8, 6), 2, bands)
}

func TestSplitRejectsShortCover(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Split accepted bands that leave rows uncovered")
		}
	}()
	Split(make([]uint8, 6), 2, []Band{{StartRow: 0, RowCount: 2}})
}
