// Package scheduler renders a full image by fanning bands out to goroutines
// that write straight into one shared buffer.
//
// Each goroutine owns a disjoint slice of the buffer, handed to it before it
// starts; no locks guard the pixels. A failure in any band fails the whole
// render and no buffer is returned.
package scheduler

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"mandel-renderer/internal/band"
	"mandel-renderer/internal/plane"
	"mandel-renderer/internal/raster"
)

// ErrWorkers is returned for a worker count below one.
var ErrWorkers = errors.New("scheduler: worker count must be positive")

// ErrBounds is returned for a raster with a zero or negative dimension.
var ErrBounds = errors.New("scheduler: image dimensions must be positive")

// BandError reports a band whose render failed.
type BandError struct {
	Band     int
	StartRow int
	RowCount int
	Err      error
}

func (e *BandError) Error() string {
	return fmt.Sprintf("scheduler: band %d (rows %d-%d): %v", e.Band, e.StartRow, e.StartRow+e.RowCount, e.Err)
}

func (e *BandError) Unwrap() error { return e.Err }

// RenderFunc fills one band's region. raster.Render is the default.
type RenderFunc func(pixels []uint8, bounds plane.Bounds, upperLeft, lowerRight complex128)

// Scheduler holds per-render settings. The zero value renders with a single
// worker and no logging.
type Scheduler struct {
	Workers int
	Logger  *slog.Logger

	// ProgressInterval enables a periodic "bands done" log line.
	ProgressInterval time.Duration

	// Render replaces raster.Render, mostly for tests.
	Render RenderFunc
}

// RenderFull renders bounds over view using workers bands in parallel.
func RenderFull(bounds plane.Bounds, view plane.Viewport, workers int) (*raster.Buffer, error) {
	if workers < 1 {
		return nil, ErrWorkers
	}
	s := Scheduler{Workers: workers}
	return s.Run(bounds, view)
}

// Run renders the image and blocks until every band has finished.
func (s *Scheduler) Run(bounds plane.Bounds, view plane.Viewport) (*raster.Buffer, error) {
	workers := s.Workers
	if workers == 0 {
		workers = 1
	}
	if workers < 0 {
		return nil, ErrWorkers
	}
	if !bounds.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrBounds, bounds)
	}

	log := s.logger()
	render := s.Render
	if render == nil {
		render = raster.Render
	}

	buf := raster.NewBuffer(bounds)
	bands := band.Partition(bounds, view, workers)
	regions := band.Split(buf.Pix, bounds.Width, bands)

	log.Debug("render start",
		"size", bounds.String(),
		"workers", workers,
		"rows_per_band", band.RowsPerBand(bounds.Height, workers),
	)

	var done atomic.Int64
	stop := s.reportProgress(log, &done, len(bands))
	defer stop()

	start := time.Now()
	var g errgroup.Group
	for i, b := range bands {
		region := regions[i]
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &BandError{
						Band:     b.Index,
						StartRow: b.StartRow,
						RowCount: b.RowCount,
						Err:      panicError(r),
					}
				}
			}()

			render(region, b.Bounds, b.View.UpperLeft, b.View.LowerRight)
			done.Add(1)
			log.Debug("band done", "band", b.Index, "rows", b.RowCount)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("render failed", "err", err)
		return nil, err
	}

	log.Debug("render done", "elapsed", time.Since(start))
	return buf, nil
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}

func (s *Scheduler) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// reportProgress logs band completion every ProgressInterval until the
// returned stop function is called.
func (s *Scheduler) reportProgress(log *slog.Logger, done *atomic.Int64, total int) (stop func()) {
	if s.ProgressInterval <= 0 {
		return func() {}
	}

	quit := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ticker := time.NewTicker(s.ProgressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-quit:
				return
			case <-ticker.C:
				log.Info("render progress", "bands", done.Load(), "total", total)
			}
		}
	}()

	return func() {
		close(quit)
		<-finished
	}
}
