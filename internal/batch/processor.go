package batch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"mandel-renderer/internal/config"
	"mandel-renderer/internal/encode"
	"mandel-renderer/internal/plane"
	"mandel-renderer/internal/postprocess"
	"mandel-renderer/internal/scheduler"
)

// Config holds the shared settings for a batch run.
type Config struct {
	OutputDir   string
	Workers     int // bands per image
	Parallel    int // images in flight
	Supersample int
	Logger      *slog.Logger

	// ProgressInterval enables periodic progress lines; 0 disables them.
	ProgressInterval time.Duration
}

// Job is one parsed render request.
type Job struct {
	Output string
	Bounds plane.Bounds
	View   plane.Viewport
}

// Result holds the outcome of processing one job.
type Result struct {
	Output      string
	Bounds      plane.Bounds
	View        plane.Viewport
	Workers     int
	Supersample int
	Elapsed     time.Duration
	Success     bool
	Error       string
}

// ParseJob converts the textual job form into a Job.
func ParseJob(j config.Job) (Job, error) {
	bounds, ok := plane.ParseBounds(j.Pixels)
	if !ok || !bounds.Valid() {
		return Job{}, fmt.Errorf("batch: %s: bad image dimensions %q", j.Output, j.Pixels)
	}
	ul, ok := plane.ParseComplex(j.UpperLeft)
	if !ok {
		return Job{}, fmt.Errorf("batch: %s: bad upper left point %q", j.Output, j.UpperLeft)
	}
	lr, ok := plane.ParseComplex(j.LowerRight)
	if !ok {
		return Job{}, fmt.Errorf("batch: %s: bad lower right point %q", j.Output, j.LowerRight)
	}
	if j.Output == "" {
		return Job{}, fmt.Errorf("batch: job %s has no output file", j.Pixels)
	}
	return Job{
		Output: j.Output,
		Bounds: bounds,
		View:   plane.Viewport{UpperLeft: ul, LowerRight: lr},
	}, nil
}

// Run processes all jobs using a worker pool of cfg.Parallel goroutines.
// Each job still renders its bands with cfg.Workers goroutines.
func Run(cfg Config, jobs []Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64
	log := logger(cfg)

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.ProgressInterval > 0 {
		go func() {
			ticker := time.NewTicker(cfg.ProgressInterval)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						log.Info("batch progress", "done", p, "total", total, "images_per_sec", float64(p)/elapsed)
					}
				}
			}
		}()
	}

	parallel := max(cfg.Parallel, 1)
	jobChan := make(chan int, parallel*2)
	var wg sync.WaitGroup

	for w := 0; w < parallel; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = Process(cfg, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

// Process renders one job and writes its image.
func Process(cfg Config, job Job) Result {
	res := Result{
		Output:      outputPath(cfg.OutputDir, job.Output),
		Bounds:      job.Bounds,
		View:        job.View,
		Workers:     cfg.Workers,
		Supersample: max(cfg.Supersample, 1),
	}
	log := logger(cfg).With("output", res.Output)

	start := time.Now()
	sched := scheduler.Scheduler{
		Workers:          cfg.Workers,
		Logger:           log,
		ProgressInterval: cfg.ProgressInterval,
	}
	buf, err := sched.Run(postprocess.Supersampled(job.Bounds, cfg.Supersample), job.View)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	// Post-processing: supersample downsample
	img := buf.Image()
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, job.Bounds)
	}

	if err := encode.Write(res.Output, img); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Elapsed = time.Since(start)
	res.Success = true
	log.Debug("image written", "size", job.Bounds.String(), "elapsed", res.Elapsed)
	return res
}

func outputPath(dir, name string) string {
	if dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

func logger(cfg Config) *slog.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return slog.New(slog.DiscardHandler)
}
