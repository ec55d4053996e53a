package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mandel-renderer/internal/batch"
	"mandel-renderer/internal/config"
	"mandel-renderer/internal/diag"
)

func main() {
	os.Exit(run())
}

func run() int {
	// CLI flags
	configFile := flag.String("config", "", "Path to render config JSON (required)")
	testN := flag.Int("test", 0, "Render only the first N jobs")
	workers := flag.Int("workers", 0, "Bands per image (default: NumCPU)")
	parallel := flag.Int("parallel", 0, "Images rendered at once (default: 1)")
	supersample := flag.Int("supersample", 0, "Samples per pixel edge (default: 1)")
	outputDir := flag.String("output", "", "Output directory (default: next to the config)")
	progress := flag.Duration("progress", 2*time.Second, "Progress report interval, 0 to disable")
	verbose := flag.Bool("v", false, "Debug logging to stderr")
	gops := flag.Bool("gops", false, "Start the gops diagnostics agent")

	flag.Parse()

	if *configFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -config is required")
		flag.Usage()
		return 1
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir:   *outputDir,
		Workers:     *workers,
		Parallel:    *parallel,
		Supersample: *supersample,
	})

	jobs := make([]batch.Job, 0, len(cfg.Jobs))
	for _, j := range cfg.Jobs {
		job, err := batch.ParseJob(j)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error in config: %v\n", err)
			return 1
		}
		jobs = append(jobs, job)
	}

	// Limit for testing
	if *testN > 0 && *testN < len(jobs) {
		jobs = jobs[:*testN]
	}

	if len(jobs) == 0 {
		fmt.Println("No images to render.")
		return 0
	}

	log := diag.NewLogger(os.Stderr, *verbose)
	if *gops {
		stop, err := diag.StartAgent()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else {
			defer stop()
		}
	}

	mode := ""
	if *testN > 0 {
		mode = fmt.Sprintf(" (TEST: first %d)", *testN)
	}

	fmt.Printf("Mandelbrot batch render%s\n", mode)
	fmt.Printf("Images: %d, Bands: %d, Parallel: %d, Supersample: %d\n", len(jobs), cfg.Workers, cfg.Parallel, cfg.Supersample)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		OutputDir:        cfg.OutputDir,
		Workers:          cfg.Workers,
		Parallel:         cfg.Parallel,
		Supersample:      cfg.Supersample,
		Logger:           log,
		ProgressInterval: *progress,
	}, jobs)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(jobs))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(len(errors), 20)
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Output, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		return 1
	}
	return 0
}
