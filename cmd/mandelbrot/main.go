package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"mandel-renderer/internal/batch"
	"mandel-renderer/internal/diag"
	"mandel-renderer/internal/plane"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: mandelbrot [flags] FILE PIXELS UPPERLEFT LOWERRIGHT THREADS")
	fmt.Fprintf(os.Stderr, "Example: %s mandel.png 1000x750 -1.20,0.35 -1,0.20 8\n", filepath.Base(os.Args[0]))
	fmt.Fprintln(os.Stderr, "\nFlags:")
	flag.PrintDefaults()
}

func main() {
	os.Exit(run())
}

func run() int {
	// CLI flags
	supersample := flag.Int("supersample", 1, "Render NxN samples per pixel and downscale")
	manifest := flag.String("manifest", "", "Write a JSON record of the render to this path")
	verbose := flag.Bool("v", false, "Debug logging to stderr")
	gops := flag.Bool("gops", false, "Start the gops diagnostics agent")

	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) != 5 {
		usage()
		return 1
	}

	bounds, ok := plane.ParseBounds(args[1])
	if !ok || !bounds.Valid() {
		return usageError("error parsing image dimensions %q", args[1])
	}
	upperLeft, ok := plane.ParseComplex(args[2])
	if !ok {
		return usageError("error parsing upper left point %q", args[2])
	}
	lowerRight, ok := plane.ParseComplex(args[3])
	if !ok {
		return usageError("error parsing lower right point %q", args[3])
	}
	threads, err := strconv.Atoi(args[4])
	if err != nil || threads < 1 {
		return usageError("error parsing number of threads %q", args[4])
	}
	if *supersample < 1 {
		return usageError("supersample must be at least 1")
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

	job := batch.Job{
		Output: args[0],
		Bounds: bounds,
		View:   plane.Viewport{UpperLeft: upperLeft, LowerRight: lowerRight},
	}
	res := batch.Process(batch.Config{
		Workers:     threads,
		Supersample: *supersample,
		Logger:      log,
	}, job)

	if *manifest != "" {
		if err := batch.WriteManifest(*manifest, []batch.Result{res}); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
		}
	}

	if !res.Success {
		fmt.Fprintf(os.Stderr, "Error rendering %s: %s\n", job.Output, res.Error)
		return 1
	}
	return 0
}

func usageError(format string, args ...any) int {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	usage()
	return 1
}
