package batch

import (
	"encoding/json"
	"fmt"
	"os"

	"mandel-renderer/internal/plane"
)

// ManifestEntry represents one rendered image in the output manifest.
type ManifestEntry struct {
	Image       string `json:"image"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	UpperLeft   string `json:"upper_left"`
	LowerRight  string `json:"lower_right"`
	Workers     int    `json:"workers"`
	Supersample int    `json:"supersample"`
	ElapsedMS   int64  `json:"elapsed_ms"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

// NewManifest converts results into manifest entries, in order.
func NewManifest(results []Result) []ManifestEntry {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Image:       r.Output,
			Width:       r.Bounds.Width,
			Height:      r.Bounds.Height,
			UpperLeft:   plane.FormatComplex(r.View.UpperLeft),
			LowerRight:  plane.FormatComplex(r.View.LowerRight),
			Workers:     r.Workers,
			Supersample: r.Supersample,
			ElapsedMS:   r.Elapsed.Milliseconds(),
			Success:     r.Success,
			Error:       r.Error,
		}
	}
	return entries
}

// WriteManifest writes the results as indented JSON to path.
func WriteManifest(path string, results []Result) error {
	data, err := json.MarshalIndent(NewManifest(results), "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write manifest %s: %w", path, err)
	}
	return nil
}
