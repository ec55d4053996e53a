package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds batch render settings and the list of images to produce.
type Config struct {
	OutputDir string `json:"output_dir"`

	// Render settings
	Workers     int `json:"workers"`      // bands per image
	Parallel    int `json:"parallel"`     // images rendered at once
	Supersample int `json:"supersample"`

	Jobs []Job `json:"jobs"`

	// dir is the directory of the loaded file; relative paths resolve against it.
	dir string
}

// Job describes one image, in the same textual forms the CLI accepts.
type Job struct {
	Output     string `json:"output"`
	Pixels     string `json:"pixels"`      // "WIDTHxHEIGHT"
	UpperLeft  string `json:"upper_left"`  // "RE,IM"
	LowerRight string `json:"lower_right"` // "RE,IM"
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Parallel > 0 {
		c.Parallel = flags.Parallel
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}

	if c.OutputDir == "" {
		c.OutputDir = c.dir
	} else if !filepath.IsAbs(c.OutputDir) && flags.OutputDir == "" && c.dir != "" {
		c.OutputDir = filepath.Join(c.dir, c.OutputDir)
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}

	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Parallel <= 0 {
		c.Parallel = 1
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir   string
	Workers     int
	Parallel    int
	Supersample int
}
