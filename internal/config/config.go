package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"point-projector/internal/query"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	OutputDir  string `json:"output_dir" yaml:"output_dir" toml:"output_dir"`
	Background string `json:"background" yaml:"background" toml:"background"`

	// Canvas and camera defaults for queries that leave them out
	CanvasWidth  int     `json:"canvas_width" yaml:"canvas_width" toml:"canvas_width"`
	CanvasHeight int     `json:"canvas_height" yaml:"canvas_height" toml:"canvas_height"`
	FOV          float64 `json:"fov" yaml:"fov" toml:"fov"` // horizontal, degrees

	// Render settings
	Supersample int  `json:"supersample" yaml:"supersample" toml:"supersample"`
	PointRadius int  `json:"point_radius" yaml:"point_radius" toml:"point_radius"`
	Label       bool `json:"label" yaml:"label" toml:"label"`
	Workers     int  `json:"workers" yaml:"workers" toml:"workers"`
}

// Load reads a JSON, YAML or TOML config file, chosen by extension, and
// returns Config. Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config: unsupported file type %q: %s", ext, path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Background != "" {
		c.Background = flags.Background
	}
	if flags.Width > 0 {
		c.CanvasWidth = flags.Width
	}
	if flags.Height > 0 {
		c.CanvasHeight = flags.Height
	}
	if flags.FOV > 0 {
		c.FOV = flags.FOV
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Label {
		c.Label = true
	}

	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.CanvasWidth <= 0 {
		c.CanvasWidth = 800
	}
	if c.CanvasHeight <= 0 {
		c.CanvasHeight = 600
	}
	if c.FOV <= 0 {
		c.FOV = 75
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.PointRadius <= 0 {
		// Point size defaults to 1/200 of the canvas width.
		c.PointRadius = max(c.CanvasWidth/200, 1)
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// QueryDefaults returns the canvas and camera defaults applied to queries.
func (c Config) QueryDefaults() query.Defaults {
	return query.Defaults{Width: c.CanvasWidth, Height: c.CanvasHeight, FOV: c.FOV}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir  string
	Background string
	Width      int
	Height     int
	FOV        float64
	Workers    int
	Label      bool
}
