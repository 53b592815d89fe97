package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"point-projector/internal/query"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", "c.json", `{"output_dir": "out", "canvas_width": 320, "canvas_height": 200, "fov": 60, "label": true}`},
		{"yaml", "c.yaml", "output_dir: out\ncanvas_width: 320\ncanvas_height: 200\nfov: 60\nlabel: true\n"},
		{"toml", "c.toml", "output_dir = \"out\"\ncanvas_width = 320\ncanvas_height = 200\nfov = 60.0\nlabel = true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, "out", cfg.OutputDir)
			assert.Equal(t, 320, cfg.CanvasWidth)
			assert.Equal(t, 200, cfg.CanvasHeight)
			assert.Equal(t, 60.0, cfg.FOV)
			assert.True(t, cfg.Label)
			assert.Zero(t, cfg.Workers)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "c.json", "{"))
	assert.ErrorContains(t, err, "config: parse")

	_, err = Load(writeFile(t, "c.ini", "a=b"))
	assert.ErrorContains(t, err, "unsupported")
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	assert.Equal(t, "renders", cfg.OutputDir)
	assert.Equal(t, 800, cfg.CanvasWidth)
	assert.Equal(t, 600, cfg.CanvasHeight)
	assert.Equal(t, 75.0, cfg.FOV)
	assert.Equal(t, 2, cfg.Supersample)
	assert.Equal(t, 4, cfg.PointRadius)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.False(t, cfg.Label)
	assert.Equal(t, query.Defaults{Width: 800, Height: 600, FOV: 75}, cfg.QueryDefaults())
}

func TestResolveFlagsOverrideFile(t *testing.T) {
	cfg := Config{OutputDir: "file", CanvasWidth: 100, CanvasHeight: 50, FOV: 90, Workers: 3}
	cfg.Resolve(Flags{OutputDir: "flag", Width: 640, FOV: 45, Label: true})

	assert.Equal(t, "flag", cfg.OutputDir)
	assert.Equal(t, 640, cfg.CanvasWidth)
	assert.Equal(t, 50, cfg.CanvasHeight)
	assert.Equal(t, 45.0, cfg.FOV)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 3, cfg.PointRadius)
	assert.True(t, cfg.Label)
}

func TestResolveSmallCanvasPointRadius(t *testing.T) {
	cfg := Config{CanvasWidth: 50, CanvasHeight: 50}
	cfg.Resolve(Flags{})
	assert.Equal(t, 1, cfg.PointRadius)
}
