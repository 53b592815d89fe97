package batch

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"point-projector/internal/query"
)

var testQueries = []query.Query{
	{
		Name:   "center",
		Camera: query.CameraSpec{Position: [3]float64{0, 0, 0}},
		Target: [3]float64{0, 0, 5},
	},
	{
		Name:   "behind",
		Camera: query.CameraSpec{Position: [3]float64{0, 0, 0}},
		Target: [3]float64{0, 0, -5},
	},
	{
		Name:   "bad canvas",
		Canvas: &query.Canvas{Width: 0, Height: 10},
		Target: [3]float64{0, 0, 5},
	},
}

func testConfig(t *testing.T) Config {
	return Config{
		OutputDir:   t.TempDir(),
		Defaults:    query.Defaults{Width: 80, Height: 60, FOV: 75},
		Supersample: 2,
		PointRadius: 2,
		Workers:     2,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	results := Run(context.Background(), cfg, testQueries)
	require.Len(t, results, 3)

	assert.True(t, results[0].Success)
	assert.True(t, results[0].Visible)
	assert.InDelta(t, 40, results[0].Pixel.X, 1)
	assert.InDelta(t, 30, results[0].Pixel.Y, 1)
	assert.Empty(t, results[0].Image)

	assert.True(t, results[1].Success)
	assert.False(t, results[1].Visible)

	assert.False(t, results[2].Success)
	assert.Contains(t, results[2].Error, "aspect ratio")
}

func TestRunWritesImages(t *testing.T) {
	cfg := testConfig(t)
	cfg.WriteImages = true
	results := Run(context.Background(), cfg, testQueries[:2])

	for _, r := range results {
		require.True(t, r.Success, r.Error)
		info, err := os.Stat(filepath.Join(cfg.OutputDir, r.Image))
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
	assert.Equal(t, filepath.Join("images", "center.webp"), results[0].Image)
}

type stubResolver struct {
	img *image.NRGBA
	err error
}

func (s stubResolver) Resolve(string) (*image.NRGBA, error) { return s.img, s.err }

func TestRunBackground(t *testing.T) {
	cfg := testConfig(t)
	cfg.WriteImages = true
	cfg.Background = "bg.png"

	bg := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	bg.SetNRGBA(0, 0, color.NRGBA{G: 255, A: 255})
	cfg.TexResolver = stubResolver{img: bg}
	results := Run(context.Background(), cfg, testQueries[:1])
	assert.True(t, results[0].Success, results[0].Error)

	cfg.TexResolver = stubResolver{err: errors.New("no such background")}
	results = Run(context.Background(), cfg, testQueries[:1])
	assert.False(t, results[0].Success)
	assert.True(t, results[0].Visible, "projection is kept when the preview fails")
	assert.Contains(t, results[0].Error, "no such background")
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig(t)
	results := Run(ctx, cfg, testQueries)
	require.Len(t, results, 3)
	for _, r := range results {
		if r.Error == "" {
			// Dispatch races with cancellation; processed queries keep their result.
			continue
		}
		assert.Contains(t, []string{context.Canceled.Error(), "query bad canvas: camera: aspect ratio width and height must be positive: got 0x10"}, r.Error)
	}
}

func TestWriteManifest(t *testing.T) {
	cfg := testConfig(t)
	results := Run(context.Background(), cfg, testQueries)
	path := filepath.Join(cfg.OutputDir, "manifest.json")
	require.NoError(t, WriteManifest(path, results))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 3)

	assert.Equal(t, "center", entries[0]["name"])
	assert.Equal(t, true, entries[0]["visible"])
	assert.Contains(t, entries[0], "x")
	assert.NotContains(t, entries[1], "x")
	assert.Contains(t, entries[2], "error")
}

func TestManifestDropsNonFinite(t *testing.T) {
	m := Manifest([]Result{{Name: "n", Distance: -1}})
	assert.Equal(t, -1.0, m[0].Distance)
	assert.Nil(t, m[0].X)
	assert.Equal(t, 0.0, finite(1/zero()))
}

func zero() float64 { return 0 }

func TestImageName(t *testing.T) {
	assert.Equal(t, filepath.Join("images", "a_b_c.webp"), ImageName("a/b c"))
	assert.Equal(t, filepath.Join("images", "ok-1.2_x.webp"), ImageName("ok-1.2_x"))
}
