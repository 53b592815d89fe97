package texture

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bg.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestLoadImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	src.Set(1, 2, color.RGBA{R: 255, A: 255})
	img, err := LoadImage(writePNG(t, src))
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(1, 2))
}

func TestLoadImageErrors(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "none.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "junk.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))
	_, err = LoadImage(path)
	assert.ErrorContains(t, err, "texture: decode")
}

func TestToNRGBAOffsetBounds(t *testing.T) {
	src := image.NewGray(image.Rect(5, 5, 7, 8))
	src.SetGray(5, 5, color.Gray{Y: 200})
	dst := ToNRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 2, 3), dst.Bounds())
	assert.Equal(t, color.NRGBA{R: 200, G: 200, B: 200, A: 255}, dst.NRGBAAt(0, 0))

	same := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	assert.Same(t, same, ToNRGBA(same))
}

func TestCacheLoadsOnce(t *testing.T) {
	var loads atomic.Int32
	want := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	c := NewCache()
	c.load = func(path string) (*image.NRGBA, error) {
		loads.Add(1)
		if path == "missing" {
			return nil, errors.New("missing")
		}
		return want, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			img, err := c.Resolve("bg")
			assert.NoError(t, err)
			assert.Same(t, want, img)
		}()
	}
	wg.Wait()

	_, err := c.Resolve("missing")
	assert.Error(t, err)
	_, err = c.Resolve("missing")
	assert.Error(t, err)

	assert.Equal(t, 2, c.Len())
	assert.LessOrEqual(t, int(loads.Load()), 17)
	before := loads.Load()
	_, _ = c.Resolve("bg")
	assert.Equal(t, before, loads.Load())
}
