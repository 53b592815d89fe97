package batch

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"point-projector/internal/projection"
	"point-projector/internal/query"
	"point-projector/internal/raster"
	"point-projector/internal/texture"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir string
	Defaults  query.Defaults

	// WriteImages renders a WebP preview per query under OutputDir.
	WriteImages bool
	Supersample int
	PointRadius int
	Label       bool

	// Background is an optional image path drawn behind every preview.
	Background  string
	TexResolver texture.Resolver

	Workers  int
	Logger   *slog.Logger
	Progress time.Duration
}

// Result holds the outcome of processing one query.
type Result struct {
	Name     string
	Visible  bool
	Pixel    projection.Pixel
	Ratios   projection.Ratios
	Distance float64
	Image    string
	Success  bool
	Error    string
}

// Run processes all queries using a worker pool. Queries are independent:
// each worker writes only its own result slot. Cancelling ctx stops
// dispatch; queries never dispatched are reported as failed.
func Run(ctx context.Context, cfg Config, queries []query.Query) []Result {
	total := len(queries)
	results := make([]Result, total)
	var processed atomic.Int64

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := max(cfg.Workers, 1)
	interval := cfg.Progress
	if interval <= 0 {
		interval = 2 * time.Second
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					logger.Info("progress", "done", p, "total", total, "rate", fmt.Sprintf("%.1f/s", float64(p)/elapsed))
				}
			}
		}
	}()

	// Worker pool
	queryChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queryChan {
				results[idx] = processQuery(cfg, queries[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	sent := 0
dispatch:
	for i := range queries {
		select {
		case <-ctx.Done():
			break dispatch
		case queryChan <- i:
			sent++
		}
	}
	close(queryChan)

	wg.Wait()
	close(done)

	for i := sent; i < total; i++ {
		results[i] = Result{Name: queries[i].Name, Error: ctx.Err().Error()}
	}

	return results
}

func processQuery(cfg Config, q query.Query) Result {
	cam, err := q.Camera(cfg.Defaults)
	if err != nil {
		return Result{Name: q.Name, Error: err.Error()}
	}

	res, err := projection.Project(cam, q.TargetPoint())
	if err != nil {
		return Result{Name: q.Name, Error: err.Error()}
	}

	out := Result{
		Name:     q.Name,
		Visible:  res.Visible,
		Pixel:    res.Pixel,
		Ratios:   res.Ratios,
		Distance: res.Distance,
		Success:  true,
	}
	if !cfg.WriteImages {
		return out
	}

	var bg *image.NRGBA
	if cfg.Background != "" && cfg.TexResolver != nil {
		bg, err = cfg.TexResolver.Resolve(cfg.Background)
		if err != nil {
			return failed(out, err)
		}
	}

	img := raster.RenderPoint(res, raster.Options{
		Width:       cam.Aspect.Width,
		Height:      cam.Aspect.Height,
		Supersample: cfg.Supersample,
		PointRadius: cfg.PointRadius,
		Background:  bg,
		Label:       cfg.Label,
	})

	out.Image = ImageName(q.Name)
	if err := WriteWebP(filepath.Join(cfg.OutputDir, out.Image), img); err != nil {
		return failed(out, err)
	}
	return out
}

func failed(r Result, err error) Result {
	r.Success = false
	r.Error = err.Error()
	return r
}

// ImageName is the preview file name for a query, relative to the output dir.
func ImageName(name string) string {
	return filepath.Join("images", sanitize(name)+".webp")
}

func sanitize(name string) string {
	b := []byte(name)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_', c == '.':
		default:
			b[i] = '_'
		}
	}
	return string(b)
}

// WriteWebP encodes img losslessly to path, creating parent directories.
func WriteWebP(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("WebP encode: %w", err)
	}
	return f.Close()
}
