package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"point-projector/internal/batch"
	"point-projector/internal/config"
	"point-projector/internal/query"
	"point-projector/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json, .yaml, .toml)")
	queriesFile := flag.String("queries", "", "Query file (.json, .yaml) (required)")
	testN := flag.Int("test", 0, "Project only the first N queries")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	background := flag.String("background", "", "Background image for previews")
	noImages := flag.Bool("no-images", false, "Write only the manifest, no WebP previews")
	label := flag.Bool("label", false, "Print pixel coordinates on previews")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *queriesFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -queries is required.")
		os.Exit(2)
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir:  *outputDir,
		Background: *background,
		Workers:    *workers,
		Label:      *label,
	})

	queries, err := query.Parse(*queriesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading queries: %v\n", err)
		os.Exit(1)
	}

	// Limit for testing
	if *testN > 0 && *testN < len(queries) {
		queries = queries[:*testN]
	}

	if len(queries) == 0 {
		fmt.Println("No queries to project.")
		os.Exit(0)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting", "queries", len(queries), "workers", cfg.Workers,
		"canvas", fmt.Sprintf("%dx%d", cfg.CanvasWidth, cfg.CanvasHeight), "fov", cfg.FOV, "output", cfg.OutputDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		OutputDir:   cfg.OutputDir,
		Defaults:    cfg.QueryDefaults(),
		WriteImages: !*noImages,
		Supersample: cfg.Supersample,
		PointRadius: cfg.PointRadius,
		Label:       cfg.Label,
		Background:  cfg.Background,
		TexResolver: texture.NewCache(),
		Workers:     cfg.Workers,
		Logger:      logger,
	}

	results := batch.Run(ctx, batchCfg, queries)

	// Count results
	success, visible := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if !r.Success {
			errors = append(errors, r)
			continue
		}
		success++
		if r.Visible {
			visible++
		}
	}

	logger.Info("done", "elapsed", time.Since(start).Round(time.Millisecond),
		"projected", success, "visible", visible, "failed", len(errors))

	limit := min(len(errors), 20)
	for _, e := range errors[:limit] {
		logger.Warn("query failed", "name", e.Name, "error", e.Error)
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		logger.Error("manifest write failed", "error", err)
	} else {
		logger.Info("manifest written", "path", manifestPath)
	}

	if len(errors) > 0 {
		os.Exit(1)
	}
}
