package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"point-projector/internal/batch"
	"point-projector/internal/camera"
	"point-projector/internal/config"
	"point-projector/internal/frame"
	"point-projector/internal/mathutil"
	"point-projector/internal/projection"
	"point-projector/internal/raster"
	"point-projector/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json, .yaml, .toml)")
	pos := flag.String("pos", "0,0,0", "Camera position x,y,z")
	orient := flag.String("orient", "0,0,0", "Camera orientation pitch,yaw,roll in degrees")
	target := flag.String("target", "", "Target point x,y,z (required)")
	size := flag.String("size", "", "Canvas size WxH in pixels (default: 800x600)")
	fov := flag.Float64("fov", 0, "Horizontal field of view in degrees (default: 75)")
	out := flag.String("out", "", "Write a WebP preview to this file")
	background := flag.String("background", "", "Background image for the preview")
	label := flag.Bool("label", false, "Print the pixel coordinate on the preview")
	showFrame := flag.Bool("frame", false, "Print the line of sight and frame corners")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

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

	flags := config.Flags{FOV: *fov, Background: *background, Label: *label}
	if *size != "" {
		w, h, err := parseSize(*size)
		if err != nil {
			invalid(err)
		}
		flags.Width, flags.Height = w, h
	}
	cfg.Resolve(flags)

	position, err := parseTriple(*pos)
	if err != nil {
		invalid(fmt.Errorf("-pos: %w", err))
	}
	degrees, err := parseTriple(*orient)
	if err != nil {
		invalid(fmt.Errorf("-orient: %w", err))
	}
	if *target == "" {
		invalid(errors.New("-target is required"))
	}
	point, err := parseTriple(*target)
	if err != nil {
		invalid(fmt.Errorf("-target: %w", err))
	}

	// Degrees are converted once, here.
	o := camera.Orientation{
		Pitch: mathutil.Deg2Rad(degrees[0]),
		Yaw:   mathutil.Deg2Rad(degrees[1]),
		Roll:  mathutil.Deg2Rad(degrees[2]),
	}
	aspect := camera.AspectRatio{Width: cfg.CanvasWidth, Height: cfg.CanvasHeight}
	cam, err := camera.New(aspect, o, position, mathutil.Deg2Rad(cfg.FOV))
	if err != nil {
		invalid(err)
	}

	res, err := projection.Project(cam, point)
	if err != nil {
		invalid(err)
	}
	logger.Debug("projected", "camera", position, "line_of_sight", cam.LineOfSight(),
		"distance", res.Distance, "ratio_x", res.Ratios.X, "ratio_y", res.Ratios.Y)

	if *showFrame {
		printFrame(cam, res)
	}

	if res.Visible {
		fmt.Printf("%d %d\n", res.Pixel.X, res.Pixel.Y)
	} else {
		fmt.Println("not visible")
	}

	if *out != "" {
		opts := raster.Options{
			Width:       cfg.CanvasWidth,
			Height:      cfg.CanvasHeight,
			Supersample: cfg.Supersample,
			PointRadius: cfg.PointRadius,
			Label:       cfg.Label,
		}
		if cfg.Background != "" {
			opts.Background, err = texture.LoadImage(cfg.Background)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}
		if err := batch.WriteWebP(*out, raster.RenderPoint(res, opts)); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *out, err)
			os.Exit(1)
		}
		logger.Info("wrote preview", "path", *out)
	}
}

func printFrame(cam camera.Camera, res projection.Result) {
	u := cam.LineOfSight()
	fmt.Printf("line of sight: %.6f %.6f %.6f\n", u[0], u[1], u[2])
	if !(res.Distance > 0) {
		fmt.Printf("distance: %.6f (target is not in front of the camera)\n", res.Distance)
		return
	}
	f, err := frame.Build(cam, u, res.Distance)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: frame: %v\n", err)
		return
	}
	fmt.Printf("distance: %.6f radius: %.6f\n", f.Distance, f.Radius)
	names := [4]string{"top-right", "bottom-right", "bottom-left", "top-left"}
	for i, c := range f.Corners() {
		fmt.Printf("%-12s %.6f %.6f %.6f\n", names[i]+":", c[0], c[1], c[2])
	}
}

// invalid reports rejected input and exits with status 2.
func invalid(err error) {
	fmt.Fprintf(os.Stderr, "Invalid input: %v\n", err)
	os.Exit(2)
}

func parseTriple(s string) (mathutil.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return mathutil.Vec3{}, fmt.Errorf("want three comma-separated numbers, got %q", s)
	}
	var v mathutil.Vec3
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return mathutil.Vec3{}, fmt.Errorf("%q is not a number", p)
		}
		v[i] = f
	}
	return v, nil
}

func parseSize(s string) (int, int, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("-size: want WxH, got %q", s)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return 0, 0, fmt.Errorf("-size: %q is not an integer", w)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return 0, 0, fmt.Errorf("-size: %q is not an integer", h)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("%w: got %dx%d", camera.ErrInvalidAspectRatio, width, height)
	}
	return width, height, nil
}
