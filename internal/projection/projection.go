package projection

import (
	"fmt"
	"math"

	"point-projector/internal/camera"
	"point-projector/internal/frame"
	"point-projector/internal/mathutil"
)

// Pixel is a canvas coordinate with the origin in the top-left corner.
type Pixel struct {
	X int
	Y int
}

func (p Pixel) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Ratios locate a point inside the frame as fractions of the frame's X and Y
// axes, measured from the bottom-left corner.
type Ratios struct {
	X float64
	Y float64
}

// Inside reports whether both ratios fall in [0, 1).
func (r Ratios) Inside() bool {
	return r.X >= 0 && r.X < 1 && r.Y >= 0 && r.Y < 1
}

// Result is the outcome of projecting one point. When Visible is false the
// point is outside the frame (or behind the camera) and Pixel is zero.
type Result struct {
	Pixel    Pixel
	Visible  bool
	Ratios   Ratios
	Distance float64
}

// Distance returns a, the distance along the line of sight at which the
// plane through target, orthogonal to the line of sight, crosses it.
func Distance(cam camera.Camera, target mathutil.Vec3) float64 {
	return target.Sub(cam.Position).Dot(cam.LineOfSight())
}

// Project maps target onto cam's canvas. Points on or behind the camera
// plane and points outside the frame yield a Result with Visible false.
// Only an invalid camera produces an error.
func Project(cam camera.Camera, target mathutil.Vec3) (Result, error) {
	if err := cam.Validate(); err != nil {
		return Result{}, err
	}

	a := Distance(cam, target)
	if !(a > 0) {
		return Result{Distance: a}, nil
	}

	f, err := frame.Build(cam, cam.LineOfSight(), a)
	if err != nil {
		return Result{}, fmt.Errorf("projection: %w", err)
	}

	r := FrameRatios(f, target)
	res := Result{Ratios: r, Distance: a}
	if !r.Inside() {
		return res, nil
	}

	res.Visible = true
	res.Pixel = ToPixel(cam.Aspect, r)
	return res, nil
}

// ProjectAll projects each target independently with the same camera.
func ProjectAll(cam camera.Camera, targets []mathutil.Vec3) ([]Result, error) {
	results := make([]Result, len(targets))
	for i, t := range targets {
		r, err := Project(cam, t)
		if err != nil {
			return nil, err
		}
		results[i] = r
	}
	return results, nil
}

// FrameRatios returns the scalar projections of target (relative to the
// bottom-left corner) onto the frame axes, divided by the axis lengths.
// The ratios are not clamped.
func FrameRatios(f frame.Frame, target mathutil.Vec3) Ratios {
	p := target.Sub(f.BottomLeft)
	return Ratios{
		X: axisRatio(f.XAxis(), p),
		Y: axisRatio(f.YAxis(), p),
	}
}

func axisRatio(axis, p mathutil.Vec3) float64 {
	l := axis.Len()
	if l < mathutil.Epsilon {
		return math.Inf(1)
	}
	return p.Dot(axis) / l / l
}

// Unproject returns the world point on f at the given ratios.
func Unproject(f frame.Frame, r Ratios) mathutil.Vec3 {
	return f.BottomLeft.Add(f.XAxis().Scale(r.X)).Add(f.YAxis().Scale(r.Y))
}

// ToPixel converts in-frame ratios to a pixel. X maps directly; Y is
// inverted because the frame's up is the canvas's decreasing Y.
func ToPixel(aspect camera.AspectRatio, r Ratios) Pixel {
	return Pixel{
		X: clampPixel(int(math.Floor(r.X*float64(aspect.Width))), aspect.Width),
		Y: aspect.Height - 1 - clampPixel(int(math.Floor(r.Y*float64(aspect.Height))), aspect.Height),
	}
}

// PixelRatios returns the ratios at the centre of pixel p; the inverse of
// ToPixel up to pixel quantisation.
func PixelRatios(aspect camera.AspectRatio, p Pixel) Ratios {
	return Ratios{
		X: (float64(p.X) + 0.5) / float64(aspect.Width),
		Y: (float64(aspect.Height-1-p.Y) + 0.5) / float64(aspect.Height),
	}
}

func clampPixel(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
