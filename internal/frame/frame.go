package frame

import (
	"errors"
	"fmt"

	"point-projector/internal/camera"
	"point-projector/internal/mathutil"
)

// ErrInvalidDistance reports a frame requested at a non-positive distance.
var ErrInvalidDistance = errors.New("frame: distance must be positive")

// Frame is the rectangle, orthogonal to the line of sight, that the canvas
// maps onto at a given distance from the camera.
type Frame struct {
	TopRight    mathutil.Vec3
	BottomRight mathutil.Vec3
	BottomLeft  mathutil.Vec3
	TopLeft     mathutil.Vec3

	Center   mathutil.Vec3
	Radius   float64
	Distance float64
}

// Corners returns the corners clockwise from top-right.
func (f Frame) Corners() [4]mathutil.Vec3 {
	return [4]mathutil.Vec3{f.TopRight, f.BottomRight, f.BottomLeft, f.TopLeft}
}

// XAxis is the canvas X axis in world space (bottom-left to bottom-right).
func (f Frame) XAxis() mathutil.Vec3 {
	return f.BottomRight.Sub(f.BottomLeft)
}

// YAxis is the canvas Y axis in world space (bottom-left to top-left).
func (f Frame) YAxis() mathutil.Vec3 {
	return f.TopLeft.Sub(f.BottomLeft)
}

// Build locates the frame at distance a along the unit line of sight u.
func Build(cam camera.Camera, u mathutil.Vec3, a float64) (Frame, error) {
	if err := cam.Validate(); err != nil {
		return Frame{}, err
	}
	if !(a > 0) {
		return Frame{}, fmt.Errorf("%w: got %g", ErrInvalidDistance, a)
	}

	b := NewBasis(u)
	c := Circle{
		Center: camera.PointAt(cam.Position, u, a),
		First:  b.First,
		Second: b.Second,
		Radius: Radius(a, DivergenceAngle(cam.Aspect, cam.FOV())),
	}

	angles := CornerAngles(InitialAngle(c, cam.Orientation), cam.Aspect)
	return Frame{
		TopRight:    c.At(angles[0]),
		BottomRight: c.At(angles[1]),
		BottomLeft:  c.At(angles[2]),
		TopLeft:     c.At(angles[3]),
		Center:      c.Center,
		Radius:      c.Radius,
		Distance:    a,
	}, nil
}

// BuildFor builds the frame of cam at distance a along its own line of sight.
func BuildFor(cam camera.Camera, a float64) (Frame, error) {
	return Build(cam, cam.LineOfSight(), a)
}
