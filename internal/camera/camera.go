package camera

import (
	"errors"
	"fmt"
	"math"

	"point-projector/internal/mathutil"
)

var (
	// ErrInvalidAspectRatio reports a canvas with a non-positive side.
	ErrInvalidAspectRatio = errors.New("camera: aspect ratio width and height must be positive")

	// ErrInvalidFOV reports a horizontal field of view outside (0°, 180°).
	ErrInvalidFOV = errors.New("camera: horizontal field of view must be in (0, 180) degrees")
)

// DefaultHorizontalFOV is used when a camera is built with a zero field of view.
var DefaultHorizontalFOV = mathutil.Deg2Rad(75)

// Orientation holds pitch, yaw and roll in radians.
type Orientation struct {
	Pitch float64
	Yaw   float64
	Roll  float64
}

// PitchMatrix rotates about the horizontal (X) axis.
func (o Orientation) PitchMatrix() mathutil.Mat3 {
	return mathutil.RotX(o.Pitch)
}

// YawMatrix rotates about the vertical (Y) axis. The sine is negated in
// row 0 / column 2, so a positive yaw turns the forward axis towards -X.
func (o Orientation) YawMatrix() mathutil.Mat3 {
	return mathutil.RotY(-o.Yaw)
}

// RollMatrix rotates about the forward (Z) axis. It never takes part in the
// line of sight or frame computations.
func (o Orientation) RollMatrix() mathutil.Mat3 {
	return mathutil.RotZ(o.Roll)
}

// Rotation is the combined pitch-then-yaw rotation applied to the forward axis.
func (o Orientation) Rotation() mathutil.Mat3 {
	return mathutil.Mat3Mul(o.YawMatrix(), o.PitchMatrix())
}

// AspectRatio is the canvas size in pixels.
type AspectRatio struct {
	Width  int
	Height int
}

func (a AspectRatio) Validate() error {
	if a.Width <= 0 || a.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidAspectRatio, a.Width, a.Height)
	}
	return nil
}

// Float returns width / height.
func (a AspectRatio) Float() float64 {
	return float64(a.Width) / float64(a.Height)
}

func (a AspectRatio) String() string {
	return fmt.Sprintf("%dx%d", a.Width, a.Height)
}

// Camera is the full state needed to project a point.
type Camera struct {
	Aspect      AspectRatio
	Orientation Orientation
	Position    mathutil.Vec3

	// HorizontalFOV is the full horizontal field of view in radians.
	HorizontalFOV float64
}

// New validates the inputs and returns a Camera. A zero fov selects
// DefaultHorizontalFOV.
func New(aspect AspectRatio, o Orientation, pos mathutil.Vec3, fov float64) (Camera, error) {
	c := Camera{Aspect: aspect, Orientation: o, Position: pos, HorizontalFOV: fov}
	if err := c.Validate(); err != nil {
		return Camera{}, err
	}
	if c.HorizontalFOV == 0 {
		c.HorizontalFOV = DefaultHorizontalFOV
	}
	return c, nil
}

// Validate checks the aspect ratio and field of view.
func (c Camera) Validate() error {
	if err := c.Aspect.Validate(); err != nil {
		return err
	}
	if c.HorizontalFOV < 0 || c.HorizontalFOV >= math.Pi || math.IsNaN(c.HorizontalFOV) {
		return fmt.Errorf("%w: got %.2f°", ErrInvalidFOV, mathutil.Rad2Deg(c.HorizontalFOV))
	}
	return nil
}

// FOV returns the horizontal field of view, falling back to the default.
func (c Camera) FOV() float64 {
	if c.HorizontalFOV == 0 {
		return DefaultHorizontalFOV
	}
	return c.HorizontalFOV
}

// LineOfSight returns the camera's viewing direction as a unit vector.
func (c Camera) LineOfSight() mathutil.Vec3 {
	return LineOfSight(c.Position, c.Orientation)
}
