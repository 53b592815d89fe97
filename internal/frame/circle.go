package frame

import (
	"math"

	"point-projector/internal/camera"
	"point-projector/internal/mathutil"
)

// monotonicStep is the angular perturbation used to tell the left and right
// horizontal points of the circle apart.
const monotonicStep = 0.1

// Circle is the circle in the viewing plane that passes through all four
// frame corners.
type Circle struct {
	Center mathutil.Vec3
	First  mathutil.Vec3
	Second mathutil.Vec3
	Radius float64
}

// At returns Center + Radius·(sinθ·First + cosθ·Second).
func (c Circle) At(theta float64) mathutil.Vec3 {
	dir := c.First.Scale(math.Sin(theta)).Add(c.Second.Scale(math.Cos(theta)))
	return dir.Scale(c.Radius).Add(c.Center)
}

// DivergenceAngle is half of the diagonal field of view for a canvas with the
// given aspect ratio and full horizontal field of view hfov.
func DivergenceAngle(aspect camera.AspectRatio, hfov float64) float64 {
	halfW := math.Tan(hfov / 2)
	halfH := halfW * float64(aspect.Height) / float64(aspect.Width)
	return math.Atan(math.Hypot(halfW, halfH))
}

// Radius is the distance from the frame center to its corners at distance a.
func Radius(a, divergence float64) float64 {
	return a * math.Tan(divergence)
}

// InitialAngle returns the circle angle whose point lies level with the XZ
// plane and to the viewer's right. Of the two level points, the right one
// is where the circle's Y coordinate increases with θ. When the viewing
// plane is itself horizontal every point is level, and the yaw-rotated
// right axis decides.
func InitialAngle(c Circle, o camera.Orientation) float64 {
	if math.Hypot(c.First[1], c.Second[1]) < parallelTolerance {
		right := camera.RightAxis(o)
		return math.Atan2(right.Dot(c.First), right.Dot(c.Second))
	}

	option := math.Atan2(-c.Second[1], c.First[1])
	if rising(c, option) {
		return option
	}
	return option + math.Pi
}

func rising(c Circle, theta float64) bool {
	before := c.At(theta - monotonicStep)[1]
	at := c.At(theta)[1]
	after := c.At(theta + monotonicStep)[1]
	return before < at && at < after
}

// CornerAngles returns the circle angles of the four corners, clockwise from
// top-right, given the initial (right, level) angle. Each corner sits
// atan(H/W) above or below the horizontal through the center.
func CornerAngles(initial float64, aspect camera.AspectRatio) [4]float64 {
	phi := math.Atan2(float64(aspect.Height), float64(aspect.Width))
	return [4]float64{
		initial + phi,
		initial - phi,
		initial + math.Pi + phi,
		initial + math.Pi - phi,
	}
}
