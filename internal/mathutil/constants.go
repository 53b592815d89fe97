package mathutil

import "math"

// Epsilon is the length below which a vector is treated as having no direction.
const Epsilon = 1e-12

// AngleDist returns the shortest angular distance between two angles in degrees (0–180).
func AngleDist(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d < 0 {
		d += 360
	}
	if d > 180 {
		return 360 - d
	}
	return d
}

// AngleBetween returns the unsigned angle between a and b in radians.
func AngleBetween(a, b Vec3) float64 {
	la, lb := a.Len(), b.Len()
	if la < Epsilon || lb < Epsilon {
		return 0
	}
	c := a.Dot(b) / (la * lb)
	return math.Acos(math.Max(-1, math.Min(1, c)))
}
