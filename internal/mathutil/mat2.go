package mathutil

import "math"

// Mat2 is a 2×2 matrix stored row-major.
type Mat2 [4]float64

// Rot2 returns the counter-clockwise 2D rotation by a radians.
func Rot2(a float64) Mat2 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat2{
		c, -s,
		s, c,
	}
}

// MulVec2 returns M × v.
func (m Mat2) MulVec2(v [2]float64) [2]float64 {
	return [2]float64{
		m[0]*v[0] + m[1]*v[1],
		m[2]*v[0] + m[3]*v[1],
	}
}

func (m Mat2) Det() float64 {
	return m[0]*m[3] - m[1]*m[2]
}
