package frame

import (
	"math"

	"point-projector/internal/mathutil"
)

// parallelTolerance bounds |seed·u| before a seed counts as parallel to the
// line of sight.
const parallelTolerance = 1e-6

// Seeds tried in order when building the first orthogonal vector.
var seeds = [...]mathutil.Vec3{mathutil.Up, mathutil.AxisX, mathutil.Forward}

// Basis is an orthonormal frame around a line of sight. First and Second
// span the viewing plane.
type Basis struct {
	Forward mathutil.Vec3
	First   mathutil.Vec3
	Second  mathutil.Vec3
}

// NewBasis builds the two unit vectors orthogonal to the unit vector u.
// First is the Gram–Schmidt residue of the first seed that is not parallel
// to u; Second is u × First.
func NewBasis(u mathutil.Vec3) Basis {
	seed := seeds[0]
	for _, s := range seeds {
		if math.Abs(s.Dot(u)) < 1-parallelTolerance {
			seed = s
			break
		}
	}
	first := seed.Sub(u.Scale(seed.Dot(u))).Normalize()
	return Basis{
		Forward: u,
		First:   first,
		Second:  u.Cross(first),
	}
}
