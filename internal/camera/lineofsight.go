package camera

import "point-projector/internal/mathutil"

// PointOnLineOfSight returns the point exactly one unit from pos along the
// viewing direction: Yaw·(Pitch·forward) + pos. Roll is not applied.
func PointOnLineOfSight(pos mathutil.Vec3, o Orientation) mathutil.Vec3 {
	dir := o.YawMatrix().MulVec3(o.PitchMatrix().MulVec3(mathutil.Forward))
	return dir.Add(pos)
}

// LineOfSight returns the unit vector along the viewing direction.
func LineOfSight(pos mathutil.Vec3, o Orientation) mathutil.Vec3 {
	return PointOnLineOfSight(pos, o).Sub(pos)
}

// PointAt returns the point a units along the unit direction u from pos.
func PointAt(pos, u mathutil.Vec3, a float64) mathutil.Vec3 {
	return u.Scale(a).Add(pos)
}

// RightAxis is the horizontal direction to the viewer's right: the yaw-rotated
// -X axis. It is orthogonal to the line of sight for any pitch.
func RightAxis(o Orientation) mathutil.Vec3 {
	return o.YawMatrix().MulVec3(mathutil.AxisX.Scale(-1))
}
