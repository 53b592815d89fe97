package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-9

func assertVec(t *testing.T, want, got Vec3) {
	t.Helper()
	assert.InDelta(t, want[0], got[0], tol, "x")
	assert.InDelta(t, want[1], got[1], tol, "y")
	assert.InDelta(t, want[2], got[2], tol, "z")
}

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{-4, 5, 0.5}

	assert.Equal(t, Vec3{-3, 7, 3.5}, a.Add(b))
	assert.Equal(t, Vec3{5, -3, 2.5}, a.Sub(b))
	assert.Equal(t, Vec3{2, 4, 6}, a.Scale(2))
	assert.InDelta(t, 7.5, a.Dot(b), tol)
	assert.InDelta(t, math.Sqrt(14), a.Len(), tol)
	assert.InDelta(t, 9.5, b.L1Norm(), tol)
	assert.Equal(t, 1.0, a.X())
	assert.Equal(t, 2.0, a.Y())
	assert.Equal(t, 3.0, a.Z())
}

func TestVec3Cross(t *testing.T) {
	assertVec(t, Forward, AxisX.Cross(Up))
	assertVec(t, AxisX, Up.Cross(Forward))

	a := Vec3{0.3, -1.2, 2}
	b := Vec3{4, 0.1, -0.7}
	c := a.Cross(b)
	assert.InDelta(t, 0, c.Dot(a), tol)
	assert.InDelta(t, 0, c.Dot(b), tol)
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 0, 4}.Normalize()
	assertVec(t, Vec3{0.6, 0, 0.8}, n)
	assert.InDelta(t, 1, n.Len(), tol)

	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
}

func TestVec3ApproxEqual(t *testing.T) {
	a := Vec3{1, 2, 3}
	assert.True(t, a.ApproxEqual(Vec3{1.001, 2, 2.999}, 0.01))
	assert.False(t, a.ApproxEqual(Vec3{1.1, 2, 3}, 0.01))
}

func TestRotations(t *testing.T) {
	q := Deg2Rad(90)

	assertVec(t, Vec3{0, -1, 0}, RotX(q).MulVec3(Forward))
	assertVec(t, Vec3{1, 0, 0}, RotY(q).MulVec3(Forward))
	assertVec(t, Vec3{0, 1, 0}, RotZ(q).MulVec3(AxisX))

	for _, m := range []Mat3{RotX(0.7), RotY(-2.1), RotZ(4)} {
		assert.True(t, m.IsRotation(tol))
		inv, ok := m.Inverse()
		assert.True(t, ok)
		prod := Mat3Mul(m, inv)
		for i, v := range Mat3Identity() {
			assert.InDelta(t, v, prod[i], tol)
		}
	}

	assert.False(t, Mat3{2, 0, 0, 0, 1, 0, 0, 0, 1}.IsRotation(tol))
}

func TestInverseSingular(t *testing.T) {
	_, ok := Mat3{1, 2, 3, 2, 4, 6, 0, 0, 1}.Inverse()
	assert.False(t, ok)
}

func TestRot2(t *testing.T) {
	v := Rot2(Deg2Rad(90)).MulVec2([2]float64{1, 0})
	assert.InDelta(t, 0, v[0], tol)
	assert.InDelta(t, 1, v[1], tol)
	assert.InDelta(t, 1, Rot2(1.3).Det(), tol)
}

func TestAngles(t *testing.T) {
	assert.InDelta(t, math.Pi, Deg2Rad(180), tol)
	assert.InDelta(t, 45, Rad2Deg(math.Pi/4), tol)

	assert.InDelta(t, 20, AngleDist(350, 10), tol)
	assert.InDelta(t, 180, AngleDist(0, 180), tol)
	assert.InDelta(t, 90, AngleDist(-45, 45), tol)

	assert.InDelta(t, math.Pi/2, AngleBetween(AxisX, Up), tol)
	assert.InDelta(t, math.Pi, AngleBetween(Up, Up.Scale(-3)), tol)
	assert.InDelta(t, 0, AngleBetween(Vec3{}, Up), tol)
}
