// Package geom holds the vector and matrix conventions shared by physics,
// collision and the scene graph. Matrices are mgl32 column-vector matrices:
// a point p is transformed as M * p.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Origin is the body-space origin.
var Origin = mgl32.Vec3{}

// Transform is a position, per-axis Euler rotation in radians and scale.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// NewTransform returns a transform at the origin with unit scale.
func NewTransform() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// Local builds T * Rx * Ry * Rz * S.
func (t Transform) Local() mgl32.Mat4 {
	return Local(t.Position, t.Rotation, t.Scale)
}

// Compose returns parent * Local().
func (t Transform) Compose(parent mgl32.Mat4) mgl32.Mat4 {
	return parent.Mul4(t.Local())
}

// Local builds the local matrix for position, rotation and scale. Rotation
// is applied about X, then Y, then Z in the parent frame order T*Rx*Ry*Rz*S.
func Local(pos, rot, scale mgl32.Vec3) mgl32.Mat4 {
	m := mgl32.Translate3D(pos[0], pos[1], pos[2])
	m = m.Mul4(Rotation(rot))
	return m.Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

// Rotation returns Rx * Ry * Rz.
func Rotation(rot mgl32.Vec3) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(rot[0]).
		Mul4(mgl32.HomogRotate3DY(rot[1])).
		Mul4(mgl32.HomogRotate3DZ(rot[2]))
}

// Point transforms p as a point (w = 1).
func Point(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// Direction transforms d by the linear part of m (w = 0).
func Direction(m mgl32.Mat4, d mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(d.Vec4(0)).Vec3()
}

// Unit normalizes v, returning the zero vector for zero-length input.
func Unit(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// ClampLen scales v down to length max when it is longer, keeping direction.
func ClampLen(v mgl32.Vec3, max float32) mgl32.Vec3 {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Mul(max / l)
}

// NearZero reports whether |v| < eps.
func NearZero(v mgl32.Vec3, eps float32) bool {
	return v.LenSqr() < eps*eps
}

// FlattenY drops the vertical component.
func FlattenY(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v[0], 0, v[2]}
}

// Floor32 is math.Floor for float32.
func Floor32(v float32) float32 {
	return float32(math.Floor(float64(v)))
}
