package types

import "math"

// A rotation quaternion with imaginary part V and real part W.
type Quat struct {
	V Vec3
	W float32
}

// The rotation that leaves every vector unchanged.
func QuatIdent() Quat {
	return Quat{W: 1}
}

// Build the rotation by angle radians around axis. A zero axis or angle
// yields the identity rotation.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	axis = axis.Normalize()
	if axis.IsZero() || angle == 0 {
		return QuatIdent()
	}
	sin, cos := math.Sincos(float64(angle) * 0.5)
	return Quat{V: axis.Mul(float32(sin)), W: float32(cos)}
}

// Compose two rotations; the result applies q2 first and then q.
func (q Quat) Mul(q2 Quat) Quat {
	return Quat{
		V: q.V.Cross(q2.V).Add(q2.V.Mul(q.W)).Add(q.V.Mul(q2.W)),
		W: q.W*q2.W - q.V.Dot(q2.V),
	}
}

// Scale to unit length. Zero quaternions become the identity.
func (q Quat) Normalize() Quat {
	l := float32(math.Sqrt(float64(q.V.Dot(q.V) + q.W*q.W)))
	if l < floatCmpEpsilon {
		return QuatIdent()
	}
	inv := 1 / l
	return Quat{V: q.V.Mul(inv), W: q.W * inv}
}

// Apply the rotation to v. Expects a unit quaternion.
func (q Quat) Rotate(v Vec3) Vec3 {
	// v + 2w(q x v) + 2q x (q x v)
	c := q.V.Cross(v)
	return v.Add(c.Mul(2 * q.W)).Add(q.V.Cross(c).Mul(2))
}

// Rotate the vector around axis by angle radians.
func (v Vec3) Rotate(axis Vec3, angle float32) Vec3 {
	return QuatFromAxisAngle(axis, angle).Rotate(v)
}
