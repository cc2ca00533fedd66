package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	v := XYZ(3, 0, 4).Normalize()
	assert.InDelta(t, 1.0, v.Len(), 1e-6)
	assert.InDelta(t, 0.6, v[0], 1e-6)
	assert.InDelta(t, 0.8, v[2], 1e-6)

	zero := Vec3{}.Normalize()
	if !zero.IsZero() {
		t.Fatalf("expected normalizing a zero vector to return a zero vector; got %v", zero)
	}
}

func TestCross(t *testing.T) {
	n := XYZ(1, 0, 0).Cross(XYZ(0, 1, 0))
	if n != XYZ(0, 0, 1) {
		t.Fatalf("expected x cross y to be +z; got %v", n)
	}
}

func TestMinMaxVec3(t *testing.T) {
	a := XYZ(1, 5, -2)
	b := XYZ(3, -1, -2)

	if min := MinVec3(a, b); min != XYZ(1, -1, -2) {
		t.Fatalf("expected min to be (1, -1, -2); got %v", min)
	}
	if max := MaxVec3(a, b); max != XYZ(3, 5, -2) {
		t.Fatalf("expected max to be (3, 5, -2); got %v", max)
	}
}

func TestIsFinite(t *testing.T) {
	if !XYZ(1, 2, 3).IsFinite() {
		t.Fatal("expected (1, 2, 3) to be finite")
	}
	if XYZ(1, float32(math.NaN()), 3).IsFinite() {
		t.Fatal("expected vector with a NaN component not to be finite")
	}
	if XYZ(float32(math.Inf(-1)), 0, 0).IsFinite() {
		t.Fatal("expected vector with an infinite component not to be finite")
	}
}

func TestAffineDot(t *testing.T) {
	plane := XYZW(0, 0, 1, -2)
	assert.InDelta(t, 3.0, plane.DotPoint(XYZ(7, 7, 5)), 1e-6)
	assert.InDelta(t, -1.0, plane.DotDir(XYZ(7, 7, -1)), 1e-6)
}

func TestQuatRotate(t *testing.T) {
	v := XYZ(1, 0, 0).Rotate(XYZ(0, 0, 1), math.Pi/2)
	assert.InDelta(t, 0.0, v[0], 1e-6)
	assert.InDelta(t, 1.0, v[1], 1e-6)
	assert.InDelta(t, 0.0, v[2], 1e-6)

	q := QuatFromAxisAngle(XYZ(0, 1, 0), 0.7)
	back := QuatFromAxisAngle(XYZ(0, 1, 0), -0.7).Rotate(q.Rotate(XYZ(1, 2, 3)))
	for i, exp := range []float32{1, 2, 3} {
		assert.InDelta(t, exp, back[i], 1e-5)
	}
	if got := q.Mul(QuatIdent()); got != q {
		t.Fatalf("expected composing with identity to be a no-op; got %v", got)
	}

	// Composition applies the right operand first.
	yaw := QuatFromAxisAngle(XYZ(0, 1, 0), math.Pi/2)
	pitch := QuatFromAxisAngle(XYZ(1, 0, 0), math.Pi/2)
	v = pitch.Mul(yaw).Normalize().Rotate(XYZ(0, 0, -1))
	assert.InDelta(t, -1.0, v[0], 1e-5)
	assert.InDelta(t, 0.0, v[1], 1e-5)
	assert.InDelta(t, 0.0, v[2], 1e-5)

	if got := QuatFromAxisAngle(Vec3{}, 1); got != QuatIdent() {
		t.Fatalf("expected zero axis to yield the identity; got %v", got)
	}
	if got := (Quat{}).Normalize(); got != QuatIdent() {
		t.Fatalf("expected zero quaternion to normalize to the identity; got %v", got)
	}
}
