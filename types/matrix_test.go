package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMat3Inverse(t *testing.T) {
	m := Mat3FromCols(XYZ(2, 0, 0), XYZ(1, 3, 0), XYZ(0, 0, 4))
	inv, err := m.Inv()
	require.NoError(t, err)

	// m * inv(m) * v == v
	for _, v := range []Vec3{XYZ(1, 0, 0), XYZ(0, 1, 0), XYZ(0.5, -2, 7)} {
		got := m.Mul3x1(inv.Mul3x1(v))
		for i := 0; i < 3; i++ {
			assert.InDelta(t, v[i], got[i], 1e-5)
		}
	}
}

func TestMat3Layout(t *testing.T) {
	m := Mat3FromCols(XYZ(1, 2, 3), XYZ(4, 5, 6), XYZ(7, 8, 9))
	if m.At(1, 0) != 2 {
		t.Fatalf("expected element (1, 0) to be 2; got %f", m.At(1, 0))
	}
	if row := m.Row(0); row != XYZ(1, 4, 7) {
		t.Fatalf("expected row 0 to be (1, 4, 7); got %v", row)
	}
}

func TestMat3SingularInverse(t *testing.T) {
	m := Mat3FromCols(XYZ(1, 0, 0), XYZ(2, 0, 0), XYZ(0, 0, 1))
	if _, err := m.Inv(); err != ErrSingularMatrix {
		t.Fatalf("expected to get ErrSingularMatrix; got %v", err)
	}

	if _, err := (Mat3{}).Inv(); err != ErrSingularMatrix {
		t.Fatalf("expected to get ErrSingularMatrix for zero matrix; got %v", err)
	}
}
