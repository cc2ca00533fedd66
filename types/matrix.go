package types

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

var ErrSingularMatrix = errors.New("types: matrix is singular")

// A 3x3 matrix stored in column-major order.
type Mat3 [9]float32

// Create a Mat3 whose columns are c0, c1 and c2.
func Mat3FromCols(c0, c1, c2 Vec3) Mat3 {
	return Mat3{
		c0[0], c0[1], c0[2],
		c1[0], c1[1], c1[2],
		c2[0], c2[1], c2[2],
	}
}

// Return the element at the given row and column.
func (m Mat3) At(row, col int) float32 {
	return m[col*3+row]
}

// Return row i as a vector.
func (m Mat3) Row(i int) Vec3 {
	return Vec3{m[i], m[3+i], m[6+i]}
}

// Multiply matrix with a column vector.
func (m Mat3) Mul3x1(v Vec3) Vec3 {
	return Vec3{
		m.Row(0).Dot(v),
		m.Row(1).Dot(v),
		m.Row(2).Dot(v),
	}
}

// Invert the matrix. The inversion runs in float64; an error is returned if
// the matrix is singular, ill-conditioned or the result is not finite.
func (m Mat3) Inv() (Mat3, error) {
	a := mat.NewDense(3, 3, nil)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			a.Set(row, col, float64(m.At(row, col)))
		}
	}

	var inv mat.Dense
	if err := inv.Inverse(a); err != nil {
		return Mat3{}, ErrSingularMatrix
	}

	var out Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			v := inv.At(row, col)
			if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > math.MaxFloat32 {
				return Mat3{}, ErrSingularMatrix
			}
			out[col*3+row] = float32(v)
		}
	}
	return out, nil
}
