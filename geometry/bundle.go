package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/achilleasa/photon/types"
)

const (
	// The number of triangle lanes in a bundle.
	BundleSize = 8

	// Hits closer than this distance are ignored to avoid self-intersection.
	Epsilon float32 = 1e-7
)

var ErrBundleOverflow = errors.New("geometry: too many triangles for a bundle")

// A fixed-width group of triangles stored as parallel arrays of precomputed
// plane and barycentric equations. Unused or degenerate lanes hold
// InvalidTriangle and zeroed equations. Bundles are immutable once built.
type TriangleBundle struct {
	triangles [BundleSize]Triangle
	planeEq   [BundleSize]types.Vec4
	betaEq    [BundleSize]types.Vec4
	gammaEq   [BundleSize]types.Vec4

	valid      int
	degenerate int
}

// The nearest triangle hit inside a bundle.
type BundleIntersection struct {
	Distance float32
	Alpha    float32
	Beta     float32
	Gamma    float32
	Triangle Triangle
}

// Create an intersection that represents a miss.
func EmptyBundleIntersection() BundleIntersection {
	return BundleIntersection{
		Distance: posInf,
		Triangle: InvalidTriangle,
	}
}

// Get the hit distance; +Inf for misses.
func (bi BundleIntersection) HitDistance() float32 {
	return bi.Distance
}

// Returns true if the intersection refers to a triangle. The zero value is
// a miss.
func (bi BundleIntersection) Hit() bool {
	return bi.Distance > 0 && !math.IsInf(float64(bi.Distance), 1)
}

// Build a bundle from up to BundleSize triangles. Passing more triangles or
// triangles that index outside vertices is a programming error and panics.
func NewTriangleBundle(vertices []Vertex, triangles []Triangle) *TriangleBundle {
	if len(triangles) > BundleSize {
		panic(fmt.Errorf("%w: got %d, max %d", ErrBundleOverflow, len(triangles), BundleSize))
	}

	b := &TriangleBundle{}
	for lane := range b.triangles {
		b.triangles[lane] = InvalidTriangle
	}

	lane := 0
	for _, tri := range triangles {
		for _, index := range tri.Indices() {
			if int64(index) >= int64(len(vertices)) {
				panic(fmt.Errorf("geometry: triangle vertex index %d out of range [0, %d)", index, len(vertices)))
			}
		}

		planeEq, betaEq, gammaEq, ok := triangleEquations(
			vertices[tri.V1].Position,
			vertices[tri.V2].Position,
			vertices[tri.V3].Position,
		)
		if !ok {
			b.degenerate++
			continue
		}

		b.triangles[lane] = tri
		b.planeEq[lane] = planeEq
		b.betaEq[lane] = betaEq
		b.gammaEq[lane] = gammaEq
		lane++
	}
	b.valid = lane

	return b
}

// Precompute the plane equation and the two barycentric equations of a
// triangle. Returns false for degenerate triangles.
func triangleEquations(v1, v2, v3 types.Vec3) (planeEq, betaEq, gammaEq types.Vec4, ok bool) {
	ea := v2.Sub(v1)
	eb := v3.Sub(v1)
	cross := ea.Cross(eb)
	if cross.IsZero() || !cross.IsFinite() {
		return
	}

	n := cross.Normalize()
	if n.IsZero() || !n.IsFinite() {
		return
	}

	inv, err := types.Mat3FromCols(ea, eb, n).Inv()
	if err != nil {
		return
	}

	betaRow := inv.Row(0)
	gammaRow := inv.Row(1)

	planeEq = n.Vec4(-n.Dot(v1))
	betaEq = betaRow.Vec4(-betaRow.Dot(v1))
	gammaEq = gammaRow.Vec4(-gammaRow.Dot(v1))
	return planeEq, betaEq, gammaEq, true
}

// Get the number of valid triangles in the bundle.
func (b *TriangleBundle) Len() int {
	return b.valid
}

// Get the number of input triangles that were dropped as degenerate.
func (b *TriangleBundle) Degenerate() int {
	return b.degenerate
}

// Get the valid triangles in lane order.
func (b *TriangleBundle) Triangles() []Triangle {
	out := make([]Triangle, 0, b.valid)
	for _, tri := range b.triangles {
		if tri.IsValid() {
			out = append(out, tri)
		}
	}
	return out
}

// Intersect all lanes with a ray and return the nearest hit. When two lanes
// report the same distance the lower lane wins.
func (b *TriangleBundle) Intersect(ray Ray) BundleIntersection {
	var (
		dist  [BundleSize]float32
		beta  [BundleSize]float32
		gamma [BundleSize]float32
		alpha [BundleSize]float32
	)

	for lane := 0; lane < BundleSize; lane++ {
		t := -b.planeEq[lane].DotPoint(ray.Origin) / b.planeEq[lane].DotDir(ray.Direction)
		p := ray.At(t)
		dist[lane] = t
		beta[lane] = b.betaEq[lane].DotPoint(p)
		gamma[lane] = b.gammaEq[lane].DotPoint(p)
		alpha[lane] = 1 - beta[lane] - gamma[lane]
	}

	best := EmptyBundleIntersection()
	for lane := 0; lane < BundleSize; lane++ {
		t := dist[lane]

		// NaN distances fail every comparison below.
		if !b.triangles[lane].IsValid() ||
			!(t > Epsilon && t < posInf) ||
			!(alpha[lane] > 0 && beta[lane] > 0 && gamma[lane] > 0) {
			continue
		}

		if t < best.Distance {
			best = BundleIntersection{
				Distance: t,
				Alpha:    alpha[lane],
				Beta:     beta[lane],
				Gamma:    gamma[lane],
				Triangle: b.triangles[lane],
			}
		}
	}

	return best
}
