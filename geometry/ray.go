package geometry

import (
	"math"

	"github.com/achilleasa/photon/types"
)

var (
	posInf = float32(math.Inf(1))
	negInf = float32(math.Inf(-1))
)

// A ray with an origin and a direction. The direction does not need to be
// normalized; distances are expressed in multiples of its length.
type Ray struct {
	Origin    types.Vec3
	Direction types.Vec3
}

// Create a new ray.
func NewRay(origin, direction types.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// Returns true if the ray has a finite origin and a finite, non-zero direction.
func (r Ray) Valid() bool {
	return r.Origin.IsFinite() && r.Direction.IsFinite() && !r.Direction.IsZero()
}

// Get the point at distance t along the ray.
func (r Ray) At(t float32) types.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// A range of ray distances.
type Interval struct {
	Start  float32
	Finish float32
}

// The interval returned by a ray that misses a box.
var MissInterval = Interval{Start: posInf, Finish: posInf}

// Returns true if this interval signals a miss.
func (i Interval) IsMiss() bool {
	return math.IsInf(float64(i.Start), 1)
}
