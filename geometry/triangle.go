package geometry

import (
	"math"

	"github.com/achilleasa/photon/types"
)

// Marks an unused triangle lane or a missing material.
const InvalidIndex uint32 = math.MaxUint32

// A mesh vertex.
type Vertex struct {
	Position types.Vec3
	Normal   types.Vec3
}

// A triangle referencing three vertices by index and a material. Material 0
// means "no material".
type Triangle struct {
	V1, V2, V3 uint32
	Material   uint32
}

// A placeholder for unused bundle lanes.
var InvalidTriangle = Triangle{
	V1:       InvalidIndex,
	V2:       InvalidIndex,
	V3:       InvalidIndex,
	Material: InvalidIndex,
}

// Returns true unless this is the invalid triangle marker.
func (t Triangle) IsValid() bool {
	return t.Material != InvalidIndex
}

// Get the three vertex indices.
func (t Triangle) Indices() [3]uint32 {
	return [3]uint32{t.V1, t.V2, t.V3}
}
