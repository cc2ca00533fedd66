package geometry

import "github.com/achilleasa/photon/types"

// An axis-aligned bounding box. The empty box has its lower corner at +Inf
// and its upper corner at -Inf so that it is the identity for Union.
type AABB struct {
	Lower types.Vec3
	Upper types.Vec3
}

// Create an empty bounding box.
func EmptyAABB() AABB {
	return AABB{
		Lower: types.Splat3(posInf),
		Upper: types.Splat3(negInf),
	}
}

// Create a bounding box enclosing the positions of all vertices.
func AABBFromPoints(vertices []Vertex) AABB {
	box := EmptyAABB()
	for _, v := range vertices {
		box.expand(v.Position)
	}
	return box
}

// Create a bounding box enclosing only the vertices referenced by triangles.
func AABBFromTriangles(vertices []Vertex, triangles []Triangle) AABB {
	box := EmptyAABB()
	for _, tri := range triangles {
		for _, index := range tri.Indices() {
			box.expand(vertices[index].Position)
		}
	}
	return box
}

// Get the union of a list of boxes. The union of no boxes is the empty box.
func UnionAABB(boxes ...AABB) AABB {
	out := EmptyAABB()
	for _, b := range boxes {
		out = out.Union(b)
	}
	return out
}

// Get the smallest box enclosing both boxes.
func (b AABB) Union(other AABB) AABB {
	return AABB{
		Lower: types.MinVec3(b.Lower, other.Lower),
		Upper: types.MaxVec3(b.Upper, other.Upper),
	}
}

func (b *AABB) expand(p types.Vec3) {
	b.Lower = types.MinVec3(b.Lower, p)
	b.Upper = types.MaxVec3(b.Upper, p)
}

// Returns true if the box encloses no points.
func (b AABB) IsEmpty() bool {
	return b.Lower[0] > b.Upper[0] || b.Lower[1] > b.Upper[1] || b.Lower[2] > b.Upper[2]
}

// Get the box center. The result is undefined for empty boxes.
func (b AABB) Center() types.Vec3 {
	return b.Lower.Add(b.Upper).Mul(0.5)
}

// Get the box size along each axis. Empty boxes have zero extent.
func (b AABB) Extent() types.Vec3 {
	if b.IsEmpty() {
		return types.Vec3{}
	}
	return b.Upper.Sub(b.Lower)
}

// Get the box surface area.
func (b AABB) SurfaceArea() float32 {
	e := b.Extent()
	return 2 * (e[0]*e[1] + e[1]*e[2] + e[2]*e[0])
}

// Returns true if p lies inside the box grown by eps on every side.
func (b AABB) Contains(p types.Vec3, eps float32) bool {
	for axis := 0; axis < 3; axis++ {
		if p[axis] < b.Lower[axis]-eps || p[axis] > b.Upper[axis]+eps {
			return false
		}
	}
	return true
}

// Intersect the box with a ray using the slab test. The returned interval
// covers the ray distances spent inside the box; it may start at a negative
// distance when the origin is inside the box. Misses return MissInterval.
func (b AABB) Intersect(ray Ray) Interval {
	if b.IsEmpty() {
		return MissInterval
	}

	start, finish := negInf, posInf
	for axis := 0; axis < 3; axis++ {
		o, d := ray.Origin[axis], ray.Direction[axis]

		// Rays parallel to the slab either stay within it or never enter.
		if d == 0 {
			if o < b.Lower[axis] || o > b.Upper[axis] {
				return MissInterval
			}
			continue
		}

		t0 := (b.Lower[axis] - o) / d
		t1 := (b.Upper[axis] - o) / d
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		if t0 > start {
			start = t0
		}
		if t1 < finish {
			finish = t1
		}
	}

	if finish < start {
		return MissInterval
	}
	return Interval{Start: start, Finish: finish}
}
