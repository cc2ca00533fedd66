package scene

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/achilleasa/photon/bvh"
	"github.com/achilleasa/photon/geometry"
	"github.com/achilleasa/photon/log"
	"github.com/achilleasa/photon/types"
)

var (
	ErrInvalidVertexIndex = errors.New("scene: triangle references a vertex outside the mesh")
	ErrInvalidMaterial    = errors.New("scene: triangle uses the reserved invalid material index")
)

var logger = log.New("scene")

// The BVH type used by meshes.
type MeshTree = bvh.Tree[*geometry.TriangleBundle, geometry.BundleIntersection]

// A triangle mesh. Triangles are grouped into bundles which are stored in a
// BVH. Meshes are immutable and safe for concurrent use.
type Mesh struct {
	name       string
	vertices   []geometry.Vertex
	triangles  []geometry.Triangle
	bounds     geometry.AABB
	tree       *MeshTree
	degenerate int
}

// The result of a mesh intersection test.
type MeshIntersection struct {
	Point    types.Vec3
	Normal   types.Vec3
	Distance float32
	Material uint32
}

// Create an intersection that represents a miss.
func MissIntersection() MeshIntersection {
	return MeshIntersection{
		Distance: float32(math.Inf(1)),
		Material: geometry.InvalidIndex,
	}
}

// Returns true if the intersection refers to a surface point. The zero value
// is a miss.
func (mi MeshIntersection) Hit() bool {
	return mi.Distance > 0 && !math.IsInf(float64(mi.Distance), 1)
}

// Get the hit distance; +Inf for misses.
func (mi MeshIntersection) HitDistance() float32 {
	return mi.Distance
}

// Create a new mesh. Triangles are packed into bundles in input order; the
// mesh keeps its own copy of the vertex and triangle lists.
func NewMesh(name string, vertices []geometry.Vertex, triangles []geometry.Triangle, opts ...bvh.Option) (*Mesh, error) {
	for index, tri := range triangles {
		for _, v := range tri.Indices() {
			if int64(v) >= int64(len(vertices)) {
				return nil, fmt.Errorf("mesh %q: triangle %d: vertex %d: %w", name, index, v, ErrInvalidVertexIndex)
			}
		}
		if tri.Material == geometry.InvalidIndex {
			return nil, fmt.Errorf("mesh %q: triangle %d: %w", name, index, ErrInvalidMaterial)
		}
	}

	start := time.Now()
	m := &Mesh{
		name:      name,
		vertices:  append([]geometry.Vertex(nil), vertices...),
		triangles: append([]geometry.Triangle(nil), triangles...),
	}
	m.bounds = geometry.AABBFromPoints(m.vertices)

	elements := make([]bvh.Element[*geometry.TriangleBundle], 0, (len(triangles)+geometry.BundleSize-1)/geometry.BundleSize)
	for first := 0; first < len(m.triangles); first += geometry.BundleSize {
		last := first + geometry.BundleSize
		if last > len(m.triangles) {
			last = len(m.triangles)
		}
		chunk := m.triangles[first:last]

		bundle := geometry.NewTriangleBundle(m.vertices, chunk)
		m.degenerate += bundle.Degenerate()
		elements = append(elements, bvh.Element[*geometry.TriangleBundle]{
			Item:   bundle,
			Bounds: geometry.AABBFromTriangles(m.vertices, chunk),
		})
	}

	m.tree = bvh.Build[*geometry.TriangleBundle, geometry.BundleIntersection](
		elements,
		append([]bvh.Option{bvh.WithName(name)}, opts...)...,
	)

	if m.degenerate > 0 {
		logger.Warningf("mesh %q: dropped %d degenerate triangles", name, m.degenerate)
	}
	logger.Infof(
		"mesh %q: %d vertices, %d triangles, %d bundles (build time: %d ms)",
		name, len(m.vertices), len(m.triangles), len(elements),
		time.Since(start).Nanoseconds()/1e6,
	)

	return m, nil
}

// Get the mesh name.
func (m *Mesh) Name() string {
	return m.name
}

// Get the mesh vertices. Callers must not modify the returned slice.
func (m *Mesh) Vertices() []geometry.Vertex {
	return m.vertices
}

// Get the mesh triangles. Callers must not modify the returned slice.
func (m *Mesh) Triangles() []geometry.Triangle {
	return m.triangles
}

// Get the number of triangles including any degenerate ones.
func (m *Mesh) TriangleCount() int {
	return len(m.triangles)
}

// Get the number of triangles that were dropped as degenerate.
func (m *Mesh) Degenerate() int {
	return m.degenerate
}

// Get the mesh BVH.
func (m *Mesh) Tree() *MeshTree {
	return m.tree
}

// Get the bounding box of all mesh vertices.
func (m *Mesh) Bounds() geometry.AABB {
	return m.bounds
}

// Intersect the mesh with a ray and return the nearest hit with its position
// and shading normal interpolated from the triangle vertices.
func (m *Mesh) Intersect(ray geometry.Ray) MeshIntersection {
	hit, ok := m.tree.Intersect(ray)
	if !ok {
		return MissIntersection()
	}
	return m.surfacePoint(hit)
}

func (m *Mesh) surfacePoint(hit geometry.BundleIntersection) MeshIntersection {
	v1 := m.vertices[hit.Triangle.V1]
	v2 := m.vertices[hit.Triangle.V2]
	v3 := m.vertices[hit.Triangle.V3]

	point := v1.Position.Mul(hit.Alpha).Add(v2.Position.Mul(hit.Beta)).Add(v3.Position.Mul(hit.Gamma))
	normal := v1.Normal.Mul(hit.Alpha).Add(v2.Normal.Mul(hit.Beta)).Add(v3.Normal.Mul(hit.Gamma)).Normalize()

	// Fall back to the face normal for vertices without normals.
	if normal.IsZero() {
		normal = v2.Position.Sub(v1.Position).Cross(v3.Position.Sub(v1.Position)).Normalize()
	}

	return MeshIntersection{
		Point:    point,
		Normal:   normal,
		Distance: hit.Distance,
		Material: hit.Triangle.Material,
	}
}
