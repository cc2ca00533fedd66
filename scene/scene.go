package scene

import (
	"errors"
	"fmt"

	"github.com/achilleasa/photon/bvh"
	"github.com/achilleasa/photon/geometry"
)

var ErrDuplicateMesh = errors.New("scene: mesh already added")

// The result of a scene intersection test. Mesh is the index of the mesh
// that was hit or -1 for misses.
type SceneIntersection struct {
	MeshIntersection
	Mesh int
}

// Create a scene intersection that represents a miss.
func MissSceneIntersection() SceneIntersection {
	return SceneIntersection{MeshIntersection: MissIntersection(), Mesh: -1}
}

type meshRef struct {
	index int
	mesh  *Mesh
}

func (r meshRef) Intersect(ray geometry.Ray) SceneIntersection {
	return SceneIntersection{MeshIntersection: r.mesh.Intersect(ray), Mesh: r.index}
}

// A set of meshes stored in a BVH over their bounds. Scenes are immutable and
// safe for concurrent use.
type Scene struct {
	Camera *Camera

	meshes []*Mesh
	tree   *bvh.Tree[meshRef, SceneIntersection]
}

// Create a scene from a list of meshes. The camera may be nil.
func NewScene(camera *Camera, meshes []*Mesh, opts ...bvh.Option) (*Scene, error) {
	seen := make(map[*Mesh]struct{}, len(meshes))
	elements := make([]bvh.Element[meshRef], 0, len(meshes))
	for index, mesh := range meshes {
		if _, exists := seen[mesh]; exists {
			return nil, fmt.Errorf("mesh %q: %w", mesh.Name(), ErrDuplicateMesh)
		}
		seen[mesh] = struct{}{}

		elements = append(elements, bvh.Element[meshRef]{
			Item:   meshRef{index: index, mesh: mesh},
			Bounds: mesh.Bounds(),
		})
	}

	return &Scene{
		Camera: camera,
		meshes: append([]*Mesh(nil), meshes...),
		tree: bvh.Build[meshRef, SceneIntersection](
			elements,
			append([]bvh.Option{bvh.WithName("scene")}, opts...)...,
		),
	}, nil
}

// Get the scene meshes.
func (s *Scene) Meshes() []*Mesh {
	return s.meshes
}

// Get the bounds of all scene meshes.
func (s *Scene) Bounds() geometry.AABB {
	return s.tree.Bounds()
}

// Find the nearest hit across all meshes.
func (s *Scene) Intersect(ray geometry.Ray) SceneIntersection {
	hit, ok := s.tree.Intersect(ray)
	if !ok {
		return MissSceneIntersection()
	}
	return hit
}
