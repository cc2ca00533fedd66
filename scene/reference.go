package scene

import "github.com/achilleasa/photon/geometry"

// Intersects a mesh by testing every bundle in order without consulting the
// BVH. It produces the same results as Mesh.Intersect and is used to
// cross-check the tree.
type BruteForce struct {
	mesh    *Mesh
	bundles []*geometry.TriangleBundle
}

// Create a brute force intersector for a mesh.
func NewBruteForce(mesh *Mesh) *BruteForce {
	return &BruteForce{
		mesh:    mesh,
		bundles: mesh.Tree().Leaves(),
	}
}

// Intersect the ray with every bundle and return the nearest hit.
func (bf *BruteForce) Intersect(ray geometry.Ray) MeshIntersection {
	best := geometry.EmptyBundleIntersection()
	for _, bundle := range bf.bundles {
		if hit := bundle.Intersect(ray); hit.Distance < best.Distance {
			best = hit
		}
	}

	if !best.Hit() {
		return MissIntersection()
	}
	return bf.mesh.surfacePoint(best)
}
