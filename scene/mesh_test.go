package scene

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/achilleasa/photon/bvh"
	"github.com/achilleasa/photon/geometry"
	"github.com/achilleasa/photon/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitTriangleMesh(t *testing.T) *Mesh {
	vertices := []geometry.Vertex{
		{Position: types.XYZ(0, 0, 0), Normal: types.XYZ(0, 0, 1)},
		{Position: types.XYZ(1, 0, 0), Normal: types.XYZ(0, 0, 1)},
		{Position: types.XYZ(0, 1, 0), Normal: types.XYZ(0, 0, 1)},
	}
	mesh, err := NewMesh("unit", vertices, []geometry.Triangle{{V1: 0, V2: 1, V3: 2, Material: 1}})
	require.NoError(t, err)
	return mesh
}

func TestMeshIntersect(t *testing.T) {
	mesh := unitTriangleMesh(t)

	hit := mesh.Intersect(geometry.NewRay(types.XYZ(0.25, 0.25, 10), types.XYZ(0, 0, -1)))
	if !hit.Hit() {
		t.Fatal("expected ray to hit the mesh")
	}
	if hit.Material != 1 {
		t.Fatalf("expected material 1; got %d", hit.Material)
	}
	assert.InDelta(t, 10, hit.Distance, 1e-5)
	for axis, exp := range []float32{0.25, 0.25, 0} {
		assert.InDelta(t, exp, hit.Point[axis], 1e-5)
	}
	for axis, exp := range []float32{0, 0, 1} {
		assert.InDelta(t, exp, hit.Normal[axis], 1e-5)
	}

	miss := mesh.Intersect(geometry.NewRay(types.XYZ(2, 2, 10), types.XYZ(0, 0, -1)))
	if miss != MissIntersection() {
		t.Fatalf("expected a miss; got %v", miss)
	}
}

func TestMeshBounds(t *testing.T) {
	vertices := []geometry.Vertex{
		{Position: types.XYZ(0, 0, 0)},
		{Position: types.XYZ(1, 0, 0)},
		{Position: types.XYZ(0, 1, 0)},
		{Position: types.XYZ(-5, 3, 2)},
	}
	mesh, err := NewMesh("bounds", vertices, []geometry.Triangle{{V1: 0, V2: 1, V3: 2, Material: 1}})
	require.NoError(t, err)

	exp := geometry.AABB{Lower: types.XYZ(-5, 0, 0), Upper: types.XYZ(1, 3, 2)}
	if mesh.Bounds() != exp {
		t.Fatalf("expected bounds to cover all vertices %v; got %v", exp, mesh.Bounds())
	}
}

func TestMeshFaceNormalFallback(t *testing.T) {
	vertices := []geometry.Vertex{
		{Position: types.XYZ(0, 0, 0)},
		{Position: types.XYZ(1, 0, 0)},
		{Position: types.XYZ(0, 1, 0)},
	}
	mesh, err := NewMesh("flat", vertices, []geometry.Triangle{{V1: 0, V2: 1, V3: 2, Material: 3}})
	require.NoError(t, err)

	hit := mesh.Intersect(geometry.NewRay(types.XYZ(0.25, 0.25, 10), types.XYZ(0, 0, -1)))
	require.True(t, hit.Hit())
	assert.InDelta(t, 1, hit.Normal[2], 1e-5)
}

func TestEmptyMesh(t *testing.T) {
	mesh, err := NewMesh("empty", nil, nil)
	require.NoError(t, err)

	if !mesh.Bounds().IsEmpty() {
		t.Fatalf("expected empty mesh bounds; got %v", mesh.Bounds())
	}
	if hit := mesh.Intersect(geometry.NewRay(types.XYZ(0, 0, 10), types.XYZ(0, 0, -1))); hit.Hit() {
		t.Fatalf("expected empty mesh to never be hit; got %v", hit)
	}
}

func TestMeshValidation(t *testing.T) {
	vertices := []geometry.Vertex{
		{Position: types.XYZ(0, 0, 0)},
		{Position: types.XYZ(1, 0, 0)},
		{Position: types.XYZ(0, 1, 0)},
	}

	_, err := NewMesh("bad-index", vertices, []geometry.Triangle{{V1: 0, V2: 1, V3: 3, Material: 1}})
	if !errors.Is(err, ErrInvalidVertexIndex) {
		t.Fatalf("expected ErrInvalidVertexIndex; got %v", err)
	}

	_, err = NewMesh("bad-material", vertices, []geometry.Triangle{{V1: 0, V2: 1, V3: 2, Material: geometry.InvalidIndex}})
	if !errors.Is(err, ErrInvalidMaterial) {
		t.Fatalf("expected ErrInvalidMaterial; got %v", err)
	}
}

func TestMeshDegenerateTriangles(t *testing.T) {
	vertices := []geometry.Vertex{
		{Position: types.XYZ(0, 0, 0)},
		{Position: types.XYZ(1, 0, 0)},
		{Position: types.XYZ(0, 1, 0)},
		{Position: types.XYZ(2, 0, 0)},
	}
	mesh, err := NewMesh("degenerate", vertices, []geometry.Triangle{
		{V1: 0, V2: 1, V3: 3, Material: 1},
		{V1: 0, V2: 1, V3: 2, Material: 2},
	})
	require.NoError(t, err)

	if mesh.Degenerate() != 1 || mesh.TriangleCount() != 2 {
		t.Fatalf("expected 1 degenerate triangle out of 2; got %d out of %d", mesh.Degenerate(), mesh.TriangleCount())
	}
}

func TestMeshMatchesBruteForce(t *testing.T) {
	prims := map[string]*Primitive{
		"sphere": NewSphere(types.XYZ(0, 0, 0), 2, 12, 1),
		"soup":   NewTriangleSoup(7, 300, types.XYZ(0, 0, 0), 3, 2),
		"box":    NewBox(types.XYZ(1, 0, 0), types.XYZ(1, 2, 3), 3),
	}

	rng := rand.New(rand.NewSource(8))
	for name, prim := range prims {
		for _, traversal := range []bvh.Traversal{bvh.NearestFirst, bvh.StorageOrder} {
			mesh, err := prim.Mesh(name, bvh.WithTraversal(traversal))
			require.NoError(t, err)
			ref := NewBruteForce(mesh)

			for i := 0; i < 2000; i++ {
				origin := types.XYZ(rng.Float32()*20-10, rng.Float32()*20-10, rng.Float32()*20-10)
				target := types.XYZ(rng.Float32()*6-3, rng.Float32()*6-3, rng.Float32()*6-3)
				ray := geometry.NewRay(origin, target.Sub(origin))

				exp := ref.Intersect(ray)
				got := mesh.Intersect(ray)
				if exp.Hit() != got.Hit() || exp.Distance != got.Distance {
					t.Fatalf("[%s/%s/%d] expected %v; got %v", name, traversal, i, exp, got)
				}
				// Same triangle and barycentrics yield the same surface point.
				if exp.Material != got.Material || exp.Point != got.Point || exp.Normal != got.Normal {
					t.Fatalf("[%s/%s/%d] expected surface %v; got %v", name, traversal, i, exp, got)
				}
			}
		}
	}
}
