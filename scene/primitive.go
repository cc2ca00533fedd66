package scene

import (
	"math"
	"math/rand"

	"github.com/achilleasa/photon/bvh"
	"github.com/achilleasa/photon/geometry"
	"github.com/achilleasa/photon/types"
)

// Procedurally generated mesh data.
type Primitive struct {
	Vertices  []geometry.Vertex
	Triangles []geometry.Triangle
}

// Build a mesh from the primitive.
func (p *Primitive) Mesh(name string, opts ...bvh.Option) (*Mesh, error) {
	return NewMesh(name, p.Vertices, p.Triangles, opts...)
}

func (p *Primitive) addVertex(pos, normal types.Vec3) uint32 {
	p.Vertices = append(p.Vertices, geometry.Vertex{Position: pos, Normal: normal})
	return uint32(len(p.Vertices) - 1)
}

func (p *Primitive) addTriangle(v1, v2, v3, material uint32) {
	p.Triangles = append(p.Triangles, geometry.Triangle{V1: v1, V2: v2, V3: v3, Material: material})
}

// Create a square plane facing +Y, split into segments x segments quads.
func NewPlane(center types.Vec3, size float32, segments int, material uint32) *Primitive {
	if segments < 1 {
		segments = 1
	}

	prim := &Primitive{}
	normal := types.XYZ(0, 1, 0)
	step := size / float32(segments)
	origin := center.Sub(types.XYZ(size*0.5, 0, size*0.5))
	for z := 0; z <= segments; z++ {
		for x := 0; x <= segments; x++ {
			prim.addVertex(origin.Add(types.XYZ(float32(x)*step, 0, float32(z)*step)), normal)
		}
	}

	row := uint32(segments + 1)
	for z := uint32(0); z < uint32(segments); z++ {
		for x := uint32(0); x < uint32(segments); x++ {
			a := z*row + x
			b := a + row
			prim.addTriangle(a, b, a+1, material)
			prim.addTriangle(a+1, b, b+1, material)
		}
	}
	return prim
}

// Create a UV sphere with segments latitude bands and 2*segments longitude
// bands. Pole rows emit a single triangle per quad so that no degenerate
// triangles are produced.
func NewSphere(center types.Vec3, radius float32, segments int, material uint32) *Primitive {
	if segments < 2 {
		segments = 2
	}
	lat, lon := segments, 2*segments

	prim := &Primitive{}
	for i := 0; i <= lat; i++ {
		theta := math.Pi * float64(i) / float64(lat)
		for j := 0; j <= lon; j++ {
			phi := 2 * math.Pi * float64(j) / float64(lon)
			normal := types.XYZ(
				float32(math.Sin(theta)*math.Cos(phi)),
				float32(math.Cos(theta)),
				float32(math.Sin(theta)*math.Sin(phi)),
			)
			prim.addVertex(center.Add(normal.Mul(radius)), normal)
		}
	}

	row := uint32(lon + 1)
	for i := 0; i < lat; i++ {
		for j := 0; j < lon; j++ {
			a := uint32(i)*row + uint32(j)
			b := a + row
			if i != 0 {
				prim.addTriangle(a, a+1, b, material)
			}
			if i != lat-1 {
				prim.addTriangle(a+1, b+1, b, material)
			}
		}
	}
	return prim
}

// Create an axis aligned box with the given full dimensions. Each face gets
// its own vertices so that normals stay flat.
func NewBox(center types.Vec3, dims types.Vec3, material uint32) *Primitive {
	half := dims.Mul(0.5)
	faces := []struct {
		normal, u, v types.Vec3
	}{
		{types.XYZ(1, 0, 0), types.XYZ(0, 0, -1), types.XYZ(0, 1, 0)},
		{types.XYZ(-1, 0, 0), types.XYZ(0, 0, 1), types.XYZ(0, 1, 0)},
		{types.XYZ(0, 1, 0), types.XYZ(1, 0, 0), types.XYZ(0, 0, -1)},
		{types.XYZ(0, -1, 0), types.XYZ(1, 0, 0), types.XYZ(0, 0, 1)},
		{types.XYZ(0, 0, 1), types.XYZ(1, 0, 0), types.XYZ(0, 1, 0)},
		{types.XYZ(0, 0, -1), types.XYZ(-1, 0, 0), types.XYZ(0, 1, 0)},
	}

	prim := &Primitive{}
	for _, f := range faces {
		faceCenter := center.Add(scale(f.normal, half))
		u := scale(f.u, half)
		v := scale(f.v, half)

		a := prim.addVertex(faceCenter.Sub(u).Sub(v), f.normal)
		b := prim.addVertex(faceCenter.Add(u).Sub(v), f.normal)
		c := prim.addVertex(faceCenter.Add(u).Add(v), f.normal)
		d := prim.addVertex(faceCenter.Sub(u).Add(v), f.normal)
		prim.addTriangle(a, b, c, material)
		prim.addTriangle(a, c, d, material)
	}
	return prim
}

// Create count randomly placed and oriented triangles inside the cube
// center +/- extent. The output only depends on seed.
func NewTriangleSoup(seed int64, count int, center types.Vec3, extent float32, material uint32) *Primitive {
	rng := rand.New(rand.NewSource(seed))
	randVec := func(e float32) types.Vec3 {
		return types.XYZ(
			(rng.Float32()*2-1)*e,
			(rng.Float32()*2-1)*e,
			(rng.Float32()*2-1)*e,
		)
	}

	prim := &Primitive{}
	size := extent * 0.1
	for i := 0; i < count; i++ {
		c := center.Add(randVec(extent))
		p1, p2, p3 := c.Add(randVec(size)), c.Add(randVec(size)), c.Add(randVec(size))
		normal := p2.Sub(p1).Cross(p3.Sub(p1)).Normalize()

		a := prim.addVertex(p1, normal)
		b := prim.addVertex(p2, normal)
		d := prim.addVertex(p3, normal)
		prim.addTriangle(a, b, d, material)
	}
	return prim
}

// Componentwise multiplication.
func scale(v, s types.Vec3) types.Vec3 {
	return types.XYZ(v[0]*s[0], v[1]*s[1], v[2]*s[2])
}
