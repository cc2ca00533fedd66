package scene

import (
	"fmt"
	"math"

	"github.com/achilleasa/photon/geometry"
	"github.com/achilleasa/photon/types"
)

// Stores the ray directions at the four corners of the camera frustrum
// (top-left, top-right, bottom-left, bottom-right). Per pixel rays are
// generated by interpolating the corner rays.
type Frustrum [4]types.Vec3

func (fr Frustrum) String() string {
	return fmt.Sprintf(
		"Frustrum Rays:\nTL : (%3.3f, %3.3f, %3.3f)\nTR : (%3.3f, %3.3f, %3.3f)\nBL : (%3.3f, %3.3f, %3.3f)\nBR : (%3.3f, %3.3f, %3.3f)",
		fr[0][0], fr[0][1], fr[0][2],
		fr[1][0], fr[1][1], fr[1][2],
		fr[2][0], fr[2][1], fr[2][2],
		fr[3][0], fr[3][1], fr[3][2],
	)
}

// A pinhole camera.
type Camera struct {
	Position types.Vec3
	LookAt   types.Vec3
	Up       types.Vec3

	// Rotation deltas in degrees. They are applied and reset by Update.
	Pitch float32
	Yaw   float32

	// Vertical field of view in degrees.
	FOV float32

	Frustrum Frustrum

	aspect float32
}

func NewCamera(fov float32) *Camera {
	return &Camera{
		Position: types.Vec3{0, 0, 0},
		LookAt:   types.Vec3{0, 0, -1},
		Up:       types.Vec3{0, 1, 0},
		FOV:      fov,
		aspect:   1,
	}
}

// Setup the camera aspect ratio (width / height).
func (c *Camera) SetupProjection(aspect float32) {
	if aspect <= 0 {
		aspect = 1
	}
	c.aspect = aspect
	c.Update()
}

// Apply pending pitch/yaw rotations and recalculate the frustrum.
func (c *Camera) Update() {
	dir := c.LookAt.Sub(c.Position).Normalize()
	pitchAxis := dir.Cross(c.Up)
	pitchQuat := types.QuatFromAxisAngle(pitchAxis, degToRad(c.Pitch))
	yawQuat := types.QuatFromAxisAngle(c.Up, degToRad(c.Yaw))

	orientQuat := pitchQuat.Mul(yawQuat).Normalize()

	// Update direction
	dir = orientQuat.Rotate(dir)
	c.LookAt = c.Position.Add(dir)
	c.Pitch, c.Yaw = 0, 0

	c.updateFrustrum(dir)
}

func (c *Camera) updateFrustrum(dir types.Vec3) {
	right := dir.Cross(c.Up).Normalize()
	if right.IsZero() {
		// Looking along the up axis; any axis perpendicular to dir will do.
		right = dir.Cross(types.XYZ(1, 0, 0)).Normalize()
		if right.IsZero() {
			right = dir.Cross(types.XYZ(0, 0, 1)).Normalize()
		}
	}
	up := right.Cross(dir).Normalize()

	halfH := float32(math.Tan(float64(degToRad(c.FOV)) * 0.5))
	halfW := halfH * c.aspect

	vUp := up.Mul(halfH)
	vRight := right.Mul(halfW)

	c.Frustrum[0] = dir.Add(vUp).Sub(vRight)
	c.Frustrum[1] = dir.Add(vUp).Add(vRight)
	c.Frustrum[2] = dir.Sub(vUp).Sub(vRight)
	c.Frustrum[3] = dir.Sub(vUp).Add(vRight)
}

// Get the ray through the normalized image coordinates (u, v); (0, 0) is
// the top-left corner and (1, 1) the bottom-right one.
func (c *Camera) Ray(u, v float32) geometry.Ray {
	top := lerp(c.Frustrum[0], c.Frustrum[1], u)
	bottom := lerp(c.Frustrum[2], c.Frustrum[3], u)
	return geometry.NewRay(c.Position, lerp(top, bottom, v).Normalize())
}

// Generate one primary ray per pixel for a width x height grid in row-major
// order. Every ray is offset inside its pixel by the next (jx, jy) pair of
// the supplied sequences; nil sequences sample the pixel center.
func (c *Camera) GenerateRays(width, height int, jx, jy *Halton) []geometry.Ray {
	rays := make([]geometry.Ray, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ox, oy := 0.5, 0.5
			if jx != nil && jy != nil {
				ox, oy = jx.Next(), jy.Next()
			}
			rays = append(rays, c.Ray(
				float32((float64(x)+ox)/float64(width)),
				float32((float64(y)+oy)/float64(height)),
			))
		}
	}
	return rays
}

func lerp(a, b types.Vec3, t float32) types.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

func degToRad(deg float32) float32 {
	return deg * math.Pi / 180.0
}
