package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Camera is the viewer. Rather than moving an eye through the world, the
// pipeline moves the world around the camera: TransformPoint applies the
// inverse of the camera's position and orientation.
//
// Camera space has x to the right, y up and z forward.
type Camera struct {
	Position math3d.Vec3

	XRot float64 // Yaw in degrees, around the vertical axis
	YRot float64 // Pitch in degrees, around the lateral axis
	FOV  float64 // Scale applied to the focal length; 1 is neutral
}

// NewCamera creates a camera at the origin looking down +z.
func NewCamera() *Camera {
	return &Camera{FOV: 1}
}

// Reset returns the camera to the origin with no rotation and unit FOV.
func (c *Camera) Reset() {
	*c = Camera{FOV: 1}
}

// Forward returns the world-space direction Translate uses for +z.
// Pitch does not contribute.
func (c *Camera) Forward() math3d.Vec3 {
	a := math3d.Radians(c.XRot)
	return math3d.V3(math.Sin(a), 0, math.Cos(a))
}

// Right returns the world-space direction Translate uses for +x.
func (c *Camera) Right() math3d.Vec3 {
	a := math3d.Radians(c.XRot)
	return math3d.V3(math.Cos(a), 0, -math.Sin(a))
}

// Translate moves the camera by delta expressed in camera-local axes
// (x right, y up, z forward). Only yaw orients the move.
func (c *Camera) Translate(delta math3d.Vec3) {
	c.Position = c.Position.
		Add(c.Right().Scale(delta.X)).
		Add(math3d.Up().Scale(delta.Y)).
		Add(c.Forward().Scale(delta.Z))
}

// Rotate adds to yaw and pitch, in degrees. Nothing is clamped or wrapped
// here; callers keep pitch in [-90, 90] and yaw in [0, 360).
func (c *Camera) Rotate(deltaYaw, deltaPitch float64) {
	c.XRot += deltaYaw
	c.YRot += deltaPitch
}

// TransformPoint maps a world-space point into camera space.
func (c *Camera) TransformPoint(p math3d.Vec3) math3d.Vec3 {
	yaw, pitch := math3d.Radians(c.XRot), math3d.Radians(c.YRot)
	return transformPoint(p.Sub(c.Position), yaw, pitch)
}

// transformPoint rotates rel (already relative to the camera) by yaw in the
// xz plane and then by pitch in the yz plane. A point on a rotation axis is
// left alone by that rotation.
func transformPoint(rel math3d.Vec3, yaw, pitch float64) math3d.Vec3 {
	rel.X, rel.Z = math3d.RotatePlane(rel.X, rel.Z, yaw)
	rel.Y, rel.Z = math3d.RotatePlane(rel.Y, rel.Z, pitch)
	return rel
}

// TransformTriangle maps each vertex of tri into camera space.
func (c *Camera) TransformTriangle(tri [3]math3d.Vec3) [3]math3d.Vec3 {
	yaw, pitch := math3d.Radians(c.XRot), math3d.Radians(c.YRot)
	for i := range tri {
		tri[i] = transformPoint(tri[i].Sub(c.Position), yaw, pitch)
	}
	return tri
}

// TransformMesh returns a newly allocated slice holding every triangle of m
// in camera space, offset by the mesh position first. m is not modified.
func (c *Camera) TransformMesh(m MeshSource) [][3]math3d.Vec3 {
	out := make([][3]math3d.Vec3, m.TriangleCount())
	off := m.Offset()
	for i := range out {
		tri, _, _ := m.Triangle(i)
		for j := range tri {
			tri[j] = tri[j].Add(off)
		}
		out[i] = c.TransformTriangle(tri)
	}
	return out
}

// transformInto appends the camera-space triangles of m, with their UVs and
// texture keys, to buf.
func (c *Camera) transformInto(buf *TriangleBuffer, m MeshSource) {
	yaw, pitch := math3d.Radians(c.XRot), math3d.Radians(c.YRot)
	off := m.Offset().Sub(c.Position)
	for i := range m.TriangleCount() {
		tri, uv, tex := m.Triangle(i)
		for j := range tri {
			tri[j] = transformPoint(tri[j].Add(off), yaw, pitch)
		}
		buf.Append(tri, uv, tex)
	}
}
