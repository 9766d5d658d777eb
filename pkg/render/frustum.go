package render

import (
	"github.com/taigrr/scanline/pkg/math3d"
)

// ClipPlane is an oriented plane through three non-collinear points. The
// normal is (P1-P0) x (P2-P0) and D is Normal·P0. A point v lies outside
// the plane when Normal·v > D; the camera side is inside.
type ClipPlane struct {
	Points [3]math3d.Vec3
	Normal math3d.Vec3
	D      float64
}

// NewClipPlane builds a plane from three points.
func NewClipPlane(p0, p1, p2 math3d.Vec3) ClipPlane {
	n := math3d.TriangleNormal(p0, p1, p2)
	return ClipPlane{
		Points: [3]math3d.Vec3{p0, p1, p2},
		Normal: n,
		D:      n.Dot(p0),
	}
}

// Outside reports whether v is strictly outside the plane.
func (p ClipPlane) Outside(v math3d.Vec3) bool {
	return p.Normal.Dot(v) > p.D
}

// Distance returns how far v lies outside the plane, in world units.
// Negative values are inside.
func (p ClipPlane) Distance(v math3d.Vec3) float64 {
	l := p.Normal.Len()
	if l == 0 {
		return 0
	}
	return (p.Normal.Dot(v) - p.D) / l
}

// Frustum plane indices, in clipping order.
const (
	FrustumNear = iota
	FrustumRight
	FrustumLeft
	FrustumTop
	FrustumBottom
	frustumPlanes
)

// Frustum is the camera-space view volume: a near plane and four side
// planes through the origin.
type Frustum struct {
	Planes [frustumPlanes]ClipPlane
}

// NewFrustum derives the view volume from the config and the camera FOV
// scale. The side planes pass through the screen edges of the internal
// buffer after projection.
func NewFrustum(cfg Config, fov float64) Frustum {
	w, h := cfg.InternalSize()
	if fov <= 0 {
		fov = 1
	}
	kx := float64(w) / 2 / (cfg.PixelAspect * cfg.FocalLength * fov)
	ky := float64(h) / 2 / (cfg.FocalLength * fov)
	n := cfg.Near
	o := math3d.Zero3()

	var f Frustum
	f.Planes[FrustumNear] = NewClipPlane(math3d.V3(0, 0, n), math3d.V3(0, 1, n), math3d.V3(1, 0, n))
	f.Planes[FrustumRight] = NewClipPlane(o, math3d.V3(0, 1, 0), math3d.V3(kx, 0, 1))
	f.Planes[FrustumLeft] = NewClipPlane(o, math3d.V3(-kx, 0, 1), math3d.V3(0, 1, 0))
	f.Planes[FrustumTop] = NewClipPlane(o, math3d.V3(0, ky, 1), math3d.V3(1, 0, 0))
	f.Planes[FrustumBottom] = NewClipPlane(o, math3d.V3(1, 0, 0), math3d.V3(0, -ky, 1))
	return f
}

// ContainsPoint reports whether p is inside every plane.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].Outside(p) {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether any part of the sphere may be inside the
// frustum. center is in camera space.
func (f Frustum) IntersectsSphere(center math3d.Vec3, radius float64) bool {
	for i := range f.Planes {
		if f.Planes[i].Distance(center) > radius {
			return false
		}
	}
	return true
}

// BoundingSphere returns a sphere enclosing the box min..max.
func BoundingSphere(min, max math3d.Vec3) (center math3d.Vec3, radius float64) {
	center = min.Add(max).Scale(0.5)
	return center, max.Sub(center).Len()
}
