package render

import (
	"github.com/taigrr/scanline/pkg/math3d"
)

// clipEpsilon bounds the edge/plane denominator away from zero.
const clipEpsilon = 1e-9

// TriangleBuffer holds triangles with their parallel UV, texture and culled
// data. All four slices always have the same length.
type TriangleBuffer struct {
	Tris   [][3]math3d.Vec3
	UVs    [][3]math3d.Vec2
	Tex    []int
	Culled []bool
}

// Len returns the number of triangles, culled ones included.
func (b *TriangleBuffer) Len() int {
	return len(b.Tris)
}

// Append adds a triangle that is not culled.
func (b *TriangleBuffer) Append(tri [3]math3d.Vec3, uv [3]math3d.Vec2, tex int) {
	b.Tris = append(b.Tris, tri)
	b.UVs = append(b.UVs, uv)
	b.Tex = append(b.Tex, tex)
	b.Culled = append(b.Culled, false)
}

// Reset empties the buffer, keeping its capacity.
func (b *TriangleBuffer) Reset() {
	b.Tris = b.Tris[:0]
	b.UVs = b.UVs[:0]
	b.Tex = b.Tex[:0]
	b.Culled = b.Culled[:0]
}

// Visible returns the number of triangles not marked culled.
func (b *TriangleBuffer) Visible() int {
	n := 0
	for _, c := range b.Culled {
		if !c {
			n++
		}
	}
	return n
}

func (b *TriangleBuffer) copyFrom(src *TriangleBuffer) {
	b.Tris = append(b.Tris[:0], src.Tris...)
	b.UVs = append(b.UVs[:0], src.UVs...)
	b.Tex = append(b.Tex[:0], src.Tex...)
	b.Culled = append(b.Culled[:0], src.Culled...)
}

func (b *TriangleBuffer) appendAll(src *TriangleBuffer) {
	b.Tris = append(b.Tris, src.Tris...)
	b.UVs = append(b.UVs, src.UVs...)
	b.Tex = append(b.Tex, src.Tex...)
	b.Culled = append(b.Culled, src.Culled...)
}

// ClipStats counts the work done by the last Clip call.
type ClipStats struct {
	In     int // Triangles received that were not already culled
	Split  int // Triangles that became two
	Culled int // Triangles found fully outside a plane
	Out    int // Triangles left visible
}

// Clipper clips triangle buffers against a set of planes. It owns its
// output and scratch storage, which is reused between calls.
type Clipper struct {
	work     TriangleBuffer
	overflow TriangleBuffer
	Stats    ClipStats
}

// NewClipper creates an empty clipper.
func NewClipper() *Clipper {
	return &Clipper{}
}

// Clip copies in and clips the copy against each plane in order. The input
// is never modified. The returned buffer belongs to the clipper and stays
// valid until the next call to Clip.
//
// Every visible triangle in the result lies on the inside of every plane.
// Triangles entirely outside a plane are marked culled; triangles with one
// vertex outside become two, the second appended after the plane is done.
func (c *Clipper) Clip(in *TriangleBuffer, planes []ClipPlane) *TriangleBuffer {
	c.work.copyFrom(in)
	c.Stats = ClipStats{In: in.Visible()}

	for _, p := range planes {
		c.overflow.Reset()
		n := c.work.Len()
		for i := range n {
			if c.work.Culled[i] {
				continue
			}
			c.clipTriangle(i, p)
		}
		c.work.appendAll(&c.overflow)
	}

	c.Stats.Out = c.work.Visible()
	return &c.work
}

func (c *Clipper) clipTriangle(i int, p ClipPlane) {
	tri := &c.work.Tris[i]
	uv := &c.work.UVs[i]

	var out [3]bool
	count := 0
	for j := range 3 {
		if p.Outside(tri[j]) {
			out[j] = true
			count++
		}
	}

	switch count {
	case 0:
		return

	case 1:
		o := 0
		for !out[o] {
			o++
		}
		a, b := (o+1)%3, (o+2)%3

		ia, uva := intersect(p, tri[a], tri[o], uv[a], uv[o])
		ib, uvb := intersect(p, tri[b], tri[o], uv[b], uv[o])

		// (o, a, b) becomes the quad (ia, a, b, ib): keep (ia, a, b) in
		// place and append (ia, b, ib), both in the original winding.
		newTri := [3]math3d.Vec3{ia, tri[b], ib}
		newUV := [3]math3d.Vec2{uva, uv[b], uvb}
		tri[o], uv[o] = ia, uva
		c.overflow.Append(newTri, newUV, c.work.Tex[i])
		c.Stats.Split++

	case 2:
		in := 0
		for out[in] {
			in++
		}
		for j := range 3 {
			if out[j] {
				tri[j], uv[j] = intersect(p, tri[in], tri[j], uv[in], uv[j])
			}
		}

	case 3:
		c.work.Culled[i] = true
		c.Stats.Culled++
	}
}

// intersect returns the point where the edge from the inside vertex near to
// the outside vertex far crosses the plane, with its interpolated UV.
func intersect(p ClipPlane, near, far math3d.Vec3, nearUV, farUV math3d.Vec2) (math3d.Vec3, math3d.Vec2) {
	denom := p.Normal.Dot(near) - p.Normal.Dot(far)
	if denom > -clipEpsilon {
		denom = -clipEpsilon
	}
	t := (p.D - p.Normal.Dot(far)) / denom
	t = max(0, min(1, t))
	return far.Lerp(near, t), farUV.Lerp(nearUV, t)
}
