// Package models builds and loads the triangle meshes the renderer draws.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

var (
	// ErrMismatchedCounts is render.ErrMismatchedCounts, so either package's
	// sentinel matches with errors.Is.
	ErrMismatchedCounts = render.ErrMismatchedCounts

	// ErrNoGeometry is returned by loaders that find no triangles.
	ErrNoGeometry = errors.New("models: no triangles")
)

// Mesh is a triangle list with parallel UV and texture key slices. All
// three slices must have the same length.
type Mesh struct {
	Name      string
	Triangles [][3]math3d.Vec3
	UVs       [][3]math3d.Vec2
	Textures  []int // Atlas keys

	// Position is added to every vertex before the camera transform.
	Position math3d.Vec3

	// Bounding box in mesh-local space (see CalculateBounds)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3

	// bounded is false until the box matches Triangles
	bounded bool
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// AddTriangle appends a triangle with its UVs and texture key. The bounds
// are recomputed on the next GetBounds.
func (m *Mesh) AddTriangle(tri [3]math3d.Vec3, uv [3]math3d.Vec2, tex int) {
	m.Triangles = append(m.Triangles, tri)
	m.UVs = append(m.UVs, uv)
	m.Textures = append(m.Textures, tex)
	m.bounded = false
}

// Validate reports an error wrapping ErrMismatchedCounts when the slices
// differ in length.
func (m *Mesh) Validate() error {
	t, u, x := m.Counts()
	if t != u || t != x {
		return fmt.Errorf("%w: mesh %q has %d triangles, %d uvs, %d textures", ErrMismatchedCounts, m.Name, t, u, x)
	}
	return nil
}

// Counts returns the lengths of the triangle, UV and texture slices.
func (m *Mesh) Counts() (tris, uvs, textures int) {
	return len(m.Triangles), len(m.UVs), len(m.Textures)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// Triangle returns triangle i with its UVs and texture key.
func (m *Mesh) Triangle(i int) ([3]math3d.Vec3, [3]math3d.Vec2, int) {
	return m.Triangles[i], m.UVs[i], m.Textures[i]
}

// Offset returns the mesh position.
func (m *Mesh) Offset() math3d.Vec3 {
	return m.Position
}

// CalculateBounds computes the axis-aligned bounding box. Call it after
// editing Triangles directly.
func (m *Mesh) CalculateBounds() {
	m.bounded = true
	if len(m.Triangles) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Zero3(), math3d.Zero3()
		return
	}

	m.BoundsMin = m.Triangles[0][0]
	m.BoundsMax = m.Triangles[0][0]

	for _, tri := range m.Triangles {
		for _, v := range tri {
			m.BoundsMin = m.BoundsMin.Min(v)
			m.BoundsMax = m.BoundsMax.Max(v)
		}
	}
}

// GetBounds returns the axis-aligned bounding box, computing it first if
// triangles were added since the last CalculateBounds.
// Implements render.BoundedMesh.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	if !m.bounded {
		m.CalculateBounds()
	}
	return m.BoundsMin, m.BoundsMax
}

// BoundingSphere returns a sphere enclosing the mesh in world space.
func (m *Mesh) BoundingSphere() (center math3d.Vec3, radius float64) {
	center, radius = render.BoundingSphere(m.GetBounds())
	return center.Add(m.Position), radius
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	lo, hi := m.GetBounds()
	return lo.Add(hi).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	lo, hi := m.GetBounds()
	return hi.Sub(lo)
}

// Transform applies a matrix to every vertex and recomputes the bounds.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Triangles {
		for j := range 3 {
			m.Triangles[i][j] = mat.MulVec3(m.Triangles[i][j])
		}
	}
	m.CalculateBounds()
}

// Normalize centers the mesh on the origin and scales it so its largest
// dimension is size.
func (m *Mesh) Normalize(size float64) {
	m.CalculateBounds()
	dims := m.Size()
	maxDim := max(dims.X, dims.Y, dims.Z)
	if maxDim <= 0 {
		return
	}
	m.Transform(math3d.ScaleUniform(size / maxDim).Mul(math3d.Translate(m.Center().Negate())))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := *m
	clone.Triangles = append([][3]math3d.Vec3(nil), m.Triangles...)
	clone.UVs = append([][3]math3d.Vec2(nil), m.UVs...)
	clone.Textures = append([]int(nil), m.Textures...)
	return &clone
}
