package models

import (
	"fmt"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// cubeFaces lists each face as its outward normal and the in-face up axis.
var cubeFaces = [6][2]math3d.Vec3{
	{{X: 0, Y: 0, Z: -1}, {X: 0, Y: 1, Z: 0}},
	{{X: 0, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 0}},
	{{X: -1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
	{{X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
	{{X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}},
	{{X: 0, Y: -1, Z: 0}, {X: 0, Y: 0, Z: 1}},
}

// NewCube builds an axis-aligned cube of edge size centered at center. Its
// 12 triangles are counter-clockwise seen from outside and every face maps
// the whole texture.
func NewCube(center math3d.Vec3, size float64, tex int) *Mesh {
	m := NewMesh("cube")
	h := size / 2
	uv := [4]math3d.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

	for _, f := range cubeFaces {
		n, w := f[0], f[1]
		u := n.Cross(w)
		c := n.Scale(h)
		u, w = u.Scale(h), w.Scale(h)
		corners := [4]math3d.Vec3{
			c.Sub(u).Sub(w),
			c.Add(u).Sub(w),
			c.Add(u).Add(w),
			c.Sub(u).Add(w),
		}
		m.AddTriangle([3]math3d.Vec3{corners[0], corners[1], corners[2]}, [3]math3d.Vec2{uv[0], uv[1], uv[2]}, tex)
		m.AddTriangle([3]math3d.Vec3{corners[0], corners[2], corners[3]}, [3]math3d.Vec2{uv[0], uv[2], uv[3]}, tex)
	}

	m.Position = center
	m.CalculateBounds()
	return m
}

// demoCells are the unit cells of the demo wall, as (column, row).
var demoCells = [][2]int{
	{0, 0}, {0, 1},
	{1, 0}, {1, 1},
	{-1, 0}, {-1, 1},
	{2, 0}, {2, 1},
	{-2, 0}, {-2, 1},
	{3, 1}, {3, 0},
}

// DemoStart is where the demo camera begins.
var DemoStart = math3d.V3(0.5, 0.5, -2)

// DemoScene registers two checker textures in atlas and returns a two-high
// wall of unit cubes, alternating textures, in front of DemoStart.
func DemoScene(atlas *render.Atlas) []*Mesh {
	light := atlas.Add("demo-light", render.NewCheckerTexture(32, 32, 8, render.RGB(230, 230, 230), render.RGB(150, 150, 160)))
	warm := atlas.Add("demo-warm", render.NewCheckerTexture(32, 32, 4, render.RGB(200, 120, 60), render.RGB(120, 60, 30)))

	meshes := make([]*Mesh, 0, len(demoCells))
	for i, cell := range demoCells {
		tex := light
		if (cell[0]+cell[1])%2 != 0 {
			tex = warm
		}
		cube := NewCube(math3d.V3(float64(cell[0])+0.5, float64(cell[1])+0.5, 0.5), 1, tex)
		cube.Name = fmt.Sprintf("cube-%d", i)
		meshes = append(meshes, cube)
	}
	return meshes
}
