package models

import (
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

func TestCubeShape(t *testing.T) {
	c := NewCube(math3d.V3(0, 0, 0), 2, 5)
	if c.TriangleCount() != 12 {
		t.Fatalf("TriangleCount = %d, want 12", c.TriangleCount())
	}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	lo, hi := c.GetBounds()
	if lo != math3d.V3(-1, -1, -1) || hi != math3d.V3(1, 1, 1) {
		t.Errorf("bounds = %v..%v", lo, hi)
	}
	for i := range c.TriangleCount() {
		if _, _, tex := c.Triangle(i); tex != 5 {
			t.Errorf("triangle %d texture = %d, want 5", i, tex)
		}
	}
}

// From outside every face must show exactly the triangles facing the
// viewer; from inside none of them.
func TestCubeWinding(t *testing.T) {
	cube := NewCube(math3d.Zero3(), 1, 0)

	viewpoints := []math3d.Vec3{
		math3d.V3(0, 0, -5),
		math3d.V3(0, 0, 5),
		math3d.V3(5, 0, 0),
		math3d.V3(-5, 0, 0),
		math3d.V3(0, 5, 0),
		math3d.V3(0, -5, 0),
	}
	for _, eye := range viewpoints {
		cam := render.NewCamera()
		cam.Position = eye

		front := 0
		for _, tri := range cam.TransformMesh(cube) {
			if !render.IsBackface(tri) {
				front++
			}
		}
		// an axis-aligned viewpoint sees exactly one face
		if front != 2 {
			t.Errorf("from %v: %d front-facing triangles, want 2", eye, front)
		}
	}

	cam := render.NewCamera()
	for _, tri := range cam.TransformMesh(cube) {
		if !render.IsBackface(tri) {
			t.Errorf("triangle %v faces a camera inside the cube", tri)
		}
	}
}

func TestCubeRendersFromDemoStart(t *testing.T) {
	cfg := render.DefaultConfig()
	cfg.Width, cfg.Height, cfg.PixelSize = 120, 120, 1
	cfg.FocalLength = 60

	cam := render.NewCamera()
	cam.Position = DemoStart
	r, err := render.NewRenderer(cfg, cam, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.AddMesh(NewCube(math3d.V3(0.5, 0.5, 0.5), 1, 0)); err != nil {
		t.Fatal(err)
	}

	stats := r.RenderFrame()
	if stats.TrianglesDrawn != 2 || stats.BackfaceCulled != 10 {
		t.Errorf("stats = %+v, want 2 drawn and 10 culled", stats)
	}
	if r.Framebuffer().GetPixel(60, 60) == cfg.Background {
		t.Error("cube face missing at screen center")
	}
}

func TestDemoScene(t *testing.T) {
	atlas := render.NewAtlas()
	meshes := DemoScene(atlas)

	if len(meshes) != 12 {
		t.Fatalf("DemoScene returned %d meshes, want 12", len(meshes))
	}
	if atlas.Len() != 3 {
		t.Errorf("atlas holds %d textures, want 3", atlas.Len())
	}
	light, warm := atlas.Key("demo-light"), atlas.Key("demo-warm")
	seen := map[int]bool{}
	for _, m := range meshes {
		if err := m.Validate(); err != nil {
			t.Error(err)
		}
		seen[m.Textures[0]] = true
	}
	if !seen[light] || !seen[warm] {
		t.Errorf("textures used: %v", seen)
	}
}
