package render

import (
	"math"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
)

// testMesh is a minimal MeshSource.
type testMesh struct {
	tris   [][3]math3d.Vec3
	uvs    [][3]math3d.Vec2
	tex    []int
	offset math3d.Vec3
}

func (m *testMesh) TriangleCount() int { return len(m.tris) }
func (m *testMesh) Offset() math3d.Vec3 { return m.offset }
func (m *testMesh) Counts() (int, int, int) {
	return len(m.tris), len(m.uvs), len(m.tex)
}

func (m *testMesh) Triangle(i int) ([3]math3d.Vec3, [3]math3d.Vec2, int) {
	return m.tris[i], m.uvs[i], m.tex[i]
}

var fullUV = [3]math3d.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0.5, Y: 1}}

// ccwTriangle faces a camera at the origin looking down +z.
func ccwTriangle(z float64) [3]math3d.Vec3 {
	return [3]math3d.Vec3{
		math3d.V3(-1, -1, z),
		math3d.V3(1, -1, z),
		math3d.V3(0, 1, z),
	}
}

func cwTriangle(z float64) [3]math3d.Vec3 {
	t := ccwTriangle(z)
	t[1], t[2] = t[2], t[1]
	return t
}

func singleTriangleMesh(tri [3]math3d.Vec3) *testMesh {
	return &testMesh{
		tris: [][3]math3d.Vec3{tri},
		uvs:  [][3]math3d.Vec2{fullUV},
		tex:  []int{0},
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height, cfg.PixelSize = 100, 100, 1
	cfg.FocalLength = 100
	cfg.FalloffDistance = 0
	return cfg
}

func assertVec(t *testing.T, label string, got, want math3d.Vec3, eps float64) {
	t.Helper()
	if !got.ApproxEqual(want, eps) {
		t.Errorf("%s = %v, want %v", label, got, want)
	}
}

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
