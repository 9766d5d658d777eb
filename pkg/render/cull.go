package render

import "github.com/taigrr/scanline/pkg/math3d"

// IsBackface reports whether a camera-space triangle faces away from the
// camera at the origin. Triangles wound counter-clockwise on screen face
// the camera.
func IsBackface(tri [3]math3d.Vec3) bool {
	return math3d.TriangleNormal(tri[0], tri[1], tri[2]).Dot(tri[0]) < 0
}

// CullBackfaces marks every visible backfacing triangle in buf as culled
// and returns how many it marked.
func CullBackfaces(buf *TriangleBuffer) int {
	culled := 0
	for i := range buf.Tris {
		if buf.Culled[i] {
			continue
		}
		if IsBackface(buf.Tris[i]) {
			buf.Culled[i] = true
			culled++
		}
	}
	return culled
}
