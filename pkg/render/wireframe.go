package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// DrawOutline draws the edges of a projected triangle without depth
// testing. Used as an overlay over filled triangles.
func (r *Rasterizer) DrawOutline(screen [3]math3d.Vec3, c Color) {
	if r.fb == nil {
		return
	}
	var px, py [3]int
	for i := range 3 {
		x, y := r.toPixel(screen[i])
		px[i], py[i] = int(math.Floor(x)), int(math.Floor(y))
	}
	for i := range 3 {
		j := (i + 1) % 3
		r.fb.DrawLine(px[i], py[i], px[j], py[j], c)
	}
}
