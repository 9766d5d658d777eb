package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// rasterEpsilon is added to interpolation denominators so horizontal edges
// and zero-width spans never divide by zero.
const rasterEpsilon = 1e-9

// missingTexture is sampled when a nil texture is drawn.
var missingTexture = NewMissingTexture()

// RasterStats counts rasterizer work since the last ClearDepth.
type RasterStats struct {
	Triangles     int // Triangles submitted
	PixelsWritten int // Pixels that passed the depth test
	DepthRejected int // Pixels covered but rejected by the depth test
}

// Rasterizer fills screen-space triangles into a framebuffer with a
// per-pixel depth test and perspective-correct texture coordinates.
type Rasterizer struct {
	fb      *Framebuffer
	zbuffer []float64 // Camera-space depth per pixel, row-major

	near    float64 // Pixels nearer than this are rejected
	falloff float64 // Depth at which shading reaches black; 0 disables

	Stats RasterStats
}

// NewRasterizer creates a rasterizer drawing into fb.
func NewRasterizer(fb *Framebuffer, near, falloff float64) *Rasterizer {
	r := &Rasterizer{
		fb:      fb,
		near:    near,
		falloff: falloff,
	}
	r.Resize()
	return r
}

// Resize matches the depth buffer to the framebuffer size and clears it.
func (r *Rasterizer) Resize() {
	if r.fb == nil {
		r.zbuffer = nil
		return
	}
	r.zbuffer = make([]float64, r.fb.Width*r.fb.Height)
	r.ClearDepth()
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// ClearDepth resets every depth to math.MaxFloat64 and zeroes Stats.
// Call it at the start of each frame.
func (r *Rasterizer) ClearDepth() {
	r.Stats = RasterStats{}
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// Depth returns the stored depth at (x, y), or math.MaxFloat64 out of
// bounds.
func (r *Rasterizer) Depth(x, y int) float64 {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return math.MaxFloat64
	}
	return r.zbuffer[y*r.fb.Width+x]
}

// rasterVertex is a vertex in pixel coordinates carrying 1/z and uv/z.
type rasterVertex struct {
	x, y   float64
	invZ   float64
	uOverZ float64
	vOverZ float64
}

func lerpRaster(a, b rasterVertex, t float64) rasterVertex {
	return rasterVertex{
		x:      a.x + (b.x-a.x)*t,
		y:      a.y + (b.y-a.y)*t,
		invZ:   a.invZ + (b.invZ-a.invZ)*t,
		uOverZ: a.uOverZ + (b.uOverZ-a.uOverZ)*t,
		vOverZ: a.vOverZ + (b.vOverZ-a.vOverZ)*t,
	}
}

// toPixel maps a screen-space point (origin at the center, y up) to
// framebuffer coordinates (origin top-left, y down).
func (r *Rasterizer) toPixel(s math3d.Vec3) (x, y float64) {
	return s.X + float64(r.fb.Width)/2, float64(r.fb.Height)/2 - s.Y
}

// DrawTriangle fills a projected triangle. screen holds Projector output:
// x and y in pixels from the buffer center and z the camera-space depth.
// Only pixels nearer than the stored depth are written. It returns the
// number of pixels written; degenerate triangles write none.
func (r *Rasterizer) DrawTriangle(screen [3]math3d.Vec3, uv [3]math3d.Vec2, tex *Texture) int {
	if r.fb == nil {
		return 0
	}
	if tex == nil {
		tex = missingTexture
	}
	r.Stats.Triangles++

	var v [3]rasterVertex
	for i := range 3 {
		z := screen[i].Z
		if z <= 0 {
			return 0
		}
		x, y := r.toPixel(screen[i])
		inv := 1 / z
		v[i] = rasterVertex{x: x, y: y, invZ: inv, uOverZ: uv[i].X * inv, vOverZ: uv[i].Y * inv}
	}

	// Sort by row, top first.
	if v[1].y < v[0].y {
		v[0], v[1] = v[1], v[0]
	}
	if v[2].y < v[1].y {
		v[1], v[2] = v[2], v[1]
	}
	if v[1].y < v[0].y {
		v[0], v[1] = v[1], v[0]
	}

	width, height := r.fb.Width, r.fb.Height
	yStart := max(0, int(math.Ceil(v[0].y-0.5)))
	yEnd := min(height, int(math.Ceil(v[2].y-0.5)))

	written := 0
	for py := yStart; py < yEnd; py++ {
		cy := float64(py) + 0.5

		// The long edge spans the whole triangle; the short edge switches
		// at the middle vertex.
		a := lerpRaster(v[0], v[2], (cy-v[0].y)/(v[2].y-v[0].y+rasterEpsilon))
		var b rasterVertex
		if cy < v[1].y {
			b = lerpRaster(v[0], v[1], (cy-v[0].y)/(v[1].y-v[0].y+rasterEpsilon))
		} else {
			b = lerpRaster(v[1], v[2], (cy-v[1].y)/(v[2].y-v[1].y+rasterEpsilon))
		}
		if a.x > b.x {
			a, b = b, a
		}

		xStart := max(0, int(math.Ceil(a.x-0.5)))
		xEnd := min(width, int(math.Ceil(b.x-0.5)))
		span := b.x - a.x + rasterEpsilon
		row := py * width

		for px := xStart; px < xEnd; px++ {
			t := (float64(px) + 0.5 - a.x) / span
			invZ := a.invZ + (b.invZ-a.invZ)*t
			if invZ <= 0 {
				continue
			}
			depth := 1 / invZ
			idx := row + px
			if depth < r.near || depth >= r.zbuffer[idx] {
				r.Stats.DepthRejected++
				continue
			}
			r.zbuffer[idx] = depth

			u := (a.uOverZ + (b.uOverZ-a.uOverZ)*t) * depth
			w := (a.vOverZ + (b.vOverZ-a.vOverZ)*t) * depth
			c := tex.Sample(u, w)
			c.A = 255
			if r.falloff > 0 {
				c = Shade(c, max(0, 1-depth/r.falloff))
			}
			r.fb.Pixels[idx] = c
			written++
		}
	}

	r.Stats.PixelsWritten += written
	return written
}
