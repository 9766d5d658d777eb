package render

import "github.com/taigrr/scanline/pkg/math3d"

// Projector maps camera-space points to screen space: pixels from the
// buffer center with y up, plus the camera-space depth.
type Projector struct {
	Matrix math3d.Mat4
	aspect float64
	focal  float64
}

// NewProjector builds the projection for cfg at the given FOV scale.
func NewProjector(cfg Config, fov float64) Projector {
	if fov <= 0 {
		fov = 1
	}
	return Projector{
		Matrix: math3d.Projection(cfg.PixelAspect, cfg.FocalLength, fov, cfg.Near, cfg.Far),
		aspect: cfg.PixelAspect,
		focal:  cfg.FocalLength * fov,
	}
}

// Project applies the projection and divides x and y by w. The returned Z
// is the camera-space depth, not the projected one, since 1/z is what
// interpolates linearly across the screen. A zero w leaves x and y
// undivided.
func (p Projector) Project(v math3d.Vec3) math3d.Vec3 {
	s := p.Matrix.MulVec4(v.Extend(1)).PerspectiveDivide()
	s.Z = v.Z
	return s
}

// ProjectTriangle projects the three vertices of tri.
func (p Projector) ProjectTriangle(tri [3]math3d.Vec3) [3]math3d.Vec3 {
	for i := range tri {
		tri[i] = p.Project(tri[i])
	}
	return tri
}

// Unproject inverts Project given its retained depth.
func (p Projector) Unproject(s math3d.Vec3) math3d.Vec3 {
	return math3d.V3(
		s.X*s.Z/(p.aspect*p.focal),
		s.Y*s.Z/p.focal,
		s.Z,
	)
}
