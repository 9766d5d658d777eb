package math3d

import "math"

// Mat4 is a column-major 4x4 matrix: element (row, col) is m[row+4*col],
// and the translation sits in m[12:15].
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate moves points by v.
func Translate(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		v.X, v.Y, v.Z, 1,
	}
}

// ScaleUniform scales about the origin. Loaders use it to normalize model
// size.
func ScaleUniform(s float64) Mat4 {
	return Mat4{
		s, 0, 0, 0,
		0, s, 0, 0,
		0, 0, s, 0,
		0, 0, 0, 1,
	}
}

// RotateX rotates by angle radians about +x, taking +y toward +z.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY rotates by angle radians about +y, taking +z toward +x.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// Projection creates the pipeline's perspective matrix.
//
// Output x and y are in pixels from the screen center once divided by w,
// and w carries the camera-space depth:
//
//	x' = aspect*focal*fov*x
//	y' = focal*fov*y
//	z' = z*far/(far-near) - far*near/(far-near)
//	w' = z
func Projection(aspect, focal, fov, near, far float64) Mat4 {
	q := far / (far - near)
	return Mat4{
		aspect * focal * fov, 0, 0, 0,
		0, focal * fov, 0, 0,
		0, 0, q, 1,
		0, 0, -near * q, 0,
	}
}

// Mul returns a*b, which applies b first.
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for c := range 4 {
		col := a.MulVec4(Vec4{b[4*c], b[4*c+1], b[4*c+2], b[4*c+3]})
		m[4*c], m[4*c+1], m[4*c+2], m[4*c+3] = col.X, col.Y, col.Z, col.W
	}
	return m
}

// MulVec3 transforms p as a point and divides all three components by the
// resulting w. It is meant for affine matrices; use MulVec4 for the
// projection.
func (m Mat4) MulVec3(p Vec3) Vec3 {
	h := m.MulVec4(p.Extend(1))
	if h.W == 0 || h.W == 1 {
		return Vec3{h.X, h.Y, h.Z}
	}
	return Vec3{h.X / h.W, h.Y / h.W, h.Z / h.W}
}

// MulVec4 transforms a homogeneous point.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}
