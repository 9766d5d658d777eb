// Package math3d provides the vector and matrix primitives used by the
// scanline pipeline.
package math3d

import "math"

// Vec3 is a point or direction. In camera space x is right, y is up and z
// is forward.
type Vec3 struct {
	X, Y, Z float64
}

// V3 creates a new Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Zero3 returns the zero vector.
func Zero3() Vec3 {
	return Vec3{}
}

// Up returns world +y, the direction vertical camera moves follow.
func Up() Vec3 {
	return Vec3{Y: 1}
}

// Forward returns camera-space +z.
func Forward() Vec3 {
	return Vec3{Z: 1}
}

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Negate() Vec3         { return Vec3{-a.X, -a.Y, -a.Z} }

func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Cross returns a × b. With x right, y up and z forward, x × y = z.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) Len() float64 { return math.Sqrt(a.Dot(a)) }

// Normalize returns a unit vector, or the zero vector for zero input.
func (a Vec3) Normalize() Vec3 {
	if l := a.Len(); l != 0 {
		return a.Scale(1 / l)
	}
	return Vec3{}
}

// Lerp returns a + (b-a)*t. Clipping uses it to place intersection points.
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}

// Min and Max are component-wise; bounding boxes grow with them.
func (a Vec3) Min(b Vec3) Vec3 { return Vec3{min(a.X, b.X), min(a.Y, b.Y), min(a.Z, b.Z)} }
func (a Vec3) Max(b Vec3) Vec3 { return Vec3{max(a.X, b.X), max(a.Y, b.Y), max(a.Z, b.Z)} }

// Extend returns the homogeneous point (x, y, z, w).
func (a Vec3) Extend(w float64) Vec4 {
	return Vec4{a.X, a.Y, a.Z, w}
}

// ApproxEqual reports whether every component of a and b differs by at
// most eps.
func (a Vec3) ApproxEqual(b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps &&
		math.Abs(a.Y-b.Y) <= eps &&
		math.Abs(a.Z-b.Z) <= eps
}

// TriangleNormal returns (b-a) × (c-a), unnormalized. Its length is twice
// the triangle's area.
func TriangleNormal(a, b, c Vec3) Vec3 {
	return b.Sub(a).Cross(c.Sub(a))
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// RotatePlane rotates the point (x, y) about the origin by angle radians,
// counter-clockwise from +x toward +y. It works in polar form, so a point
// at the origin comes back unchanged.
func RotatePlane(x, y, angle float64) (float64, float64) {
	r := math.Hypot(x, y)
	if r == 0 {
		return x, y
	}
	theta := math.Atan2(y, x) + angle
	return r * math.Cos(theta), r * math.Sin(theta)
}
