package component

import "math"

// Vec3 is a position, direction or extent in world units. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3           { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3           { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3      { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64        { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Len() float64              { return math.Sqrt(v.Dot(v)) }
func (v Vec3) Flat() Vec3                { return Vec3{v.X, 0, v.Z} }
func (v Vec3) DistanceTo(o Vec3) float64 { return o.Sub(v).Len() }

// Normalize returns the unit vector, or the zero vector for zero input.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Forward is the horizontal facing for a yaw angle in radians. Yaw 0 looks
// down -Z.
func Forward(yaw float64) Vec3 {
	return Vec3{X: -math.Sin(yaw), Z: -math.Cos(yaw)}
}

// Right is the horizontal strafe direction for a yaw angle.
func Right(yaw float64) Vec3 {
	return Vec3{X: math.Cos(yaw), Z: -math.Sin(yaw)}
}
