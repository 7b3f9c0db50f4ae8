// Package geo provides the 2D vector math used by the simulation field.
// The field uses screen coordinates: x grows right, y grows down.
package geo

import "math"

// Vec2 is an immutable 2D vector. Used for both positions and velocities.
type Vec2 struct {
	X float64
	Y float64
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale returns v multiplied by a scalar.
func (v Vec2) Scale(factor float64) Vec2 {
	return Vec2{X: v.X * factor, Y: v.Y * factor}
}

// Length returns the Euclidean norm of the vector.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// LengthSquared returns the squared norm, avoiding the sqrt for comparisons.
func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Distance returns the straight-line distance between two points.
func (v Vec2) Distance(other Vec2) float64 {
	return v.Sub(other).Length()
}

// Normalize returns the unit vector in the direction of v.
// The zero vector normalizes to the zero vector, never a division fault.
func (v Vec2) Normalize() Vec2 {
	length := v.Length()
	if length == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / length, Y: v.Y / length}
}

// ClampLength rescales v to max when its length exceeds max, preserving
// direction. Vectors at or below max are returned unchanged.
func (v Vec2) ClampLength(max float64) Vec2 {
	length := v.Length()
	if length <= max {
		return v
	}
	return Vec2{X: v.X / length * max, Y: v.Y / length * max}
}

// Heading returns the direction of v in degrees. The y sign is flipped
// because the field's vertical axis increases downward, so a positive
// heading is counter-clockwise on screen.
func (v Vec2) Heading() float64 {
	return math.Atan2(-v.Y, v.X) * 180.0 / math.Pi
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// FromAngle builds a vector from an angle in radians and a magnitude.
func FromAngle(angle, magnitude float64) Vec2 {
	return Vec2{X: math.Cos(angle) * magnitude, Y: math.Sin(angle) * magnitude}
}
