// Package geom provides the small amount of 2D vector math the game needs.
package geom

import "math"

// Vec is a point or direction on the level plane, in tile units.
type Vec struct {
	X, Y float64
}

// V is shorthand for constructing a Vec.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }

// Scale returns v * s.
func (v Vec) Scale(s float64) Vec { return Vec{X: v.X * s, Y: v.Y * s} }

// Len returns the length of v.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the distance between two points.
func Dist(a, b Vec) float64 {
	return a.Sub(b).Len()
}

// Cell returns the integer tile containing v.
func (v Vec) Cell() (int, int) {
	return int(math.Floor(v.X)), int(math.Floor(v.Y))
}

// CellCenter returns the center point of tile (x, y).
func CellCenter(x, y int) Vec {
	return Vec{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}

// MoveTowards moves from toward to by at most step, never overshooting.
func MoveTowards(from, to Vec, step float64) Vec {
	d := to.Sub(from)
	l := d.Len()
	if l <= step || l == 0 {
		return to
	}
	return from.Add(d.Scale(step / l))
}
