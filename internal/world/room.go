package world

import "github.com/samdwyer/dreadhollow/internal/geom"

// Room is an axis-aligned box of cells. It doubles as the shape of zone
// triggers.
type Room struct {
	X, Y          int // top-left cell
	Width, Height int
}

// Center returns the center cell of the room.
func (r Room) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains returns true if the cell is inside the room.
func (r Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// ContainsVec reports whether a point on the level plane is inside the room.
func (r Room) ContainsVec(v geom.Vec) bool {
	return r.Contains(v.Cell())
}

// Clamp moves a point to the nearest cell center inside the room.
func (r Room) Clamp(v geom.Vec) geom.Vec {
	x, y := v.Cell()
	x = max(r.X, min(x, r.X+r.Width-1))
	y = max(r.Y, min(y, r.Y+r.Height-1))
	if r.Contains(v.Cell()) {
		return v
	}
	return geom.CellCenter(x, y)
}

// Intersects returns true if this room overlaps another.
func (r Room) Intersects(other Room) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}
