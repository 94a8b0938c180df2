// Package world provides level generation, the tile map, and the grid
// navigation agent that moves enemies around it.
package world

// Tile represents a single map cell.
type Tile rune

const (
	TileWall       Tile = '#'
	TileFloor      Tile = '.'
	TileDoorClosed Tile = '+'
	TileDoorOpen   Tile = '\''
)

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t == TileFloor || t == TileDoorOpen
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}
