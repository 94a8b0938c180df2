package world

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dreadhollow/internal/telemetry"
)

const (
	// Default map dimensions, sized for an 80x24 terminal minus the HUD.
	DefaultWidth  = 80
	DefaultHeight = 21

	// BSP parameters
	minRoomSize = 5
	maxRoomSize = 12
	minLeafSize = 8
)

// Map is one generated level layout.
type Map struct {
	Width  int
	Height int
	Tiles  [][]Tile
	Rooms  []Room
	rng    *rand.Rand
}

// NewMap creates a map filled with walls. rng drives every random choice
// made while generating and populating it.
func NewMap(width, height int, rng *rand.Rand) *Map {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Map{
		Width:  width,
		Height: height,
		Tiles:  tiles,
		rng:    rng,
	}
}

// Generate carves rooms and corridors using binary space partitioning.
func (m *Map) Generate(ctx context.Context) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "world.generate")
	defer span.End()

	startTime := time.Now()

	root := &bspNode{
		x:      1,
		y:      1,
		width:  m.Width - 2,
		height: m.Height - 2,
	}
	m.split(root)
	m.placeRooms(root)
	m.connect(root)

	span.SetAttributes(
		attribute.Int("map.width", m.Width),
		attribute.Int("map.height", m.Height),
		attribute.Int("map.room_count", len(m.Rooms)),
		attribute.Int64("map.generation_ms", time.Since(startTime).Milliseconds()),
	)
}

// InBounds reports whether (x, y) lies on the map.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// IsPassable returns true if the given cell can be walked on.
func (m *Map) IsPassable(x, y int) bool {
	return m.InBounds(x, y) && m.Tiles[y][x].IsPassable()
}

// GetTile returns the tile at the given cell. Off-map cells are walls.
func (m *Map) GetTile(x, y int) Tile {
	if !m.InBounds(x, y) {
		return TileWall
	}
	return m.Tiles[y][x]
}

// SetTile replaces the tile at (x, y).
func (m *Map) SetTile(x, y int, t Tile) {
	if m.InBounds(x, y) {
		m.Tiles[y][x] = t
	}
}

// ToggleDoor opens a closed door or closes an open one and returns the new
// open state. ok is false when (x, y) is not a door.
func (m *Map) ToggleDoor(x, y int) (open, ok bool) {
	switch m.GetTile(x, y) {
	case TileDoorClosed:
		m.Tiles[y][x] = TileDoorOpen
		return true, true
	case TileDoorOpen:
		m.Tiles[y][x] = TileDoorClosed
		return false, true
	}
	return false, false
}

// RoomIndexAt returns the index of the room containing the cell, or -1.
func (m *Map) RoomIndexAt(x, y int) int {
	for i, room := range m.Rooms {
		if room.Contains(x, y) {
			return i
		}
	}
	return -1
}

// RandomPointInRoom returns a random passable cell within the room.
func (m *Map) RandomPointInRoom(roomIndex int) (int, int) {
	if roomIndex < 0 || roomIndex >= len(m.Rooms) {
		return -1, -1
	}
	room := m.Rooms[roomIndex]

	for i := 0; i < 100; i++ {
		x := room.X + m.rng.Intn(room.Width)
		y := room.Y + m.rng.Intn(room.Height)
		if m.IsPassable(x, y) {
			return x, y
		}
	}
	return room.Center()
}

type bspNode struct {
	x, y          int
	width, height int
	left, right   *bspNode
	room          *Room
}

func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

func (m *Map) split(node *bspNode) {
	canSplitH := node.height >= minLeafSize*2
	canSplitV := node.width >= minLeafSize*2

	var horizontal bool
	switch {
	case canSplitV && node.width > node.height:
		horizontal = false
	case canSplitH:
		horizontal = true
	case canSplitV:
		horizontal = false
	default:
		return
	}

	size := node.width
	if horizontal {
		size = node.height
	}
	lo, hi := minLeafSize, size-minLeafSize
	if hi < lo {
		return
	}
	at := lo + m.rng.Intn(hi-lo+1)

	if horizontal {
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: at}
		node.right = &bspNode{x: node.x, y: node.y + at, width: node.width, height: node.height - at}
	} else {
		node.left = &bspNode{x: node.x, y: node.y, width: at, height: node.height}
		node.right = &bspNode{x: node.x + at, y: node.y, width: node.width - at, height: node.height}
	}

	m.split(node.left)
	m.split(node.right)
}

func (m *Map) placeRooms(node *bspNode) {
	if node == nil {
		return
	}
	if !node.isLeaf() {
		m.placeRooms(node.left)
		m.placeRooms(node.right)
		return
	}

	w := min(minRoomSize+m.rng.Intn(maxRoomSize-minRoomSize+1), node.width-2)
	h := min(minRoomSize+m.rng.Intn(maxRoomSize-minRoomSize+1), node.height-2)
	if w < minRoomSize || h < minRoomSize {
		return
	}

	room := Room{
		X:      node.x + 1 + m.rng.Intn(node.width-w-1),
		Y:      node.y + 1 + m.rng.Intn(node.height-h-1),
		Width:  w,
		Height: h,
	}
	node.room = &room
	m.Rooms = append(m.Rooms, room)
	m.carveRect(room.X, room.Y, room.X+room.Width-1, room.Y+room.Height-1)
}

// carveRect floors every interior cell in the inclusive rectangle.
func (m *Map) carveRect(x1, y1, x2, y2 int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if x > 0 && x < m.Width-1 && y > 0 && y < m.Height-1 {
				m.Tiles[y][x] = TileFloor
			}
		}
	}
}

func (m *Map) connect(node *bspNode) {
	if node == nil || node.isLeaf() {
		return
	}
	m.connect(node.left)
	m.connect(node.right)

	a, b := anyRoom(node.left), anyRoom(node.right)
	if a == nil || b == nil {
		return
	}
	x1, y1 := a.Center()
	x2, y2 := b.Center()
	if m.rng.Intn(2) == 0 {
		m.carveRect(x1, y1, x2, y1)
		m.carveRect(x2, y1, x2, y2)
	} else {
		m.carveRect(x1, y1, x1, y2)
		m.carveRect(x1, y2, x2, y2)
	}
}

func anyRoom(node *bspNode) *Room {
	if node == nil {
		return nil
	}
	if node.room != nil {
		return node.room
	}
	if r := anyRoom(node.left); r != nil {
		return r
	}
	return anyRoom(node.right)
}
