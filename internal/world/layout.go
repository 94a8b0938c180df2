package world

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dreadhollow/internal/telemetry"
)

// Point is a map cell.
type Point struct {
	X, Y int
}

// Plan says how many of each feature to scatter over a generated map.
type Plan struct {
	Enemies    int
	Items      int
	Heals      int
	ToxicZones int
	Cracks     int
	Doors      int
	Switches   int
}

// Layout is where everything starts on a populated map.
type Layout struct {
	PlayerSpawn Point
	EnemySpawns []Point
	Items       []Point
	Heals       []Point
	Cracks      []Point
	Switches    []Point
	Doors       []Point
	ToxicZones  []Room
	// Bounds is the box the player may never leave.
	Bounds Room
}

// Populate places the player in the first room, enemies in the last rooms,
// and scatters the planned features over the remaining rooms. Closed doors
// are written into the map.
func (m *Map) Populate(ctx context.Context, plan Plan) Layout {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "world.populate")
	defer span.End()

	l := Layout{Bounds: Room{X: 1, Y: 1, Width: m.Width - 2, Height: m.Height - 2}}
	if len(m.Rooms) == 0 {
		return l
	}

	used := make(map[Point]bool)
	take := func(room int) (Point, bool) {
		for i := 0; i < 50; i++ {
			x, y := m.RandomPointInRoom(room)
			p := Point{x, y}
			if x >= 0 && !used[p] {
				used[p] = true
				return p, true
			}
		}
		return Point{}, false
	}

	sx, sy := m.Rooms[0].Center()
	l.PlayerSpawn = Point{sx, sy}
	used[l.PlayerSpawn] = true

	// Everything hostile or collectible avoids the spawn room when it can.
	first := 0
	if len(m.Rooms) > 1 {
		first = 1
	}
	roomFor := func(i int) int {
		return first + i%(len(m.Rooms)-first)
	}

	for i := 0; i < plan.Enemies; i++ {
		room := len(m.Rooms) - 1 - i%(len(m.Rooms)-first)
		if p, ok := take(room); ok {
			l.EnemySpawns = append(l.EnemySpawns, p)
		}
	}
	scatter := func(n, offset int) []Point {
		var pts []Point
		for i := 0; i < n; i++ {
			if p, ok := take(roomFor(i + offset)); ok {
				pts = append(pts, p)
			}
		}
		return pts
	}
	l.Items = scatter(plan.Items, 0)
	l.Heals = scatter(plan.Heals, 1)
	l.Cracks = scatter(plan.Cracks, 2)
	l.Switches = scatter(plan.Switches, 0)

	for i := 0; i < plan.ToxicZones; i++ {
		room := m.Rooms[roomFor(i+1)]
		w, h := min(3, room.Width), min(2, room.Height)
		zone := Room{
			X:      room.X + m.rng.Intn(room.Width-w+1),
			Y:      room.Y + m.rng.Intn(room.Height-h+1),
			Width:  w,
			Height: h,
		}
		if zone.Intersects(Room{X: sx, Y: sy, Width: 1, Height: 1}) {
			continue
		}
		l.ToxicZones = append(l.ToxicZones, zone)
	}

	for _, p := range m.doorways() {
		if len(l.Doors) >= plan.Doors {
			break
		}
		if used[p] {
			continue
		}
		used[p] = true
		m.SetTile(p.X, p.Y, TileDoorClosed)
		l.Doors = append(l.Doors, p)
	}

	span.SetAttributes(
		attribute.Int("layout.enemies", len(l.EnemySpawns)),
		attribute.Int("layout.items", len(l.Items)),
		attribute.Int("layout.heals", len(l.Heals)),
		attribute.Int("layout.toxic_zones", len(l.ToxicZones)),
		attribute.Int("layout.doors", len(l.Doors)),
	)
	return l
}

// doorways lists corridor cells that open straight into a room, in a
// shuffled order.
func (m *Map) doorways() []Point {
	var out []Point
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			if m.Tiles[y][x] != TileFloor || m.RoomIndexAt(x, y) >= 0 {
				continue
			}
			ns := !m.IsPassable(x-1, y) && !m.IsPassable(x+1, y) &&
				(m.RoomIndexAt(x, y-1) >= 0 || m.RoomIndexAt(x, y+1) >= 0)
			ew := !m.IsPassable(x, y-1) && !m.IsPassable(x, y+1) &&
				(m.RoomIndexAt(x-1, y) >= 0 || m.RoomIndexAt(x+1, y) >= 0)
			if ns || ew {
				out = append(out, Point{x, y})
			}
		}
	}
	m.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
