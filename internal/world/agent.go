package world

import "github.com/samdwyer/dreadhollow/internal/geom"

// Grid is the walkability query the agent paths over.
type Grid interface {
	IsPassable(x, y int) bool
}

// DefaultStoppingDistance is how close an agent must get before it counts
// as arrived.
const DefaultStoppingDistance = 0.3

// Agent walks a point along 4-connected grid paths at a set speed.
// Paths are computed synchronously, so a path is never pending.
type Agent struct {
	grid     Grid
	pos      geom.Vec
	speed    float64
	stopping float64
	path     []geom.Vec // remaining waypoints, last is the destination
	halted   bool
}

// NewAgent places an agent at pos.
func NewAgent(grid Grid, pos geom.Vec) *Agent {
	return &Agent{grid: grid, pos: pos, stopping: DefaultStoppingDistance}
}

// Position returns where the agent is.
func (a *Agent) Position() geom.Vec { return a.pos }

// Warp moves the agent instantly and drops its path.
func (a *Agent) Warp(pos geom.Vec) {
	a.pos = pos
	a.path = nil
}

// SetSpeed sets movement speed in cells per second.
func (a *Agent) SetSpeed(speed float64) { a.speed = speed }

// Speed returns the movement speed.
func (a *Agent) Speed() float64 { return a.speed }

// SetDestination paths to dest. Unreachable or blocked destinations are
// rejected and the current path is kept.
func (a *Agent) SetDestination(dest geom.Vec) bool {
	if a.grid == nil {
		return false
	}
	path, ok := findPath(a.grid, a.pos, dest)
	if !ok {
		return false
	}
	a.path = path
	return true
}

// Halt stops movement while keeping the path.
func (a *Agent) Halt() { a.halted = true }

// Resume continues along the path.
func (a *Agent) Resume() { a.halted = false }

// Halted reports whether the agent is stopped.
func (a *Agent) Halted() bool { return a.halted }

// RemainingDistance is the path length still to walk.
func (a *Agent) RemainingDistance() float64 {
	d := 0.0
	prev := a.pos
	for _, p := range a.path {
		d += geom.Dist(prev, p)
		prev = p
	}
	return d
}

// StoppingDistance returns the arrival threshold.
func (a *Agent) StoppingDistance() float64 { return a.stopping }

// PathPending is always false.
func (a *Agent) PathPending() bool { return false }

// Advance walks dt seconds along the path.
func (a *Agent) Advance(dt float64) {
	if a.halted || dt <= 0 || a.speed <= 0 {
		return
	}
	step := a.speed * dt
	for step > 0 && len(a.path) > 0 {
		next := a.path[0]
		d := geom.Dist(a.pos, next)
		if d <= step {
			a.pos = next
			a.path = a.path[1:]
			step -= d
			continue
		}
		a.pos = geom.MoveTowards(a.pos, next, step)
		step = 0
	}
	if len(a.path) == 0 {
		a.path = nil
	}
}

var neighbors = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// findPath runs a breadth-first search from the cell under from to the
// cell under to. The returned waypoints are cell centers, ending at to
// itself.
func findPath(g Grid, from, to geom.Vec) ([]geom.Vec, bool) {
	sx, sy := from.Cell()
	tx, ty := to.Cell()
	if !g.IsPassable(tx, ty) {
		return nil, false
	}
	start, goal := Point{sx, sy}, Point{tx, ty}
	if start == goal {
		return []geom.Vec{to}, true
	}

	prev := map[Point]Point{start: start}
	queue := []Point{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == goal {
			break
		}
		for _, n := range neighbors {
			next := Point{cur.X + n[0], cur.Y + n[1]}
			if _, seen := prev[next]; seen || !g.IsPassable(next.X, next.Y) {
				continue
			}
			prev[next] = cur
			queue = append(queue, next)
		}
	}
	if _, ok := prev[goal]; !ok {
		return nil, false
	}

	var cells []Point
	for p := goal; p != start; p = prev[p] {
		cells = append(cells, p)
	}
	path := make([]geom.Vec, 0, len(cells))
	for i := len(cells) - 1; i > 0; i-- {
		path = append(path, geom.CellCenter(cells[i].X, cells[i].Y))
	}
	return append(path, to), true
}
