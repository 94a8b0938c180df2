// Package trigger implements the map's event sources: cells and zones that
// react when the player enters or stands in them.
package trigger

import (
	"github.com/samdwyer/dreadhollow/internal/audio"
	"github.com/samdwyer/dreadhollow/internal/geom"
	"github.com/samdwyer/dreadhollow/internal/world"
)

// Player is the actor triggers act on.
type Player interface {
	Position() (geom.Vec, bool)
	SetPosition(p geom.Vec)
	Heal(amount float64)
	ApplyDamage(amount float64)
	Respawn()
}

// DoorMap opens and closes door tiles.
type DoorMap interface {
	ToggleDoor(x, y int) (open, ok bool)
}

// Env is everything a trigger may touch during one update. Nil fields
// disable the effects that need them.
type Env struct {
	Player   Player
	Collect  func(kind string, quantity int)
	Doors    DoorMap
	Audio    audio.Player
	OnSwitch func(on bool)
	// Interact is true on the tick the player pressed the use key.
	Interact bool
}

func (e *Env) cue(c audio.Cue) {
	if e.Audio != nil {
		e.Audio.Play(c)
	}
}

// Trigger reacts to the player once per tick.
type Trigger interface {
	Update(env *Env, dt float64)
}

// Set updates triggers in insertion order.
type Set struct {
	triggers []Trigger
}

// Add appends triggers to the set.
func (s *Set) Add(t ...Trigger) {
	s.triggers = append(s.triggers, t...)
}

// Update runs every trigger. A missing or invalid player skips the tick.
func (s *Set) Update(env *Env, dt float64) {
	if env == nil || env.Player == nil {
		return
	}
	if _, ok := env.Player.Position(); !ok {
		return
	}
	for _, t := range s.triggers {
		t.Update(env, dt)
	}
}

// All returns the triggers for rendering.
func (s *Set) All() []Trigger { return s.triggers }

// Len returns the number of triggers.
func (s *Set) Len() int { return len(s.triggers) }

func playerCell(env *Env) (world.Point, bool) {
	pos, ok := env.Player.Position()
	if !ok {
		return world.Point{}, false
	}
	x, y := pos.Cell()
	return world.Point{X: x, Y: y}, true
}

func adjacent(a, b world.Point) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}

// Collectible is picked up once when the player steps on it.
type Collectible struct {
	Cell     world.Point
	Kind     string
	Quantity int
	Taken    bool
}

func (c *Collectible) Update(env *Env, _ float64) {
	if c.Taken {
		return
	}
	if p, ok := playerCell(env); !ok || p != c.Cell {
		return
	}
	c.Taken = true
	if env.Collect != nil {
		env.Collect(c.Kind, c.Quantity)
	}
	env.cue(audio.CueCollect)
}

// DefaultHealAmount is restored by a heal pickup with no amount set.
const DefaultHealAmount = 25.0

// HealPickup restores health once when stepped on.
type HealPickup struct {
	Cell   world.Point
	Amount float64
	Taken  bool
}

func (h *HealPickup) Update(env *Env, _ float64) {
	if h.Taken {
		return
	}
	if p, ok := playerCell(env); !ok || p != h.Cell {
		return
	}
	h.Taken = true
	amount := h.Amount
	if amount <= 0 {
		amount = DefaultHealAmount
	}
	env.Player.Heal(amount)
	env.cue(audio.CueCollect)
}

// ToxicZone hurts the player every tick they stand in it.
type ToxicZone struct {
	Area world.Room
	DPS  float64
}

func (z *ToxicZone) Update(env *Env, dt float64) {
	if dt <= 0 {
		return
	}
	if p, ok := playerCell(env); ok && z.Area.Contains(p.X, p.Y) {
		env.Player.ApplyDamage(z.DPS * dt)
	}
}

// Crack sends the player back to their spawn point on entry.
type Crack struct {
	Cell world.Point
}

func (c *Crack) Update(env *Env, _ float64) {
	if p, ok := playerCell(env); ok && p == c.Cell {
		env.Player.Respawn()
	}
}

// AllowedZone keeps the player inside a box.
type AllowedZone struct {
	Area world.Room
}

func (z *AllowedZone) Update(env *Env, _ float64) {
	pos, ok := env.Player.Position()
	if !ok || z.Area.ContainsVec(pos) {
		return
	}
	env.Player.SetPosition(z.Area.Clamp(pos))
}

// Door toggles the door tile it sits on when the player uses it from an
// adjacent cell.
type Door struct {
	Cell world.Point
	Open bool
}

func (d *Door) Update(env *Env, _ float64) {
	if !env.Interact || env.Doors == nil {
		return
	}
	p, ok := playerCell(env)
	if !ok || p == d.Cell || !adjacent(p, d.Cell) {
		return
	}
	open, ok := env.Doors.ToggleDoor(d.Cell.X, d.Cell.Y)
	if !ok {
		return
	}
	d.Open = open
	env.cue(audio.CueDoor)
}

// Switch flips the lights when used from its cell or next to it.
type Switch struct {
	Cell world.Point
	On   bool
}

func (s *Switch) Update(env *Env, _ float64) {
	if !env.Interact {
		return
	}
	if p, ok := playerCell(env); !ok || !adjacent(p, s.Cell) {
		return
	}
	s.On = !s.On
	if env.OnSwitch != nil {
		env.OnSwitch(s.On)
	}
	env.cue(audio.CueSwitch)
}
