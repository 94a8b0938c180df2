// Package entity provides the things that move around a level: the player
// and the enemies hunting them.
package entity

import (
	"github.com/samdwyer/dreadhollow/internal/geom"
	"github.com/samdwyer/dreadhollow/internal/health"
	"github.com/samdwyer/dreadhollow/internal/world"
)

// Player is the survivor the user controls.
type Player struct {
	Symbol rune // Display symbol

	grid   world.Grid
	pos    geom.Vec
	spawn  geom.Vec
	health *health.Health
	gone   bool
}

// NewPlayer places a player with full health at spawn.
func NewPlayer(grid world.Grid, spawn geom.Vec, hp *health.Health) *Player {
	if hp == nil {
		hp = health.MustNew(health.DefaultMax)
	}
	return &Player{
		Symbol: '@',
		grid:   grid,
		pos:    spawn,
		spawn:  spawn,
		health: hp,
	}
}

// Move steps one cell by (dx, dy) if the target cell is walkable and
// reports whether the player moved.
func (p *Player) Move(dx, dy int) bool {
	if p.gone {
		return false
	}
	x, y := p.pos.Cell()
	nx, ny := x+dx, y+dy
	if p.grid != nil && !p.grid.IsPassable(nx, ny) {
		return false
	}
	p.pos = geom.CellCenter(nx, ny)
	return true
}

// Position returns where the player is. ok is false once the player has
// been despawned.
func (p *Player) Position() (geom.Vec, bool) {
	if p == nil || p.gone {
		return geom.Vec{}, false
	}
	return p.pos, true
}

// Cell returns the map cell the player stands on.
func (p *Player) Cell() (int, int) {
	return p.pos.Cell()
}

// SetPosition moves the player without checking walkability.
func (p *Player) SetPosition(v geom.Vec) { p.pos = v }

// Spawn returns the respawn point.
func (p *Player) Spawn() geom.Vec { return p.spawn }

// Health returns the player's health pool.
func (p *Player) Health() *health.Health { return p.health }

// ApplyDamage hurts the player.
func (p *Player) ApplyDamage(amount float64) { p.health.ApplyDamage(amount) }

// Heal restores health.
func (p *Player) Heal(amount float64) { p.health.Heal(amount) }

// Respawn returns the player to the spawn point. Health is kept.
func (p *Player) Respawn() { p.pos = p.spawn }

// Reposition is what an enemy hit does after landing: back to spawn.
func (p *Player) Reposition() { p.Respawn() }

// Despawn invalidates the player, as when a scene is torn down.
func (p *Player) Despawn() { p.gone = true }
