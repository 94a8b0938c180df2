package entity

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dreadhollow/internal/enemy"
	"github.com/samdwyer/dreadhollow/internal/gamedata"
	"github.com/samdwyer/dreadhollow/internal/world"
)

// Enemy is a hostile creature on the map: a navigation agent driven by a
// behavior controller.
type Enemy struct {
	Def    *gamedata.EnemyDef
	Name   string
	Symbol rune
	Agent  *world.Agent
	Brain  *enemy.Controller
	Anim   enemy.Anim // latest animation signal, drives the glyph style
}

// NewEnemy builds an enemy from its definition. deps supplies the target,
// scheduler, rng and observer; the navigator and animator are the enemy
// itself.
func NewEnemy(def *gamedata.EnemyDef, agent *world.Agent, deps enemy.Deps) (*Enemy, error) {
	if def == nil || agent == nil {
		return nil, fmt.Errorf("enemy definition and agent are required")
	}
	cfg, err := def.Config()
	if err != nil {
		return nil, fmt.Errorf("enemy %s: %w", def.ID, err)
	}

	e := &Enemy{
		Def:    def,
		Name:   def.Name,
		Symbol: def.GlyphRune(),
		Agent:  agent,
	}
	deps.Nav = agent
	deps.Anim = e
	brain, err := enemy.New(cfg, deps)
	if err != nil {
		return nil, fmt.Errorf("enemy %s: %w", def.ID, err)
	}
	e.Brain = brain
	return e, nil
}

// Play records the animation signal.
func (e *Enemy) Play(a enemy.Anim) { e.Anim = a }

// Update runs behavior then movement for one tick.
func (e *Enemy) Update(now, dt float64) {
	e.Brain.Tick(now, dt)
	e.Agent.Advance(dt)
}

// Cell returns the map cell the enemy occupies.
func (e *Enemy) Cell() (int, int) {
	return e.Agent.Position().Cell()
}

// Color returns the tcell color for this enemy.
func (e *Enemy) Color() tcell.Color {
	if e.Def != nil {
		return e.Def.TCellColor()
	}
	return tcell.ColorPurple
}

// Destroy tears the enemy down, canceling its pending attack effects.
func (e *Enemy) Destroy() {
	e.Brain.Destroy()
}
