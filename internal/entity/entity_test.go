package entity

import (
	"testing"

	"github.com/samdwyer/dreadhollow/internal/enemy"
	"github.com/samdwyer/dreadhollow/internal/gamedata"
	"github.com/samdwyer/dreadhollow/internal/geom"
	"github.com/samdwyer/dreadhollow/internal/health"
	"github.com/samdwyer/dreadhollow/internal/sim"
	"github.com/samdwyer/dreadhollow/internal/world"
)

type corridor struct{ length int }

func (c corridor) IsPassable(x, y int) bool {
	return y == 0 && x >= 0 && x < c.length
}

func TestPlayerMove(t *testing.T) {
	p := NewPlayer(corridor{5}, geom.CellCenter(0, 0), nil)

	if !p.Move(1, 0) {
		t.Fatal("Move(1,0) blocked in open corridor")
	}
	if x, y := p.Cell(); x != 1 || y != 0 {
		t.Errorf("Cell() = %d,%d, want 1,0", x, y)
	}
	if p.Move(0, 1) {
		t.Error("Move into wall succeeded")
	}
	if p.Move(-2, 0) {
		t.Error("Move off the map succeeded")
	}
	if p.Health().Current() != health.DefaultMax {
		t.Errorf("new player health = %v", p.Health().Current())
	}
}

func TestPlayerRespawnKeepsHealth(t *testing.T) {
	p := NewPlayer(corridor{5}, geom.CellCenter(0, 0), health.MustNew(100))
	p.Move(1, 0)
	p.Move(1, 0)
	p.ApplyDamage(30)

	p.Reposition()
	if pos, _ := p.Position(); pos != p.Spawn() {
		t.Errorf("Position() = %v, want spawn", pos)
	}
	if p.Health().Current() != 70 {
		t.Errorf("health = %v, want 70", p.Health().Current())
	}
	p.Heal(50)
	if p.Health().Current() != 100 {
		t.Errorf("health = %v, want clamped 100", p.Health().Current())
	}
}

func TestPlayerDespawn(t *testing.T) {
	p := NewPlayer(corridor{5}, geom.CellCenter(0, 0), nil)
	p.Despawn()
	if _, ok := p.Position(); ok {
		t.Error("despawned player still valid")
	}
	if p.Move(1, 0) {
		t.Error("despawned player moved")
	}
	var nilPlayer *Player
	if _, ok := nilPlayer.Position(); ok {
		t.Error("nil player valid")
	}
}

func TestEnemyHuntsPlayer(t *testing.T) {
	reg := gamedata.MustLoadEnemyRegistry()
	def := reg.GetByID("zombie")
	if def == nil {
		t.Fatal("zombie definition missing")
	}

	grid := corridor{20}
	hp := health.MustNew(100)
	player := NewPlayer(grid, geom.CellCenter(0, 0), hp)
	sched := sim.NewScheduler()

	// Start inside chase range so the enemy closes in.
	e, err := NewEnemy(def, world.NewAgent(grid, geom.CellCenter(4, 0)), enemy.Deps{
		Target:    player,
		Scheduler: sched,
	})
	if err != nil {
		t.Fatalf("NewEnemy: %v", err)
	}
	if e.Symbol != 'Z' {
		t.Errorf("Symbol = %c, want Z", e.Symbol)
	}

	now := 0.0
	for i := 0; i < 40; i++ { // 5 seconds at 8 ticks per second
		now += 0.125
		sched.Run(now)
		e.Update(now, 0.125)
	}

	if hp.Current() >= 100 {
		t.Errorf("health = %v, enemy never landed a hit", hp.Current())
	}

	e.Destroy()
	if sched.PendingFor(e.Brain.Owner()) != 0 {
		t.Error("Destroy left pending effects")
	}
}

func TestNewEnemyRequiresDefinitionAndAgent(t *testing.T) {
	sched := sim.NewScheduler()
	if _, err := NewEnemy(nil, world.NewAgent(corridor{3}, geom.Vec{}), enemy.Deps{Scheduler: sched}); err == nil {
		t.Error("nil definition accepted")
	}
	def := &gamedata.EnemyDef{ID: "x", Behavior: enemy.DefaultConfig()}
	if _, err := NewEnemy(def, nil, enemy.Deps{Scheduler: sched}); err == nil {
		t.Error("nil agent accepted")
	}
	bad := &gamedata.EnemyDef{ID: "bad"}
	if _, err := NewEnemy(bad, world.NewAgent(corridor{3}, geom.Vec{}), enemy.Deps{Scheduler: sched}); err == nil {
		t.Error("invalid behavior accepted")
	}
}
