package game

import (
	"context"
	"fmt"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dreadhollow/internal/audio"
	"github.com/samdwyer/dreadhollow/internal/enemy"
	"github.com/samdwyer/dreadhollow/internal/entity"
	"github.com/samdwyer/dreadhollow/internal/gamedata"
	"github.com/samdwyer/dreadhollow/internal/geom"
	"github.com/samdwyer/dreadhollow/internal/health"
	"github.com/samdwyer/dreadhollow/internal/level"
	"github.com/samdwyer/dreadhollow/internal/telemetry"
	"github.com/samdwyer/dreadhollow/internal/trigger"
	"github.com/samdwyer/dreadhollow/internal/world"
)

// DarkRadius is how far the player sees with the lights off.
const DarkRadius = 6.0

// Input is the player's intent for one tick.
type Input struct {
	DX, DY   int
	Interact bool
}

// Stage is one played level: the map, the actors on it and its triggers.
type Stage struct {
	Def      *gamedata.LevelDef
	Map      *world.Map
	Layout   world.Layout
	Player   *entity.Player
	Enemies  []*entity.Enemy
	Triggers trigger.Set
	Level    level.Session
	LightsOn bool
}

// StageDeps are the shared services a stage is wired to.
type StageDeps struct {
	Session *Session
	Enemies *gamedata.EnemyRegistry
	Audio   audio.Player
	Rand    *rand.Rand
}

// BuildStage generates the map for def, places the player, the enemies and
// the triggers, and builds the level policy. The level is not initialized;
// entering the scene does that.
func BuildStage(ctx context.Context, def *gamedata.LevelDef, deps StageDeps) (*Stage, error) {
	if def == nil {
		return nil, fmt.Errorf("level definition is required")
	}
	if deps.Session == nil {
		return nil, fmt.Errorf("level %s: session is required", def.ID)
	}
	cfg, err := def.Config()
	if err != nil {
		return nil, err
	}
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.build_stage")
	defer span.End()

	m := world.NewMap(world.DefaultWidth, world.DefaultHeight, rng)
	m.Generate(ctx)
	layout := m.Populate(ctx, def.Plan())

	hp := health.MustNew(health.DefaultMax)
	player := entity.NewPlayer(m, cellCenter(layout.PlayerSpawn), hp)

	lvl, err := level.New(cfg, hp)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", def.ID, err)
	}

	st := &Stage{
		Def:    def,
		Map:    m,
		Layout: layout,
		Player: player,
		Level:  lvl,
	}

	if len(layout.EnemySpawns) > 0 {
		enemyDef := pickEnemy(def, deps.Enemies, rng)
		if enemyDef == nil {
			return nil, fmt.Errorf("level %s: no enemy definition for %q", def.ID, def.Enemy)
		}
		for _, p := range layout.EnemySpawns {
			agent := world.NewAgent(m, cellCenter(p))
			e, err := entity.NewEnemy(enemyDef, agent, enemy.Deps{
				Target:    player,
				Scheduler: deps.Session.Scheduler(),
				Rand:      rng,
				Observer:  deps.Session.EnemyObserver(enemyDef.ID),
			})
			if err != nil {
				st.Teardown()
				return nil, fmt.Errorf("level %s: %w", def.ID, err)
			}
			st.Enemies = append(st.Enemies, e)
		}
	}

	st.addTriggers(cfg)

	span.SetAttributes(
		attribute.String("level.id", def.ID),
		attribute.String("level.kind", string(cfg.Kind)),
		attribute.Int("stage.enemies", len(st.Enemies)),
		attribute.Int("stage.triggers", st.Triggers.Len()),
	)
	return st, nil
}

func pickEnemy(def *gamedata.LevelDef, reg *gamedata.EnemyRegistry, rng *rand.Rand) *gamedata.EnemyDef {
	if reg == nil {
		return nil
	}
	if def.Enemy != "" {
		return reg.GetByID(def.Enemy)
	}
	return reg.SpawnRandom(rng)
}

func (st *Stage) addTriggers(cfg level.Config) {
	l := st.Layout
	st.Triggers.Add(&trigger.AllowedZone{Area: l.Bounds})

	kind := cfg.ItemKind
	if kind == "" {
		kind = level.DefaultItemKind
	}
	for _, p := range l.Items {
		st.Triggers.Add(&trigger.Collectible{Cell: p, Kind: kind, Quantity: 1})
	}
	for _, p := range l.Heals {
		st.Triggers.Add(&trigger.HealPickup{Cell: p, Amount: st.Def.HealAmount})
	}
	for _, z := range l.ToxicZones {
		st.Triggers.Add(&trigger.ToxicZone{Area: z, DPS: st.Def.ToxicDamage})
	}
	for _, p := range l.Cracks {
		st.Triggers.Add(&trigger.Crack{Cell: p})
	}
	for _, p := range l.Doors {
		st.Triggers.Add(&trigger.Door{Cell: p})
	}
	for _, p := range l.Switches {
		st.Triggers.Add(&trigger.Switch{Cell: p})
	}
}

// Step runs one tick of the level in the fixed order: game time and
// delayed effects, player movement, triggers, enemies, then the session's
// evaluation of the level. Nothing happens unless the level is running.
func (st *Stage) Step(ctx context.Context, s *Session, dt float64, in Input, snd audio.Player) {
	if !s.Active() {
		return
	}
	dt = s.Clock().Advance(dt)
	now := s.Clock().Now()
	s.Scheduler().Run(now)

	if in.DX != 0 || in.DY != 0 {
		st.Player.Move(in.DX, in.DY)
	}

	env := &trigger.Env{
		Player:   st.Player,
		Collect:  func(kind string, qty int) { s.CollectItem(ctx, kind, qty) },
		Doors:    st.Map,
		Audio:    snd,
		OnSwitch: func(on bool) { st.LightsOn = on },
		Interact: in.Interact,
	}
	st.Triggers.Update(env, dt)
	if !s.Active() {
		return
	}

	for _, e := range st.Enemies {
		e.Update(now, dt)
	}
	s.Tick(ctx, dt)
}

// Visible reports whether the player can see cell (x, y).
func (st *Stage) Visible(x, y int) bool {
	if st.LightsOn {
		return true
	}
	pos, ok := st.Player.Position()
	if !ok {
		return false
	}
	return geom.Dist(pos, geom.CellCenter(x, y)) <= DarkRadius
}

// Teardown cancels the enemies' pending effects and despawns the player.
func (st *Stage) Teardown() {
	for _, e := range st.Enemies {
		e.Destroy()
	}
	st.Player.Despawn()
}

func cellCenter(p world.Point) geom.Vec {
	return geom.CellCenter(p.X, p.Y)
}
