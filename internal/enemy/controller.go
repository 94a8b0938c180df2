package enemy

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/samdwyer/dreadhollow/internal/geom"
	"github.com/samdwyer/dreadhollow/internal/sim"
)

// Target is whoever the enemy hunts.
type Target interface {
	// Position reports where the target is. ok is false while the target
	// reference is not usable (despawned, between scenes).
	Position() (pos geom.Vec, ok bool)
	// ApplyDamage lands an attack.
	ApplyDamage(amount float64)
	// Reposition sends the target back to its spawn point after a hit.
	Reposition()
}

// Navigator moves the enemy. The controller never computes paths itself.
type Navigator interface {
	Position() geom.Vec
	SetSpeed(speed float64)
	// SetDestination starts moving toward dest. It returns false when dest
	// cannot be reached; the previous destination is kept in that case.
	SetDestination(dest geom.Vec) bool
	Halt()
	Resume()
	RemainingDistance() float64
	StoppingDistance() float64
	PathPending() bool
}

// Animator receives fire-and-forget animation signals.
type Animator interface {
	Play(a Anim)
}

// EventKind classifies attack cycle notifications.
type EventKind int

const (
	EventAttackStarted EventKind = iota
	EventDamageApplied
	EventDamageMissed
	EventAttackFinished
	EventTargetRepositioned
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventAttackStarted:
		return "attack_started"
	case EventDamageApplied:
		return "damage_applied"
	case EventDamageMissed:
		return "damage_missed"
	case EventAttackFinished:
		return "attack_finished"
	case EventTargetRepositioned:
		return "target_repositioned"
	default:
		return "unknown"
	}
}

// Event describes one step of an attack cycle.
type Event struct {
	Kind   EventKind
	Cycle  uint64
	Damage float64
}

// Deps are the collaborators a controller talks to. Scheduler is required;
// the rest may be nil, in which case the behavior they drive is skipped.
type Deps struct {
	Nav       Navigator
	Anim      Animator
	Target    Target
	Scheduler *sim.Scheduler
	Rand      *rand.Rand
	Observer  func(Event)
}

// Controller drives one enemy.
type Controller struct {
	cfg      Config
	nav      Navigator
	anim     Animator
	target   Target
	sched    *sim.Scheduler
	rng      *rand.Rand
	observer func(Event)
	owner    uint64

	state          State
	attacking      bool
	damageApplied  bool
	lastAttackTime float64
	cycle          uint64
	patrolTimer    float64
	destroyed      bool
}

// New validates cfg and builds a controller in the patrol state.
func New(cfg Config, deps Deps) (*Controller, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Scheduler == nil {
		return nil, errors.New("enemy: scheduler is required")
	}
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	c := &Controller{
		cfg:      cfg,
		nav:      deps.Nav,
		anim:     deps.Anim,
		target:   deps.Target,
		sched:    deps.Scheduler,
		rng:      rng,
		observer: deps.Observer,
		owner:    deps.Scheduler.NewOwner(),
	}
	c.Reset()
	if c.nav != nil {
		c.nav.SetSpeed(cfg.PatrolSpeed)
	}
	return c, nil
}

// MustNew is New for known-good configs.
func MustNew(cfg Config, deps Deps) *Controller {
	c, err := New(cfg, deps)
	if err != nil {
		panic(fmt.Sprintf("enemy: %v", err))
	}
	return c
}

// Tick runs one behavior evaluation at game time now, dt seconds after the
// previous tick. A missing target or navigator makes the tick a no-op.
func (c *Controller) Tick(now, dt float64) {
	if c == nil || c.destroyed || c.nav == nil || c.target == nil {
		return
	}
	targetPos, ok := c.target.Position()
	if !ok {
		return
	}

	distance := geom.Dist(c.nav.Position(), targetPos)
	c.state = Select(distance, c.cfg.ChaseRange, c.cfg.AttackRange)

	switch c.state {
	case StatePatrol:
		c.patrol(dt)
	case StateChase:
		c.chase(targetPos)
	case StateAttack:
		c.attack(now)
	}
}

func (c *Controller) patrol(dt float64) {
	if c.attacking {
		return
	}
	c.nav.Resume()
	c.nav.SetSpeed(c.cfg.PatrolSpeed)
	c.play(AnimWalk)

	c.patrolTimer += dt
	if c.patrolTimer >= c.cfg.PatrolInterval {
		c.patrolTimer = 0
		// Unreachable picks are dropped; the next interval tries again.
		c.nav.SetDestination(c.nav.Position().Add(c.randomOffset()))
	}

	if c.nav.RemainingDistance() <= c.nav.StoppingDistance() && !c.nav.PathPending() {
		c.play(AnimIdle)
	}
}

func (c *Controller) chase(targetPos geom.Vec) {
	if c.attacking {
		return
	}
	c.nav.Resume()
	c.nav.SetSpeed(c.cfg.ChaseSpeed)
	c.nav.SetDestination(targetPos)
	c.play(AnimRun)
}

func (c *Controller) attack(now float64) {
	c.nav.Halt()
	if !c.attacking && now-c.lastAttackTime >= c.cfg.TimeBetweenAttacks {
		c.startAttack(now)
		return
	}
	c.play(AnimIdle)
}

func (c *Controller) startAttack(now float64) {
	c.attacking = true
	c.damageApplied = false
	c.lastAttackTime = now
	c.cycle++
	c.play(AnimAttack)

	cycle := c.cycle
	key := sim.Key{Owner: c.owner, Cycle: cycle}
	c.sched.At(now+c.cfg.DamageDelay, key, func() { c.applyDamage(cycle) })
	c.sched.At(now+c.cfg.FinishDelay, key, func() { c.finishAttack(cycle) })
	c.emit(Event{Kind: EventAttackStarted, Cycle: cycle})
}

// applyDamage re-checks reach at fire time, not at schedule time.
func (c *Controller) applyDamage(cycle uint64) {
	if c.destroyed || cycle != c.cycle || c.damageApplied || c.target == nil || c.nav == nil {
		return
	}
	pos, ok := c.target.Position()
	if !ok {
		return
	}
	if geom.Dist(c.nav.Position(), pos) > c.cfg.AttackRange+c.cfg.HitTolerance {
		c.emit(Event{Kind: EventDamageMissed, Cycle: cycle})
		return
	}

	c.damageApplied = true
	c.target.ApplyDamage(c.cfg.Damage)
	c.emit(Event{Kind: EventDamageApplied, Cycle: cycle, Damage: c.cfg.Damage})

	target := c.target
	c.sched.After(c.cfg.RepositionDelay, sim.Key{Owner: c.owner, Cycle: cycle}, func() {
		if c.destroyed || target == nil {
			return
		}
		target.Reposition()
		c.emit(Event{Kind: EventTargetRepositioned, Cycle: cycle})
	})
}

func (c *Controller) finishAttack(cycle uint64) {
	if c.destroyed {
		return
	}
	c.attacking = false
	c.emit(Event{Kind: EventAttackFinished, Cycle: cycle})
}

// Reset returns the enemy to a fresh patrol, dropping any attack in flight.
func (c *Controller) Reset() {
	c.sched.CancelOwner(c.owner)
	c.state = StatePatrol
	c.attacking = false
	c.damageApplied = false
	c.lastAttackTime = math.Inf(-1)
	c.patrolTimer = 0
}

// Destroy tears the enemy down. Pending attack effects are canceled and
// will never touch the target.
func (c *Controller) Destroy() {
	if c == nil || c.destroyed {
		return
	}
	c.sched.CancelOwner(c.owner)
	c.destroyed = true
	c.attacking = false
}

// State returns the state chosen on the latest tick.
func (c *Controller) State() State { return c.state }

// Attacking reports whether an attack cycle is in flight.
func (c *Controller) Attacking() bool { return c.attacking }

// DamageApplied reports whether the current cycle has already hit.
func (c *Controller) DamageApplied() bool { return c.damageApplied }

// Cycle returns the id of the latest attack cycle (0 before the first).
func (c *Controller) Cycle() uint64 { return c.cycle }

// Destroyed reports whether Destroy has been called.
func (c *Controller) Destroyed() bool { return c.destroyed }

// Owner returns the scheduler owner id used for this enemy's effects.
func (c *Controller) Owner() uint64 { return c.owner }

// Config returns the effective tuning.
func (c *Controller) Config() Config { return c.cfg }

// randomOffset picks a uniform point in a disk of PatrolRadius.
func (c *Controller) randomOffset() geom.Vec {
	for {
		x := c.rng.Float64()*2 - 1
		y := c.rng.Float64()*2 - 1
		if x*x+y*y <= 1 {
			return geom.V(x, y).Scale(c.cfg.PatrolRadius)
		}
	}
}

func (c *Controller) play(a Anim) {
	if c.anim != nil {
		c.anim.Play(a)
	}
}

func (c *Controller) emit(ev Event) {
	if c.observer != nil {
		c.observer(ev)
	}
}
