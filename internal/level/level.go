// Package level holds the per-level session: the countdown, the win and lose
// predicates, and the HUD and result data a level exposes. Two policies
// exist, exploration (collect enough items before time runs out) and
// survival (stay alive until time runs out).
package level

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every level configuration error.
var ErrInvalidConfig = errors.New("invalid level config")

// Outcome is the terminal result of a level tick.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// ParseOutcome converts "victory" or "defeat" into an Outcome.
func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "victory":
		return OutcomeVictory, nil
	case "defeat":
		return OutcomeDefeat, nil
	default:
		return OutcomeNone, fmt.Errorf("%w: unknown outcome %q", ErrInvalidConfig, s)
	}
}

// Kind selects a level policy.
type Kind string

const (
	KindExploration Kind = "exploration"
	KindSurvival    Kind = "survival"
)

// Default tuning for the stock levels.
const (
	DefaultLimitTime = 180.0
	DefaultItemKind  = "Recollectible"
	DefaultRequired  = 5
)

// Config describes one level's rules.
type Config struct {
	Kind      Kind
	LimitTime float64
	// OnTimeout is what running out of time means for this level. Zero picks
	// the policy default: defeat for exploration, victory for survival.
	OnTimeout Outcome
	// ItemKind and Required only apply to exploration.
	ItemKind string
	Required int
}

// Validate checks the fields the selected policy relies on.
func (c Config) Validate() error {
	if c.LimitTime <= 0 || math.IsNaN(c.LimitTime) || math.IsInf(c.LimitTime, 0) {
		return fmt.Errorf("%w: limit time must be positive, got %v", ErrInvalidConfig, c.LimitTime)
	}
	switch c.Kind {
	case KindExploration:
		if c.Required <= 0 {
			return fmt.Errorf("%w: required items must be positive, got %d", ErrInvalidConfig, c.Required)
		}
		if c.ItemKind == "" {
			return fmt.Errorf("%w: item kind is empty", ErrInvalidConfig)
		}
	case KindSurvival:
	default:
		return fmt.Errorf("%w: unknown level kind %q", ErrInvalidConfig, c.Kind)
	}
	return nil
}

// HUD is what the heads-up display shows while a level runs.
type HUD struct {
	Time     string // remaining time, mm:ss
	Progress string // "collected / required" or rounded health
}

// Result is the data a victory or defeat screen shows. It is a snapshot
// taken when the level completes.
type Result struct {
	Kind      Kind
	Outcome   Outcome
	Progress  string // "collected/required" or rounded health
	Elapsed   string // mm:ss spent in the level
	Remaining float64
	Collected int
	Required  int
	Health    float64
}

// Presenter receives the completion screens.
type Presenter interface {
	ShowVictory(r Result)
	ShowDefeat(r Result)
}

// Session is the capability every level policy provides to the game
// session orchestrator.
type Session interface {
	Kind() Kind
	LimitTime() float64
	RemainingTime() float64
	SetRemainingTime(t float64)
	VictoryConditionAchieved() bool
	DefeatConditionAchieved() bool

	// Initialize restarts the level's countdown and progress.
	Initialize()
	// TickLogic consumes dt seconds of level time and reports a terminal
	// outcome at most once per initialization.
	TickLogic(dt float64) Outcome
	// OnItemCollected is a no-op for policies without item progress.
	OnItemCollected(kind string, quantity int)

	HUD() HUD
	Result() Result
	ShowVictory(p Presenter)
	ShowDefeat(p Presenter)
}

// New builds the policy selected by cfg.Kind. hp is the player's health,
// linked by survival levels; it may be nil.
func New(cfg Config, hp Health) (Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Kind {
	case KindExploration:
		return newExploration(cfg), nil
	default:
		return newSurvival(cfg, hp), nil
	}
}

// Health is the part of the health model a survival level reads.
type Health interface {
	Current() float64
	IsDepleted() bool
}

// countdown is the timer shared by every policy.
type countdown struct {
	limit     float64
	remaining float64
	onTimeout Outcome
	reported  bool
}

func newCountdown(limit float64, onTimeout Outcome) countdown {
	return countdown{limit: limit, remaining: limit, onTimeout: onTimeout}
}

func (c *countdown) LimitTime() float64     { return c.limit }
func (c *countdown) RemainingTime() float64 { return c.remaining }

func (c *countdown) SetRemainingTime(t float64) {
	c.remaining = math.Max(t, 0)
}

func (c *countdown) restart() {
	c.remaining = c.limit
	c.reported = false
}

func (c *countdown) consume(dt float64) {
	if dt > 0 {
		c.remaining = math.Max(c.remaining-dt, 0)
	}
}

func (c *countdown) expired() bool { return c.remaining <= 0 }

func (c *countdown) elapsed() float64 { return c.limit - c.remaining }

// settle runs the shared tail of TickLogic: victory before defeat, reported
// once until the next restart.
func (c *countdown) settle(victory, defeat bool) Outcome {
	if c.reported {
		return OutcomeNone
	}
	switch {
	case victory:
		c.reported = true
		return OutcomeVictory
	case defeat:
		c.reported = true
		return OutcomeDefeat
	}
	return OutcomeNone
}

// show hands r to p with the outcome the caller decided, which may differ
// from what the level's own predicates report.
func show(p Presenter, r Result, victory bool) {
	if p == nil {
		return
	}
	if victory {
		r.Outcome = OutcomeVictory
		p.ShowVictory(r)
		return
	}
	r.Outcome = OutcomeDefeat
	p.ShowDefeat(r)
}

// FormatTime renders seconds as mm:ss, flooring both fields.
func FormatTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int(math.Floor(seconds))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
