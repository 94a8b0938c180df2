package enemy

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every configuration validation error.
var ErrInvalidConfig = errors.New("invalid enemy config")

// Config holds the tuning of one enemy. Distances are in tiles, speeds in
// tiles per second and times in seconds.
type Config struct {
	ChaseRange         float64 `json:"chaseRange"`
	AttackRange        float64 `json:"attackRange"`
	PatrolSpeed        float64 `json:"patrolSpeed"`
	ChaseSpeed         float64 `json:"chaseSpeed"`
	TimeBetweenAttacks float64 `json:"timeBetweenAttacks"`
	Damage             float64 `json:"damage"` // 0 means hits only reposition the target

	PatrolInterval  float64 `json:"patrolInterval"`  // seconds between new patrol destinations
	PatrolRadius    float64 `json:"patrolRadius"`    // max distance of a patrol destination
	DamageDelay     float64 `json:"damageDelay"`     // attack start to damage check
	FinishDelay     float64 `json:"finishDelay"`     // attack start to attack end
	RepositionDelay float64 `json:"repositionDelay"` // damage landed to target reposition
	HitTolerance    float64 `json:"hitTolerance"`    // extra reach allowed when damage fires
}

// DefaultConfig returns the stock zombie tuning.
func DefaultConfig() Config {
	return Config{
		ChaseRange:         5,
		AttackRange:        1.3,
		PatrolSpeed:        1.5,
		ChaseSpeed:         4.5,
		TimeBetweenAttacks: 2,
		Damage:             10,
		PatrolInterval:     2,
		PatrolRadius:       10,
		DamageDelay:        0.5,
		FinishDelay:        1.2,
		RepositionDelay:    0.7,
		HitTolerance:       0.5,
	}
}

// WithDefaults fills zero timing fields from DefaultConfig. Ranges, speeds
// and damage are left alone so a bad definition still fails validation.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.PatrolInterval == 0 {
		c.PatrolInterval = d.PatrolInterval
	}
	if c.PatrolRadius == 0 {
		c.PatrolRadius = d.PatrolRadius
	}
	if c.DamageDelay == 0 {
		c.DamageDelay = d.DamageDelay
	}
	if c.FinishDelay == 0 {
		c.FinishDelay = d.FinishDelay
	}
	if c.RepositionDelay == 0 {
		c.RepositionDelay = d.RepositionDelay
	}
	if c.HitTolerance == 0 {
		c.HitTolerance = d.HitTolerance
	}
	return c
}

// Validate rejects tunings that make part of the state machine unreachable
// or degenerate.
func (c Config) Validate() error {
	switch {
	case c.AttackRange <= 0:
		return fmt.Errorf("%w: attack range must be positive, got %v", ErrInvalidConfig, c.AttackRange)
	case c.AttackRange >= c.ChaseRange:
		return fmt.Errorf("%w: attack range %v must be below chase range %v", ErrInvalidConfig, c.AttackRange, c.ChaseRange)
	case c.PatrolSpeed < 0:
		return fmt.Errorf("%w: patrol speed must not be negative, got %v", ErrInvalidConfig, c.PatrolSpeed)
	case c.PatrolSpeed >= c.ChaseSpeed:
		return fmt.Errorf("%w: patrol speed %v must be below chase speed %v", ErrInvalidConfig, c.PatrolSpeed, c.ChaseSpeed)
	case c.TimeBetweenAttacks < 0:
		return fmt.Errorf("%w: time between attacks must not be negative, got %v", ErrInvalidConfig, c.TimeBetweenAttacks)
	case c.Damage < 0:
		return fmt.Errorf("%w: damage must not be negative, got %v", ErrInvalidConfig, c.Damage)
	case c.PatrolInterval <= 0 || c.PatrolRadius <= 0:
		return fmt.Errorf("%w: patrol interval and radius must be positive", ErrInvalidConfig)
	case c.DamageDelay < 0 || c.FinishDelay <= c.DamageDelay:
		return fmt.Errorf("%w: finish delay %v must come after damage delay %v", ErrInvalidConfig, c.FinishDelay, c.DamageDelay)
	case c.RepositionDelay < 0 || c.HitTolerance < 0:
		return fmt.Errorf("%w: reposition delay and hit tolerance must not be negative", ErrInvalidConfig)
	}
	return nil
}
