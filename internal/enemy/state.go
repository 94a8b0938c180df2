// Package enemy implements the enemy behavior controller: a per-enemy state
// machine that patrols, chases and attacks a single target.
package enemy

// State is the enemy's current behavior.
type State int

const (
	// StatePatrol wanders between random reachable points.
	StatePatrol State = iota
	// StateChase follows the target at chase speed.
	StateChase
	// StateAttack stands still and runs attack cycles.
	StateAttack
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePatrol:
		return "patrol"
	case StateChase:
		return "chase"
	case StateAttack:
		return "attack"
	default:
		return "unknown"
	}
}

// Select picks the state for a target at the given distance. The rules are
// checked in priority order and carry no memory of the previous state.
func Select(distance, chaseRange, attackRange float64) State {
	switch {
	case distance > chaseRange:
		return StatePatrol
	case distance <= attackRange:
		return StateAttack
	default:
		return StateChase
	}
}

// Anim is a discrete signal sent to the animation collaborator.
type Anim int

const (
	AnimIdle Anim = iota
	AnimWalk
	AnimRun
	AnimAttack
)

// String returns the animation signal name.
func (a Anim) String() string {
	switch a {
	case AnimIdle:
		return "idle"
	case AnimWalk:
		return "walk"
	case AnimRun:
		return "run"
	case AnimAttack:
		return "attack"
	default:
		return "unknown"
	}
}
