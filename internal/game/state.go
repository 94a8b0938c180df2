// Package game provides the session orchestrator, the scene catalog and the
// terminal game loop.
package game

// State is the orchestrator's lifecycle state.
type State int

const (
	// StateInactive is a scene without a level: menus and info screens.
	StateInactive State = iota
	// StateActive is a running, unpaused level.
	StateActive
	// StatePaused is a level with its clock frozen by the player.
	StatePaused
	// StateComplete is a finished level waiting for the player to
	// acknowledge the result screen.
	StateComplete
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}
