// Package session composes the grid, entities, generator, placer and turn
// engine into one turn-driven game session.
package session

// State represents the lifecycle of a session.
type State int

const (
	// StateActive accepts player intents.
	StateActive State = iota
	// StateDefeated is terminal: the player's HP reached zero and every
	// further intent is a no-op.
	StateDefeated
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateDefeated:
		return "defeated"
	default:
		return "unknown"
	}
}
