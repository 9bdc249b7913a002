// Package combat provides the turn engine: player movement, melee and enemy turns.
package combat

import "strconv"

// EventKind identifies what happened during a turn.
type EventKind int

const (
	// EventMove - the player stepped to a new cell
	EventMove EventKind = iota
	// EventPickup - the player consumed a potion or sword
	EventPickup
	// EventHit - the player damaged an enemy that survived
	EventHit
	// EventKill - the player removed an enemy
	EventKill
	// EventEnemyAttack - an adjacent enemy damaged the player
	EventEnemyAttack
	// EventEnemyMove - an enemy took a greedy step
	EventEnemyMove
	// EventDefeat - the player's HP reached zero
	EventDefeat
)

// String returns a human-readable event kind.
func (k EventKind) String() string {
	switch k {
	case EventMove:
		return "move"
	case EventPickup:
		return "pickup"
	case EventHit:
		return "hit"
	case EventKill:
		return "kill"
	case EventEnemyAttack:
		return "enemy_attack"
	case EventEnemyMove:
		return "enemy_move"
	case EventDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Event records one resolved action.
type Event struct {
	Kind   EventKind
	Actor  string // Name of the acting entity
	Target string // Name of the affected entity, if any
	Item   string // Pickup consumed, for EventPickup
	Amount int    // Damage, healing or attack bonus
	X, Y   int    // Cell where it happened
}

// Message returns the log line for the event, or "" for events not worth
// showing to the player.
func (e Event) Message() string {
	switch e.Kind {
	case EventPickup:
		if e.Item == "potion" {
			return "You drink a potion and recover " + strconv.Itoa(e.Amount) + " HP."
		}
		return "You pick up a sword. Attack +" + strconv.Itoa(e.Amount) + "."
	case EventHit:
		return "You hit " + e.Target + " for " + strconv.Itoa(e.Amount) + "."
	case EventKill:
		return "You slay " + e.Target + "."
	case EventEnemyAttack:
		return e.Actor + " hits you for " + strconv.Itoa(e.Amount) + "."
	case EventDefeat:
		return "You died!"
	default:
		return ""
	}
}
