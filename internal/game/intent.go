// Package game runs the terminal loop: it turns key presses into session
// intents and redraws after every turn.
package game

import "github.com/gdamore/tcell/v2"

// Action is what a key press asks the game to do.
type Action int

const (
	// ActionNone ignores the key.
	ActionNone Action = iota
	// ActionMove moves the player by the intent's delta.
	ActionMove
	// ActionAttack strikes adjacent enemies.
	ActionAttack
	// ActionQuit leaves the game loop.
	ActionQuit
)

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionMove:
		return "move"
	case ActionAttack:
		return "attack"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Intent is a decoded key press.
type Intent struct {
	Action Action
	DX, DY int
}

func move(dx, dy int) Intent {
	return Intent{Action: ActionMove, DX: dx, DY: dy}
}

// IntentFor maps a key event to an intent.
// Arrows and WASD move, space attacks, q / Esc / Ctrl-C quit.
func IntentFor(ev *tcell.EventKey) Intent {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Intent{Action: ActionQuit}
	case tcell.KeyUp:
		return move(0, -1)
	case tcell.KeyDown:
		return move(0, 1)
	case tcell.KeyLeft:
		return move(-1, 0)
	case tcell.KeyRight:
		return move(1, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return Intent{Action: ActionQuit}
		case 'w', 'W':
			return move(0, -1)
		case 's', 'S':
			return move(0, 1)
		case 'a', 'A':
			return move(-1, 0)
		case 'd', 'D':
			return move(1, 0)
		case ' ':
			return Intent{Action: ActionAttack}
		}
	}
	return Intent{}
}
