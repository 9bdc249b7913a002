package entity

import (
	"github.com/google/uuid"

	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
)

// Enemy represents a hostile creature in the dungeon.
type Enemy struct {
	stats
	Def     *gamedata.EnemyDef // Display data and base stats
	ID      uuid.UUID          // Stable identifier for the session
	Label   string             // Short label in spawn order (e.g., "e3")
	X, Y    int                // Position in the dungeon
	removed bool
}

// NewEnemy creates an enemy from a definition at the specified position.
func NewEnemy(def *gamedata.EnemyDef, id uuid.UUID, label string, x, y int) *Enemy {
	return &Enemy{
		stats: stats{HP: def.HP, MaxHP: def.HP, Attack: def.Attack},
		Def:   def,
		ID:    id,
		Label: label,
		X:     x,
		Y:     y,
	}
}

// GetName returns the enemy's display name.
func (e *Enemy) GetName() string {
	return e.Def.Name
}

// Position returns the enemy's current x, y coordinates.
func (e *Enemy) Position() (int, int) {
	return e.X, e.Y
}

// MoveTo updates the enemy position.
func (e *Enemy) MoveTo(x, y int) {
	e.X = x
	e.Y = y
}

// Symbol returns the display glyph.
func (e *Enemy) Symbol() rune {
	return e.Def.GlyphRune()
}

var _ Combatant = (*Enemy)(nil)
