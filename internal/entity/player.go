package entity

// Player is the single actor controlled through input intents.
type Player struct {
	stats
	X, Y int
}

// NewPlayer creates a player at full health.
func NewPlayer(x, y, maxHP, attack int) *Player {
	return &Player{
		stats: stats{HP: maxHP, MaxHP: maxHP, Attack: attack},
		X:     x,
		Y:     y,
	}
}

// GetName returns the player's display name.
func (p *Player) GetName() string { return "You" }

// Position returns the player's current x, y coordinates.
func (p *Player) Position() (int, int) {
	return p.X, p.Y
}

// MoveTo updates the player position.
func (p *Player) MoveTo(x, y int) {
	p.X = x
	p.Y = y
}

// AddAttack raises attack by a flat bonus. Bonuses stack without a cap.
func (p *Player) AddAttack(bonus int) {
	p.Attack += bonus
}

var _ Combatant = (*Player)(nil)
