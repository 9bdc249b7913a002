// Package entity provides the player, enemies and the live enemy set.
package entity

import "github.com/samdwyer/dungeoncrawl/internal/rng"

// Combatant is implemented by anything that can deal and take melee damage.
type Combatant interface {
	GetName() string
	IsAlive() bool
	Position() (int, int)

	GetHP() int
	GetMaxHP() int
	GetAttack() int

	TakeDamage(amount int) int // Returns actual damage taken
	Heal(amount int) int       // Returns actual amount healed
}

// stats is the hit point and attack block shared by the player and enemies.
type stats struct {
	HP, MaxHP int
	Attack    int
}

// IsAlive returns true if HP remains.
func (s *stats) IsAlive() bool { return s.HP > 0 }

// GetHP returns current HP.
func (s *stats) GetHP() int { return s.HP }

// GetMaxHP returns maximum HP.
func (s *stats) GetMaxHP() int { return s.MaxHP }

// GetAttack returns the attack value.
func (s *stats) GetAttack() int { return s.Attack }

// TakeDamage reduces HP, floored at 0, and returns the actual damage taken.
func (s *stats) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > s.HP {
		actual = s.HP
	}
	s.HP -= actual
	return actual
}

// Heal restores HP, capped at MaxHP, and returns the actual amount healed.
func (s *stats) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if s.HP+actual > s.MaxHP {
		actual = s.MaxHP - s.HP
	}
	s.HP += actual
	return actual
}

// HealthPercent returns hp as a whole percentage of maxHP, clamped to [0, 100].
func HealthPercent(hp, maxHP int) int {
	if maxHP <= 0 {
		return 0
	}
	return rng.Clamp(hp*100/maxHP, 0, 100)
}
