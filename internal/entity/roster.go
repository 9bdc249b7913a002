package entity

// Roster is the ordered set of live enemies.
//
// Removal only flags an enemy; Compact drops flagged enemies in one pass
// while keeping insertion order, so removing during Each never skips or
// revisits anyone.
type Roster struct {
	enemies []*Enemy
	pending int
}

// NewRoster creates a roster holding the given enemies in order.
func NewRoster(enemies ...*Enemy) *Roster {
	r := &Roster{enemies: make([]*Enemy, 0, len(enemies))}
	for _, e := range enemies {
		r.Add(e)
	}
	return r
}

// Add appends an enemy to the end of the turn order.
func (r *Roster) Add(e *Enemy) {
	if e == nil {
		return
	}
	e.removed = false
	r.enemies = append(r.enemies, e)
}

// Len returns the number of live enemies.
func (r *Roster) Len() int {
	return len(r.enemies) - r.pending
}

// Each calls fn for every live enemy in insertion order.
func (r *Roster) Each(fn func(e *Enemy)) {
	for _, e := range r.enemies {
		if e.removed {
			continue
		}
		fn(e)
	}
}

// At returns the live enemy at (x, y), or nil.
func (r *Roster) At(x, y int) *Enemy {
	for _, e := range r.enemies {
		if !e.removed && e.X == x && e.Y == y {
			return e
		}
	}
	return nil
}

// Remove takes an enemy out of the live set.
func (r *Roster) Remove(e *Enemy) {
	if e == nil || e.removed {
		return
	}
	for _, cur := range r.enemies {
		if cur == e {
			e.removed = true
			r.pending++
			return
		}
	}
}

// Compact drops removed enemies and returns how many were dropped.
func (r *Roster) Compact() int {
	if r.pending == 0 {
		return 0
	}
	alive := r.enemies[:0]
	for _, e := range r.enemies {
		if !e.removed {
			alive = append(alive, e)
		}
	}
	for i := len(alive); i < len(r.enemies); i++ {
		r.enemies[i] = nil
	}
	dropped := len(r.enemies) - len(alive)
	r.enemies = alive
	r.pending = 0
	return dropped
}

// Snapshot returns the live enemies in order.
func (r *Roster) Snapshot() []*Enemy {
	out := make([]*Enemy, 0, r.Len())
	r.Each(func(e *Enemy) {
		out = append(out, e)
	})
	return out
}
