package combat

import (
	"context"
	"math/rand"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/rng"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// Rules holds the pickup effects applied on entry.
type Rules struct {
	PotionHeal int // HP restored by a potion, capped at max HP
	SwordBonus int // Flat attack bonus per sword, uncapped
}

// Board is the state a turn operates on. The engine never keeps it between calls.
type Board struct {
	Grid    *world.Grid
	Player  *entity.Player
	Enemies *entity.Roster
}

// directions lists the orthogonal steps in fixed order: +x, -x, +y, -y.
var directions = [4]gruid.Point{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
}

// Engine resolves player intents and enemy turns.
type Engine struct {
	rules  Rules
	rng    *rand.Rand
	tracer trace.Tracer
	events []Event

	slain   metric.Int64Counter
	pickups metric.Int64Counter
}

// Option configures an Engine.
type Option func(*Engine)

// WithTracer overrides the tracer used for turn spans.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// NewEngine creates an engine drawing enemy decisions from r.
func NewEngine(rules Rules, r *rand.Rand, opts ...Option) *Engine {
	e := &Engine{
		rules:  rules,
		rng:    r,
		tracer: telemetry.Tracer("combat"),
	}
	for _, opt := range opts {
		opt(e)
	}

	meter := telemetry.Meter("combat")
	var err error
	if e.slain, err = meter.Int64Counter("crawl.enemies_slain"); err != nil {
		e.slain = metricnoop.Int64Counter{}
	}
	if e.pickups, err = meter.Int64Counter("crawl.pickups"); err != nil {
		e.pickups = metricnoop.Int64Counter{}
	}
	return e
}

// DrainEvents returns the events recorded since the last drain and clears them.
func (e *Engine) DrainEvents() []Event {
	out := e.events
	e.events = nil
	return out
}

func (e *Engine) record(ev Event) {
	e.events = append(e.events, ev)
}

// TryMove moves the player by (dx, dy), clamped to the grid.
// It returns false when the clamped target is the current cell, holds an
// enemy, or is not walkable. Pickups on the target are consumed on entry.
func (e *Engine) TryMove(ctx context.Context, b Board, dx, dy int) bool {
	_, span := e.tracer.Start(ctx, "turn.move")
	defer span.End()

	p := b.Player
	nx := rng.Clamp(p.X+dx, 0, b.Grid.Cols()-1)
	ny := rng.Clamp(p.Y+dy, 0, b.Grid.Rows()-1)
	span.SetAttributes(
		attribute.Int("move.dx", dx),
		attribute.Int("move.dy", dy),
	)

	if nx == p.X && ny == p.Y {
		span.SetAttributes(attribute.String("move.rejected", "no_displacement"))
		return false
	}
	target := b.Grid.At(nx, ny)
	if target == world.TileEnemy {
		span.SetAttributes(attribute.String("move.rejected", "enemy"))
		return false
	}
	if !b.Grid.IsWalkable(nx, ny) {
		span.SetAttributes(attribute.String("move.rejected", "blocked"))
		return false
	}

	switch target {
	case world.TilePotion:
		healed := p.Heal(e.rules.PotionHeal)
		e.record(Event{Kind: EventPickup, Actor: p.GetName(), Item: "potion", Amount: healed, X: nx, Y: ny})
		e.pickups.Add(ctx, 1, metric.WithAttributes(attribute.String("item", "potion")))
	case world.TileSword:
		p.AddAttack(e.rules.SwordBonus)
		e.record(Event{Kind: EventPickup, Actor: p.GetName(), Item: "sword", Amount: e.rules.SwordBonus, X: nx, Y: ny})
		e.pickups.Add(ctx, 1, metric.WithAttributes(attribute.String("item", "sword")))
	}

	b.Grid.Set(p.X, p.Y, world.TileEmpty)
	p.MoveTo(nx, ny)
	b.Grid.Set(nx, ny, world.TilePlayer)
	e.record(Event{Kind: EventMove, Actor: p.GetName(), X: nx, Y: ny})

	span.SetAttributes(
		attribute.Int("player.x", nx),
		attribute.Int("player.y", ny),
		attribute.String("move.tile", target.String()),
		attribute.Bool("move.pickup", target.IsPickup()),
	)
	return true
}

// Attack strikes every enemy orthogonally adjacent to the player, checking
// +x, -x, +y, -y in that order. Enemies reduced to 0 HP or less are removed.
// It returns true if at least one enemy was engaged.
func (e *Engine) Attack(ctx context.Context, b Board) bool {
	_, span := e.tracer.Start(ctx, "turn.attack")
	defer span.End()

	p := b.Player
	engaged, kills := 0, 0
	for _, d := range directions {
		nx, ny := p.X+d.X, p.Y+d.Y
		if !b.Grid.IsInside(nx, ny) || b.Grid.At(nx, ny) != world.TileEnemy {
			continue
		}
		enemy := b.Enemies.At(nx, ny)
		if enemy == nil {
			continue
		}
		engaged++

		// Enemy HP may go negative; removal happens at <= 0
		enemy.HP -= p.GetAttack()
		if enemy.HP <= 0 {
			b.Grid.Set(nx, ny, world.TileEmpty)
			b.Enemies.Remove(enemy)
			kills++
			e.record(Event{Kind: EventKill, Actor: p.GetName(), Target: enemy.GetName(), Amount: p.GetAttack(), X: nx, Y: ny})
			e.slain.Add(ctx, 1)
		} else {
			e.record(Event{Kind: EventHit, Actor: p.GetName(), Target: enemy.GetName(), Amount: p.GetAttack(), X: nx, Y: ny})
		}
	}
	b.Enemies.Compact()

	span.SetAttributes(
		attribute.Int("attack.engaged", engaged),
		attribute.Int("attack.kills", kills),
		attribute.Int("player.attack", p.GetAttack()),
	)
	return engaged > 0
}

// RunEnemyTurn lets every live enemy act in insertion order. An enemy
// orthogonally adjacent to the player attacks; any other enemy tries one
// greedy step. Every enemy acts even after the player falls. It returns
// true if the player is at 0 HP when the pass ends.
func (e *Engine) RunEnemyTurn(ctx context.Context, b Board) bool {
	_, span := e.tracer.Start(ctx, "turn.enemies")
	defer span.End()

	p := b.Player
	attacks, moves := 0, 0
	defeated := !p.IsAlive()

	b.Enemies.Each(func(enemy *entity.Enemy) {
		dist := paths.DistanceManhattan(gruid.Point{X: enemy.X, Y: enemy.Y}, gruid.Point{X: p.X, Y: p.Y})
		if dist == 1 {
			dealt := strike(enemy, p)
			attacks++
			e.record(Event{Kind: EventEnemyAttack, Actor: enemy.GetName(), Target: p.GetName(), Amount: dealt, X: enemy.X, Y: enemy.Y})
			if !defeated && !p.IsAlive() {
				defeated = true
				e.record(Event{Kind: EventDefeat, Actor: enemy.GetName(), Target: p.GetName(), X: p.X, Y: p.Y})
			}
			return
		}
		if e.stepEnemy(b.Grid, enemy) {
			moves++
		}
	})
	b.Enemies.Compact()

	span.SetAttributes(
		attribute.Int("enemies.live", b.Enemies.Len()),
		attribute.Int("enemies.attacks", attacks),
		attribute.Int("enemies.moves", moves),
		attribute.Int("player.hp", p.GetHP()),
		attribute.Bool("player.defeated", defeated),
	)
	return defeated
}

// strike applies attacker's attack to target and returns the damage dealt.
func strike(attacker, target entity.Combatant) int {
	return target.TakeDamage(attacker.GetAttack())
}

// stepEnemy moves the enemy into the first walkable neighbour, trying the
// four directions in rotation from a random start. Pickups under the new
// cell are overwritten, not collected.
func (e *Engine) stepEnemy(g *world.Grid, enemy *entity.Enemy) bool {
	start := rng.Between(e.rng, 0, len(directions)-1)
	for i := 0; i < len(directions); i++ {
		d := directions[(start+i)%len(directions)]
		nx, ny := enemy.X+d.X, enemy.Y+d.Y
		if !g.IsWalkable(nx, ny) {
			continue
		}
		g.Set(enemy.X, enemy.Y, world.TileEmpty)
		enemy.MoveTo(nx, ny)
		g.Set(nx, ny, world.TileEnemy)
		e.record(Event{Kind: EventEnemyMove, Actor: enemy.GetName(), X: nx, Y: ny})
		return true
	}
	return false
}
