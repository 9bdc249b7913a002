package session

import (
	"context"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"

	"github.com/samdwyer/dungeoncrawl/internal/combat"
	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/rng"
	"github.com/samdwyer/dungeoncrawl/internal/spawn"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// MoveResult reports the outcome of a move intent.
type MoveResult struct {
	Moved bool
}

// AttackResult reports the outcome of an attack intent.
type AttackResult struct {
	Engaged bool
}

// PlayerSnapshot is a read-only copy of the player.
type PlayerSnapshot struct {
	X, Y      int
	HP, MaxHP int
	Attack    int
}

// EnemySnapshot is a read-only copy of one live enemy.
type EnemySnapshot struct {
	ID        uuid.UUID
	Label     string
	Name      string
	Glyph     rune
	Color     string // Hex color from the enemy definition
	X, Y      int
	HP, MaxHP int
	Attack    int
}

// Session owns one dungeon and everything in it.
// It is not safe for concurrent use; each intent runs to completion.
type Session struct {
	id      uuid.UUID
	grid    *world.Grid
	player  *entity.Player
	enemies *entity.Roster
	engine  *combat.Engine

	state       State
	turn        int
	lastMessage string

	turns metric.Int64Counter
}

// New validates cfg and builds a session seeded from cfg.Seed.
func New(ctx context.Context, cfg Config) (*Session, error) {
	return NewWithRand(ctx, cfg, rng.New(cfg.Seed))
}

// NewWithRand validates cfg and builds a session drawing every random
// decision from r: layout, placement and enemy steps.
func NewWithRand(ctx context.Context, cfg Config, r *rand.Rand) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tracer := telemetry.Tracer("session")
	ctx, span := tracer.Start(ctx, "session.init")
	defer span.End()

	s := &Session{
		id:          uuid.New(),
		grid:        world.NewGrid(cfg.Rows, cfg.Cols),
		state:       StateActive,
		lastMessage: "Explore the dungeon. Space attacks adjacent enemies.",
	}

	rooms := world.NewGenerator(cfg.Layout, r).Generate(ctx, s.grid)

	enemyDef := cfg.Enemy
	placer := spawn.NewPlacer(s.grid, r, cfg.MaxAttempts)
	player, enemies := placer.Populate(ctx, cfg.counts(),
		spawn.PlayerStats{MaxHP: cfg.PlayerMaxHP, Attack: cfg.PlayerAttack},
		&enemyDef, s.id)
	s.player = player
	s.enemies = entity.NewRoster(enemies...)

	s.engine = combat.NewEngine(combat.Rules{
		PotionHeal: cfg.PotionHeal,
		SwordBonus: cfg.SwordBonus,
	}, r)

	var err error
	if s.turns, err = telemetry.Meter("session").Int64Counter("crawl.turns"); err != nil {
		s.turns = metricnoop.Int64Counter{}
	}

	span.SetAttributes(
		attribute.String("session.id", s.id.String()),
		attribute.Int64("session.seed", cfg.Seed),
		attribute.Int("dungeon.rooms", len(rooms)),
		attribute.Int("enemies.placed", s.enemies.Len()),
		attribute.Int("player.start_x", player.X),
		attribute.Int("player.start_y", player.Y),
	)
	return s, nil
}

// board hands the engine the state for a single call.
func (s *Session) board() combat.Board {
	return combat.Board{Grid: s.grid, Player: s.player, Enemies: s.enemies}
}

// HandleMoveIntent moves the player and, if the move happened, runs the
// enemy turn. It is a no-op once the session is over.
func (s *Session) HandleMoveIntent(ctx context.Context, dx, dy int) MoveResult {
	if s.IsOver() {
		return MoveResult{}
	}
	moved := s.engine.TryMove(ctx, s.board(), dx, dy)
	if moved {
		s.endTurn(ctx, "move")
	}
	return MoveResult{Moved: moved}
}

// HandleAttackIntent attacks adjacent enemies and, if any was engaged,
// runs the enemy turn. It is a no-op once the session is over.
func (s *Session) HandleAttackIntent(ctx context.Context) AttackResult {
	if s.IsOver() {
		return AttackResult{}
	}
	engaged := s.engine.Attack(ctx, s.board())
	if engaged {
		s.endTurn(ctx, "attack")
	}
	return AttackResult{Engaged: engaged}
}

// endTurn runs the enemy response and collects the turn's messages.
func (s *Session) endTurn(ctx context.Context, intent string) {
	if s.engine.RunEnemyTurn(ctx, s.board()) {
		s.state = StateDefeated
	}
	s.turn++
	s.turns.Add(ctx, 1, metric.WithAttributes(attribute.String("intent", intent)))

	var msgs []string
	for _, ev := range s.engine.DrainEvents() {
		if m := ev.Message(); m != "" {
			msgs = append(msgs, m)
		}
	}
	if s.state == StateDefeated {
		msgs = append(msgs, "Press q to quit.")
	}
	s.lastMessage = strings.Join(msgs, " ")
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// IsOver returns true once the player has been defeated.
func (s *Session) IsOver() bool { return s.state == StateDefeated }

// Cleared returns true when no enemies remain. The session stays active.
func (s *Session) Cleared() bool { return s.enemies.Len() == 0 }

// Turn returns the number of completed turns.
func (s *Session) Turn() int { return s.turn }

// LastMessage returns the messages produced by the last turn.
func (s *Session) LastMessage() string { return s.lastMessage }

// Rows returns the grid height.
func (s *Session) Rows() int { return s.grid.Rows() }

// Cols returns the grid width.
func (s *Session) Cols() int { return s.grid.Cols() }

// Tile returns the tile at (x, y); out of bounds reads return a wall.
func (s *Session) Tile(x, y int) world.Tile { return s.grid.At(x, y) }

// Cells calls fn for every cell in row-major order.
func (s *Session) Cells(fn func(x, y int, t world.Tile)) { s.grid.Cells(fn) }

// Dump renders the grid as text, one row per line.
func (s *Session) Dump() string { return s.grid.String() }

// Player returns a snapshot of the player.
func (s *Session) Player() PlayerSnapshot {
	p := s.player
	return PlayerSnapshot{X: p.X, Y: p.Y, HP: p.GetHP(), MaxHP: p.GetMaxHP(), Attack: p.GetAttack()}
}

// EnemyAt returns a snapshot of the live enemy at (x, y).
func (s *Session) EnemyAt(x, y int) (EnemySnapshot, bool) {
	e := s.enemies.At(x, y)
	if e == nil {
		return EnemySnapshot{}, false
	}
	return snapshotEnemy(e), true
}

// Enemies returns snapshots of the live enemies in turn order.
func (s *Session) Enemies() []EnemySnapshot {
	out := make([]EnemySnapshot, 0, s.enemies.Len())
	s.enemies.Each(func(e *entity.Enemy) {
		out = append(out, snapshotEnemy(e))
	})
	return out
}

func snapshotEnemy(e *entity.Enemy) EnemySnapshot {
	return EnemySnapshot{
		ID:     e.ID,
		Label:  e.Label,
		Name:   e.GetName(),
		Glyph:  e.Symbol(),
		Color:  e.Def.Color,
		X:      e.X,
		Y:      e.Y,
		HP:     e.GetHP(),
		MaxHP:  e.GetMaxHP(),
		Attack: e.GetAttack(),
	}
}
