// Package spawn scatters pickups, the player and enemies onto a generated grid.
package spawn

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/rng"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// DefaultMaxAttempts caps the random samples taken per empty-cell search.
const DefaultMaxAttempts = 1000

// Fallback position used when no empty cell is found for the player.
const (
	FallbackX = 1
	FallbackY = 1
)

// Counts holds how many of each thing to place.
type Counts struct {
	Potions int
	Swords  int
	Enemies int
}

// PlayerStats are the starting stats of the player.
type PlayerStats struct {
	MaxHP  int
	Attack int
}

// Placer finds empty cells by random sampling and marks them as it goes,
// so no two placements share a cell.
type Placer struct {
	grid        *world.Grid
	rng         *rand.Rand
	maxAttempts int
}

// NewPlacer creates a placer for grid. A maxAttempts <= 0 uses DefaultMaxAttempts.
func NewPlacer(grid *world.Grid, r *rand.Rand, maxAttempts int) *Placer {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Placer{grid: grid, rng: r, maxAttempts: maxAttempts}
}

// FindRandomEmptyCell samples interior coordinates until one holds an empty
// tile. ok is false when the attempt cap runs out; that is not an error.
func (p *Placer) FindRandomEmptyCell() (x, y int, ok bool) {
	for attempts := 0; attempts < p.maxAttempts; attempts++ {
		x = rng.Between(p.rng, 1, p.grid.Cols()-2)
		y = rng.Between(p.rng, 1, p.grid.Rows()-2)
		if p.grid.At(x, y) == world.TileEmpty {
			return x, y, true
		}
	}
	return 0, 0, false
}

// PlacePickups places potions and then swords. It returns how many of each
// were placed; placements that find no cell are skipped.
func (p *Placer) PlacePickups(potions, swords int) (placedPotions, placedSwords int) {
	placedPotions = p.scatter(potions, world.TilePotion)
	placedSwords = p.scatter(swords, world.TileSword)
	return placedPotions, placedSwords
}

func (p *Placer) scatter(n int, t world.Tile) int {
	placed := 0
	for i := 0; i < n; i++ {
		x, y, ok := p.FindRandomEmptyCell()
		if !ok {
			continue
		}
		p.grid.Set(x, y, t)
		placed++
	}
	return placed
}

// PlacePlayer puts the player on a random empty cell, or on the fallback
// position whatever it holds when none is found.
func (p *Placer) PlacePlayer(stats PlayerStats) *entity.Player {
	x, y, ok := p.FindRandomEmptyCell()
	if !ok {
		x, y = FallbackX, FallbackY
	}
	p.grid.Set(x, y, world.TilePlayer)
	return entity.NewPlayer(x, y, stats.MaxHP, stats.Attack)
}

// PlaceEnemies places up to n enemies and returns them in spawn order.
// Each enemy is labelled by its spawn index and identified by a UUID
// derived from namespace and that label.
func (p *Placer) PlaceEnemies(n int, def *gamedata.EnemyDef, namespace uuid.UUID) []*entity.Enemy {
	enemies := make([]*entity.Enemy, 0, n)
	for i := 0; i < n; i++ {
		x, y, ok := p.FindRandomEmptyCell()
		if !ok {
			continue
		}
		label := fmt.Sprintf("e%d", i)
		id := uuid.NewSHA1(namespace, []byte(label))
		enemies = append(enemies, entity.NewEnemy(def, id, label, x, y))
		p.grid.Set(x, y, world.TileEnemy)
	}
	return enemies
}

// Populate runs the full placement sequence: potions, swords, player, enemies.
func (p *Placer) Populate(ctx context.Context, counts Counts, stats PlayerStats, def *gamedata.EnemyDef, namespace uuid.UUID) (*entity.Player, []*entity.Enemy) {
	tracer := telemetry.Tracer("spawn")
	_, span := tracer.Start(ctx, "spawn.place")
	defer span.End()

	potions, swords := p.PlacePickups(counts.Potions, counts.Swords)
	player := p.PlacePlayer(stats)
	enemies := p.PlaceEnemies(counts.Enemies, def, namespace)

	span.SetAttributes(
		attribute.Int("spawn.potions", potions),
		attribute.Int("spawn.swords", swords),
		attribute.Int("spawn.enemies", len(enemies)),
		attribute.Int("player.x", player.X),
		attribute.Int("player.y", player.Y),
	)
	if len(enemies) < counts.Enemies {
		span.SetAttributes(attribute.Int("spawn.enemies_skipped", counts.Enemies-len(enemies)))
	}
	return player, enemies
}
