// Package world provides the dungeon grid and its generator.
package world

import "codeberg.org/anaseto/gruid/rl"

// Tile is the single marker occupying one grid cell.
type Tile rl.Cell

const (
	// TileWall represents an impassable wall tile.
	TileWall Tile = '#'
	// TileEmpty represents a carved floor tile.
	TileEmpty Tile = '.'
	// TilePlayer marks the cell holding the player.
	TilePlayer Tile = '@'
	// TileEnemy marks a cell holding a live enemy.
	TileEnemy Tile = 'E'
	// TilePotion is a healing pickup.
	TilePotion Tile = '!'
	// TileSword is an attack bonus pickup.
	TileSword Tile = '/'
)

// IsWalkable returns true if an entity may step onto the tile.
// Pickups do not block movement.
func (t Tile) IsWalkable() bool {
	return t == TileEmpty || t == TilePotion || t == TileSword
}

// IsPickup returns true for potion and sword tiles.
func (t Tile) IsPickup() bool {
	return t == TilePotion || t == TileSword
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}

// String returns a human-readable tile name.
func (t Tile) String() string {
	switch t {
	case TileWall:
		return "wall"
	case TileEmpty:
		return "empty"
	case TilePlayer:
		return "player"
	case TileEnemy:
		return "enemy"
	case TilePotion:
		return "potion"
	case TileSword:
		return "sword"
	default:
		return "unknown"
	}
}
