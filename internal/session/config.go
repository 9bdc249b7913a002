package session

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/spawn"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// ErrInvalidConfig is returned when a Config cannot produce a playable session.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every tunable of a session.
type Config struct {
	// Seed for random number generation. Used for reproducible sessions.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	Cols, Rows int
	Layout     world.GenConfig

	Potions     int
	Swords      int
	Enemies     int
	MaxAttempts int // Random samples per empty-cell search

	PlayerMaxHP  int
	PlayerAttack int
	PotionHeal   int
	SwordBonus   int

	Enemy gamedata.EnemyDef // Enemy display data, HP and attack
}

// DefaultConfig returns the configuration described by the embedded rules.
func DefaultConfig() Config {
	rules := gamedata.MustLoadRules()
	return Config{
		Cols: rules.Dungeon.Cols,
		Rows: rules.Dungeon.Rows,
		Layout: world.GenConfig{
			MinRooms:    rules.Dungeon.MinRooms,
			MaxRooms:    rules.Dungeon.MaxRooms,
			RoomMinSize: rules.Dungeon.RoomMinSize,
			RoomMaxSize: rules.Dungeon.RoomMaxSize,
			HallsMin:    rules.Dungeon.HallsMin,
			HallsMax:    rules.Dungeon.HallsMax,
		},
		Potions:      rules.Spawns.Potions,
		Swords:       rules.Spawns.Swords,
		Enemies:      rules.Spawns.Enemies,
		MaxAttempts:  rules.Spawns.MaxAttempts,
		PlayerMaxHP:  rules.Combat.PlayerMaxHP,
		PlayerAttack: rules.Combat.PlayerAttack,
		PotionHeal:   rules.Combat.PotionHeal,
		SwordBonus:   rules.Combat.SwordBonus,
		Enemy:        rules.Enemy,
	}
}

// Validate reports the first inconsistency in the configuration.
func (c Config) Validate() error {
	if err := c.Layout.Validate(c.Rows, c.Cols); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	switch {
	case c.Potions < 0 || c.Swords < 0 || c.Enemies < 0:
		return fmt.Errorf("%w: negative spawn count (potions %d, swords %d, enemies %d)",
			ErrInvalidConfig, c.Potions, c.Swords, c.Enemies)
	case c.MaxAttempts < 1:
		return fmt.Errorf("%w: max attempts %d must be at least 1", ErrInvalidConfig, c.MaxAttempts)
	case c.PlayerMaxHP < 1:
		return fmt.Errorf("%w: player max hp %d must be at least 1", ErrInvalidConfig, c.PlayerMaxHP)
	case c.PlayerAttack < 0:
		return fmt.Errorf("%w: player attack %d is negative", ErrInvalidConfig, c.PlayerAttack)
	case c.PotionHeal < 0:
		return fmt.Errorf("%w: potion heal %d is negative", ErrInvalidConfig, c.PotionHeal)
	case c.SwordBonus < 0:
		return fmt.Errorf("%w: sword bonus %d is negative", ErrInvalidConfig, c.SwordBonus)
	case c.Enemy.HP < 1:
		return fmt.Errorf("%w: enemy hp %d must be at least 1", ErrInvalidConfig, c.Enemy.HP)
	case c.Enemy.Attack < 0:
		return fmt.Errorf("%w: enemy attack %d is negative", ErrInvalidConfig, c.Enemy.Attack)
	}

	// The player plus every spawn must fit inside the wall border
	interior := (c.Rows - 2) * (c.Cols - 2)
	if need := c.Potions + c.Swords + c.Enemies + 1; need > interior {
		return fmt.Errorf("%w: %d spawns exceed the %d interior cells", ErrInvalidConfig, need, interior)
	}
	return nil
}

func (c Config) counts() spawn.Counts {
	return spawn.Counts{Potions: c.Potions, Swords: c.Swords, Enemies: c.Enemies}
}

// Environment variables read by ConfigFromEnv.
const (
	EnvSeed        = "DUNGEONCRAWL_SEED"
	EnvCols        = "DUNGEONCRAWL_COLS"
	EnvRows        = "DUNGEONCRAWL_ROWS"
	EnvMinRooms    = "DUNGEONCRAWL_MIN_ROOMS"
	EnvMaxRooms    = "DUNGEONCRAWL_MAX_ROOMS"
	EnvEnemies     = "DUNGEONCRAWL_ENEMIES"
	EnvPotions     = "DUNGEONCRAWL_POTIONS"
	EnvSwords      = "DUNGEONCRAWL_SWORDS"
	EnvPlayerHP    = "DUNGEONCRAWL_PLAYER_HP"
	EnvPlayerAtk   = "DUNGEONCRAWL_PLAYER_ATTACK"
	EnvEnemyHP     = "DUNGEONCRAWL_ENEMY_HP"
	EnvEnemyAtk    = "DUNGEONCRAWL_ENEMY_ATTACK"
	EnvPotionHeal  = "DUNGEONCRAWL_POTION_HEAL"
	EnvSwordBonus  = "DUNGEONCRAWL_SWORD_BONUS"
	EnvMaxAttempts = "DUNGEONCRAWL_MAX_ATTEMPTS"
)

// ConfigFromEnv returns base with any DUNGEONCRAWL_* variables applied.
// Unset variables leave the base value alone; malformed ones are an error.
func ConfigFromEnv(base Config) (Config, error) {
	cfg := base

	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return base, fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, EnvSeed, v, err)
		}
		cfg.Seed = seed
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{EnvCols, &cfg.Cols},
		{EnvRows, &cfg.Rows},
		{EnvMinRooms, &cfg.Layout.MinRooms},
		{EnvMaxRooms, &cfg.Layout.MaxRooms},
		{EnvEnemies, &cfg.Enemies},
		{EnvPotions, &cfg.Potions},
		{EnvSwords, &cfg.Swords},
		{EnvPlayerHP, &cfg.PlayerMaxHP},
		{EnvPlayerAtk, &cfg.PlayerAttack},
		{EnvEnemyHP, &cfg.Enemy.HP},
		{EnvEnemyAtk, &cfg.Enemy.Attack},
		{EnvPotionHeal, &cfg.PotionHeal},
		{EnvSwordBonus, &cfg.SwordBonus},
		{EnvMaxAttempts, &cfg.MaxAttempts},
	}
	for _, in := range ints {
		v, ok := os.LookupEnv(in.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return base, fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, in.name, v, err)
		}
		*in.dst = n
	}
	return cfg, nil
}
