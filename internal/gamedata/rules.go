package gamedata

import (
	"encoding/json"
	"fmt"
)

const rulesFile = "rules.json"

// DungeonRules holds the default grid size and generator ranges.
type DungeonRules struct {
	Cols        int `json:"cols"`
	Rows        int `json:"rows"`
	MinRooms    int `json:"minRooms"`
	MaxRooms    int `json:"maxRooms"`
	RoomMinSize int `json:"roomMinSize"`
	RoomMaxSize int `json:"roomMaxSize"`
	HallsMin    int `json:"hallsMin"`
	HallsMax    int `json:"hallsMax"`
}

// SpawnRules holds the default pickup and enemy counts.
type SpawnRules struct {
	Enemies     int `json:"enemies"`
	Potions     int `json:"potions"`
	Swords      int `json:"swords"`
	MaxAttempts int `json:"maxAttempts"` // Random samples per empty-cell search
}

// CombatRules holds the player stats and pickup effects.
type CombatRules struct {
	PlayerMaxHP  int `json:"playerMaxHp"`
	PlayerAttack int `json:"playerAttack"`
	PotionHeal   int `json:"potionHeal"`
	SwordBonus   int `json:"swordBonus"`
}

// Rules is the structure of rules.json.
type Rules struct {
	Dungeon DungeonRules      `json:"dungeon"`
	Spawns  SpawnRules        `json:"spawns"`
	Combat  CombatRules       `json:"combat"`
	Enemy   EnemyDef          `json:"enemy"`
	Palette map[string]string `json:"palette"` // Tile and health colors as hex strings
}

// decode reads and unmarshals a JSON file from the embedded filesystem.
func decode[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}
	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}
	return result, nil
}

// LoadRules loads the embedded default rules.
// Each call returns a fresh copy that callers may modify.
func LoadRules() (*Rules, error) {
	rules, err := decode[Rules](rulesFile)
	if err != nil {
		return nil, err
	}
	if rules.Enemy.ID == "" {
		return nil, fmt.Errorf("%s: enemy definition has no id", rulesFile)
	}
	return &rules, nil
}

// MustLoadRules loads the default rules, panicking on error.
// The rules are embedded at build time, so failure is a build defect.
func MustLoadRules() *Rules {
	rules, err := LoadRules()
	if err != nil {
		panic(err)
	}
	return rules
}
