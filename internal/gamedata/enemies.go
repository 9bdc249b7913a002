package gamedata

// EnemyDef defines the enemy kind spawned in the dungeon.
type EnemyDef struct {
	ID     string `json:"id"`     // Unique identifier (e.g., "grunt")
	Name   string `json:"name"`   // Display name (e.g., "Grunt")
	Glyph  string `json:"glyph"`  // Single character for rendering (e.g., "E")
	Color  string `json:"color"`  // Hex color code (e.g., "#D04040")
	HP     int    `json:"hp"`     // Base hit points
	Attack int    `json:"attack"` // Fixed attack power
}

// GlyphRune returns the glyph as a rune for rendering.
func (e *EnemyDef) GlyphRune() rune {
	if len(e.Glyph) == 0 {
		return '?'
	}
	return rune(e.Glyph[0])
}
