package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/session"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// View is the read-only session state the renderer draws.
type View interface {
	Rows() int
	Cols() int
	Cells(fn func(x, y int, t world.Tile))
	Player() session.PlayerSnapshot
	Enemies() []session.EnemySnapshot
	Turn() int
	LastMessage() string
	IsOver() bool
}

const (
	barWidth   = 10
	panelGap   = 2
	helpText   = "arrows/wasd move  space attack  q quit"
	deathTitle = "You died! Press q to quit."
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
	tiles  map[world.Tile]tcell.Style
	health [3]tcell.Style // healthy, wounded, critical
	text   tcell.Style
	enemy  map[string]tcell.Style // keyed by hex color
}

// NewRenderer creates a renderer using the palette from rules.
func NewRenderer(screen *Screen, rules *gamedata.Rules) *Renderer {
	fg := func(name string, fallback tcell.Color) tcell.Style {
		return tcell.StyleDefault.Foreground(rules.PaletteColor(name, fallback))
	}
	return &Renderer{
		screen: screen,
		tiles: map[world.Tile]tcell.Style{
			world.TileWall:   fg("wall", tcell.ColorDarkGray),
			world.TileEmpty:  fg("empty", tcell.ColorGray),
			world.TilePlayer: fg("player", tcell.ColorYellow).Bold(true),
			world.TilePotion: fg("potion", tcell.ColorAqua),
			world.TileSword:  fg("sword", tcell.ColorWhite).Bold(true),
		},
		health: [3]tcell.Style{
			fg("healthy", tcell.ColorGreen),
			fg("wounded", tcell.ColorOlive),
			fg("critical", tcell.ColorRed),
		},
		text:  tcell.StyleDefault.Foreground(tcell.ColorWhite),
		enemy: make(map[string]tcell.Style),
	}
}

// Render draws the grid, the side panel and the status lines.
func (r *Renderer) Render(v View) {
	r.screen.Clear()

	enemies := v.Enemies()
	glyphs := make(map[[2]int]session.EnemySnapshot, len(enemies))
	for _, e := range enemies {
		glyphs[[2]int{e.X, e.Y}] = e
	}

	v.Cells(func(x, y int, t world.Tile) {
		if t == world.TileEnemy {
			if e, ok := glyphs[[2]int{x, y}]; ok {
				r.screen.SetContent(x, y, e.Glyph, r.enemyStyle(e.Color))
				return
			}
		}
		r.screen.SetContent(x, y, t.Rune(), r.tileStyle(t))
	})

	r.renderPanel(v.Cols()+panelGap, v.Player(), enemies, v.Rows())

	y := v.Rows()
	r.screen.DrawText(0, y, StatusLine(v.Player(), len(enemies), v.Turn()), r.text)
	if v.IsOver() {
		r.screen.DrawText(0, y+1, deathTitle, r.health[2].Bold(true))
	} else {
		r.screen.DrawText(0, y+1, v.LastMessage(), r.text)
	}
	r.screen.DrawText(0, y+2, helpText, tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.screen.Show()
}

// renderPanel lists the player and as many enemies as fit beside the grid.
func (r *Renderer) renderPanel(x int, p session.PlayerSnapshot, enemies []session.EnemySnapshot, rows int) {
	r.renderBar(x, 0, "You", p.HP, p.MaxHP)
	for i, e := range enemies {
		y := i + 2
		if y >= rows {
			break
		}
		r.renderBar(x, y, e.Label+" "+e.Name, e.HP, e.MaxHP)
	}
}

func (r *Renderer) renderBar(x, y int, label string, hp, maxHP int) {
	pct := entity.HealthPercent(hp, maxHP)
	text := fmt.Sprintf("%-10s %s %3d%%", label, HealthBar(pct, barWidth), pct)
	r.screen.DrawText(x, y, text, r.health[healthLevel(pct)])
}

func (r *Renderer) tileStyle(t world.Tile) tcell.Style {
	if style, ok := r.tiles[t]; ok {
		return style
	}
	return tcell.StyleDefault
}

func (r *Renderer) enemyStyle(hex string) tcell.Style {
	if style, ok := r.enemy[hex]; ok {
		return style
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorRed)
	if color, err := gamedata.ParseHexColor(hex); err == nil {
		style = tcell.StyleDefault.Foreground(color)
	}
	r.enemy[hex] = style.Bold(true)
	return r.enemy[hex]
}

// MinSize returns the smallest terminal that shows a cols x rows grid and
// the three lines under it. The side panel is clipped when it does not fit.
func MinSize(cols, rows int) (width, height int) {
	return max(cols, len(helpText)), rows + 3
}

// StatusLine formats the player summary shown under the grid.
func StatusLine(p session.PlayerSnapshot, enemies, turn int) string {
	return fmt.Sprintf("HP %d/%d  ATK %d  Enemies %d  Turn %d", p.HP, p.MaxHP, p.Attack, enemies, turn)
}

// HealthBar renders pct (0-100) as a bar of width cells.
func HealthBar(pct, width int) string {
	filled := pct * width / 100
	if pct > 0 && filled == 0 {
		filled = 1
	}
	filled = min(max(filled, 0), width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

// healthLevel maps a percentage to 0 healthy, 1 wounded or 2 critical.
func healthLevel(pct int) int {
	switch {
	case pct > 60:
		return 0
	case pct > 30:
		return 1
	default:
		return 2
	}
}
