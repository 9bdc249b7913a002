package world

import (
	"strings"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
	"codeberg.org/anaseto/gruid/rl"
)

// Grid is a fixed rows x cols array of tiles.
// Out of bounds reads return TileWall and out of bounds writes are ignored.
type Grid struct {
	rows, cols int
	cells      rl.Grid
}

// NewGrid creates a grid filled with walls.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: rl.NewGrid(cols, rows),
	}
	g.Fill(TileWall)
	return g
}

// Rows returns the grid height.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the grid width.
func (g *Grid) Cols() int { return g.cols }

// IsInside reports whether (x, y) lies within the grid bounds.
func (g *Grid) IsInside(x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}

// At returns the tile at the given position.
func (g *Grid) At(x, y int) Tile {
	if !g.IsInside(x, y) {
		return TileWall
	}
	return Tile(g.cells.At(gruid.Point{X: x, Y: y}))
}

// Set places a tile at the given position.
func (g *Grid) Set(x, y int, t Tile) {
	if !g.IsInside(x, y) {
		return
	}
	g.cells.Set(gruid.Point{X: x, Y: y}, rl.Cell(t))
}

// Fill sets every cell to t.
func (g *Grid) Fill(t Tile) {
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			g.Set(x, y, t)
		}
	}
}

// IsWalkable returns true if the cell is inside the grid and holds an
// empty or pickup tile.
func (g *Grid) IsWalkable(x, y int) bool {
	if !g.IsInside(x, y) {
		return false
	}
	return g.At(x, y).IsWalkable()
}

// CarveRoom sets the rectangle at (x, y) of size w x h to empty, clipped to bounds.
func (g *Grid) CarveRoom(x, y, w, h int) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			g.Set(xx, yy, TileEmpty)
		}
	}
}

// CarveHorizontal carves row y from x1 to x2 inclusive.
func (g *Grid) CarveHorizontal(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		g.Set(x, y, TileEmpty)
	}
}

// CarveVertical carves column x from y1 to y2 inclusive.
func (g *Grid) CarveVertical(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		g.Set(x, y, TileEmpty)
	}
}

// Cells calls fn for every cell in row-major order.
func (g *Grid) Cells(fn func(x, y int, t Tile)) {
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			fn(x, y, g.At(x, y))
		}
	}
}

// Count returns the number of cells holding t.
func (g *Grid) Count(t Tile) int {
	n := 0
	g.Cells(func(_, _ int, c Tile) {
		if c == t {
			n++
		}
	})
	return n
}

// isOpen reports whether a cell is anything but a wall.
func (g *Grid) isOpen(p gruid.Point) bool {
	return g.IsInside(p.X, p.Y) && g.At(p.X, p.Y) != TileWall
}

// openPather implements paths.Pather over the non-wall cells of a grid.
type openPather struct {
	grid *Grid
	nbs  paths.Neighbors
}

func (op *openPather) Neighbors(p gruid.Point) []gruid.Point {
	return op.nbs.Cardinal(p, op.grid.isOpen)
}

// component computes the connected component of open cells containing (x, y).
func (g *Grid) component(x, y int) *paths.PathRange {
	pr := paths.NewPathRange(gruid.NewRange(0, 0, g.cols, g.rows))
	pr.CCMap(&openPather{grid: g}, gruid.Point{X: x, Y: y})
	return pr
}

// ConnectedFrom reports whether every non-wall cell can be reached from
// (x, y) through orthogonal steps over non-wall cells.
func (g *Grid) ConnectedFrom(x, y int) bool {
	if !g.isOpen(gruid.Point{X: x, Y: y}) {
		return false
	}
	pr := g.component(x, y)
	connected := true
	g.Cells(func(cx, cy int, t Tile) {
		if t != TileWall && pr.CCMapAt(gruid.Point{X: cx, Y: cy}) == -1 {
			connected = false
		}
	})
	return connected
}

// String renders the grid one row per line using tile glyphs.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.cols + 1) * g.rows)
	for y := 0; y < g.rows; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < g.cols; x++ {
			sb.WriteRune(g.At(x, y).Rune())
		}
	}
	return sb.String()
}
