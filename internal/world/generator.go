package world

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"codeberg.org/anaseto/gruid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeoncrawl/internal/rng"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
)

const (
	// Default dungeon dimensions
	DefaultCols = 40
	DefaultRows = 24
)

// ErrInvalidLayout is returned when generation parameters are inconsistent.
var ErrInvalidLayout = errors.New("invalid layout")

// GenConfig holds the ranges used by the room and corridor generator.
type GenConfig struct {
	MinRooms    int
	MaxRooms    int
	RoomMinSize int
	RoomMaxSize int
	HallsMin    int // Extra full-length corridors per axis
	HallsMax    int
}

// DefaultGenConfig returns the stock generation ranges.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		MinRooms:    5,
		MaxRooms:    10,
		RoomMinSize: 3,
		RoomMaxSize: 8,
		HallsMin:    3,
		HallsMax:    5,
	}
}

// Validate checks that the ranges are internally consistent for a grid of
// the given size. Every room must fit inside the 1-cell wall border.
func (c GenConfig) Validate(rows, cols int) error {
	switch {
	case rows < 3 || cols < 3:
		return fmt.Errorf("%w: grid %dx%d is smaller than 3x3", ErrInvalidLayout, cols, rows)
	case c.MinRooms < 1:
		return fmt.Errorf("%w: min rooms %d must be at least 1", ErrInvalidLayout, c.MinRooms)
	case c.MinRooms > c.MaxRooms:
		return fmt.Errorf("%w: min rooms %d exceeds max rooms %d", ErrInvalidLayout, c.MinRooms, c.MaxRooms)
	case c.RoomMinSize < 1:
		return fmt.Errorf("%w: room min size %d must be at least 1", ErrInvalidLayout, c.RoomMinSize)
	case c.RoomMinSize > c.RoomMaxSize:
		return fmt.Errorf("%w: room min size %d exceeds room max size %d", ErrInvalidLayout, c.RoomMinSize, c.RoomMaxSize)
	case cols-c.RoomMaxSize-2 < 1:
		return fmt.Errorf("%w: room max size %d does not fit %d columns", ErrInvalidLayout, c.RoomMaxSize, cols)
	case rows-c.RoomMaxSize-2 < 1:
		return fmt.Errorf("%w: room max size %d does not fit %d rows", ErrInvalidLayout, c.RoomMaxSize, rows)
	case c.HallsMin < 0:
		return fmt.Errorf("%w: halls min %d is negative", ErrInvalidLayout, c.HallsMin)
	case c.HallsMin > c.HallsMax:
		return fmt.Errorf("%w: halls min %d exceeds halls max %d", ErrInvalidLayout, c.HallsMin, c.HallsMax)
	}
	return nil
}

// Generator carves rooms and corridors into a grid.
type Generator struct {
	cfg GenConfig
	rng *rand.Rand
}

// NewGenerator creates a generator drawing from r.
// The configuration is expected to have passed Validate.
func NewGenerator(cfg GenConfig, r *rand.Rand) *Generator {
	return &Generator{cfg: cfg, rng: r}
}

// Generate resets the grid to walls and carves a connected layout.
// It returns the rooms in the order they were carved.
func (gen *Generator) Generate(ctx context.Context, g *Grid) []Room {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()

	g.Fill(TileWall)

	rooms := gen.carveRooms(g)
	gen.connectRooms(g, rooms)
	halls, columns := gen.carveNoise(g)
	stitched := gen.stitch(g, rooms[0], halls, columns)

	span.SetAttributes(
		attribute.Int("dungeon.cols", g.Cols()),
		attribute.Int("dungeon.rows", g.Rows()),
		attribute.Int("dungeon.room_count", len(rooms)),
		attribute.Int("dungeon.halls", len(halls)),
		attribute.Int("dungeon.columns", len(columns)),
		attribute.Int("dungeon.stitched", stitched),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return rooms
}

// carveRooms places between MinRooms and MaxRooms rooms inside the border.
// Rooms may overlap.
func (gen *Generator) carveRooms(g *Grid) []Room {
	count := rng.Between(gen.rng, gen.cfg.MinRooms, gen.cfg.MaxRooms)
	rooms := make([]Room, 0, count)
	for i := 0; i < count; i++ {
		w := rng.Between(gen.rng, gen.cfg.RoomMinSize, gen.cfg.RoomMaxSize)
		h := rng.Between(gen.rng, gen.cfg.RoomMinSize, gen.cfg.RoomMaxSize)
		x := rng.Between(gen.rng, 1, g.Cols()-w-2)
		y := rng.Between(gen.rng, 1, g.Rows()-h-2)

		room := Room{X: x, Y: y, Width: w, Height: h}
		g.CarveRoom(room.X, room.Y, room.Width, room.Height)
		rooms = append(rooms, room)
	}
	return rooms
}

// connectRooms chains room centers in ascending x order with elbow corridors.
func (gen *Generator) connectRooms(g *Grid, rooms []Room) {
	centers := make([]gruid.Point, len(rooms))
	for i, r := range rooms {
		x, y := r.Center()
		centers[i] = gruid.Point{X: x, Y: y}
	}
	slices.SortStableFunc(centers, func(a, b gruid.Point) int {
		return a.X - b.X
	})

	for i := 1; i < len(centers); i++ {
		a, b := centers[i-1], centers[i]
		g.CarveHorizontal(a.X, b.X, a.Y)
		g.CarveVertical(a.Y, b.Y, b.X)
	}
}

// carveNoise adds full-length corridors at random interior rows, then columns.
func (gen *Generator) carveNoise(g *Grid) (halls, columns []int) {
	n := rng.Between(gen.rng, gen.cfg.HallsMin, gen.cfg.HallsMax)
	for i := 0; i < n; i++ {
		y := rng.Between(gen.rng, 1, g.Rows()-2)
		g.CarveHorizontal(1, g.Cols()-2, y)
		halls = append(halls, y)
	}

	n = rng.Between(gen.rng, gen.cfg.HallsMin, gen.cfg.HallsMax)
	for i := 0; i < n; i++ {
		x := rng.Between(gen.rng, 1, g.Cols()-2)
		g.CarveVertical(1, g.Rows()-2, x)
		columns = append(columns, x)
	}
	return halls, columns
}

// stitch joins any noise corridor that missed the room chain back to the
// anchor room's center. It draws no random numbers, so layouts that are
// already connected come out unchanged. It returns the number of connectors carved.
func (gen *Generator) stitch(g *Grid, anchor Room, halls, columns []int) int {
	ax, ay := anchor.Center()
	carved := 0

	pr := g.component(ax, ay)
	for _, y := range halls {
		if pr.CCMapAt(gruid.Point{X: ax, Y: y}) != -1 {
			continue
		}
		g.CarveVertical(ay, y, ax)
		carved++
		pr = g.component(ax, ay)
	}
	for _, x := range columns {
		if pr.CCMapAt(gruid.Point{X: x, Y: ay}) != -1 {
			continue
		}
		g.CarveHorizontal(ax, x, ay)
		carved++
		pr = g.component(ax, ay)
	}
	return carved
}
