package combat

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

var testRules = Rules{PotionHeal: 30, SwordBonus: 10}

// newTestBoard returns a 12x12 grid with an open 10x10 interior and the
// player at (px, py).
func newTestBoard(px, py int) Board {
	g := world.NewGrid(12, 12)
	g.CarveRoom(1, 1, 10, 10)
	g.Set(px, py, world.TilePlayer)
	return Board{
		Grid:    g,
		Player:  entity.NewPlayer(px, py, 100, 10),
		Enemies: entity.NewRoster(),
	}
}

func addEnemy(b Board, x, y, hp, atk int) *entity.Enemy {
	label := fmt.Sprintf("e%d", b.Enemies.Len())
	def := &gamedata.EnemyDef{ID: "grunt", Name: "Grunt", Glyph: "E", HP: hp, Attack: atk}
	e := entity.NewEnemy(def, uuid.NewSHA1(uuid.NameSpaceOID, []byte(label)), label, x, y)
	b.Enemies.Add(e)
	b.Grid.Set(x, y, world.TileEnemy)
	return e
}

func newTestEngine(seed int64) *Engine {
	return NewEngine(testRules, rand.New(rand.NewSource(seed)), WithTracer(telemetry.NoopTracer()))
}

func TestTryMoveBasic(t *testing.T) {
	ctx := context.Background()
	b := newTestBoard(5, 5)
	eng := newTestEngine(1)

	if !eng.TryMove(ctx, b, 1, 0) {
		t.Fatal("TryMove(1, 0) into empty cell should succeed")
	}
	if b.Player.X != 6 || b.Player.Y != 5 {
		t.Errorf("player at (%d,%d), want (6,5)", b.Player.X, b.Player.Y)
	}
	if b.Grid.At(5, 5) != world.TileEmpty || b.Grid.At(6, 5) != world.TilePlayer {
		t.Error("old cell should be empty and new cell marked player")
	}
	if b.Grid.Count(world.TilePlayer) != 1 {
		t.Errorf("%d player markers, want 1", b.Grid.Count(world.TilePlayer))
	}
}

func TestTryMoveRejections(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		setup  func(b Board)
		px, py int
		dx, dy int
	}{
		{"wall", func(b Board) {}, 1, 1, -1, 0},
		{"zero move", func(b Board) {}, 5, 5, 0, 0},
		{"enemy", func(b Board) { addEnemy(b, 6, 5, 40, 8) }, 5, 5, 1, 0},
		{"clamped at edge", func(b Board) { b.Grid.Set(0, 5, world.TilePlayer) }, 0, 5, -3, 0},
	}

	for _, tt := range tests {
		b := newTestBoard(tt.px, tt.py)
		tt.setup(b)
		before := b.Grid.String()

		if newTestEngine(1).TryMove(ctx, b, tt.dx, tt.dy) {
			t.Errorf("%s: TryMove(%d, %d) = true, want false", tt.name, tt.dx, tt.dy)
		}
		if b.Player.X != tt.px || b.Player.Y != tt.py {
			t.Errorf("%s: player moved to (%d,%d)", tt.name, b.Player.X, b.Player.Y)
		}
		if b.Grid.String() != before {
			t.Errorf("%s: grid changed on a rejected move", tt.name)
		}
	}
}

func TestTryMoveClampsToBounds(t *testing.T) {
	ctx := context.Background()
	g := world.NewGrid(4, 4)
	g.CarveRoom(0, 0, 4, 4)
	g.Set(1, 1, world.TilePlayer)
	b := Board{Grid: g, Player: entity.NewPlayer(1, 1, 100, 10), Enemies: entity.NewRoster()}
	eng := newTestEngine(1)

	// A large step is clamped onto the edge, not wrapped
	if !eng.TryMove(ctx, b, -10, 0) {
		t.Fatal("clamped move with displacement should succeed")
	}
	if b.Player.X != 0 || b.Player.Y != 1 {
		t.Errorf("player at (%d,%d), want (0,1)", b.Player.X, b.Player.Y)
	}

	r := rand.New(rand.NewSource(9))
	for i := 0; i < 500; i++ {
		eng.TryMove(ctx, b, r.Intn(7)-3, r.Intn(7)-3)
		if !g.IsInside(b.Player.X, b.Player.Y) {
			t.Fatalf("player left the grid at (%d,%d)", b.Player.X, b.Player.Y)
		}
	}
}

func TestPotionPickup(t *testing.T) {
	ctx := context.Background()
	b := newTestBoard(5, 5)
	b.Grid.Set(6, 5, world.TilePotion)
	b.Grid.Set(7, 5, world.TilePotion)
	b.Player.HP = 50
	eng := newTestEngine(1)

	if !eng.TryMove(ctx, b, 1, 0) {
		t.Fatal("move onto potion should succeed")
	}
	if b.Player.GetHP() != 80 {
		t.Errorf("HP after potion = %d, want 80", b.Player.GetHP())
	}

	// Second potion is clamped at max HP
	eng.TryMove(ctx, b, 1, 0)
	if b.Player.GetHP() != 100 {
		t.Errorf("HP after second potion = %d, want 100", b.Player.GetHP())
	}

	// Walking back over the consumed cells gives nothing
	eng.TryMove(ctx, b, -1, 0)
	if b.Grid.At(7, 5) != world.TileEmpty {
		t.Errorf("consumed potion cell = %v, want empty", b.Grid.At(7, 5))
	}
	b.Player.HP = 10
	eng.TryMove(ctx, b, 1, 0)
	if b.Player.GetHP() != 10 {
		t.Errorf("HP after walking over consumed potion = %d, want 10", b.Player.GetHP())
	}

	var pickups int
	for _, ev := range eng.DrainEvents() {
		if ev.Kind == EventPickup {
			pickups++
		}
	}
	if pickups != 2 {
		t.Errorf("recorded %d pickups, want 2", pickups)
	}
}

func TestSwordPickupStacks(t *testing.T) {
	ctx := context.Background()
	b := newTestBoard(5, 5)
	b.Grid.Set(5, 6, world.TileSword)
	b.Grid.Set(5, 7, world.TileSword)
	eng := newTestEngine(1)

	eng.TryMove(ctx, b, 0, 1)
	if b.Player.GetAttack() != 20 {
		t.Errorf("attack after one sword = %d, want 20", b.Player.GetAttack())
	}
	eng.TryMove(ctx, b, 0, 1)
	if b.Player.GetAttack() != 30 {
		t.Errorf("attack after two swords = %d, want 30", b.Player.GetAttack())
	}
	eng.TryMove(ctx, b, 0, -1)
	eng.TryMove(ctx, b, 0, 1)
	if b.Player.GetAttack() != 30 {
		t.Errorf("sword should be single use, attack = %d", b.Player.GetAttack())
	}
	if b.Grid.Count(world.TileSword) != 0 {
		t.Error("swords should be consumed")
	}
}

func TestAttackKillsInTwoHits(t *testing.T) {
	ctx := context.Background()
	b := newTestBoard(5, 5)
	enemy := addEnemy(b, 6, 5, 15, 8)
	eng := newTestEngine(1)

	if !eng.Attack(ctx, b) {
		t.Fatal("Attack() with adjacent enemy should engage")
	}
	if enemy.GetHP() != 5 {
		t.Errorf("enemy HP = %d, want 5", enemy.GetHP())
	}
	if b.Enemies.Len() != 1 || b.Grid.At(6, 5) != world.TileEnemy {
		t.Fatal("enemy should survive the first hit")
	}

	if !eng.Attack(ctx, b) {
		t.Fatal("second Attack() should engage")
	}
	if b.Enemies.Len() != 0 {
		t.Errorf("live enemies = %d, want 0", b.Enemies.Len())
	}
	if b.Grid.At(6, 5) != world.TileEmpty {
		t.Errorf("cell (6,5) = %v, want empty", b.Grid.At(6, 5))
	}

	events := eng.DrainEvents()
	if len(events) != 2 || events[0].Kind != EventHit || events[1].Kind != EventKill {
		t.Errorf("events = %+v, want hit then kill", events)
	}
	if len(eng.DrainEvents()) != 0 {
		t.Error("DrainEvents() should clear the log")
	}
}

func TestAttackHitsAllAdjacent(t *testing.T) {
	ctx := context.Background()
	b := newTestBoard(5, 5)
	east := addEnemy(b, 6, 5, 10, 8)
	west := addEnemy(b, 4, 5, 30, 8)
	south := addEnemy(b, 5, 6, 10, 8)
	diagonal := addEnemy(b, 6, 6, 10, 8)
	eng := newTestEngine(1)

	if !eng.Attack(ctx, b) {
		t.Fatal("Attack() should engage")
	}
	if b.Enemies.At(6, 5) != nil || b.Enemies.At(5, 6) != nil {
		t.Error("east and south enemies should be removed")
	}
	if west.GetHP() != 20 {
		t.Errorf("west HP = %d, want 20", west.GetHP())
	}
	if diagonal.GetHP() != 10 {
		t.Error("diagonal enemy must not be hit")
	}
	if east.IsAlive() || south.IsAlive() {
		t.Error("killed enemies should report not alive")
	}

	var order []int
	for _, ev := range eng.DrainEvents() {
		order = append(order, ev.X*10+ev.Y)
	}
	// +x, -x, +y order
	if len(order) != 3 || order[0] != 65 || order[1] != 45 || order[2] != 56 {
		t.Errorf("attack order = %v, want [65 45 56]", order)
	}
}

func TestAttackNoEnemy(t *testing.T) {
	b := newTestBoard(5, 5)
	addEnemy(b, 7, 5, 10, 8)

	if newTestEngine(1).Attack(context.Background(), b) {
		t.Error("Attack() with no adjacent enemy should not engage")
	}
}

func TestEnemyAdjacentAttacks(t *testing.T) {
	ctx := context.Background()
	b := newTestBoard(5, 5)
	enemy := addEnemy(b, 5, 4, 40, 8)
	eng := newTestEngine(1)

	for i := 1; i <= 3; i++ {
		if eng.RunEnemyTurn(ctx, b) {
			t.Fatal("player should not be defeated yet")
		}
		if enemy.X != 5 || enemy.Y != 4 {
			t.Fatalf("adjacent enemy moved to (%d,%d)", enemy.X, enemy.Y)
		}
		if want := 100 - 8*i; b.Player.GetHP() != want {
			t.Errorf("turn %d: player HP = %d, want %d", i, b.Player.GetHP(), want)
		}
	}
}

func TestEnemyDiagonalDoesNotAttack(t *testing.T) {
	ctx := context.Background()
	for seed := int64(1); seed <= 20; seed++ {
		b := newTestBoard(5, 5)
		enemy := addEnemy(b, 6, 6, 40, 8)

		newTestEngine(seed).RunEnemyTurn(ctx, b)
		if b.Player.GetHP() != 100 {
			t.Fatalf("seed %d: diagonal enemy attacked", seed)
		}
		if enemy.X == 6 && enemy.Y == 6 {
			t.Fatalf("seed %d: unblocked enemy did not move", seed)
		}
		if b.Grid.At(6, 6) != world.TileEmpty || b.Grid.At(enemy.X, enemy.Y) != world.TileEnemy {
			t.Fatalf("seed %d: grid out of sync with enemy", seed)
		}
	}
}

func TestEnemyFarNeverAttacks(t *testing.T) {
	ctx := context.Background()
	b := newTestBoard(2, 2)
	addEnemy(b, 8, 8, 40, 8)
	addEnemy(b, 9, 2, 40, 8)
	eng := newTestEngine(4)

	for i := 0; i < 3; i++ {
		eng.RunEnemyTurn(ctx, b)
	}
	if b.Player.GetHP() != 100 {
		t.Errorf("player HP = %d, enemies at distance >= 2 must not attack", b.Player.GetHP())
	}
}

func TestEnemyBlockedStaysPut(t *testing.T) {
	ctx := context.Background()
	g := world.NewGrid(5, 5)
	g.Set(2, 2, world.TileEnemy)
	g.Set(1, 1, world.TilePlayer)
	b := Board{Grid: g, Player: entity.NewPlayer(1, 1, 100, 10), Enemies: entity.NewRoster()}
	def := &gamedata.EnemyDef{Name: "Grunt", HP: 40, Attack: 8}
	enemy := entity.NewEnemy(def, uuid.Nil, "e0", 2, 2)
	b.Enemies.Add(enemy)

	newTestEngine(1).RunEnemyTurn(ctx, b)
	if enemy.X != 2 || enemy.Y != 2 || g.At(2, 2) != world.TileEnemy {
		t.Error("walled-in enemy should not move")
	}
}

func TestEnemyWastesPickup(t *testing.T) {
	ctx := context.Background()
	g := world.NewGrid(5, 7)
	g.CarveHorizontal(1, 5, 2)
	g.Set(1, 2, world.TilePlayer)
	g.Set(4, 2, world.TilePotion)
	b := Board{Grid: g, Player: entity.NewPlayer(1, 2, 100, 10), Enemies: entity.NewRoster()}
	enemy := addEnemy(b, 5, 2, 40, 8)

	// Only one way to go: west onto the potion
	newTestEngine(2).RunEnemyTurn(ctx, b)
	if enemy.X != 4 {
		t.Fatalf("enemy at (%d,%d), want (4,2)", enemy.X, enemy.Y)
	}
	if g.Count(world.TilePotion) != 0 {
		t.Error("potion under the enemy should be lost")
	}

	// Leaving the cell does not restore it
	b.Player.MoveTo(1, 2)
	newTestEngine(3).RunEnemyTurn(ctx, b)
	if g.Count(world.TilePotion) != 0 {
		t.Error("potion should not reappear")
	}
	if b.Player.GetHP() != 100 {
		t.Error("enemy should not gain anything from the potion")
	}
}

func TestEnemyDefeatsPlayer(t *testing.T) {
	ctx := context.Background()
	b := newTestBoard(5, 5)
	addEnemy(b, 6, 5, 40, 60)
	addEnemy(b, 4, 5, 40, 60)
	addEnemy(b, 5, 6, 40, 60)
	far := addEnemy(b, 9, 9, 40, 60)
	eng := newTestEngine(1)

	if !eng.RunEnemyTurn(ctx, b) {
		t.Fatal("two hits of 60 should defeat a 100 HP player")
	}
	if b.Player.GetHP() != 0 {
		t.Errorf("player HP = %d, want 0 (floored)", b.Player.GetHP())
	}
	if far.X == 9 && far.Y == 9 {
		t.Error("enemies after the killing blow should still take their step")
	}
	if b.Grid.At(far.X, far.Y) != world.TileEnemy || b.Grid.At(9, 9) != world.TileEmpty {
		t.Error("grid markers did not follow the far enemy")
	}

	attacks, defeats := 0, 0
	for _, ev := range eng.DrainEvents() {
		switch ev.Kind {
		case EventEnemyAttack:
			attacks++
		case EventDefeat:
			defeats++
			if ev.Message() != "You died!" {
				t.Errorf("defeat message = %q", ev.Message())
			}
		}
	}
	if attacks != 3 {
		t.Errorf("enemy attacks = %d, want 3 (adjacent enemies strike after the player falls)", attacks)
	}
	if defeats != 1 {
		t.Errorf("defeat events = %d, want 1", defeats)
	}
}

func TestEnemyTurnOnFallenPlayer(t *testing.T) {
	ctx := context.Background()
	b := newTestBoard(5, 5)
	b.Player.TakeDamage(100)
	addEnemy(b, 6, 5, 40, 8)
	eng := newTestEngine(1)

	if !eng.RunEnemyTurn(ctx, b) {
		t.Error("RunEnemyTurn() = false for a player already at 0 HP")
	}
	for _, ev := range eng.DrainEvents() {
		if ev.Kind == EventDefeat {
			t.Error("defeat recorded twice for the same player")
		}
	}
}

func TestEventKindString(t *testing.T) {
	tests := []struct {
		kind     EventKind
		expected string
	}{
		{EventMove, "move"},
		{EventPickup, "pickup"},
		{EventHit, "hit"},
		{EventKill, "kill"},
		{EventEnemyAttack, "enemy_attack"},
		{EventEnemyMove, "enemy_move"},
		{EventDefeat, "defeat"},
		{EventKind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("EventKind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

func TestEventMessage(t *testing.T) {
	tests := []struct {
		ev       Event
		expected string
	}{
		{Event{Kind: EventPickup, Item: "potion", Amount: 30}, "You drink a potion and recover 30 HP."},
		{Event{Kind: EventPickup, Item: "sword", Amount: 10}, "You pick up a sword. Attack +10."},
		{Event{Kind: EventHit, Target: "Grunt", Amount: 10}, "You hit Grunt for 10."},
		{Event{Kind: EventKill, Target: "Grunt"}, "You slay Grunt."},
		{Event{Kind: EventEnemyAttack, Actor: "Grunt", Amount: 8}, "Grunt hits you for 8."},
		{Event{Kind: EventMove}, ""},
	}

	for _, tt := range tests {
		if got := tt.ev.Message(); got != tt.expected {
			t.Errorf("Message() = %q, want %q", got, tt.expected)
		}
	}
}
