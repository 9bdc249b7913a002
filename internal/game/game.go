package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/session"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
	"github.com/samdwyer/dungeoncrawl/internal/ui"
)

// ErrTerminalTooSmall is returned when the terminal cannot show the grid.
var ErrTerminalTooSmall = errors.New("terminal too small")

// Game binds one session to the terminal.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *session.Session
	running  bool
}

// New builds the session first, so an invalid config fails before the
// terminal is taken over.
func New(ctx context.Context, cfg session.Config, rules *gamedata.Rules) (*Game, error) {
	s, err := session.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := checkSize(screen, s); err != nil {
		screen.Close()
		return nil, err
	}

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen, rules),
		session:  s,
		running:  true,
	}, nil
}

// checkSize fails when the screen cannot hold the session's grid.
func checkSize(screen interface{ Size() (int, int) }, s *session.Session) error {
	w, h := screen.Size()
	needW, needH := ui.MinSize(s.Cols(), s.Rows())
	if w < needW || h < needH {
		return fmt.Errorf("%w: need %dx%d, have %dx%d", ErrTerminalTooSmall, needW, needH, w, h)
	}
	return nil
}

// Run executes the main game loop until the player quits.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.run")
	span.SetAttributes(attribute.String("session.id", g.session.ID().String()))
	defer span.End()

	for g.running {
		g.renderer.Render(g.session)
		g.handleInput(ctx)
	}

	span.SetAttributes(
		attribute.Int("game.turns", g.session.Turn()),
		attribute.String("game.state", g.session.State().String()),
	)
	return nil
}

// Session returns the session being played.
func (g *Game) Session() *session.Session {
	return g.session
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	switch ev := g.screen.PollEvent().(type) {
	case *tcell.EventKey:
		g.apply(ctx, IntentFor(ev))
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// apply forwards an intent to the session. Once the session is over only
// quitting does anything.
func (g *Game) apply(ctx context.Context, in Intent) {
	switch in.Action {
	case ActionQuit:
		g.running = false
	case ActionMove:
		g.session.HandleMoveIntent(ctx, in.DX, in.DY)
	case ActionAttack:
		g.session.HandleAttackIntent(ctx)
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
