//go:build ebiten

package app

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"wireworld/internal/core"
	"wireworld/internal/engine"
	"wireworld/internal/render"
	"wireworld/internal/ui"
	"wireworld/internal/wireworld"
)

const (
	minTPS = 1
	maxTPS = 240
)

// Game adapts the engine to the ebiten.Game interface. It talks to the engine
// only through commands and render events.
type Game struct {
	log    *zap.Logger
	eng    *engine.Engine
	events *engine.Latest
	cancel context.CancelFunc
	done   chan struct{}

	grid    *core.Grid
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	pacer   *core.Pacer

	mode  Mode
	scale int
	last  engine.Render
}

// New starts an engine for grid and returns the Game driving it.
func New(grid *core.Grid, resume *wireworld.Resume, title string, cfg *Config, log *zap.Logger) *Game {
	ctx, cancel := context.WithCancel(context.Background())
	events := &engine.Latest{}
	g := &Game{
		log:     log,
		eng:     engine.New(events, engine.WithLogger(log.Named("engine"))),
		events:  events,
		cancel:  cancel,
		done:    make(chan struct{}),
		grid:    grid,
		painter: render.NewGridPainter(grid, render.DefaultPalette),
		hud:     ui.NewHUD(title, cfg.HUDWidth),
		overlay: ui.NewOverlay(),
		pacer:   core.NewPacer(cfg.TPS),
		mode:    Mode{Playing: cfg.Play, Turbo: cfg.Turbo},
		scale:   cfg.Scale,
	}
	go func() {
		defer close(g.done)
		g.eng.Run(ctx)
	}()
	g.eng.TrySend(engine.Initialize(grid, resume))
	return g
}

// Close stops the engine and waits for it to exit.
func (g *Game) Close() {
	g.cancel()
	<-g.done
}

func (g *Game) send(cmd engine.Command) {
	if !g.eng.TrySend(cmd) {
		g.log.Debug("engine busy, dropping command", zap.String("type", string(cmd.Type)))
	}
}

// Update handles input, issues commands and picks up the latest render.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.overlay.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.mode.Playing = !g.mode.Playing
		g.pacer.Restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.mode.Turbo = !g.mode.Turbo
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		g.mode.Playing = false
		g.syncMode()
		g.send(engine.Advance())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.send(engine.Reset(nil))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.pacer.SetTPS(max(minTPS, g.pacer.TPS()/2))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.pacer.SetTPS(min(maxTPS, g.pacer.TPS()*2))
	}

	g.syncMode()
	if g.mode.Paced() && g.pacer.Due() {
		g.send(engine.Advance())
	}

	if err := g.events.Err(); err != nil {
		g.log.Error("engine reported an error", zap.Error(err))
		return err
	}
	if r, ok := g.events.Take(); ok {
		g.last = r
		g.painter.Update(r.HeadPositions, r.TailPositions)
	}
	g.hud.Update(g.last.Parameters(), g.mode.Status())
	return nil
}

func (g *Game) syncMode() {
	if cmd, ok := g.mode.Sync(); ok {
		g.send(cmd)
	}
}

// Draw renders the board, HUD and help overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.scale)
	w, h := g.painter.Size()
	g.hud.Draw(screen, w*g.scale, h*g.scale)
	g.overlay.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.painter.Size()
	return w*g.scale + g.hud.Width(), h * g.scale
}
