package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// GameLoop runs the frame cycle. Input, sprite physics and rendering all
// happen in Draw so each frame sees one consistent time step.
type GameLoop struct {
	game *RaycastGame

	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
}

// NewGameLoop creates a new game loop manager
func NewGameLoop(game *RaycastGame) *GameLoop {
	return &GameLoop{game: game}
}

// Update handles window-level keys for one tick
func (gl *GameLoop) Update() error {
	start := time.Now()
	defer func() { gl.lastUpdateDuration = time.Since(start) }()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	gl.game.handleToggles()
	gl.maybeLogPerfDrop()
	return nil
}

// Draw handles all rendering for one frame
func (gl *GameLoop) Draw(screen *ebiten.Image) {
	start := time.Now()
	g := gl.game

	frameTimer := g.room.Monitor().StartFrame()
	dt := g.frameDelta(start)

	g.surface.Bind(screen)
	g.room.Step(g.surface, g.input, dt, !g.paused, g.drawOptions(ebiten.ActualFPS()))

	frameTimer.EndFrame()
	gl.lastDrawDuration = time.Since(start)
}

// Layout returns the screen dimensions. Resizable windows render at the
// outside size, fixed windows at the configured size.
func (gl *GameLoop) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	cfg := gl.game.config
	if cfg.Display.Resizable && outsideWidth > 0 && outsideHeight > 0 {
		return outsideWidth, outsideHeight
	}
	return cfg.GetScreenWidth(), cfg.GetScreenHeight()
}
