package game

import (
	"log"
	"time"

	"raycaster/internal/config"
	"raycaster/internal/engine"
	"raycaster/internal/game/keytracker"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxFrameDelta bounds the time step after a stall (window drag, breakpoint)
const maxFrameDelta = 0.1

// RaycastGame is the ebiten host around an engine room
type RaycastGame struct {
	room    *engine.Room
	config  *config.Config
	surface *Surface
	input   engine.Input

	gameLoop *GameLoop

	// Overlay state toggled from the keyboard
	debug   bool
	paused  bool
	showHUD bool

	debugKey *keytracker.KeyStateTracker
	pauseKey *keytracker.KeyStateTracker
	hudKey   *keytracker.KeyStateTracker
	shotKey  *keytracker.KeyStateTracker

	lastFrame time.Time

	// Performance logging
	perfDebugEnabled bool
	perfLowFpsSince  time.Time
	perfLastPerfLog  time.Time
}

// NewRaycastGame wires a room to the ebiten window
func NewRaycastGame(cfg *config.Config, room *engine.Room) *RaycastGame {
	g := &RaycastGame{
		room:             room,
		config:           cfg,
		surface:          NewSurface(),
		input:            NewKeyboardInput(),
		debug:            cfg.Debug.Overlay,
		paused:           cfg.Debug.StartPause,
		showHUD:          cfg.Debug.ShowHUD,
		debugKey:         keytracker.New(ebiten.KeyF3),
		pauseKey:         keytracker.New(ebiten.KeyP),
		hudKey:           keytracker.New(ebiten.KeyH),
		shotKey:          keytracker.New(ebiten.KeyF12),
		perfDebugEnabled: cfg.Debug.PerfLog,
	}
	g.gameLoop = NewGameLoop(g)
	return g
}

func (g *RaycastGame) Update() error {
	return g.gameLoop.Update()
}

func (g *RaycastGame) Draw(screen *ebiten.Image) {
	g.gameLoop.Draw(screen)
}

func (g *RaycastGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.gameLoop.Layout(outsideWidth, outsideHeight)
}

// handleToggles flips overlay state on key presses
func (g *RaycastGame) handleToggles() {
	if g.debugKey.JustPressed() {
		g.debug = !g.debug
		log.Printf("[Game] Debug overlay: %v", g.debug)
	}
	if g.pauseKey.JustPressed() {
		g.paused = !g.paused
		log.Printf("[Game] Paused: %v", g.paused)
	}
	if g.hudKey.JustPressed() {
		g.showHUD = !g.showHUD
	}
	if g.shotKey.JustPressed() {
		g.takeScreenshot()
	}
}

// frameDelta returns seconds since the previous frame. The first frame uses
// one tick at the configured rate.
func (g *RaycastGame) frameDelta(now time.Time) float64 {
	dt := 1.0 / float64(g.config.GetTPS())
	if !g.lastFrame.IsZero() {
		dt = now.Sub(g.lastFrame).Seconds()
	}
	g.lastFrame = now

	if dt < 0 {
		return 0
	}
	if dt > maxFrameDelta {
		return maxFrameDelta
	}
	return dt
}

// drawOptions collects the overlay flags for the current frame
func (g *RaycastGame) drawOptions(fps float64) engine.DrawOptions {
	return engine.DrawOptions{Debug: g.debug, ShowHUD: g.showHUD, FPS: fps}
}
