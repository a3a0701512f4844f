package term

import (
	"context"
	"log"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"raycaster/internal/engine"
	"raycaster/internal/world"
)

// App runs a room in a terminal screen
type App struct {
	screen tcell.Screen
	room   *engine.Room
	canvas *Canvas
	keys   *KeyState

	debug   bool
	paused  bool
	showHUD bool
	fps     float64
}

// NewApp creates an app drawing to an initialised screen
func NewApp(screen tcell.Screen, room *engine.Room, opts engine.DrawOptions, paused bool) *App {
	cols, rows := screen.Size()
	return &App{
		screen:  screen,
		room:    room,
		canvas:  NewCanvas(cols, rows),
		keys:    NewKeyState(),
		debug:   opts.Debug,
		showHUD: opts.ShowHUD,
		paused:  paused,
	}
}

// Run draws frames at tps until Escape, q or ctx cancellation
func (a *App) Run(ctx context.Context, tps int) error {
	if tps <= 0 {
		tps = 30
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event)
	go a.pollEvents(ctx, events)

	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if a.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			a.Frame(dt)
		}
	}
}

func (a *App) pollEvents(ctx context.Context, events chan<- tcell.Event) {
	defer close(events)
	for {
		// PollEvent returns nil once the screen is finalised
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// HandleEvent applies one terminal event and reports whether to quit
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return true
		}
		if k, ok := logicalKey(ev); ok {
			a.keys.Press(k)
			return false
		}
		if ev.Key() == tcell.KeyF3 {
			a.toggleDebug()
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch unicode.ToLower(ev.Rune()) {
			case 'q':
				return true
			case 'm':
				a.toggleDebug()
			case 'p':
				a.paused = !a.paused
				log.Printf("[Term] Paused: %v", a.paused)
			case 'h':
				a.showHUD = !a.showHUD
			}
		}
	}
	return false
}

func (a *App) toggleDebug() {
	a.debug = !a.debug
	log.Printf("[Term] Debug overlay: %v", a.debug)
}

// Frame runs one room step and shows it
func (a *App) Frame(dt float64) {
	if dt > 0 {
		// Exponential smoothing keeps the HUD readable
		a.fps = 0.9*a.fps + 0.1*(1/dt)
	}

	timer := a.room.Monitor().StartFrame()
	a.canvas.Resize(a.screen.Size())
	a.canvas.Clear()
	a.room.Step(a.canvas, a.keys, dt, !a.paused, engine.DrawOptions{
		Debug:   a.debug,
		ShowHUD: a.showHUD,
		FPS:     a.fps,
	})
	a.canvas.Present(a.screen)
	a.screen.Show()
	timer.EndFrame()
}

// FitOverlays sizes the minimap to one pixel per cell and moves the HUD to
// the right of it, on whole terminal rows
func FitOverlays(level *world.Level, opts *engine.RoomOptions) {
	style := engine.DefaultMinimapStyle()
	if opts.Minimap != nil {
		style = *opts.Minimap
	}
	style.Scale = 1
	style.Width = float64(level.Grid.Width)
	style.Height = float64(level.Grid.Height)
	opts.Minimap = &style

	hud := engine.DefaultHUD()
	if opts.HUD != nil {
		hud = *opts.HUD
	}
	hud.X = float64(level.Grid.Width + 1)
	hud.Y = 0
	hud.LineHeight = 2
	opts.HUD = &hud
}
