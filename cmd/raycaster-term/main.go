// Command raycaster-term renders the raycaster room in a terminal
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"raycaster/internal/bridge"
	"raycaster/internal/config"
	"raycaster/internal/engine"
	"raycaster/internal/graphics"
	"raycaster/internal/term"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config")
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	// The screen owns stdout; log lines would corrupt it
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fail(fmt.Errorf("open log: %w", err))
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg := config.MustLoadConfig(*configPath)
	textures := graphics.NewTextureManager(cfg.GetTextureDirs()...)

	room, err := bridge.LoadRoom(cfg, textures, term.FitOverlays)
	if err != nil {
		fail(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fail(err)
	}
	if err := screen.Init(); err != nil {
		fail(err)
	}
	defer screen.Fini()
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := term.NewApp(screen, room, engine.DrawOptions{
		Debug:   cfg.Debug.Overlay,
		ShowHUD: cfg.Debug.ShowHUD,
	}, cfg.Debug.StartPause)
	if err := app.Run(ctx, cfg.GetTPS()); err != nil && ctx.Err() == nil {
		log.Printf("[Term] %v", err)
	}
}

// fail reports on stderr since the log may be discarded
func fail(err error) {
	fmt.Fprintln(os.Stderr, "raycaster-term:", err)
	os.Exit(1)
}
