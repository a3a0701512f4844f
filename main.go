package main

import (
	"log"

	"raycaster/internal/bridge"
	"raycaster/internal/config"
	"raycaster/internal/game"
	"raycaster/internal/graphics"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	// Load configuration
	cfg := config.MustLoadConfig("config.yaml")

	// Sprite textures fall back to placeholders when the files are missing
	textures := graphics.NewTextureManager(cfg.GetTextureDirs()...)

	room, err := bridge.LoadRoom(cfg, textures)
	if err != nil {
		log.Fatal(err)
	}

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.GetTPS())

	g := game.NewRaycastGame(cfg, room)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
