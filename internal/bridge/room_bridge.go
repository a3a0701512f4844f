// Package bridge adapts configuration and loaded assets into engine types.
package bridge

import (
	"fmt"
	"image"
	"log"

	"raycaster/internal/config"
	"raycaster/internal/engine"
	"raycaster/internal/monitoring"
	"raycaster/internal/world"
)

// TextureSource supplies sprite textures by name
type TextureSource interface {
	GetTexture(name string) image.Image
}

// RoomOptionsFromConfig converts config values into room options. textures may
// be nil, in which case sprites sample as solid white.
func RoomOptionsFromConfig(cfg *config.Config, textures TextureSource) engine.RoomOptions {
	palette := engine.Palette{
		Ceiling: config.RGB(cfg.Colors.Ceiling),
		Floor:   config.RGB(cfg.Colors.Floor),
	}

	mm := cfg.Minimap
	minimap := engine.MinimapStyle{
		Width:      mm.Width,
		Height:     mm.Height,
		Scale:      mm.Scale,
		Background: config.RGBA(mm.Background),
		Wall:       config.RGBA(mm.Wall),
		Empty:      config.RGBA(mm.Empty),
		Player:     config.RGBA(mm.Player),
		Sprite:     config.RGBA(mm.Sprite),
		Ray:        config.RGBA(mm.Ray),
	}

	hud := engine.DefaultHUD()
	hud.Color = config.RGBA(cfg.Colors.Text)

	extra := make([]world.Placement, 0, len(cfg.Sprites.Extra))
	for _, sp := range cfg.Sprites.Extra {
		extra = append(extra, world.Placement{X: sp.X, Y: sp.Y, VX: sp.VX, VY: sp.VY})
	}

	var torch image.Image
	if textures != nil && cfg.Sprites.Torch != "" {
		torch = textures.GetTexture(cfg.Sprites.Torch)
	}

	monitor := monitoring.NewPerformanceMonitor()
	monitor.EnableDetailedLogging(cfg.Debug.Averages)
	monitor.SetSampleInterval(cfg.GetMemorySampleInterval())

	return engine.RoomOptions{
		Player: engine.Player{
			X:     cfg.Player.StartX,
			Y:     cfg.Player.StartY,
			Angle: cfg.Player.Angle,
			FOV:   cfg.GetCameraFOV(),
			Depth: cfg.GetViewDistance(),
			Speed: cfg.GetMoveSpeed(),
		},
		Palette: &palette,
		Minimap: &minimap,
		HUD:     &hud,
		Torch:   torch,
		Extra:   extra,
		Monitor: monitor,
	}
}

// LoadRoom loads the configured map and builds a room for it. Each adjust
// func runs on the options after the map is known, so hosts can fit the
// overlays to the grid and their own pixel scale.
func LoadRoom(cfg *config.Config, textures TextureSource, adjust ...func(*world.Level, *engine.RoomOptions)) (*engine.Room, error) {
	loader := world.NewMapLoader(cfg.World.SearchDirs...)
	level, err := loader.LoadLevel(cfg.World.MapFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load map: %w", err)
	}

	opts := RoomOptionsFromConfig(cfg, textures)
	for _, fn := range adjust {
		fn(level, &opts)
	}

	room, err := engine.NewRoomFromLevel(level, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build room: %w", err)
	}

	p := room.Player()
	log.Printf("[Bridge] Room ready: %dx%d map, %d sprites, player at (%.2f, %.2f)",
		level.Grid.Width, level.Grid.Height, len(room.Sprites()), p.X, p.Y)
	return room, nil
}
