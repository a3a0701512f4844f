package bridge

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"raycaster/internal/config"
	"raycaster/internal/engine"
	"raycaster/internal/graphics"
	"raycaster/internal/world"
)

// fakeTextures hands out one texture and records the names asked for
type fakeTextures struct {
	tex   image.Image
	names []string
}

func (f *fakeTextures) GetTexture(name string) image.Image {
	f.names = append(f.names, name)
	return f.tex
}

func TestRoomOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Sprites.Extra = []config.SpritePlacement{{X: 4, Y: 9, VX: 1}}
	textures := &fakeTextures{tex: image.NewRGBA(image.Rect(0, 0, 8, 16))}

	opts := RoomOptionsFromConfig(cfg, textures)

	if opts.Player.X != 14.7 || opts.Player.Y != 5.09 || opts.Player.Depth != 16 || opts.Player.Speed != 6 {
		t.Errorf("Unexpected player %+v", opts.Player)
	}
	if opts.Palette.Ceiling != (color.RGBA{51, 51, 51, 255}) || opts.Palette.Floor != (color.RGBA{0, 128, 0, 255}) {
		t.Errorf("Unexpected palette %+v", *opts.Palette)
	}
	if opts.Minimap.Scale != 10 || opts.Minimap.Background.A != 128 {
		t.Errorf("Unexpected minimap style %+v", *opts.Minimap)
	}
	if len(opts.Extra) != 1 || opts.Extra[0].X != 4 || opts.Extra[0].VX != 1 {
		t.Errorf("Unexpected extra sprites %+v", opts.Extra)
	}
	if opts.Torch != textures.tex || len(textures.names) != 1 || textures.names[0] != "torch" {
		t.Errorf("Expected the torch texture to be requested once, got %v", textures.names)
	}
	if opts.Monitor == nil {
		t.Error("Expected a performance monitor")
	}
}

func TestLoadRoom(t *testing.T) {
	dir := t.TempDir()
	mapData := "#######\n#..T..#\n#.....#\n#######\n"
	if err := os.WriteFile(filepath.Join(dir, "small.map"), []byte(mapData), 0644); err != nil {
		t.Fatalf("write map: %v", err)
	}

	cfg := config.Default()
	cfg.World.MapFile = "small.map"
	cfg.World.SearchDirs = []string{dir}
	cfg.Player.StartX, cfg.Player.StartY = 1.5, 2.5
	cfg.Sprites.Extra = []config.SpritePlacement{{X: 5, Y: 2}}

	room, err := LoadRoom(cfg, nil)
	if err != nil {
		t.Fatalf("LoadRoom: %v", err)
	}
	if w, h := room.Grid().Width, room.Grid().Height; w != 7 || h != 4 {
		t.Errorf("Expected 7x4 grid, got %dx%d", w, h)
	}
	if n := len(room.Sprites()); n != 2 {
		t.Errorf("Expected torch plus extra sprite, got %d", n)
	}
}

func TestLoadRoom_Errors(t *testing.T) {
	cfg := config.Default()
	cfg.World.MapFile = "does-not-exist.map"
	cfg.World.SearchDirs = []string{t.TempDir()}
	if _, err := LoadRoom(cfg, nil); err == nil {
		t.Error("Expected an error for a missing map")
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tiny.map"), []byte("###\n#.#\n###\n"), 0644); err != nil {
		t.Fatalf("write map: %v", err)
	}
	cfg.World.MapFile = filepath.Join(dir, "tiny.map")
	// Default start (14.7, 5.09) is outside a 3x3 map
	if _, err := LoadRoom(cfg, nil); err == nil {
		t.Error("Expected an error for a start outside the map")
	}
}

func TestLoadRoom_Adjust(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "small.map"), []byte("#####\n#...#\n#####\n"), 0644); err != nil {
		t.Fatalf("write map: %v", err)
	}

	cfg := config.Default()
	cfg.World.MapFile = "small.map"
	cfg.World.SearchDirs = []string{dir}
	cfg.Player.StartX, cfg.Player.StartY = 1.5, 1.5

	var seen string
	room, err := LoadRoom(cfg, nil, func(level *world.Level, opts *engine.RoomOptions) {
		seen = level.Name
		opts.Player.Speed = 2
	})
	if err != nil {
		t.Fatalf("LoadRoom: %v", err)
	}
	if seen == "" {
		t.Error("Expected adjust to see the loaded level")
	}
	if room.Player().Speed != 2 {
		t.Errorf("Expected adjusted speed 2, got %v", room.Player().Speed)
	}
}

func TestRoomOptionsFromConfig_MonitorSettings(t *testing.T) {
	testCases := []struct {
		name     string
		averages bool
		wantMs   float64
	}{
		{"averages on", true, 10},
		{"averages off", false, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Debug.Averages = tc.averages
			monitor := RoomOptionsFromConfig(cfg, nil).Monitor

			monitor.RecordFrame(10 * time.Millisecond)
			if got := monitor.GetDetailedStats()["avg_frame_time_ms"].(float64); got != tc.wantMs {
				t.Errorf("Expected average frame time %vms, got %v", tc.wantMs, got)
			}
		})
	}
}

func TestTexturesResolveThroughSearchDirs(t *testing.T) {
	root := t.TempDir()
	spriteDir := filepath.Join(root, "assets", "sprites")
	if err := os.MkdirAll(spriteDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(filepath.Join(spriteDir, "torch.png"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 6))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	cfg := config.Default()
	cfg.World.SearchDirs = []string{filepath.Join(root, "missing"), root}
	opts := RoomOptionsFromConfig(cfg, graphics.NewTextureManager(cfg.GetTextureDirs()...))

	// The placeholder torch is 8x16, the file on disk 4x6
	if b := opts.Torch.Bounds(); b.Dx() != 4 || b.Dy() != 6 {
		t.Errorf("Expected the torch from the search dir, got %v", b)
	}
}
