// Command mapview browses the level files with the engine's minimap renderer
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"raycaster/internal/config"
	"raycaster/internal/engine"
	"raycaster/internal/game"
	"raycaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	windowWidth  = 960
	windowHeight = 640
	sidebarWidth = 260
	padding      = 16
)

type levelInfo struct {
	Path  string
	Level *world.Level
	Err   error
}

type viewer struct {
	levels  []levelInfo
	index   int
	style   engine.MinimapStyle
	surface *game.Surface
}

func main() {
	ensureRuntimeCWD()

	configPath := flag.String("config", "config.yaml", "path to the YAML config")
	dir := flag.String("dir", "assets/levels", "directory holding level files")
	flag.Parse()

	cfg := config.MustLoadConfig(*configPath)

	levels, err := loadLevels(*dir)
	if err != nil {
		log.Printf("Warning: %v", err)
	}

	v := &viewer{
		levels:  levels,
		style:   minimapStyle(cfg),
		surface: game.NewSurface(),
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Raycaster Map Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if len(v.levels) == 0 {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		v.index = (v.index + 1) % len(v.levels)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		v.index--
		if v.index < 0 {
			v.index = len(v.levels) - 1
		}
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	if len(v.levels) == 0 {
		ebitenutil.DebugPrintAt(screen, "no levels found", padding, padding)
		return
	}

	l := v.levels[v.index]
	if l.Err != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s failed to load: %v", l.Path, l.Err), padding, padding)
		return
	}

	panelW := windowWidth - sidebarWidth - padding*3
	panelH := windowHeight - padding*2
	vector.DrawFilledRect(screen, padding, padding, float32(panelW), float32(panelH), color.RGBA{20, 20, 35, 255}, false)

	mm := fitPanel(v.style, l.Level.Grid, panelW, panelH)
	mm.OriginX += padding
	mm.OriginY += padding

	v.surface.Bind(screen)
	mm.Draw(v.surface, l.Level.Grid, startPlayer(l.Level), spritesOf(l.Level), false)

	drawSidebar(screen, l, windowWidth-sidebarWidth-padding, padding)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

// loadLevels loads every level file in dir, sorted by name. Files that fail
// to parse are kept with their error so the viewer can show it.
func loadLevels(dir string) ([]levelInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".map", ".yaml", ".yml", ".tmx":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	loader := world.NewMapLoader()
	levels := make([]levelInfo, 0, len(paths))
	for _, p := range paths {
		level, err := loader.LoadLevel(p)
		levels = append(levels, levelInfo{Path: p, Level: level, Err: err})
	}
	return levels, nil
}

// minimapStyle takes the configured minimap colours with an opaque background
func minimapStyle(cfg *config.Config) engine.MinimapStyle {
	mm := cfg.Minimap
	style := engine.MinimapStyle{
		Background: config.RGBA(mm.Background),
		Wall:       config.RGBA(mm.Wall),
		Empty:      config.RGBA(mm.Empty),
		Player:     config.RGBA(mm.Player),
		Sprite:     config.RGBA(mm.Sprite),
		Ray:        config.RGBA(mm.Ray),
	}
	style.Background.A = 255
	return style
}

// fitPanel scales the grid to the largest whole cell size fitting w x h and
// centers it inside the panel
func fitPanel(style engine.MinimapStyle, g *world.Grid, w, h int) *engine.Minimap {
	scale := w / g.Width
	if alt := h / g.Height; alt < scale {
		scale = alt
	}
	if scale < 2 {
		scale = 2
	}

	style.Scale = float64(scale)
	style.Width = float64(g.Width * scale)
	style.Height = float64(g.Height * scale)

	mm := engine.NewMinimap(style)
	mm.OriginX = float64(w-g.Width*scale) / 2
	mm.OriginY = float64(h-g.Height*scale) / 2
	return mm
}

// startPlayer places the marker at the level start, or the first open cell
func startPlayer(level *world.Level) *engine.Player {
	if level.Start != nil {
		return &engine.Player{X: level.Start.X, Y: level.Start.Y, Angle: level.Start.Angle}
	}
	g := level.Grid
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if !g.IsWall(x, y) {
				return &engine.Player{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			}
		}
	}
	return &engine.Player{}
}

// spritesOf lists torch markers at cell centers followed by the level's placements
func spritesOf(level *world.Level) []*engine.Sprite {
	var sprites []*engine.Sprite
	for _, c := range level.Grid.SpawnPoints() {
		sprites = append(sprites, engine.NewSprite(float64(c.X)+0.5, float64(c.Y)+0.5, nil))
	}
	for _, p := range level.Sprites {
		sprites = append(sprites, engine.NewSprite(p.X, p.Y, nil))
	}
	return sprites
}

func drawSidebar(screen *ebiten.Image, l levelInfo, x, y int) {
	vector.DrawFilledRect(screen, float32(x), float32(y), sidebarWidth, float32(windowHeight-padding*2), color.RGBA{18, 18, 26, 255}, false)

	g := l.Level.Grid
	lines := []string{
		l.Level.Name,
		filepath.Base(l.Path),
		"",
		fmt.Sprintf("Cells: %dx%d", g.Width, g.Height),
		fmt.Sprintf("Torches: %d", len(g.SpawnPoints())),
		fmt.Sprintf("Extra sprites: %d", len(l.Level.Sprites)),
	}
	if s := l.Level.Start; s != nil {
		lines = append(lines, fmt.Sprintf("Start: (%.2f, %.2f) %.2f rad", s.X, s.Y, s.Angle))
	} else {
		lines = append(lines, "Start: from config")
	}
	lines = append(lines, "", "Left/Right (or A/D) to switch", "Esc to quit")

	row := y + 12
	for _, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += 16
	}
}

// ensureRuntimeCWD moves to the executable's directory when started elsewhere
func ensureRuntimeCWD() {
	if _, err := os.Stat("config.yaml"); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	_ = os.Chdir(filepath.Dir(exe))
}
