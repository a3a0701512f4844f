package main

import (
	"os"
	"path/filepath"
	"testing"

	"raycaster/internal/config"
	"raycaster/internal/world"
)

func TestLoadLevels(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.map":    "#####\n#.T.#\n#####\n",
		"a.map":    "###\n#.#\n###\n",
		"bad.map":  "###\n#.\n###\n",
		"note.txt": "ignored",
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	levels, err := loadLevels(dir)
	if err != nil {
		t.Fatalf("loadLevels: %v", err)
	}
	if len(levels) != 3 {
		t.Fatalf("Expected 3 level files, got %d", len(levels))
	}
	if filepath.Base(levels[0].Path) != "a.map" || filepath.Base(levels[2].Path) != "bad.map" {
		t.Errorf("Expected sorted paths, got %s, %s", levels[0].Path, levels[2].Path)
	}
	if levels[2].Err == nil {
		t.Error("Expected ragged map to keep its error")
	}
	if levels[1].Err != nil || len(levels[1].Level.Grid.SpawnPoints()) != 1 {
		t.Errorf("Expected b.map to load with one torch, got err %v", levels[1].Err)
	}

	if _, err := loadLevels(filepath.Join(dir, "missing")); err == nil {
		t.Error("Expected an error for a missing directory")
	}
}

func TestFitPanel(t *testing.T) {
	g := world.MustNewGrid([]string{"########", "#......#", "########"})
	mm := fitPanel(minimapStyle(config.Default()), g, 400, 300)

	// 400/8 = 50, 300/3 = 100: the width limits the scale
	if mm.Style.Scale != 50 || mm.Style.Width != 400 || mm.Style.Height != 150 {
		t.Errorf("Unexpected style %+v", mm.Style)
	}
	if mm.OriginX != 0 || mm.OriginY != 75 {
		t.Errorf("Expected the grid centered vertically, got origin (%v, %v)", mm.OriginX, mm.OriginY)
	}
	if mm.Style.Background.A != 255 {
		t.Error("Expected an opaque panel background")
	}
}

func TestStartPlayerAndSprites(t *testing.T) {
	level := &world.Level{
		Grid:    world.MustNewGrid([]string{"#####", "##T.#", "#####"}),
		Sprites: []world.Placement{{X: 3.2, Y: 1.4}},
	}

	p := startPlayer(level)
	if p.X != 2.5 || p.Y != 1.5 {
		t.Errorf("Expected the first open cell center, got (%v, %v)", p.X, p.Y)
	}

	level.Start = &world.Spawn{X: 3.5, Y: 1.5, Angle: 1}
	if p := startPlayer(level); p.X != 3.5 || p.Angle != 1 {
		t.Errorf("Expected the level start, got %+v", *p)
	}

	sprites := spritesOf(level)
	if len(sprites) != 2 || sprites[0].X != 2.5 || sprites[1].X != 3.2 {
		t.Errorf("Expected torch then placement, got %d sprites", len(sprites))
	}
}
