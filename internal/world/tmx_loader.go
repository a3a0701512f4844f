package world

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Tiled map conventions
const (
	tmxWallLayer   = "walls"       // Any non-empty tile in this layer is a wall
	tmxTorchLayer  = "torches"     // Any non-empty tile in this layer is a torch marker
	tmxSpriteGroup = "Sprites"     // Objects become extra sprite placements
	tmxSpawnGroup  = "PlayerSpawn" // First object sets the player start
)

// LoadTiledLevel parses a TMX file into a level. Object coordinates are
// converted from pixels to cell units using the map's tile size.
func LoadTiledLevel(tmxPath string) (*Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath)
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if levelMap.Width <= 0 || levelMap.Height <= 0 {
		return nil, fmt.Errorf("TMX %s has no tiles", tmxPath)
	}

	cells := make([][]byte, levelMap.Height)
	for y := range cells {
		cells[y] = []byte(strings.Repeat(string(TileFloor), levelMap.Width))
	}

	foundWalls := false
	for _, layer := range levelMap.Layers {
		var tile byte
		switch layer.Name {
		case tmxWallLayer:
			tile = TileWall
			foundWalls = true
		case tmxTorchLayer:
			tile = TileTorch
		default:
			continue
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				idx := y*levelMap.Width + x
				if idx >= len(layer.Tiles) || layer.Tiles[idx].IsNil() {
					continue
				}
				// Walls win over torches when both layers mark a cell
				if cells[y][x] != TileWall {
					cells[y][x] = tile
				}
			}
		}
	}
	if !foundWalls {
		return nil, fmt.Errorf("TMX %s has no %q layer", tmxPath, tmxWallLayer)
	}

	rows := make([]string, len(cells))
	for y, row := range cells {
		rows[y] = string(row)
	}

	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)
	if tileW <= 0 || tileH <= 0 {
		return nil, fmt.Errorf("TMX %s has invalid tile size %vx%v", tmxPath, tileW, tileH)
	}

	var start *Spawn
	var sprites []Placement
	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case tmxSpriteGroup:
			for _, o := range og.Objects {
				sprites = append(sprites, Placement{
					X:  o.X / tileW,
					Y:  o.Y / tileH,
					VX: o.Properties.GetFloat("vx"),
					VY: o.Properties.GetFloat("vy"),
				})
			}
		case tmxSpawnGroup:
			if len(og.Objects) > 0 && start == nil {
				o := og.Objects[0]
				start = &Spawn{
					X:     o.X / tileW,
					Y:     o.Y / tileH,
					Angle: o.Properties.GetFloat("angle"),
				}
			}
		}
	}

	level, err := levelFromRows(rows, start, sprites)
	if err != nil {
		return nil, fmt.Errorf("TMX %s: %w", tmxPath, err)
	}
	level.Name = strings.TrimSuffix(filepath.Base(tmxPath), filepath.Ext(tmxPath))
	return level, nil
}
