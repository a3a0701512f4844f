package world

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Spawn is a world-space position with an optional facing angle.
type Spawn struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Angle float64 `yaml:"angle"`
}

// Placement describes a sprite placed programmatically in addition to the
// torch markers found in the grid.
type Placement struct {
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
	VX float64 `yaml:"vx"`
	VY float64 `yaml:"vy"`
}

// Level is a loaded map: the grid plus optional start and extra sprites.
type Level struct {
	Name    string
	Grid    *Grid
	Start   *Spawn      // nil when the map does not define a start
	Sprites []Placement // Extra sprites beyond the grid's torch markers
}

// levelFile is the YAML map format
type levelFile struct {
	Name    string      `yaml:"name"`
	Rows    []string    `yaml:"rows"`
	Start   *Spawn      `yaml:"start"`
	Sprites []Placement `yaml:"sprites"`
}

// commentPrefix marks comment lines in text maps. '#' cannot be used since it is the wall tile.
const commentPrefix = ";"

// MapLoader handles loading levels from files
type MapLoader struct {
	// Directories searched when a relative path does not exist as given
	searchDirs []string
}

// NewMapLoader creates a new map loader
func NewMapLoader(searchDirs ...string) *MapLoader {
	return &MapLoader{searchDirs: searchDirs}
}

// LoadLevel loads a level, choosing the format by file extension:
// .yaml/.yml for YAML maps, .tmx for Tiled maps, anything else as a text map.
func (ml *MapLoader) LoadLevel(mapPath string) (*Level, error) {
	resolved, err := ml.resolve(mapPath)
	if err != nil {
		return nil, err
	}

	var level *Level
	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".yaml", ".yml":
		level, err = ml.loadYAML(resolved)
	case ".tmx":
		level, err = LoadTiledLevel(resolved)
	default:
		level, err = ml.loadText(resolved)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[MapLoader] Loaded %s: %dx%d, torches: %d, extra sprites: %d",
		resolved, level.Grid.Width, level.Grid.Height, len(level.Grid.SpawnPoints()), len(level.Sprites))
	return level, nil
}

// resolve finds the map file, trying the search directories for relative paths
func (ml *MapLoader) resolve(mapPath string) (string, error) {
	if _, err := os.Stat(mapPath); err == nil || filepath.IsAbs(mapPath) {
		return mapPath, nil
	}
	for _, dir := range ml.searchDirs {
		candidate := filepath.Join(dir, mapPath)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("map file %s not found in any of the expected locations", mapPath)
}

func (ml *MapLoader) loadText(mapPath string) (*Level, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	defer file.Close()

	level, err := ParseTextMap(file)
	if err != nil {
		return nil, fmt.Errorf("map file %s: %w", mapPath, err)
	}
	level.Name = strings.TrimSuffix(filepath.Base(mapPath), filepath.Ext(mapPath))
	return level, nil
}

// ParseTextMap reads a text map: one row per line, blank lines and lines
// starting with ';' are skipped. A '+' cell marks the player start.
func ParseTextMap(r io.Reader) (*Level, error) {
	var rows []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		rows = append(rows, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("map contains no valid map data")
	}

	return levelFromRows(rows, nil, nil)
}

func (ml *MapLoader) loadYAML(mapPath string) (*Level, error) {
	data, err := os.ReadFile(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", mapPath, err)
	}

	var lf levelFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("failed to parse map file %s: %w", mapPath, err)
	}

	level, err := levelFromRows(lf.Rows, lf.Start, lf.Sprites)
	if err != nil {
		return nil, fmt.Errorf("map file %s: %w", mapPath, err)
	}
	level.Name = lf.Name
	if level.Name == "" {
		level.Name = strings.TrimSuffix(filepath.Base(mapPath), filepath.Ext(mapPath))
	}
	return level, nil
}

// levelFromRows builds the grid and resolves the start marker.
// An explicit start wins over a '+' cell.
func levelFromRows(rows []string, start *Spawn, sprites []Placement) (*Level, error) {
	grid, err := NewGrid(rows)
	if err != nil {
		return nil, err
	}

	if start == nil {
		if cells := grid.Find(TileStart); len(cells) > 0 {
			start = &Spawn{X: float64(cells[0].X) + 0.5, Y: float64(cells[0].Y) + 0.5}
		}
	}
	if start != nil && !grid.InBounds(int(start.X), int(start.Y)) {
		return nil, fmt.Errorf("start position (%.2f, %.2f) is outside the map", start.X, start.Y)
	}
	if start != nil && grid.IsWall(int(start.X), int(start.Y)) {
		return nil, fmt.Errorf("start position (%.2f, %.2f) is inside a wall", start.X, start.Y)
	}

	for i, p := range sprites {
		if !grid.InBounds(int(p.X), int(p.Y)) {
			return nil, fmt.Errorf("sprite %d at (%.2f, %.2f) is outside the map", i+1, p.X, p.Y)
		}
	}

	return &Level{
		Grid:    grid,
		Start:   start,
		Sprites: sprites,
	}, nil
}
