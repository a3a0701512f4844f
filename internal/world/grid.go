package world

import (
	"fmt"
)

// Tile characters understood by the grid.
const (
	TileWall  = '#' // Blocks rays, the player and sprites
	TileFloor = '.' // Walkable empty space
	TileTorch = 'T' // Walkable, spawns a torch sprite at construction
	TileStart = '+' // Walkable, marks the player start position
)

// Grid is an immutable character map. Every row has the same length.
// Row index is the world Y coordinate, column index is the world X coordinate.
type Grid struct {
	rows   []string
	Width  int
	Height int
}

// Cell identifies a single grid cell by integer coordinates.
type Cell struct {
	X, Y int
}

// NewGrid builds a grid from equal-length rows.
func NewGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("grid has no rows")
	}

	width := len(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("grid row 1 is empty")
	}

	// Validate all rows have the same width
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has inconsistent width: expected %d, got %d", i+1, width, len(row))
		}
	}

	copied := make([]string, len(rows))
	copy(copied, rows)

	return &Grid{
		rows:   copied,
		Width:  width,
		Height: len(rows),
	}, nil
}

// MustNewGrid builds a grid and panics on invalid rows
func MustNewGrid(rows []string) *Grid {
	g, err := NewGrid(rows)
	if err != nil {
		panic("invalid grid: " + err.Error())
	}
	return g
}

// InBounds reports whether (x, y) addresses a cell inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the character at (x, y).
// Lookups outside the grid are invariant violations and panic.
func (g *Grid) At(x, y int) byte {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("grid lookup out of range: (%d, %d) not in %dx%d", x, y, g.Width, g.Height))
	}
	return g.rows[y][x]
}

// IsWall reports whether the cell at (x, y) is a wall. Panics when out of range.
func (g *Grid) IsWall(x, y int) bool {
	return g.At(x, y) == TileWall
}

// Rows returns a copy of the grid rows.
func (g *Grid) Rows() []string {
	rows := make([]string, len(g.rows))
	copy(rows, g.rows)
	return rows
}

// Find returns every cell holding the given character, scanning row by row.
func (g *Grid) Find(tile byte) []Cell {
	var cells []Cell
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.rows[y][x] == tile {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// SpawnPoints returns the torch spawn cells in row-major order.
func (g *Grid) SpawnPoints() []Cell {
	return g.Find(TileTorch)
}
