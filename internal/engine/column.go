package engine

import (
	"image/color"
)

// Epsilon keeps wall height and shade finite at distance 0
const Epsilon = 0.0001

// Band classifies a screen row within a column
type Band int

const (
	BandCeiling Band = iota
	BandWall
	BandFloor
)

// Palette holds the fixed ceiling and floor colours
type Palette struct {
	Ceiling color.RGBA
	Floor   color.RGBA
}

// DefaultPalette matches the classic dark ceiling over a green floor
var DefaultPalette = Palette{
	Ceiling: color.RGBA{R: 51, G: 51, B: 51, A: 255},
	Floor:   color.RGBA{R: 0, G: 128, B: 0, A: 255},
}

// ColumnBounds returns the ceiling and floor rows for a wall at the given
// distance, both clamped to [0, screenHeight-1]. ceiling <= floor always holds.
func ColumnBounds(distance float64, screenHeight int) (ceiling, floor int) {
	h := float64(screenHeight)
	ceiling = int(h/2 - h/(distance+Epsilon))
	floor = screenHeight - ceiling

	ceiling = clampInt(ceiling, 0, screenHeight-1)
	floor = clampInt(floor, 0, screenHeight-1)
	return ceiling, floor
}

// WallShade returns the grayscale intensity for a wall at the given distance.
// It is not clamped: walls nearer than one cell exceed 1 and saturate when drawn.
func WallShade(distance float64) float64 {
	return 1.0 / (distance + Epsilon)
}

// Classify returns the band a row falls into for the given bounds
func Classify(y, ceiling, floor int) Band {
	switch {
	case y <= ceiling:
		return BandCeiling
	case y <= floor:
		return BandWall
	default:
		return BandFloor
	}
}

// RenderColumn writes the ceiling, wall and floor bands of one screen column
func RenderColumn(f *Frame, x int, distance float64, palette Palette) {
	_, height := f.Size()
	ceiling, floor := ColumnBounds(distance, height)
	wall := Gray(WallShade(distance))

	for y := 0; y < height; y++ {
		switch Classify(y, ceiling, floor) {
		case BandCeiling:
			f.Set(x, y, palette.Ceiling)
		case BandWall:
			f.Set(x, y, wall)
		default:
			f.Set(x, y, palette.Floor)
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
