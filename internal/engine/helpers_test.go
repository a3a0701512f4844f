package engine

import (
	"image"
	"image/color"

	"raycaster/internal/world"
)

// scriptedInput reports a fixed set of held keys
type scriptedInput map[Key]bool

func (in scriptedInput) IsKeyDown(key Key) bool {
	return in[key]
}

type rectOp struct {
	x, y, w, h float64
	clr        color.Color
}

type lineOp struct {
	x1, y1, x2, y2 float64
	clr            color.Color
}

type textOp struct {
	text string
	x, y float64
}

// recordingSurface captures every draw call in order
type recordingSurface struct {
	width, height int

	ops    []string
	rects  []rectOp
	lines  []lineOp
	texts  []textOp
	images []image.Image
}

func newRecordingSurface(width, height int) *recordingSurface {
	return &recordingSurface{width: width, height: height}
}

func (s *recordingSurface) Size() (int, int) {
	return s.width, s.height
}

func (s *recordingSurface) FillRect(x, y, w, h float64, clr color.Color) {
	s.ops = append(s.ops, "rect")
	s.rects = append(s.rects, rectOp{x, y, w, h, clr})
}

func (s *recordingSurface) DrawLine(x1, y1, x2, y2 float64, clr color.Color) {
	s.ops = append(s.ops, "line")
	s.lines = append(s.lines, lineOp{x1, y1, x2, y2, clr})
}

func (s *recordingSurface) DrawText(text string, x, y float64, _ color.Color) {
	s.ops = append(s.ops, "text")
	s.texts = append(s.texts, textOp{text, x, y})
}

func (s *recordingSurface) DrawImage(img image.Image, _, _ float64) {
	s.ops = append(s.ops, "image")
	s.images = append(s.images, img)
}

// boxRows returns an open width x height room enclosed by walls
func boxRows(width, height int) []string {
	rows := make([]string, height)
	for y := range rows {
		row := make([]byte, width)
		for x := range row {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				row[x] = world.TileWall
			} else {
				row[x] = world.TileFloor
			}
		}
		rows[y] = string(row)
	}
	return rows
}

// withRow replaces one row of a grid layout
func withRow(rows []string, y int, row string) []string {
	out := append([]string(nil), rows...)
	out[y] = row
	return out
}

var red = color.RGBA{R: 255, A: 255}

func countColor(f *Frame, clr color.RGBA) int {
	w, h := f.Size()
	n := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if f.At(x, y) == clr {
				n++
			}
		}
	}
	return n
}
