// Package term hosts the engine in a terminal through tcell. Every terminal
// cell shows two vertically stacked pixels using the upper half block glyph.
package term

import (
	"image"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

const halfBlock = '▀'

// Canvas is an engine.Surface backed by an RGBA pixel buffer plus a text layer.
// The pixel height is twice the number of terminal rows.
type Canvas struct {
	cols, rows int
	pix        []color.RGBA // cols x rows*2
	text       []rune       // cols x rows, 0 where no glyph is set
	textColor  []color.RGBA
}

// NewCanvas creates a canvas for a terminal of cols x rows cells
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize reallocates the buffers when the terminal size changed
func (c *Canvas) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	if cols == c.cols && rows == c.rows {
		return
	}
	c.cols, c.rows = cols, rows
	c.pix = make([]color.RGBA, cols*rows*2)
	c.text = make([]rune, cols*rows)
	c.textColor = make([]color.RGBA, cols*rows)
}

// Size returns the pixel dimensions
func (c *Canvas) Size() (int, int) {
	return c.cols, c.rows * 2
}

// Clear resets pixels to black and removes all text
func (c *Canvas) Clear() {
	for i := range c.pix {
		c.pix[i] = color.RGBA{A: 255}
	}
	for i := range c.text {
		c.text[i] = 0
	}
}

// Pixel returns the colour at pixel (x, y)
func (c *Canvas) Pixel(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows*2 {
		return color.RGBA{}
	}
	return c.pix[y*c.cols+x]
}

// Glyph returns the text rune at cell (col, row), 0 when none
func (c *Canvas) Glyph(col, row int) rune {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return 0
	}
	return c.text[row*c.cols+col]
}

// blend composites a premultiplied colour over pixel (x, y)
func (c *Canvas) blend(x, y int, clr color.Color) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows*2 {
		return
	}
	sr, sg, sb, sa := clr.RGBA()
	if sa == 0 {
		return
	}
	i := y*c.cols + x
	d := c.pix[i]
	inv := 0xffff - sa
	c.pix[i] = color.RGBA{
		R: uint8((sr + uint32(d.R)*0x101*inv/0xffff) >> 8),
		G: uint8((sg + uint32(d.G)*0x101*inv/0xffff) >> 8),
		B: uint8((sb + uint32(d.B)*0x101*inv/0xffff) >> 8),
		A: 255,
	}
}

// span converts a float extent to a pixel range. Non-empty extents always
// cover at least one pixel so sub-pixel markers stay visible.
func span(pos, size float64) (int, int) {
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos + size))
	if size > 0 && hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

func (c *Canvas) FillRect(x, y, w, h float64, clr color.Color) {
	x0, x1 := span(x, w)
	y0, y1 := span(y, h)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.blend(px, py, clr)
		}
	}
}

// DrawLine rasterises a one pixel line with Bresenham's algorithm
func (c *Canvas) DrawLine(x1, y1, x2, y2 float64, clr color.Color) {
	x0, y0 := int(math.Floor(x1)), int(math.Floor(y1))
	xe, ye := int(math.Floor(x2)), int(math.Floor(y2))

	dx := absInt(xe - x0)
	dy := -absInt(ye - y0)
	sx, sy := 1, 1
	if x0 > xe {
		sx = -1
	}
	if y0 > ye {
		sy = -1
	}

	// Lines can leave the canvas by a long way; stop once both ends are covered
	limit := dx - dy + 1
	err := dx + dy
	for i := 0; i < limit; i++ {
		c.blend(x0, y0, clr)
		if x0 == xe && y0 == ye {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawText writes runes into the text layer on the cell row holding pixel y
func (c *Canvas) DrawText(text string, x, y float64, clr color.Color) {
	row := int(math.Floor(y)) / 2
	if row < 0 || row >= c.rows {
		return
	}
	fg := color.RGBAModel.Convert(clr).(color.RGBA)
	col := int(math.Floor(x))
	for _, r := range text {
		if col >= c.cols {
			return
		}
		if col >= 0 {
			c.text[row*c.cols+col] = r
			c.textColor[row*c.cols+col] = fg
		}
		col++
	}
}

// DrawImage composites an image with its top-left corner at (x, y)
func (c *Canvas) DrawImage(img image.Image, x, y float64) {
	b := img.Bounds()
	ox, oy := int(math.Floor(x)), int(math.Floor(y))
	rgba, isRGBA := img.(*image.RGBA)
	for iy := b.Min.Y; iy < b.Max.Y; iy++ {
		py := oy + iy - b.Min.Y
		if py < 0 || py >= c.rows*2 {
			continue
		}
		for ix := b.Min.X; ix < b.Max.X; ix++ {
			px := ox + ix - b.Min.X
			if px < 0 || px >= c.cols {
				continue
			}
			if isRGBA {
				if p := rgba.RGBAAt(ix, iy); p.A == 255 {
					c.pix[py*c.cols+px] = p
					continue
				}
			}
			c.blend(px, py, img.At(ix, iy))
		}
	}
}

// Present copies the canvas to the screen. Call screen.Show afterwards.
func (c *Canvas) Present(screen tcell.Screen) {
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			top := c.pix[(row*2)*c.cols+col]
			bottom := c.pix[(row*2+1)*c.cols+col]

			if r := c.text[row*c.cols+col]; r != 0 {
				style := tcell.StyleDefault.Foreground(rgbColor(c.textColor[row*c.cols+col])).Background(rgbColor(top))
				screen.SetContent(col, row, r, nil, style)
				continue
			}
			style := tcell.StyleDefault.Foreground(rgbColor(top)).Background(rgbColor(bottom))
			screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
}

func rgbColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
