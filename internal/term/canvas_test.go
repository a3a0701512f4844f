package term

import (
	"image"
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
)

var (
	black = color.RGBA{A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.RGBA{R: 255, A: 255}
)

func TestCanvasSize(t *testing.T) {
	c := NewCanvas(40, 12)
	if w, h := c.Size(); w != 40 || h != 24 {
		t.Errorf("Expected 40x24 pixels for 40x12 cells, got %dx%d", w, h)
	}
	c.Resize(10, 5)
	if w, h := c.Size(); w != 10 || h != 10 {
		t.Errorf("Expected 10x10 after resize, got %dx%d", w, h)
	}
}

func TestSpan(t *testing.T) {
	tests := []struct {
		pos, size float64
		lo, hi    int
	}{
		{3, 1, 3, 4},
		{14.7, 0.5, 14, 16},
		{14.2, 0.5, 14, 15},
		{0, 160, 0, 160},
		{2, 0, 2, 2},
	}
	for _, tt := range tests {
		if lo, hi := span(tt.pos, tt.size); lo != tt.lo || hi != tt.hi {
			t.Errorf("span(%v, %v) = [%d, %d), want [%d, %d)", tt.pos, tt.size, lo, hi, tt.lo, tt.hi)
		}
	}
}

func TestCanvasFillRectBlends(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Clear()

	c.FillRect(0, 0, 2, 2, white)
	c.FillRect(1, 1, 2, 2, color.RGBA{A: 128}) // Half transparent black

	if c.Pixel(0, 0) != white {
		t.Errorf("Expected opaque fill, got %v", c.Pixel(0, 0))
	}
	if p := c.Pixel(1, 1); p.R < 120 || p.R > 135 {
		t.Errorf("Expected half blended gray, got %v", p)
	}
	if c.Pixel(2, 2) != black {
		t.Errorf("Expected translucent black over black to stay black, got %v", c.Pixel(2, 2))
	}

	// Fully transparent fills are no-ops
	c.FillRect(0, 0, 4, 4, color.RGBA{})
	if c.Pixel(0, 0) != white {
		t.Error("Expected transparent fill to leave pixels untouched")
	}

	// Out of range is clipped
	c.FillRect(-10, -10, 100, 100, red)
	if c.Pixel(3, 3) != red {
		t.Error("Expected clipped fill to cover the canvas")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(8, 4)
	c.Clear()

	c.DrawLine(0, 0, 7, 7, red)
	for i := 0; i < 8; i++ {
		if c.Pixel(i, i) != red {
			t.Errorf("Expected diagonal pixel (%d, %d) set", i, i)
		}
	}
	if c.Pixel(1, 0) != black {
		t.Error("Expected off-diagonal pixel untouched")
	}

	// Far off-screen end points terminate
	c.DrawLine(4, 4, 1000, -1000, white)
	if c.Pixel(4, 4) != white {
		t.Error("Expected line start to be drawn")
	}
}

func TestCanvasDrawText(t *testing.T) {
	c := NewCanvas(10, 3)
	c.DrawText("FPS: 60", 1, 2, white)

	if c.Glyph(1, 1) != 'F' || c.Glyph(7, 1) != '0' {
		t.Errorf("Expected text on row 1 from column 1, got %q %q", c.Glyph(1, 1), c.Glyph(7, 1))
	}
	if c.Glyph(0, 1) != 0 {
		t.Error("Expected empty cell before the text")
	}

	c.DrawText("clipped off the end", 5, 0, white)
	if c.Glyph(9, 0) != 'p' {
		t.Errorf("Expected clipped text, got %q", c.Glyph(9, 0))
	}

	c.Clear()
	if c.Glyph(1, 1) != 0 {
		t.Error("Expected Clear to remove text")
	}
}

func TestCanvasDrawImage(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Clear()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, red)
	img.SetRGBA(1, 1, white)
	c.DrawImage(img, 1, 1)

	if c.Pixel(1, 1) != red || c.Pixel(2, 2) != white {
		t.Errorf("Expected image copied at offset, got %v %v", c.Pixel(1, 1), c.Pixel(2, 2))
	}
	if c.Pixel(2, 1) != black {
		t.Errorf("Expected transparent texel to leave the canvas untouched, got %v", c.Pixel(2, 1))
	}
}

func TestCanvasPresent(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(4, 2)

	c := NewCanvas(4, 2)
	c.Clear()
	c.FillRect(0, 0, 1, 1, red)   // Top half of cell (0, 0)
	c.FillRect(0, 1, 1, 1, white) // Bottom half of cell (0, 0)
	c.DrawText("A", 2, 2, white)
	c.Present(screen)
	screen.Show()

	r, _, style, _ := screen.GetContent(0, 0)
	fg, bg, _ := style.Decompose()
	if r != halfBlock || fg != tcell.NewRGBColor(255, 0, 0) || bg != tcell.NewRGBColor(255, 255, 255) {
		t.Errorf("Expected red over white half block, got %q fg=%v bg=%v", r, fg, bg)
	}

	r, _, style, _ = screen.GetContent(2, 1)
	fg, _, _ = style.Decompose()
	if r != 'A' || fg != tcell.NewRGBColor(255, 255, 255) {
		t.Errorf("Expected white text glyph, got %q fg=%v", r, fg)
	}
}
