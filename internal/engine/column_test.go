package engine

import (
	"image/color"
	"math"
	"testing"
)

func TestColumnBounds_OrderedAndInRange(t *testing.T) {
	distances := []float64{0, 0.01, 0.1, 0.5, 1, 2.5, 4, 16, 1000}
	heights := []int{1, 2, 3, 48, 480, 1080}

	for _, h := range heights {
		for _, d := range distances {
			ceiling, floor := ColumnBounds(d, h)
			if ceiling < 0 || floor < 0 || ceiling > h-1 || floor > h-1 {
				t.Errorf("H=%d d=%.2f: bounds (%d, %d) outside [0, %d]", h, d, ceiling, floor, h-1)
			}
			if ceiling > floor {
				t.Errorf("H=%d d=%.2f: ceiling %d below floor %d", h, d, ceiling, floor)
			}
		}
	}
}

func TestColumnBounds_Values(t *testing.T) {
	tests := []struct {
		name        string
		distance    float64
		wantCeiling int
		wantFloor   int
	}{
		{"near wall fills column", 1, 0, 479},
		{"four cells away", 4, 120, 360},
		{"at depth", 16, 210, 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ceiling, floor := ColumnBounds(tt.distance, 480)
			if ceiling != tt.wantCeiling || floor != tt.wantFloor {
				t.Errorf("ColumnBounds(%.1f) = (%d, %d), want (%d, %d)",
					tt.distance, ceiling, floor, tt.wantCeiling, tt.wantFloor)
			}
		})
	}
}

func TestWallShade(t *testing.T) {
	if s := WallShade(0.5); s <= 1 {
		t.Errorf("Expected unclamped shade above 1 for near walls, got %.4f", s)
	}
	if got := Gray(WallShade(0.5)); got.R != 255 {
		t.Errorf("Expected near wall to saturate to 255, got %d", got.R)
	}
	if got := Gray(WallShade(4)); got.R != 64 {
		t.Errorf("Expected quarter shade 64 at distance 4, got %d", got.R)
	}
	if s := WallShade(0); math.IsInf(s, 0) {
		t.Error("Expected finite shade at distance 0")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		y    int
		want Band
	}{
		{0, BandCeiling},
		{120, BandCeiling},
		{121, BandWall},
		{360, BandWall},
		{361, BandFloor},
	}

	for _, tt := range tests {
		if got := Classify(tt.y, 120, 360); got != tt.want {
			t.Errorf("Classify(%d) = %v, want %v", tt.y, got, tt.want)
		}
	}
}

func TestRenderColumn(t *testing.T) {
	f := NewFrame(4, 480)
	RenderColumn(f, 2, 4, DefaultPalette)

	wall := Gray(WallShade(4))
	checks := []struct {
		y    int
		want color.RGBA
	}{
		{0, DefaultPalette.Ceiling},
		{120, DefaultPalette.Ceiling},
		{121, wall},
		{360, wall},
		{361, DefaultPalette.Floor},
		{479, DefaultPalette.Floor},
	}
	for _, c := range checks {
		if got := f.At(2, c.y); got != c.want {
			t.Errorf("row %d: got %v, want %v", c.y, got, c.want)
		}
	}

	// Neighbouring columns untouched
	if got := f.At(1, 0); got != (color.RGBA{}) {
		t.Errorf("Expected column 1 untouched, got %v", got)
	}
}

func TestFrameSetOutOfRange(t *testing.T) {
	f := NewFrame(2, 2)
	f.Set(-1, 0, red)
	f.Set(0, 2, red)
	f.Set(5, 5, red)
	if n := countColor(f, red); n != 0 {
		t.Errorf("Expected out-of-range writes to be dropped, %d pixels set", n)
	}

	f.Set(1, 1, red)
	if f.At(1, 1) != red {
		t.Error("Expected in-range write to land")
	}

	f.Resize(2, 2)
	if f.At(1, 1) != red {
		t.Error("Expected same-size resize to keep the raster")
	}
	f.Resize(3, 1)
	if w, h := f.Size(); w != 3 || h != 1 {
		t.Errorf("Expected 3x1 after resize, got %dx%d", w, h)
	}
}

func TestGraySaturates(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{0.5, 128},
		{1, 255},
		{3, 255},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := Gray(tt.in); got.R != tt.want || got.A != 255 {
			t.Errorf("Gray(%v) = %v, want %d", tt.in, got, tt.want)
		}
	}
}
