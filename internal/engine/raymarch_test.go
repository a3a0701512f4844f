package engine

import (
	"math"
	"testing"

	"raycaster/internal/world"
)

func TestCastRay_AdjacentWall(t *testing.T) {
	g := world.MustNewGrid(boxRows(10, 7))

	// Wall row at y=6 is 0.15 cells ahead
	d := CastRay(g, 5.0, 5.85, 0, 16)
	if d < 0.1 || d > 0.2+1e-9 {
		t.Errorf("Expected distance in [0.1, 0.2], got %.4f", d)
	}
}

func TestCastRay_OutOfBoundsIsDepth(t *testing.T) {
	g := world.MustNewGrid([]string{"...", "...", "..."})

	for _, angle := range []float64{0, math.Pi / 2, math.Pi, -math.Pi / 2, 0.3} {
		if d := CastRay(g, 1.5, 1.5, angle, 16); d != 16 {
			t.Errorf("angle %.2f: expected depth 16 when leaving the map, got %.4f", angle, d)
		}
	}
}

func TestCastRay_CappedAtDepth(t *testing.T) {
	g := world.MustNewGrid(boxRows(5, 40))

	d := CastRay(g, 2.5, 1.5, 0, 16)
	if d != 16 {
		t.Errorf("Expected distance capped at 16, got %.6f", d)
	}

	for _, depth := range []float64{0.05, 1, 3.3, 16} {
		for angle := -math.Pi; angle <= math.Pi; angle += 0.25 {
			if got := CastRay(g, 2.5, 20.5, angle, depth); got > depth {
				t.Errorf("depth %.2f angle %.2f: distance %.4f exceeds depth", depth, angle, got)
			}
		}
	}
}

func TestCastRay_MonotonicAlongRay(t *testing.T) {
	g := world.MustNewGrid(boxRows(10, 10))

	// Walking back from the far wall along the ray never shortens the distance
	prev := 0.0
	for y := 8.95; y > 1.0; y -= 0.1 {
		d := CastRay(g, 5.5, y, 0, 16)
		if d+1e-9 < prev {
			t.Fatalf("distance decreased from %.4f to %.4f at y=%.2f", prev, d, y)
		}
		prev = d
	}
}

func TestCastRay_NonDecreasingWithDepth(t *testing.T) {
	// Open top row so some rays leave the grid instead of hitting a wall
	rows := withRow(boxRows(10, 10), 0, "..........")
	rows = withRow(rows, 4, "#...##...#")
	g := world.MustNewGrid(rows)

	for angle := -math.Pi; angle <= math.Pi; angle += 0.05 {
		prev := 0.0
		for depth := 0.05; depth <= 20; depth += 0.07 {
			d := CastRay(g, 3.3, 6.7, angle, depth)
			if d > depth {
				t.Fatalf("angle %.2f depth %.2f: distance %.4f exceeds depth", angle, depth, d)
			}
			if d+1e-9 < prev {
				t.Fatalf("angle %.2f: distance fell from %.4f to %.4f when depth grew to %.2f", angle, prev, d, depth)
			}
			prev = d
		}
	}
}

func TestCastRay_QuantizedToStep(t *testing.T) {
	g := world.MustNewGrid(boxRows(10, 10))

	d := CastRay(g, 5.5, 5.5, 0, 16)
	exact := 9.0 - 5.5
	if d < exact-1e-9 || d > exact+RayStep+1e-9 {
		t.Errorf("Expected distance within one step past %.2f, got %.4f", exact, d)
	}
}

func TestRayAngle(t *testing.T) {
	fov := math.Pi / 2
	tests := []struct {
		name   string
		column int
		want   float64
	}{
		{"left edge", 0, 1 - fov/2},
		{"center", 320, 1},
		{"quarter", 160, 1 - fov/4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RayAngle(1, fov, tt.column, 640); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("RayAngle(column %d) = %.6f, want %.6f", tt.column, got, tt.want)
			}
		})
	}
}

func TestRayHit(t *testing.T) {
	x, y := RayHit(1, 2, math.Pi/2, 3)
	if math.Abs(x-4) > 1e-9 || math.Abs(y-2) > 1e-9 {
		t.Errorf("Expected hit at (4, 2), got (%.4f, %.4f)", x, y)
	}
}
