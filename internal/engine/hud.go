package engine

import (
	"fmt"
	"image/color"

	"raycaster/internal/monitoring"
)

// HUD draws the text overlay in the top-left corner
type HUD struct {
	X, Y       float64 // First line position
	LineHeight float64
	Color      color.RGBA
}

// DefaultHUD starts at (10, 10) with 20 pixel lines in white
func DefaultHUD() HUD {
	return HUD{X: 10, Y: 10, LineHeight: 20, Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}}
}

// Lines returns the overlay text for one frame
func (h HUD) Lines(opts DrawOptions, mem monitoring.MemoryStats) []string {
	lines := []string{fmt.Sprintf("FPS: %d", int(opts.FPS+0.5))}
	if opts.Debug {
		lines = append(lines,
			fmt.Sprintf("Used Memory: %.2f MB", mem.UsedMB),
			fmt.Sprintf("Total Memory: %.2f MB", mem.TotalMB),
			fmt.Sprintf("Sys Memory: %.2f MB", mem.SysMB),
		)
	}
	return lines
}

// Draw writes each line below the previous one
func (h HUD) Draw(s Surface, opts DrawOptions, mem monitoring.MemoryStats) {
	for i, line := range h.Lines(opts, mem) {
		s.DrawText(line, h.X, h.Y+float64(i)*h.LineHeight, h.Color)
	}
}
