// Package engine implements the per-column raycasting core: ray marching,
// column shading, billboard sprite projection with a depth buffer, player
// movement and the minimap overlay. Hosts supply drawing and input through
// the Surface and Input interfaces.
package engine

import (
	"image"
	"image/color"
)

// Surface is the drawing capability the engine consumes.
//
// All coordinates are screen pixels with the origin at the top-left corner
// and Y growing downwards. Minimap math that works on an inverted axis
// converts to this convention before drawing.
type Surface interface {
	// Size returns the drawable area in pixels.
	Size() (width, height int)
	FillRect(x, y, w, h float64, clr color.Color)
	DrawLine(x1, y1, x2, y2 float64, clr color.Color)
	// DrawText draws a single line with (x, y) at the top-left of the line box.
	DrawText(text string, x, y float64, clr color.Color)
	DrawImage(img image.Image, x, y float64)
}

// Key is a logical input key.
type Key int

const (
	KeyTurnLeft Key = iota
	KeyTurnRight
	KeyForward
	KeyBackward
)

func (k Key) String() string {
	switch k {
	case KeyTurnLeft:
		return "turn-left"
	case KeyTurnRight:
		return "turn-right"
	case KeyForward:
		return "forward"
	case KeyBackward:
		return "backward"
	default:
		return "unknown"
	}
}

// Input reports which logical keys are held this frame.
type Input interface {
	IsKeyDown(key Key) bool
}

// DrawOptions controls per-frame overlay verbosity.
type DrawOptions struct {
	Debug   bool    // Draw the minimap ray fan and memory lines
	ShowHUD bool    // Draw the FPS line
	FPS     float64 // Reported by the host
}
