package engine

import (
	"math"

	"raycaster/internal/world"
)

// turnRateFactor scales the movement speed into the turning rate
const turnRateFactor = 0.75

// Player holds the viewer state. Angle 0 faces +Y; the forward vector is
// (sin(Angle), cos(Angle)).
type Player struct {
	X, Y  float64 // Position in cell units
	Angle float64 // View angle in radians
	FOV   float64 // Field of view in radians
	Depth float64 // Maximum ray range in cells
	Speed float64 // Cells per second
}

// GetForward returns the unit facing vector
func (p *Player) GetForward() (float64, float64) {
	return math.Sin(p.Angle), math.Cos(p.Angle)
}

// SetPosition places the player without collision checks
func (p *Player) SetPosition(x, y float64) {
	p.X = x
	p.Y = y
}

// Turn rotates by dir (-1 left, +1 right) scaled by speed and frame time
func (p *Player) Turn(dir, dt float64) {
	p.Angle += dir * p.Speed * turnRateFactor * dt
}

// Move steps along the facing vector (dir +1 forward, -1 backward). If the
// destination cell is a wall the move is undone and the position is exactly
// what it was before the call. Returns whether the player moved.
//
// The destination lookup is not bounds-guarded: walking off the grid is an
// invariant violation and panics.
func (p *Player) Move(g *world.Grid, dir, dt float64) bool {
	fx, fy := p.GetForward()
	dx := fx * p.Speed * dir * dt
	dy := fy * p.Speed * dir * dt

	prevX, prevY := p.X, p.Y
	p.X += dx
	p.Y += dy

	// Collision detection with walls
	if g.IsWall(int(p.X), int(p.Y)) {
		p.X, p.Y = prevX, prevY
		return false
	}
	return true
}

// HandleInput applies turning then forward/backward movement for one frame
func (p *Player) HandleInput(in Input, g *world.Grid, dt float64) {
	if in.IsKeyDown(KeyTurnLeft) {
		p.Turn(-1, dt)
	}
	if in.IsKeyDown(KeyTurnRight) {
		p.Turn(1, dt)
	}
	if in.IsKeyDown(KeyForward) {
		p.Move(g, 1, dt)
	}
	if in.IsKeyDown(KeyBackward) {
		p.Move(g, -1, dt)
	}
}
