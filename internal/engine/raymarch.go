package engine

import (
	"math"

	"raycaster/internal/world"
)

// RayStep is the fixed march increment in cell units. Hit distances carry up
// to one step of quantization error.
const RayStep = 0.1

// CastRay marches from (x, y) along (sin(angle), cos(angle)) and returns the
// distance to the first wall cell, capped at depth. Leaving the grid counts
// as a hit at depth.
func CastRay(g *world.Grid, x, y, angle, depth float64) float64 {
	eyeX := math.Sin(angle)
	eyeY := math.Cos(angle)

	distance := 0.0
	for distance < depth {
		distance += RayStep

		testX := int(x + eyeX*distance)
		testY := int(y + eyeY*distance)

		if !g.InBounds(testX, testY) {
			return depth
		}
		if g.IsWall(testX, testY) {
			break
		}
	}
	return math.Min(distance, depth)
}

// RayAngle returns the angle of the ray for a screen column. Angles are
// interpolated linearly across the field of view.
func RayAngle(playerAngle, fov float64, column, screenWidth int) float64 {
	return (playerAngle - fov/2) + (float64(column)/float64(screenWidth))*fov
}

// RayHit returns the world-space end point of a ray of the given length
func RayHit(x, y, angle, distance float64) (float64, float64) {
	return x + math.Sin(angle)*distance, y + math.Cos(angle)*distance
}
