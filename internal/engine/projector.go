package engine

import (
	"math"

	"raycaster/internal/world"
)

// MinSpriteDistance is the nearest distance at which sprites are drawn
const MinSpriteDistance = 0.5

// Projection is a sprite mapped into screen space
type Projection struct {
	Angle    float64 // Angle from the view direction, in (-π, π]
	Distance float64 // Euclidean distance from the player
	Ceiling  float64 // Top row
	Height   float64 // Rows covered
	Width    float64 // Columns covered
	Middle   float64 // Center column
}

// NormalizeAngle folds an angle in (-2π, 2π] into (-π, π] with a single 2π step.
// Inputs outside that range are not fully normalized.
func NormalizeAngle(a float64) float64 {
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// ObjectAngle returns the angle between the player's view direction and the
// point (x, y), and the distance to it. The angle grows in the same direction
// as screen columns.
func ObjectAngle(p *Player, x, y float64) (angle, distance float64) {
	vecX := x - p.X
	vecY := y - p.Y
	distance = math.Sqrt(vecX*vecX + vecY*vecY)

	eyeX, eyeY := p.GetForward()
	angle = NormalizeAngle(math.Atan2(eyeY, eyeX) - math.Atan2(vecY, vecX))
	return angle, distance
}

// InView reports whether something at the given angle and distance passes the
// field-of-view and range gates
func InView(p *Player, angle, distance float64) bool {
	return math.Abs(angle) < p.FOV/2 && distance >= MinSpriteDistance && distance < p.Depth
}

// ProjectSprite maps a sprite into screen space. The second result is false
// when the sprite is flagged for removal or fails the view gates.
func ProjectSprite(p *Player, s *Sprite, screenWidth, screenHeight int) (Projection, bool) {
	angle, distance := ObjectAngle(p, s.X, s.Y)
	proj := Projection{Angle: angle, Distance: distance}
	if s.Remove || !InView(p, angle, distance) {
		return proj, false
	}

	h := float64(screenHeight)
	ceiling := h/2 - h/distance
	floor := h - ceiling

	proj.Ceiling = ceiling
	proj.Height = floor - ceiling
	proj.Width = proj.Height / s.AspectRatio()
	// Same linear angle-to-column mapping as the ray sweep so sprites line up with walls
	proj.Middle = (0.5*(angle/(p.FOV/2)) + 0.5) * float64(screenWidth)
	return proj, true
}

// DrawSprite rasterises a projected sprite into the frame. A pixel is drawn
// only where the sample is visible and the depth buffer holds nothing nearer;
// every drawn pixel claims its column at the sprite's distance.
// Returns the number of pixels drawn.
func DrawSprite(f *Frame, depth DepthBuffer, s *Sprite, proj Projection) int {
	width, height := f.Size()
	left := proj.Middle - proj.Width/2

	// Skip the part of the rectangle left of / above the screen
	lxStart := 0.0
	if left < 0 {
		lxStart = math.Floor(-left)
	}
	lyStart := 0.0
	if proj.Ceiling < 0 {
		lyStart = math.Floor(-proj.Ceiling)
	}

	drawn := 0
	for lx := lxStart; lx < proj.Width; lx++ {
		column := int(left + lx)
		if column >= width {
			break
		}
		if column < 0 {
			continue
		}
		for ly := lyStart; ly < proj.Height; ly++ {
			row := int(proj.Ceiling + ly)
			if row >= height {
				break
			}
			if row < 0 {
				continue
			}
			clr, visible := s.Sample(lx/proj.Width, ly/proj.Height)
			if !visible {
				continue
			}
			if !depth.TestAndSet(column, proj.Distance) {
				// Something nearer owns this column for the rest of the strip
				break
			}
			f.Set(column, row, clr)
			drawn++
		}
	}
	return drawn
}

// SpritePass summarizes one sprite pass
type SpritePass struct {
	Projected int // Sprites that passed the view gates
	Pixels    int // Pixels written
	Removed   int // Sprites dropped after entering a wall
}

// UpdateSprites advances sprite physics, flags sprites that entered a wall,
// draws the visible ones in list order and finally drops the flagged ones.
func UpdateSprites(reg *SpriteRegistry, g *world.Grid, p *Player, f *Frame, depth DepthBuffer, dt float64) SpritePass {
	var pass SpritePass
	width, height := f.Size()
	for _, s := range reg.Sprites() {
		s.X += s.VX * dt
		s.Y += s.VY * dt

		// Check if object is inside wall - set flag for removal
		if g.IsWall(int(s.X), int(s.Y)) {
			s.Remove = true
			continue
		}

		if proj, ok := ProjectSprite(p, s, width, height); ok {
			pass.Projected++
			pass.Pixels += DrawSprite(f, depth, s, proj)
		}
	}
	pass.Removed = reg.Compact()
	return pass
}
