package engine

import (
	"image/color"

	"raycaster/internal/world"
)

// MinimapStyle holds the minimap geometry and colours
type MinimapStyle struct {
	Width  float64 // Panel size in pixels
	Height float64
	Scale  float64 // Pixels per cell

	Background color.RGBA
	Wall       color.RGBA
	Empty      color.RGBA
	Player     color.RGBA
	Sprite     color.RGBA
	Ray        color.RGBA
}

// DefaultMinimapStyle returns a 160x160 panel at 10 pixels per cell
func DefaultMinimapStyle() MinimapStyle {
	return MinimapStyle{
		Width:      160,
		Height:     160,
		Scale:      10,
		Background: color.RGBA{A: 128},
		Wall:       color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Empty:      color.RGBA{},
		Player:     color.RGBA{G: 255, A: 255},
		Sprite:     color.RGBA{R: 255, A: 255},
		Ray:        color.RGBA{R: 255, G: 255, A: 255},
	}
}

// Minimap draws the scaled top-down view in the top-left corner of a surface.
//
// Layout math works bottom-up: map row y sits (mapHeight - y - 1) cells above
// the bottom edge of the panel, so row 0 of the map is drawn at the top.
// Positions are converted to the surface's top-left origin just before drawing.
type Minimap struct {
	Style   MinimapStyle
	OriginX float64 // Top-left corner of the panel on the surface
	OriginY float64
}

// NewMinimap creates a minimap anchored at the surface origin
func NewMinimap(style MinimapStyle) *Minimap {
	return &Minimap{Style: style}
}

// rowBottom returns the distance in pixels from the panel's bottom edge to
// the bottom of map row y
func (m *Minimap) rowBottom(y int, mapHeight int) float64 {
	return float64(mapHeight-y-1) * m.Style.Scale
}

// toSurfaceY converts a bottom-origin y of a box with height h into the
// top-left y of that box on the surface
func (m *Minimap) toSurfaceY(bottomY, h float64) float64 {
	return m.OriginY + m.Style.Height - bottomY - h
}

// CellRect returns the surface rectangle of a map cell
func (m *Minimap) CellRect(x, y, mapHeight int) (float64, float64, float64, float64) {
	s := m.Style.Scale
	return m.OriginX + float64(x)*s, m.toSurfaceY(m.rowBottom(y, mapHeight), s), s, s
}

// MarkerRect returns the surface rectangle of a marker at a world position.
// X keeps its fractional part, the row is truncated to its cell.
func (m *Minimap) MarkerRect(wx, wy float64, mapHeight int) (float64, float64, float64, float64) {
	size := m.Style.Scale / 2
	return m.OriginX + wx*m.Style.Scale, m.toSurfaceY(m.rowBottom(int(wy), mapHeight), size), size, size
}

// LinePoint maps a world position to a ray line end point on the surface
func (m *Minimap) LinePoint(wx, wy float64, mapHeight int) (float64, float64) {
	return m.OriginX + wx*m.Style.Scale, m.toSurfaceY(m.rowBottom(int(wy), mapHeight), 0)
}

// Draw renders background, tiles, player, sprite markers and, in debug mode,
// one ray line per screen column. Fully transparent tiles are skipped.
func (m *Minimap) Draw(s Surface, g *world.Grid, p *Player, sprites []*Sprite, debug bool) {
	st := m.Style
	s.FillRect(m.OriginX, m.OriginY, st.Width, st.Height, st.Background)

	// Draw map
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			clr := st.Empty
			if g.IsWall(x, y) {
				clr = st.Wall
			}
			if clr.A == 0 {
				continue
			}
			rx, ry, rw, rh := m.CellRect(x, y, g.Height)
			s.FillRect(rx, ry, rw, rh, clr)
		}
	}

	// Player position
	rx, ry, rw, rh := m.MarkerRect(p.X, p.Y, g.Height)
	s.FillRect(rx, ry, rw, rh, st.Player)

	for _, sp := range sprites {
		if sp.Remove {
			continue
		}
		rx, ry, rw, rh := m.MarkerRect(sp.X, sp.Y, g.Height)
		s.FillRect(rx, ry, rw, rh, st.Sprite)
	}

	if !debug {
		return
	}

	// Ray fan: same sweep as the 3D view, one line per column
	screenWidth, _ := s.Size()
	startX, startY := m.LinePoint(p.X, p.Y, g.Height)
	for x := 0; x < screenWidth; x++ {
		angle := RayAngle(p.Angle, p.FOV, x, screenWidth)
		distance := CastRay(g, p.X, p.Y, angle, p.Depth)
		hitX, hitY := RayHit(p.X, p.Y, angle, distance)
		endX, endY := m.LinePoint(hitX, hitY, g.Height)
		s.DrawLine(startX, startY, endX, endY, st.Ray)
	}
}
