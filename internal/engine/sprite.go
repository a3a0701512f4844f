package engine

import (
	"image"
	"image/color"
)

// Sampler returns the colour of a sprite at normalized coordinates in [0, 1)
// and whether that point is visible.
type Sampler func(sx, sy float64) (color.RGBA, bool)

// Sprite is a billboard object in world space
type Sprite struct {
	X, Y    float64     // World position in cell units
	VX, VY  float64     // Velocity in cells per second
	Remove  bool        // Set when the sprite entered a wall; retired at the end of the frame
	Texture image.Image // Native size gives the aspect ratio
	Sample  Sampler
}

// NewSprite creates a stationary sprite sampling its texture
func NewSprite(x, y float64, texture image.Image) *Sprite {
	return &Sprite{
		X:       x,
		Y:       y,
		Texture: texture,
		Sample:  TextureSampler(texture),
	}
}

// AspectRatio returns the texture's height over width, 1 without a texture
func (s *Sprite) AspectRatio() float64 {
	if s.Texture == nil {
		return 1
	}
	b := s.Texture.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return 1
	}
	return float64(b.Dy()) / float64(b.Dx())
}

// TextureSampler samples the nearest texel. Fully transparent texels are blank.
// A nil texture samples as solid white.
func TextureSampler(texture image.Image) Sampler {
	if texture == nil {
		return SolidSampler(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	b := texture.Bounds()
	return func(sx, sy float64) (color.RGBA, bool) {
		tx := b.Min.X + clampInt(int(sx*float64(b.Dx())), 0, b.Dx()-1)
		ty := b.Min.Y + clampInt(int(sy*float64(b.Dy())), 0, b.Dy()-1)
		c := color.RGBAModel.Convert(texture.At(tx, ty)).(color.RGBA)
		if c.A == 0 {
			return c, false
		}
		return c, true
	}
}

// SolidSampler marks every point visible with one colour
func SolidSampler(clr color.RGBA) Sampler {
	return func(_, _ float64) (color.RGBA, bool) {
		return clr, true
	}
}

// SpriteRegistry owns the live sprites. Removal is deferred: sprites are only
// flagged during a frame and dropped by Compact afterwards.
type SpriteRegistry struct {
	sprites []*Sprite
}

// Add appends a sprite
func (r *SpriteRegistry) Add(s *Sprite) {
	r.sprites = append(r.sprites, s)
}

// Len returns the number of sprites, including flagged ones not yet compacted
func (r *SpriteRegistry) Len() int {
	return len(r.sprites)
}

// Sprites returns the sprites in registration order. Callers must not retain
// the slice across Compact.
func (r *SpriteRegistry) Sprites() []*Sprite {
	return r.sprites
}

// Compact drops every flagged sprite and returns how many were removed
func (r *SpriteRegistry) Compact() int {
	live := r.sprites[:0]
	for _, s := range r.sprites {
		if !s.Remove {
			live = append(live, s)
		}
	}
	removed := len(r.sprites) - len(live)
	// Clear the tail so dropped sprites can be collected
	for i := len(live); i < len(r.sprites); i++ {
		r.sprites[i] = nil
	}
	r.sprites = live
	return removed
}
