package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Surface adapts an ebiten screen image to engine.Surface. Bind must be
// called with the current screen before drawing each frame.
type Surface struct {
	screen *ebiten.Image
	face   font.Face

	// Upload targets reused across frames, keyed by size
	uploads map[image.Point]*ebiten.Image
}

// NewSurface creates a surface drawing text with the 7x13 bitmap face
func NewSurface() *Surface {
	return &Surface{
		face:    basicfont.Face7x13,
		uploads: make(map[image.Point]*ebiten.Image),
	}
}

// Bind sets the image drawn to until the next Bind
func (s *Surface) Bind(screen *ebiten.Image) {
	s.screen = screen
}

func (s *Surface) Size() (int, int) {
	b := s.screen.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) FillRect(x, y, w, h float64, clr color.Color) {
	vector.DrawFilledRect(s.screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func (s *Surface) DrawLine(x1, y1, x2, y2 float64, clr color.Color) {
	vector.StrokeLine(s.screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, clr, false)
}

// DrawText places the line box top-left at (x, y); ebiten draws from the baseline
func (s *Surface) DrawText(text string, x, y float64, clr color.Color) {
	baseline := int(y) + s.face.Metrics().Ascent.Ceil()
	ebitext.Draw(s.screen, text, s.face, int(x), baseline, clr)
}

// DrawImage uploads a CPU raster and draws it. Tightly packed RGBA images are
// written into a cached GPU image instead of allocating one per frame.
func (s *Surface) DrawImage(img image.Image, x, y float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)

	if pix, ok := packedPixels(img); ok {
		size := img.Bounds().Size()
		target, exists := s.uploads[size]
		if !exists {
			target = ebiten.NewImage(size.X, size.Y)
			s.uploads[size] = target
		}
		target.WritePixels(pix)
		s.screen.DrawImage(target, op)
		return
	}

	s.screen.DrawImage(ebiten.NewImageFromImage(img), op)
}

// packedPixels returns the pixel slice of an RGBA image when it can be passed
// to WritePixels as is
func packedPixels(img image.Image) ([]byte, bool) {
	rgba, ok := img.(*image.RGBA)
	if !ok {
		return nil, false
	}
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	if w == 0 || h == 0 || rgba.Stride != 4*w {
		return nil, false
	}
	start := rgba.PixOffset(rgba.Rect.Min.X, rgba.Rect.Min.Y)
	return rgba.Pix[start : start+4*w*h], true
}
