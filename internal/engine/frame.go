package engine

import (
	"image"
	"image/color"
	"math"
)

// Frame is the per-frame raster for the 3D view. Walls and sprites are written
// here and the whole view reaches the surface with a single DrawImage call.
type Frame struct {
	img *image.RGBA
}

// NewFrame allocates a frame of the given size
func NewFrame(width, height int) *Frame {
	return &Frame{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Size returns the frame dimensions
func (f *Frame) Size() (int, int) {
	b := f.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize reallocates the frame when the surface size changed
func (f *Frame) Resize(width, height int) {
	if w, h := f.Size(); w == width && h == height {
		return
	}
	f.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Set writes one pixel. Writes outside the frame are dropped.
func (f *Frame) Set(x, y int, clr color.RGBA) {
	if !(image.Point{X: x, Y: y}.In(f.img.Rect)) {
		return
	}
	i := f.img.PixOffset(x, y)
	p := f.img.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = clr.R, clr.G, clr.B, clr.A
}

// At returns the pixel at (x, y)
func (f *Frame) At(x, y int) color.RGBA {
	return f.img.RGBAAt(x, y)
}

// Image exposes the raster for flushing to a surface
func (f *Frame) Image() *image.RGBA {
	return f.img
}

// Gray converts a shade intensity to an opaque gray.
// Intensities outside [0, 1] saturate.
func Gray(intensity float64) color.RGBA {
	v := saturate(intensity)
	return color.RGBA{R: v, G: v, B: v, A: 255}
}

func saturate(v float64) uint8 {
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
