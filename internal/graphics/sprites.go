package graphics

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
)

// TextureManager loads sprite textures as CPU-side images. The engine samples
// texels directly, so textures are kept as image.Image rather than GPU images.
type TextureManager struct {
	textures   map[string]image.Image
	searchDirs []string
}

// NewTextureManager creates a manager that looks for <dir>/<name>.png in each
// search directory in order
func NewTextureManager(searchDirs ...string) *TextureManager {
	if len(searchDirs) == 0 {
		searchDirs = []string{"assets/sprites"}
	}
	return &TextureManager{
		textures:   make(map[string]image.Image),
		searchDirs: searchDirs,
	}
}

// GetTexture returns a cached or freshly loaded texture. A procedural
// placeholder is returned (and cached) when no file can be decoded.
func (tm *TextureManager) GetTexture(name string) image.Image {
	if tex, exists := tm.textures[name]; exists {
		return tex
	}

	tex, err := tm.load(name)
	if err != nil {
		log.Printf("[Textures] Using placeholder for %q: %v", name, err)
		tex = createPlaceholder(name)
	}
	tm.textures[name] = tex
	return tex
}

// load decodes the first matching file from the search directories
func (tm *TextureManager) load(name string) (image.Image, error) {
	var lastErr error
	for _, dir := range tm.searchDirs {
		path := filepath.Join(dir, name+".png")
		img, err := decodeFile(path)
		if err == nil {
			log.Printf("[Textures] Loaded %s (%dx%d)", path, img.Bounds().Dx(), img.Bounds().Dy())
			return img, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("no texture found in %v: %w", tm.searchDirs, lastErr)
}

func decodeFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// createPlaceholder draws a simple stand-in texture. Torches get a handle and
// flame on a transparent background, anything else is a gray block.
func createPlaceholder(name string) image.Image {
	if name != "torch" {
		img := image.NewRGBA(image.Rect(0, 0, 16, 16))
		fill(img, img.Bounds(), color.RGBA{128, 128, 128, 255})
		return img
	}

	img := image.NewRGBA(image.Rect(0, 0, 8, 16))
	fill(img, image.Rect(3, 7, 5, 16), color.RGBA{101, 67, 33, 255}) // Handle
	fill(img, image.Rect(2, 3, 6, 7), color.RGBA{255, 140, 0, 255})  // Flame
	fill(img, image.Rect(3, 1, 5, 3), color.RGBA{255, 220, 80, 255}) // Flame tip
	return img
}

func fill(img *image.RGBA, r image.Rectangle, clr color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, clr)
		}
	}
}
