package game

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const screenshotsDirName = "screenshots"

// getAppDataDir returns a directory next to the app executable, created on demand.
func getAppDataDir(name string) string {
	if exePath, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exePath)
		// When running via "go run", the executable lives in a temp build dir.
		// In that case, prefer the current working directory so files persist.
		if !isTempExeDir(exeDir) {
			dir := filepath.Join(exeDir, name)
			if err := os.MkdirAll(dir, 0755); err == nil {
				return dir
			}
		}
	}
	if cwd, err := os.Getwd(); err == nil {
		dir := filepath.Join(cwd, name)
		_ = os.MkdirAll(dir, 0755)
		return dir
	}
	return name
}

// isTempExeDir returns true when the executable directory looks like a Go temp build path.
func isTempExeDir(dir string) bool {
	clean := filepath.Clean(dir)
	if strings.Contains(clean, string(filepath.Separator)+"go-build") {
		return true
	}
	if strings.HasPrefix(clean, filepath.Clean(os.TempDir())+string(filepath.Separator)) {
		return true
	}
	return false
}

// screenshotName returns a sortable file name for a capture taken at t
func screenshotName(t time.Time) string {
	return fmt.Sprintf("view-%s.png", t.Format("20060102-150405.000"))
}

// saveScreenshot writes img as a PNG into dir and returns the file path
func saveScreenshot(img image.Image, dir string, t time.Time) (string, error) {
	if img == nil {
		return "", fmt.Errorf("no frame drawn yet")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	path := filepath.Join(dir, screenshotName(t))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create screenshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to encode screenshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// takeScreenshot saves the last 3D view without the overlays
func (g *RaycastGame) takeScreenshot() {
	var img image.Image
	if view := g.room.View(); view != nil {
		img = view.Image()
	}
	path, err := saveScreenshot(img, getAppDataDir(screenshotsDirName), time.Now())
	if err != nil {
		log.Printf("[Game] Screenshot failed: %v", err)
		return
	}
	log.Printf("[Game] Screenshot saved to %s", path)
}
