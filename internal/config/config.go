package config

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all engine configuration values
type Config struct {
	Display DisplayConfig `yaml:"display"`
	World   WorldConfig   `yaml:"world"`
	Player  PlayerConfig  `yaml:"player"`
	Camera  CameraConfig  `yaml:"camera"`
	Minimap MinimapConfig `yaml:"minimap"`
	Colors  ColorsConfig  `yaml:"colors"`
	Sprites SpritesConfig `yaml:"sprites"`
	Debug   DebugConfig   `yaml:"debug"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	TPS          int    `yaml:"tps"`
}

type WorldConfig struct {
	MapFile    string   `yaml:"map_file"`
	SearchDirs []string `yaml:"search_dirs"`
}

type PlayerConfig struct {
	StartX float64 `yaml:"start_x"`
	StartY float64 `yaml:"start_y"`
	Angle  float64 `yaml:"angle"` // Radians, 0 faces +Y
	Speed  float64 `yaml:"speed"` // Cells per second, also scales turning
}

type CameraConfig struct {
	FieldOfView  float64 `yaml:"field_of_view"` // Radians
	ViewDistance float64 `yaml:"view_distance"` // Maximum ray range in cells
}

type MinimapConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Scale      float64 `yaml:"scale"` // Pixels per cell
	Background [4]int  `yaml:"background"`
	Wall       [4]int  `yaml:"wall"`
	Empty      [4]int  `yaml:"empty"`
	Player     [4]int  `yaml:"player"`
	Sprite     [4]int  `yaml:"sprite"`
	Ray        [4]int  `yaml:"ray"`
}

type ColorsConfig struct {
	Ceiling [3]int `yaml:"ceiling"`
	Floor   [3]int `yaml:"floor"`
	Text    [4]int `yaml:"text"`
}

type SpritesConfig struct {
	Torch string            `yaml:"torch"` // Texture name under assets/sprites
	Extra []SpritePlacement `yaml:"extra"`
}

type SpritePlacement struct {
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
	VX float64 `yaml:"vx"`
	VY float64 `yaml:"vy"`
}

type DebugConfig struct {
	Overlay        bool `yaml:"overlay"`          // Ray fan and memory lines on start
	PerfLog        bool `yaml:"perf_log"`         // Log frame drops
	ShowHUD        bool `yaml:"show_hud"`         // FPS text
	StartPause     bool `yaml:"start_pause"`      // Ignore movement keys until unpaused
	Averages       bool `yaml:"averages"`         // Keep running frame and raycast means
	MemorySampleMs int  `yaml:"memory_sample_ms"` // How long a memory reading is reused
}

var GlobalConfig *Config

// Default returns the built-in configuration. YAML values are decoded on top of it,
// so a config file only needs the keys it changes.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  640,
			ScreenHeight: 480,
			WindowTitle:  "Raycaster",
			Resizable:    false,
			TPS:          60,
		},
		World: WorldConfig{
			MapFile:    "assets/levels/room.map",
			SearchDirs: []string{".", ".."},
		},
		Player: PlayerConfig{
			StartX: 14.7,
			StartY: 5.09,
			Angle:  0,
			Speed:  6.0,
		},
		Camera: CameraConfig{
			FieldOfView:  math.Pi / 2,
			ViewDistance: 16.0,
		},
		Minimap: MinimapConfig{
			Width:      160,
			Height:     160,
			Scale:      10,
			Background: [4]int{0, 0, 0, 128},
			Wall:       [4]int{255, 255, 255, 255},
			Empty:      [4]int{0, 0, 0, 0},
			Player:     [4]int{0, 255, 0, 255},
			Sprite:     [4]int{255, 0, 0, 255},
			Ray:        [4]int{255, 255, 0, 255},
		},
		Colors: ColorsConfig{
			Ceiling: [3]int{51, 51, 51},
			Floor:   [3]int{0, 128, 0},
			Text:    [4]int{255, 255, 255, 255},
		},
		Sprites: SpritesConfig{
			Torch: "torch",
		},
		Debug: DebugConfig{
			Overlay:        true,
			ShowHUD:        true,
			Averages:       true,
			MemorySampleMs: 1000,
		},
	}
}

// LoadConfig loads the configuration from a YAML file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}

	// Set global config for easy access
	GlobalConfig = config

	return config, nil
}

// ParseConfig decodes YAML over the defaults and validates the result
func ParseConfig(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Validate rejects values the renderer cannot work with
func (c *Config) Validate() error {
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		return fmt.Errorf("display size must be positive, got %dx%d", c.Display.ScreenWidth, c.Display.ScreenHeight)
	}
	if c.Camera.FieldOfView <= 0 || c.Camera.FieldOfView >= 2*math.Pi {
		return fmt.Errorf("field_of_view must be in (0, 2π), got %v", c.Camera.FieldOfView)
	}
	if c.Camera.ViewDistance <= 0 {
		return fmt.Errorf("view_distance must be positive, got %v", c.Camera.ViewDistance)
	}
	if c.Player.Speed < 0 {
		return fmt.Errorf("player speed must not be negative, got %v", c.Player.Speed)
	}
	if c.Minimap.Scale <= 0 {
		return fmt.Errorf("minimap scale must be positive, got %v", c.Minimap.Scale)
	}
	if c.World.MapFile == "" {
		return fmt.Errorf("world.map_file is required")
	}
	return nil
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Player.Speed
}

func (c *Config) GetCameraFOV() float64 {
	return c.Camera.FieldOfView
}

func (c *Config) GetViewDistance() float64 {
	return c.Camera.ViewDistance
}

// GetTPS returns the update rate, 60 when unset
func (c *Config) GetTPS() int {
	if c.Display.TPS <= 0 {
		return 60
	}
	return c.Display.TPS
}

// GetMemorySampleInterval returns how long a memory reading stays valid, one
// second when unset
func (c *Config) GetMemorySampleInterval() time.Duration {
	if c.Debug.MemorySampleMs <= 0 {
		return time.Second
	}
	return time.Duration(c.Debug.MemorySampleMs) * time.Millisecond
}

// GetTextureDirs returns the sprite directory under each world search dir, so
// textures resolve from the same places as the map
func (c *Config) GetTextureDirs() []string {
	dirs := make([]string, 0, len(c.World.SearchDirs)+1)
	for _, dir := range c.World.SearchDirs {
		dirs = append(dirs, filepath.Join(dir, "assets", "sprites"))
	}
	if len(dirs) == 0 {
		dirs = append(dirs, filepath.Join("assets", "sprites"))
	}
	return dirs
}

// RGB converts a [r, g, b] triple into an opaque colour
func RGB(c [3]int) color.RGBA {
	return color.RGBA{R: channel(c[0]), G: channel(c[1]), B: channel(c[2]), A: 255}
}

// RGBA converts a straight-alpha [r, g, b, a] quadruple into a premultiplied colour
func RGBA(c [4]int) color.RGBA {
	n := color.NRGBA{R: channel(c[0]), G: channel(c[1]), B: channel(c[2]), A: channel(c[3])}
	return color.RGBAModel.Convert(n).(color.RGBA)
}

func channel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
