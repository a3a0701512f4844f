package engine

import (
	"fmt"
	"image"

	"raycaster/internal/monitoring"
	"raycaster/internal/world"
)

// RoomOptions configures a room. Zero-valued styles fall back to defaults.
type RoomOptions struct {
	Player  Player
	Palette *Palette
	Minimap *MinimapStyle
	HUD     *HUD
	Torch   image.Image       // Texture for torch markers and extra sprites
	Extra   []world.Placement // Sprites added after the torch markers
	Monitor *monitoring.PerformanceMonitor
}

// Room owns the per-level rendering state: grid, player, sprite list, depth
// buffer and the 3D view raster. It is not safe for concurrent use.
type Room struct {
	grid    *world.Grid
	player  Player
	sprites SpriteRegistry
	depth   DepthBuffer
	view    *Frame

	palette Palette
	minimap *Minimap
	hud     HUD
	torch   image.Image
	monitor *monitoring.PerformanceMonitor
}

// NewRoom creates a room for a grid. Every torch marker spawns a sprite at its
// cell center, followed by the extra placements in order.
func NewRoom(grid *world.Grid, opts RoomOptions) (*Room, error) {
	if grid == nil {
		return nil, fmt.Errorf("room needs a grid")
	}
	p := opts.Player
	if !grid.InBounds(int(p.X), int(p.Y)) {
		return nil, fmt.Errorf("player start (%.2f, %.2f) is outside the %dx%d map", p.X, p.Y, grid.Width, grid.Height)
	}
	if grid.IsWall(int(p.X), int(p.Y)) {
		return nil, fmt.Errorf("player start (%.2f, %.2f) is inside a wall", p.X, p.Y)
	}

	r := &Room{
		grid:    grid,
		player:  p,
		palette: DefaultPalette,
		minimap: NewMinimap(DefaultMinimapStyle()),
		hud:     DefaultHUD(),
		torch:   opts.Torch,
		monitor: opts.Monitor,
	}
	if opts.Palette != nil {
		r.palette = *opts.Palette
	}
	if opts.Minimap != nil {
		r.minimap = NewMinimap(*opts.Minimap)
	}
	if opts.HUD != nil {
		r.hud = *opts.HUD
	}
	if r.monitor == nil {
		r.monitor = monitoring.NewPerformanceMonitor()
	}

	for _, c := range grid.SpawnPoints() {
		r.AddSprite(NewSprite(float64(c.X)+0.5, float64(c.Y)+0.5, r.torch))
	}
	for i, pl := range opts.Extra {
		if !grid.InBounds(int(pl.X), int(pl.Y)) {
			return nil, fmt.Errorf("extra sprite %d at (%.2f, %.2f) is outside the map", i, pl.X, pl.Y)
		}
		s := NewSprite(pl.X, pl.Y, r.torch)
		s.VX, s.VY = pl.VX, pl.VY
		r.AddSprite(s)
	}
	return r, nil
}

// NewRoomFromLevel creates a room for a loaded level. The level's start, when
// present, replaces the configured player position and angle; the level's
// sprites come after the configured extras.
func NewRoomFromLevel(level *world.Level, opts RoomOptions) (*Room, error) {
	if level == nil {
		return nil, fmt.Errorf("room needs a level")
	}
	if level.Start != nil {
		opts.Player.X = level.Start.X
		opts.Player.Y = level.Start.Y
		opts.Player.Angle = level.Start.Angle
	}
	opts.Extra = append(append([]world.Placement(nil), opts.Extra...), level.Sprites...)

	r, err := NewRoom(level.Grid, opts)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", level.Name, err)
	}
	return r, nil
}

// AddSprite appends a sprite after the existing ones
func (r *Room) AddSprite(s *Sprite) {
	r.sprites.Add(s)
}

// Sprites returns the live sprites in draw order
func (r *Room) Sprites() []*Sprite {
	return r.sprites.Sprites()
}

// Player returns the mutable player state
func (r *Room) Player() *Player {
	return &r.player
}

// SetPosition teleports the player without collision checks
func (r *Room) SetPosition(x, y float64) {
	r.player.SetPosition(x, y)
}

// Grid returns the room's map
func (r *Room) Grid() *world.Grid {
	return r.grid
}

// Depth returns the depth buffer of the last drawn frame
func (r *Room) Depth() DepthBuffer {
	return r.depth
}

// View returns the 3D view raster of the last drawn frame
func (r *Room) View() *Frame {
	return r.view
}

// Monitor returns the performance monitor fed by Draw
func (r *Room) Monitor() *monitoring.PerformanceMonitor {
	return r.monitor
}

// Update applies keyboard input for one frame. Input is ignored while the
// host reports the room as inactive (paused).
func (r *Room) Update(in Input, dt float64, active bool) {
	if !active || in == nil {
		return
	}
	r.player.HandleInput(in, r.grid, dt)
}

// Draw renders one frame: depth reset, wall sweep, sprite pass, a single
// upload of the 3D view, then the minimap and HUD primitives on top.
// Sprite physics advance by dt.
func (r *Room) Draw(s Surface, dt float64, opts DrawOptions) {
	r.ensureBuffers(s.Size())

	r.depth.Reset()
	r.monitor.ProfiledFunction("raycast", r.Sweep)

	var pass SpritePass
	r.monitor.ProfiledFunction("sprite_render", func() {
		pass = UpdateSprites(&r.sprites, r.grid, &r.player, r.view, r.depth, dt)
	})
	r.monitor.RecordSprites(pass.Projected, pass.Removed)

	s.DrawImage(r.view.Image(), 0, 0)

	r.monitor.ProfiledFunction("minimap", func() {
		r.minimap.Draw(s, r.grid, &r.player, r.sprites.Sprites(), opts.Debug)
	})

	if opts.ShowHUD {
		var mem monitoring.MemoryStats
		if opts.Debug {
			mem = r.monitor.Memory()
		}
		r.hud.Draw(s, opts, mem)
	}
}

// Step runs input then drawing for one frame
func (r *Room) Step(s Surface, in Input, dt float64, active bool, opts DrawOptions) {
	r.Update(in, dt, active)
	r.Draw(s, dt, opts)
}

// Sweep casts one ray per column in increasing order, writes the column into
// the view and records the wall distance in the depth buffer
func (r *Room) Sweep() {
	width, _ := r.view.Size()
	p := &r.player
	for x := 0; x < width; x++ {
		angle := RayAngle(p.Angle, p.FOV, x, width)
		distance := CastRay(r.grid, p.X, p.Y, angle, p.Depth)
		RenderColumn(r.view, x, distance, r.palette)
		r.depth.Write(x, distance)
	}
}

func (r *Room) ensureBuffers(width, height int) {
	if r.view == nil {
		r.view = NewFrame(width, height)
	} else {
		r.view.Resize(width, height)
	}
	if len(r.depth) != width {
		r.depth = NewDepthBuffer(width)
	}
}
