package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"raycaster/internal/engine"
)

// DefaultKeyBindings maps logical keys to WASD and the arrow keys
var DefaultKeyBindings = map[engine.Key][]ebiten.Key{
	engine.KeyTurnLeft:  {ebiten.KeyA, ebiten.KeyArrowLeft},
	engine.KeyTurnRight: {ebiten.KeyD, ebiten.KeyArrowRight},
	engine.KeyForward:   {ebiten.KeyW, ebiten.KeyArrowUp},
	engine.KeyBackward:  {ebiten.KeyS, ebiten.KeyArrowDown},
}

// KeyboardInput reports logical keys from the ebiten keyboard state
type KeyboardInput struct {
	bindings map[engine.Key][]ebiten.Key
	pressed  func(ebiten.Key) bool
}

// NewKeyboardInput creates input with the default bindings
func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{bindings: DefaultKeyBindings, pressed: ebiten.IsKeyPressed}
}

// IsKeyDown reports whether any key bound to k is held
func (ki *KeyboardInput) IsKeyDown(k engine.Key) bool {
	for _, key := range ki.bindings[k] {
		if ki.pressed(key) {
			return true
		}
	}
	return false
}
