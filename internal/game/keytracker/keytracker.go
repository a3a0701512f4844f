// Package keytracker provides edge-triggered key toggles on top of ebiten's
// level-triggered keyboard state.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyStateTracker tracks the previous state of one key.
type KeyStateTracker struct {
	Key ebiten.Key
	// Pressed reports the current key state; nil uses ebiten.IsKeyPressed.
	Pressed func(ebiten.Key) bool

	prevPressed bool
}

// New creates a tracker for key.
func New(key ebiten.Key) *KeyStateTracker {
	return &KeyStateTracker{Key: key}
}

// JustPressed returns true if the key was not pressed last call but is pressed now.
// Call it once per frame.
func (k *KeyStateTracker) JustPressed() bool {
	pressed := k.isPressed()
	justPressed := pressed && !k.prevPressed
	k.prevPressed = pressed
	return justPressed
}

func (k *KeyStateTracker) isPressed() bool {
	if k.Pressed != nil {
		return k.Pressed(k.Key)
	}
	return ebiten.IsKeyPressed(k.Key)
}
