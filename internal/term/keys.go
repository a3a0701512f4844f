package term

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"raycaster/internal/engine"
)

// DefaultHoldWindow is how long a key counts as held after its last event.
// Terminals only report presses and auto-repeat, never releases.
const DefaultHoldWindow = 150 * time.Millisecond

// KeyState turns terminal key events into held-key state
type KeyState struct {
	window  time.Duration
	now     func() time.Time
	pressed map[engine.Key]time.Time
}

// NewKeyState creates key state with the default hold window
func NewKeyState() *KeyState {
	return &KeyState{
		window:  DefaultHoldWindow,
		now:     time.Now,
		pressed: make(map[engine.Key]time.Time),
	}
}

// Press records a key event
func (ks *KeyState) Press(k engine.Key) {
	ks.pressed[k] = ks.now()
}

// IsKeyDown reports whether k was pressed within the hold window
func (ks *KeyState) IsKeyDown(k engine.Key) bool {
	at, ok := ks.pressed[k]
	if !ok {
		return false
	}
	return ks.now().Sub(at) <= ks.window
}

// logicalKey maps arrows and WASD to engine keys
func logicalKey(ev *tcell.EventKey) (engine.Key, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return engine.KeyTurnLeft, true
	case tcell.KeyRight:
		return engine.KeyTurnRight, true
	case tcell.KeyUp:
		return engine.KeyForward, true
	case tcell.KeyDown:
		return engine.KeyBackward, true
	case tcell.KeyRune:
		switch unicode.ToLower(ev.Rune()) {
		case 'a':
			return engine.KeyTurnLeft, true
		case 'd':
			return engine.KeyTurnRight, true
		case 'w':
			return engine.KeyForward, true
		case 's':
			return engine.KeyBackward, true
		}
	}
	return 0, false
}
