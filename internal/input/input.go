// Package input turns raylib keyboard and mouse state into per-frame
// navigation input and discrete pointer events.
package input

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// State is one frame of navigation input. Axes are in [-1, 1]; LookDelta is
// the pointer motion in pixels accumulated since the previous frame.
type State struct {
	Forward   float32
	Strafe    float32 // positive is right
	LookDelta rl.Vector2
}

// Moving reports whether any translation axis is active.
func (s State) Moving() bool {
	return s.Forward != 0 || s.Strafe != 0
}

// Pointer is a click at a screen position in pixels, origin top-left.
type Pointer struct {
	X, Y float32
}

// Bindings maps keys to navigation axes. Each axis accepts any of its keys.
type Bindings struct {
	Forward    []int32
	Back       []int32
	Left       []int32
	Right      []int32
	Pick       rl.MouseButton
	Capture    int32
	Fullscreen int32
}

func DefaultBindings() Bindings {
	return Bindings{
		Forward:    []int32{rl.KeyW, rl.KeyUp},
		Back:       []int32{rl.KeyS, rl.KeyDown},
		Left:       []int32{rl.KeyA, rl.KeyLeft},
		Right:      []int32{rl.KeyD, rl.KeyRight},
		Pick:       rl.MouseButtonRight,
		Capture:    rl.KeyTab,
		Fullscreen: rl.KeyF,
	}
}

// KeyState abstracts the raylib input queries so axis mapping can be
// tested without a window.
type KeyState interface {
	IsKeyDown(key int32) bool
}

type raylibKeys struct{}

func (raylibKeys) IsKeyDown(key int32) bool { return rl.IsKeyDown(key) }

// Axes resolves the bound keys to forward and strafe axes. Opposing keys
// cancel.
func (b Bindings) Axes(keys KeyState) (forward, strafe float32) {
	if anyDown(keys, b.Forward) {
		forward++
	}
	if anyDown(keys, b.Back) {
		forward--
	}
	if anyDown(keys, b.Right) {
		strafe++
	}
	if anyDown(keys, b.Left) {
		strafe--
	}
	return forward, strafe
}

func anyDown(keys KeyState, bound []int32) bool {
	for _, k := range bound {
		if keys.IsKeyDown(k) {
			return true
		}
	}
	return false
}

// Poll reads the current raylib input. Mouse look is only reported while the
// cursor is captured so a free cursor can be used to aim picks.
func Poll(b Bindings) State {
	forward, strafe := b.Axes(raylibKeys{})
	s := State{Forward: forward, Strafe: strafe}
	if rl.IsCursorHidden() {
		s.LookDelta = rl.GetMouseDelta()
	}
	return s
}

// PollPointer returns the pick click for this frame, if any. While the
// cursor is captured the click aims through the screen center.
func PollPointer(b Bindings, width, height int) (Pointer, bool) {
	if !rl.IsMouseButtonPressed(b.Pick) {
		return Pointer{}, false
	}
	if rl.IsCursorHidden() {
		return Pointer{X: float32(width) / 2, Y: float32(height) / 2}, true
	}
	pos := rl.GetMousePosition()
	return Pointer{X: pos.X, Y: pos.Y}, true
}

var keyNames = map[string]int32{
	"up": rl.KeyUp, "down": rl.KeyDown, "left": rl.KeyLeft, "right": rl.KeyRight,
	"space": rl.KeySpace, "tab": rl.KeyTab, "escape": rl.KeyEscape, "enter": rl.KeyEnter,
	"lshift": rl.KeyLeftShift, "rshift": rl.KeyRightShift,
	"f1": rl.KeyF1, "f11": rl.KeyF11,
}

// ParseKey maps a key name from a config file to a raylib key code. Single
// letters and digits map directly; other names are case insensitive.
func ParseKey(name string) (int32, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if len(n) == 1 {
		c := n[0]
		switch {
		case c >= 'a' && c <= 'z':
			return rl.KeyA + int32(c-'a'), nil
		case c >= '0' && c <= '9':
			return rl.KeyZero + int32(c-'0'), nil
		}
	}
	if k, ok := keyNames[n]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("unknown key %q", name)
}

// ParseKeys maps every name, failing on the first unknown one.
func ParseKeys(names []string) ([]int32, error) {
	keys := make([]int32, 0, len(names))
	for _, name := range names {
		k, err := ParseKey(name)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

var buttonNames = map[string]rl.MouseButton{
	"left":   rl.MouseButtonLeft,
	"right":  rl.MouseButtonRight,
	"middle": rl.MouseButtonMiddle,
}

// ParseButton maps "left", "right" or "middle" to a mouse button.
func ParseButton(name string) (rl.MouseButton, error) {
	if b, ok := buttonNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return b, nil
	}
	return 0, fmt.Errorf("unknown mouse button %q", name)
}
