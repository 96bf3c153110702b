package picking

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"gallery/internal/camera"
	"gallery/internal/scene"
)

// Result is the active pick: which object and where on it.
type Result struct {
	ID    string
	Label string
	Point rl.Vector3
}

// Change describes what a click or validation did to the selection.
type Change int

const (
	Unchanged Change = iota
	Shown            // nothing was active, now something is
	Replaced         // a different object or point is now active
	Hidden           // the active pick was cleared
)

func (c Change) String() string {
	switch c {
	case Shown:
		return "shown"
	case Replaced:
		return "replaced"
	case Hidden:
		return "hidden"
	default:
		return "unchanged"
	}
}

// Lookup resolves object identifiers against the current scene.
// *scene.Snapshot implements it.
type Lookup interface {
	Interactive(id string) (scene.Interactive, bool)
}

// Selection holds at most one active pick.
//
// Clicking an object shows its label. Clicking the same object again hides
// it, clicking another object moves the label there, and clicking empty
// space hides it.
type Selection struct {
	active *Result
}

// Active returns the current pick.
func (s *Selection) Active() (Result, bool) {
	if s.active == nil {
		return Result{}, false
	}
	return *s.active, true
}

// Click picks at pixel (x, y) and applies the result.
func (s *Selection) Click(x, y float32, view camera.View, vp Viewport, objects []scene.Interactive) Change {
	hit, ok := Pick(x, y, view, vp, objects)
	return s.Apply(hit, ok)
}

// Apply updates the selection with the outcome of a pick.
func (s *Selection) Apply(hit Hit, ok bool) Change {
	if !ok {
		return s.Clear()
	}
	if s.active != nil && s.active.ID == hit.Object.ID {
		s.active = nil
		return Hidden
	}
	prev := s.active
	s.active = &Result{ID: hit.Object.ID, Label: hit.Object.Name, Point: hit.Point}
	if prev == nil {
		return Shown
	}
	return Replaced
}

// Clear hides the active pick.
func (s *Selection) Clear() Change {
	if s.active == nil {
		return Unchanged
	}
	s.active = nil
	return Hidden
}

// Validate drops the pick if its object is no longer in the scene, and
// refreshes the label if the object was renamed.
func (s *Selection) Validate(objects Lookup) Change {
	if s.active == nil {
		return Unchanged
	}
	obj, ok := objects.Interactive(s.active.ID)
	if !ok {
		s.active = nil
		return Hidden
	}
	s.active.Label = obj.Name
	return Unchanged
}
