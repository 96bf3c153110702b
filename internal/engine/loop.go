// Package engine runs the per-frame update: scene swaps, navigation and the
// pick overlay. Everything here runs on the frame goroutine.
package engine

import (
	"log/slog"

	"gallery/internal/camera"
	"gallery/internal/input"
	"gallery/internal/navigation"
	"gallery/internal/picking"
	"gallery/internal/scene"
)

// SelectionEvent is fired whenever the active pick changes.
type SelectionEvent struct {
	Change picking.Change
	Result picking.Result // zero when Change is Hidden
}

// Loop owns the mutable frame state: the controller, the selection and the
// current scene snapshot.
type Loop struct {
	controller *navigation.Controller
	lens       camera.Lens
	selection  picking.Selection
	snapshot   *scene.Snapshot
	updates    <-chan *scene.Snapshot
	log        *slog.Logger

	OnSelectionChanged EventWithArg[SelectionEvent]
	OnSceneSwapped     EventWithArg[*scene.Snapshot]
}

func NewLoop(controller *navigation.Controller, lens camera.Lens, snapshot *scene.Snapshot, logger *slog.Logger) *Loop {
	if snapshot == nil {
		snapshot = scene.Empty()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		controller: controller,
		lens:       lens,
		snapshot:   snapshot,
		log:        logger,
	}
}

// Follow makes the loop take scene snapshots from updates at the start of
// each tick.
func (l *Loop) Follow(updates <-chan *scene.Snapshot) {
	l.updates = updates
}

func (l *Loop) Controller() *navigation.Controller {
	return l.controller
}

func (l *Loop) Snapshot() *scene.Snapshot {
	return l.snapshot
}

func (l *Loop) Lens() camera.Lens {
	return l.lens
}

// Selection returns the active pick.
func (l *Loop) Selection() (picking.Result, bool) {
	return l.selection.Active()
}

// View is the committed camera seen on a viewport.
func (l *Loop) View(vp picking.Viewport) camera.View {
	return camera.NewView(l.controller.Pose(), l.lens, vp.Width, vp.Height)
}

// Tick advances one frame and returns the overlay to draw.
func (l *Loop) Tick(dt float32, in input.State, vp picking.Viewport) picking.Overlay {
	l.swapScene()
	l.controller.Update(dt, in, l.snapshot.Static())
	return picking.ComputeOverlay(&l.selection, l.View(vp), vp, l.snapshot)
}

// Click handles a pick request at pointer against the committed camera.
func (l *Loop) Click(p input.Pointer, vp picking.Viewport) picking.Change {
	change := l.selection.Click(p.X, p.Y, l.View(vp), vp, l.snapshot.Objects())
	if change != picking.Unchanged {
		l.notify(change)
	}
	return change
}

// swapScene takes the newest pending snapshot, if any, without blocking.
func (l *Loop) swapScene() {
	if l.updates == nil {
		return
	}
	var next *scene.Snapshot
drain:
	for {
		select {
		case s, ok := <-l.updates:
			if !ok {
				l.updates = nil
				break drain
			}
			if s != nil {
				next = s
			}
		default:
			break drain
		}
	}
	if next == nil {
		return
	}

	l.snapshot = next
	l.log.Debug("scene swapped", "obstacles", len(next.Obstacles), "objects", len(next.Interactives))
	l.OnSceneSwapped.Invoke(next)
	if change := l.selection.Validate(next); change != picking.Unchanged {
		l.notify(change)
	}
}

func (l *Loop) notify(change picking.Change) {
	res, _ := l.selection.Active()
	l.log.Debug("selection changed", "change", change, "id", res.ID)
	l.OnSelectionChanged.Invoke(SelectionEvent{Change: change, Result: res})
}
