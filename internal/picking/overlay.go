package picking

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"gallery/internal/camera"
)

// Overlay is what the label layer should draw this frame.
type Overlay struct {
	X, Y    int
	Visible bool
	Text    string
}

// NDCToPixel maps a normalized device coordinate to a pixel. A point is in
// view only strictly inside the open square (-1, 1) on both axes.
func NDCToPixel(ndcX, ndcY float32, vp Viewport) (x, y int, inView bool) {
	if !vp.Valid() {
		return 0, 0, false
	}
	inView = ndcX > -1 && ndcX < 1 && ndcY > -1 && ndcY < 1
	x = int(math32.Floor((ndcX + 1) * 0.5 * float32(vp.Width)))
	y = int(math32.Floor((1 - ndcY) * 0.5 * float32(vp.Height)))
	return x, y, inView
}

// ProjectForOverlay finds the pixel of a world point. Points behind the
// camera are never in view.
func ProjectForOverlay(p rl.Vector3, view camera.View, vp Viewport) (x, y int, inView bool) {
	ndc, w := view.Project(p)
	if w <= 0 || math32.IsNaN(ndc.X) || math32.IsNaN(ndc.Y) {
		return 0, 0, false
	}
	return NDCToPixel(ndc.X, ndc.Y, vp)
}

// ComputeOverlay places the label for the active pick. It is hidden when
// nothing is active, when the object left the scene, or when the picked
// point is off screen.
func ComputeOverlay(sel *Selection, view camera.View, vp Viewport, objects Lookup) Overlay {
	res, ok := sel.Active()
	if !ok {
		return Overlay{}
	}
	obj, ok := objects.Interactive(res.ID)
	if !ok {
		return Overlay{}
	}
	x, y, inView := ProjectForOverlay(res.Point, view, vp)
	if !inView {
		return Overlay{}
	}
	return Overlay{X: x, Y: y, Visible: true, Text: obj.Name}
}
