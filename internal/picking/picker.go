// Package picking finds the interactive object under the pointer and keeps a
// screen-space label glued to the point that was clicked.
package picking

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"gallery/internal/camera"
	"gallery/internal/physics"
	"gallery/internal/scene"
)

// Viewport is the drawable area in pixels.
type Viewport struct {
	Width, Height int
}

func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// Hit is the nearest object along a pick ray.
type Hit struct {
	Object   scene.Interactive
	Point    rl.Vector3
	Distance float32
}

// ScreenToNDC maps pixel coordinates (origin top-left, y down) to normalized
// device coordinates (origin center, y up).
func ScreenToNDC(x, y float32, vp Viewport) (ndcX, ndcY float32) {
	ndcX = (x/float32(vp.Width))*2 - 1
	ndcY = -(y/float32(vp.Height))*2 + 1
	return
}

// ScreenRay builds the pick ray through a pixel by unprojecting the point on
// the near and far planes. It reports false for an empty viewport or a
// degenerate direction.
func ScreenRay(x, y float32, view camera.View, vp Viewport) (physics.Ray, bool) {
	if !vp.Valid() {
		return physics.Ray{}, false
	}
	ndcX, ndcY := ScreenToNDC(x, y, vp)
	near := view.Unproject(rl.Vector3{X: ndcX, Y: ndcY, Z: -1})
	far := view.Unproject(rl.Vector3{X: ndcX, Y: ndcY, Z: 1})
	return physics.NewRay(near, rl.Vector3Subtract(far, near))
}

// Pick returns the nearest interactive object under the pixel, if any.
func Pick(x, y float32, view camera.View, vp Viewport, objects []scene.Interactive) (Hit, bool) {
	ray, ok := ScreenRay(x, y, view, vp)
	if !ok {
		return Hit{}, false
	}
	return PickRay(ray, view.Lens.Far, objects)
}

// PickRay returns the nearest object hit within maxDistance.
func PickRay(ray physics.Ray, maxDistance float32, objects []scene.Interactive) (Hit, bool) {
	if maxDistance <= 0 || math32.IsNaN(maxDistance) {
		maxDistance = math32.MaxFloat32
	}
	var best Hit
	best.Distance = maxDistance
	found := false
	for _, obj := range objects {
		h, ok := intersect(ray, obj, best.Distance)
		if !ok {
			continue
		}
		best = Hit{Object: obj, Point: h.Point, Distance: h.Distance}
		found = true
	}
	return best, found
}

// intersect tests the bounds first; objects with triangles must also hit a
// triangle.
func intersect(ray physics.Ray, obj scene.Interactive, maxDistance float32) (physics.RaycastHit, bool) {
	h, ok := physics.RaycastBox(ray, obj.Bounds, maxDistance)
	if !ok {
		return physics.RaycastHit{}, false
	}
	if len(obj.Triangles) == 0 {
		return h, true
	}
	return physics.RaycastMesh(ray, obj.Triangles, maxDistance)
}
