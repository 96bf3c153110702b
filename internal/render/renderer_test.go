package render

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"

	"gallery/internal/camera"
	"gallery/internal/config"
	"gallery/internal/physics"
	"gallery/internal/picking"
	"gallery/internal/scene"
)

func TestCullDefaultGallery(t *testing.T) {
	cfg := config.Default()
	view := camera.NewView(cfg.StartPose(), cfg.Lens(), 1280, 720)
	snap := scene.DefaultGallery().Snapshot(physics.DefaultCellSize)

	v := Cull(view, snap)
	assert.NotEmpty(t, v.Obstacles)
	assert.Less(t, len(v.Obstacles), len(snap.Obstacles), "the wall behind the start is culled")

	// The statue is straight ahead.
	ids := map[string]bool{}
	for _, i := range v.Objects {
		ids[snap.Interactives[i].ID] = true
	}
	assert.True(t, ids["victoria"])
}

func TestCullNilSnapshot(t *testing.T) {
	v := Cull(camera.NewView(camera.Pose{}, camera.DefaultLens(), 10, 10), nil)
	assert.Empty(t, v.Obstacles)
	assert.Empty(t, v.Objects)
}

// Whatever is drawn in the middle of the screen must also be pickable there:
// both stop at Lens.Far.
func TestCullAgreesWithPickDistance(t *testing.T) {
	cfg := config.Default()
	view := camera.NewView(cfg.StartPose(), cfg.Lens(), 1280, 720)
	vp := picking.Viewport{Width: 1280, Height: 720}
	eye := cfg.StartPose().Position

	for _, tt := range []struct {
		name     string
		distance float32
		seen     bool
	}{
		{"near", 100, true},
		{"inside far", 450, true},
		{"beyond far", 600, false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			obj := scene.Interactive{
				ID:     tt.name,
				Bounds: physics.NewAABBFromCenter(rl.Vector3{X: eye.X + tt.distance, Y: eye.Y, Z: eye.Z}, rl.Vector3{X: 2, Y: 2, Z: 2}),
			}
			snap := scene.NewSnapshot(nil, []scene.Interactive{obj}, physics.DefaultCellSize)

			drawn := len(Cull(view, snap).Objects) == 1
			_, picked := picking.Pick(640, 360, view, vp, snap.Interactives)
			assert.Equal(t, tt.seen, drawn)
			assert.Equal(t, tt.seen, picked)
		})
	}
}
