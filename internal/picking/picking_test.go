package picking

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery/internal/camera"
	"gallery/internal/physics"
	"gallery/internal/scene"
)

var vp = Viewport{Width: 800, Height: 600}

// eyeView looks down +X from (0, 8, 0).
func eyeView() camera.View {
	return camera.NewView(camera.Pose{Position: rl.Vector3{Y: 8}}, camera.DefaultLens(), vp.Width, vp.Height)
}

func box(id string, center rl.Vector3, size float32) scene.Interactive {
	return scene.Interactive{
		ID:     id,
		Name:   "Object " + id,
		Bounds: physics.NewAABBFromCenter(center, rl.Vector3{X: size, Y: size, Z: size}),
	}
}

func TestScreenToNDC(t *testing.T) {
	x, y := ScreenToNDC(0, 0, vp)
	assert.Equal(t, float32(-1), x)
	assert.Equal(t, float32(1), y)

	x, y = ScreenToNDC(400, 300, vp)
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(0), y)
}

func TestPickCenterHitsBox(t *testing.T) {
	objs := []scene.Interactive{box("a", rl.Vector3{X: 20, Y: 8}, 2)}
	hit, ok := Pick(400, 300, eyeView(), vp, objs)
	require.True(t, ok)
	assert.Equal(t, "a", hit.Object.ID)
	assert.InDelta(t, 19, hit.Point.X, 1e-2)
	assert.InDelta(t, 8, hit.Point.Y, 1e-2)
}

func TestPickNoObjects(t *testing.T) {
	_, ok := Pick(400, 300, eyeView(), vp, nil)
	assert.False(t, ok)
}

func TestPickEmptyViewport(t *testing.T) {
	objs := []scene.Interactive{box("a", rl.Vector3{X: 20, Y: 8}, 2)}
	_, ok := Pick(0, 0, eyeView(), Viewport{}, objs)
	assert.False(t, ok)
}

func TestPickNearest(t *testing.T) {
	objs := []scene.Interactive{
		box("far", rl.Vector3{X: 40, Y: 8}, 2),
		box("near", rl.Vector3{X: 20, Y: 8}, 2),
	}
	hit, ok := Pick(400, 300, eyeView(), vp, objs)
	require.True(t, ok)
	assert.Equal(t, "near", hit.Object.ID)
}

func TestPickMissesOffAxis(t *testing.T) {
	objs := []scene.Interactive{box("a", rl.Vector3{X: 20, Y: 8, Z: 30}, 2)}
	_, ok := Pick(400, 300, eyeView(), vp, objs)
	assert.False(t, ok)
}

func TestPickRefinesWithTriangles(t *testing.T) {
	obj := box("statue", rl.Vector3{X: 20, Y: 8}, 4)

	// Bounds contain the ray but the triangle sits above it.
	obj.Triangles = []physics.Triangle{{
		{X: 20, Y: 8.5, Z: -1}, {X: 20, Y: 8.5, Z: 1}, {X: 20, Y: 10, Z: 0},
	}}
	_, ok := Pick(400, 300, eyeView(), vp, []scene.Interactive{obj})
	assert.False(t, ok)

	obj.Triangles = []physics.Triangle{{
		{X: 20, Y: 7, Z: -1}, {X: 20, Y: 7, Z: 1}, {X: 20, Y: 9, Z: 0},
	}}
	hit, ok := Pick(400, 300, eyeView(), vp, []scene.Interactive{obj})
	require.True(t, ok)
	assert.InDelta(t, 20, hit.Point.X, 1e-2)
}

func TestSelectionToggle(t *testing.T) {
	a := Hit{Object: box("a", rl.Vector3{}, 1), Point: rl.Vector3{X: 1}}
	b := Hit{Object: box("b", rl.Vector3{}, 1), Point: rl.Vector3{X: 2}}

	var s Selection
	assert.Equal(t, Shown, s.Apply(a, true))
	res, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, "Object a", res.Label)

	assert.Equal(t, Hidden, s.Apply(a, true), "clicking the same object again hides it")
	_, ok = s.Active()
	assert.False(t, ok)

	s.Apply(a, true)
	assert.Equal(t, Replaced, s.Apply(b, true))
	res, _ = s.Active()
	assert.Equal(t, "b", res.ID)

	assert.Equal(t, Hidden, s.Apply(Hit{}, false), "a miss hides the label")
	assert.Equal(t, Unchanged, s.Apply(Hit{}, false))
}

func TestSelectionClick(t *testing.T) {
	objs := []scene.Interactive{box("a", rl.Vector3{X: 20, Y: 8}, 2)}
	var s Selection
	assert.Equal(t, Shown, s.Click(400, 300, eyeView(), vp, objs))
	assert.Equal(t, Hidden, s.Click(400, 300, eyeView(), vp, objs))
	assert.Equal(t, Unchanged, s.Click(10, 10, eyeView(), vp, objs))
}

func TestNDCToPixelBoundaries(t *testing.T) {
	_, _, in := NDCToPixel(1, 0, vp)
	assert.False(t, in)
	_, _, in = NDCToPixel(-1, 0, vp)
	assert.False(t, in)
	_, _, in = NDCToPixel(0, 1, vp)
	assert.False(t, in)

	x, y, in := NDCToPixel(0, 0, vp)
	assert.True(t, in)
	assert.Equal(t, 400, x)
	assert.Equal(t, 300, y)

	x, y, in = NDCToPixel(-0.5, 0.5, vp)
	assert.True(t, in)
	assert.Equal(t, 200, x)
	assert.Equal(t, 150, y)
}

func TestOverlayFollowsPick(t *testing.T) {
	objs := []scene.Interactive{box("a", rl.Vector3{X: 20, Y: 8}, 2)}
	snap := scene.NewSnapshot(nil, objs, physics.DefaultCellSize)

	var s Selection
	assert.False(t, ComputeOverlay(&s, eyeView(), vp, snap).Visible)

	s.Click(400, 300, eyeView(), vp, objs)
	o := ComputeOverlay(&s, eyeView(), vp, snap)
	require.True(t, o.Visible)
	assert.Equal(t, "Object a", o.Text)
	assert.InDelta(t, 400, o.X, 1)
	assert.InDelta(t, 300, o.Y, 1)

	// Turning away hides the label without clearing the pick.
	away := eyeView()
	away.Pose.Yaw = 180
	assert.False(t, ComputeOverlay(&s, away, vp, snap).Visible)
	_, ok := s.Active()
	assert.True(t, ok)
}

func TestBehindCameraNotInView(t *testing.T) {
	_, _, in := ProjectForOverlay(rl.Vector3{X: -20, Y: 8}, eyeView(), vp)
	assert.False(t, in)
}

func TestStalePickHidden(t *testing.T) {
	objs := []scene.Interactive{box("a", rl.Vector3{X: 20, Y: 8}, 2)}
	var s Selection
	s.Click(400, 300, eyeView(), vp, objs)

	empty := scene.Empty()
	assert.False(t, ComputeOverlay(&s, eyeView(), vp, empty).Visible)

	assert.Equal(t, Hidden, s.Validate(empty))
	_, ok := s.Active()
	assert.False(t, ok)
}

func TestValidateRefreshesLabel(t *testing.T) {
	objs := []scene.Interactive{box("a", rl.Vector3{X: 20, Y: 8}, 2)}
	var s Selection
	s.Click(400, 300, eyeView(), vp, objs)

	renamed := objs[0]
	renamed.Name = "Renamed"
	snap := scene.NewSnapshot(nil, []scene.Interactive{renamed}, physics.DefaultCellSize)
	assert.Equal(t, Unchanged, s.Validate(snap))
	res, _ := s.Active()
	assert.Equal(t, "Renamed", res.Label)
}
