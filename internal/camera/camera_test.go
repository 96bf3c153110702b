package camera

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-4

func assertVecInDelta(t *testing.T, want, got rl.Vector3, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, tol, msgAndArgs...)
	assert.InDelta(t, want.Z, got.Z, tol, msgAndArgs...)
}

func TestDirections(t *testing.T) {
	forward, right := Pose{}.Directions()
	assertVecInDelta(t, rl.Vector3{X: 1}, forward)
	assertVecInDelta(t, rl.Vector3{Z: 1}, right)

	forward, right = Pose{Yaw: 90}.Directions()
	assertVecInDelta(t, rl.Vector3{Z: 1}, forward)
	assertVecInDelta(t, rl.Vector3{X: -1}, right)
}

func TestLookDirectionIgnoresPitchForDirections(t *testing.T) {
	p := Pose{Yaw: 0, Pitch: 45}
	forward, _ := p.Directions()
	assertVecInDelta(t, rl.Vector3{X: 1}, forward)

	look := p.LookDirection()
	assert.InDelta(t, 1, rl.Vector3Length(look), tol)
	assert.Greater(t, look.Y, float32(0.7))
}

func TestRotateClampsPitch(t *testing.T) {
	p := Pose{}.Rotate(10, 200)
	assert.Equal(t, float32(MaxPitch), p.Pitch)
	assert.InDelta(t, 10, p.Yaw, tol)

	p = p.Rotate(0, -400)
	assert.Equal(t, float32(-MaxPitch), p.Pitch)
}

func TestRotateWrapsYaw(t *testing.T) {
	p := Pose{Yaw: 170}.Rotate(20, 0)
	assert.InDelta(t, -170, p.Yaw, tol)

	p = Pose{Yaw: -170}.Rotate(-20, 0)
	assert.InDelta(t, 170, p.Yaw, tol)
}

func TestLookAt(t *testing.T) {
	p := Pose{Position: rl.Vector3{X: -75, Y: 8}}.LookAt(rl.Vector3{})
	assert.InDelta(t, 0, p.Yaw, tol)
	assert.Less(t, p.Pitch, float32(0))

	dir := p.LookDirection()
	want := rl.Vector3Normalize(rl.Vector3{X: 75, Y: -8})
	assertVecInDelta(t, want, dir)

	same := p.LookAt(p.Position)
	assert.Equal(t, p, same)
}

func TestProjectCenterAndBehind(t *testing.T) {
	v := NewView(Pose{}, DefaultLens(), 800, 600)

	ndc, w := v.Project(rl.Vector3{X: 10})
	require.Greater(t, w, float32(0))
	assert.InDelta(t, 0, ndc.X, tol)
	assert.InDelta(t, 0, ndc.Y, tol)

	_, w = v.Project(rl.Vector3{X: -10})
	assert.Less(t, w, float32(0), "points behind the camera have negative w")
}

func TestProjectRightIsPositiveX(t *testing.T) {
	v := NewView(Pose{}, DefaultLens(), 800, 600)
	ndc, _ := v.Project(rl.Vector3{X: 10, Z: 1})
	assert.Greater(t, ndc.X, float32(0))

	ndc, _ = v.Project(rl.Vector3{X: 10, Y: 1})
	assert.Greater(t, ndc.Y, float32(0))
}

func TestUnprojectRoundTrip(t *testing.T) {
	v := NewView(Pose{Position: rl.Vector3{X: 3, Y: 8, Z: -2}, Yaw: 30, Pitch: -10}, DefaultLens(), 1280, 720)
	p := rl.Vector3{X: 20, Y: 5, Z: 10}

	ndc, w := v.Project(p)
	require.Greater(t, w, float32(0))
	back := v.Unproject(ndc)
	assert.InDelta(t, p.X, back.X, 5e-2)
	assert.InDelta(t, p.Y, back.Y, 5e-2)
	assert.InDelta(t, p.Z, back.Z, 5e-2)
}

func TestNewViewDegenerateViewport(t *testing.T) {
	v := NewView(Pose{}, DefaultLens(), 0, 0)
	assert.Equal(t, float32(1), v.Aspect)
}

func TestFrustum(t *testing.T) {
	v := NewView(Pose{Position: rl.Vector3{Y: 8}}, DefaultLens(), 800, 600)
	f := v.Frustum()

	dot := func(x, z float32) (rl.Vector3, rl.Vector3) {
		return rl.Vector3{X: x - 0.01, Y: 7.99, Z: z - 0.01}, rl.Vector3{X: x + 0.01, Y: 8.01, Z: z + 0.01}
	}
	assert.True(t, f.ContainsBox(dot(20, 0)))
	assert.False(t, f.ContainsBox(dot(-20, 0)), "behind")
	assert.False(t, f.ContainsBox(dot(600, 0)), "beyond far")
	assert.False(t, f.ContainsBox(dot(20, 40)), "off to the side")
	assert.True(t, f.ContainsBox(dot(499, 0)), "just inside far")

	assert.True(t, f.ContainsBox(rl.Vector3{X: -5, Y: 0, Z: -5}, rl.Vector3{X: 5, Y: 10, Z: 5}), "box around the eye")
	assert.False(t, f.ContainsBox(rl.Vector3{X: -30, Y: 0, Z: -1}, rl.Vector3{X: -20, Y: 10, Z: 1}))
}
