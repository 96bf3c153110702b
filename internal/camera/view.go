package camera

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Lens holds the perspective projection settings.
type Lens struct {
	Fovy float32 // vertical field of view, degrees
	Near float32
	Far  float32
}

func DefaultLens() Lens {
	return Lens{Fovy: 45, Near: 0.1, Far: 500}
}

// View is a pose seen through a lens on a viewport of a given aspect ratio.
// It is a value: build one per frame from the committed pose.
type View struct {
	Pose   Pose
	Lens   Lens
	Aspect float32
}

// NewView builds a view for a width x height viewport. A degenerate
// viewport falls back to a square aspect.
func NewView(pose Pose, lens Lens, width, height int) View {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	return View{Pose: pose, Lens: lens, Aspect: aspect}
}

func (v View) ViewMatrix() rl.Matrix {
	return rl.MatrixLookAt(v.Pose.Position, v.Pose.Target(), rl.Vector3{X: 0, Y: 1, Z: 0})
}

func (v View) ProjectionMatrix() rl.Matrix {
	return rl.MatrixPerspective(v.Lens.Fovy*rl.Deg2rad, v.Aspect, v.Lens.Near, v.Lens.Far)
}

// ViewProjection combines view and projection: VP = P * V
func (v View) ViewProjection() rl.Matrix {
	return rl.MatrixMultiply(v.ViewMatrix(), v.ProjectionMatrix())
}

// Project transforms a world point to normalized device coordinates. w is
// the clip-space w before the perspective divide; it is positive only for
// points in front of the camera.
func (v View) Project(p rl.Vector3) (ndc rl.Vector3, w float32) {
	clip := rl.QuaternionTransform(rl.Quaternion{X: p.X, Y: p.Y, Z: p.Z, W: 1}, v.ViewProjection())
	if clip.W == 0 {
		return rl.Vector3{}, 0
	}
	return rl.Vector3{X: clip.X / clip.W, Y: clip.Y / clip.W, Z: clip.Z / clip.W}, clip.W
}

// Unproject maps a normalized device coordinate back to world space.
func (v View) Unproject(ndc rl.Vector3) rl.Vector3 {
	inv := rl.MatrixInvert(v.ViewProjection())
	p := rl.QuaternionTransform(rl.Quaternion{X: ndc.X, Y: ndc.Y, Z: ndc.Z, W: 1}, inv)
	if p.W == 0 {
		return rl.Vector3{X: p.X, Y: p.Y, Z: p.Z}
	}
	return rl.Vector3{X: p.X / p.W, Y: p.Y / p.W, Z: p.Z / p.W}
}

// Camera3D returns the raylib camera for drawing. rl.Camera3D has no clip
// planes: callers must pass Lens.Near and Lens.Far to rl.SetClipPlanes before
// rl.BeginMode3D, or raylib draws with its own 0.01/1000 defaults.
func (v View) Camera3D() rl.Camera3D {
	return rl.Camera3D{
		Position:   v.Pose.Position,
		Target:     v.Pose.Target(),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       v.Lens.Fovy,
		Projection: rl.CameraPerspective,
	}
}
