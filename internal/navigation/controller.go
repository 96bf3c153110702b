// Package navigation moves a first-person camera through static obstacles.
//
// Translation is resolved per axis: when a move would put the body inside an
// obstacle, the X part and the Z part are retried alone and whichever does
// not collide is kept, so pushing diagonally into a wall slides along it.
// This can cut corners in concave arrangements of obstacles.
package navigation

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"gallery/internal/camera"
	"gallery/internal/input"
	"gallery/internal/physics"
)

// Settings are the controller constants.
type Settings struct {
	LookHeight float32 // eye height above the ground plane
	MoveSpeed  float32 // world units per second
	LookSpeed  float32 // degrees per pixel of pointer motion
	Radius     float32 // horizontal half-extent of the body
	MaxStep    float32 // longest frame step in seconds
	MaxSubstep float32 // longest collision sub-step in world units; 0 or more than 2*Radius uses Radius
}

func DefaultSettings() Settings {
	return Settings{
		LookHeight: 8,
		MoveSpeed:  15,
		LookSpeed:  0.1,
		Radius:     0.5,
		MaxStep:    0.1,
	}
}

// Controller owns the camera pose.
type Controller struct {
	settings Settings
	pose     camera.Pose
}

func New(pose camera.Pose, s Settings) *Controller {
	c := &Controller{settings: s, pose: pose}
	c.pose.Pitch = camera.ClampPitch(c.pose.Pitch)
	c.pose.Position.Y = s.LookHeight
	return c
}

// Configure sets the eye height and walking speed and puts the eye at the
// new height.
func (c *Controller) Configure(lookHeight, moveSpeed float32) {
	c.settings.LookHeight = lookHeight
	c.settings.MoveSpeed = moveSpeed
	c.pose.Position.Y = lookHeight
}

func (c *Controller) Settings() Settings {
	return c.settings
}

func (c *Controller) Pose() camera.Pose {
	return c.pose
}

// SetPose replaces the pose, e.g. to teleport. Height stays pinned.
func (c *Controller) SetPose(p camera.Pose) {
	p.Pitch = camera.ClampPitch(p.Pitch)
	p.Position.Y = c.settings.LookHeight
	c.pose = p
}

// Body returns the collision box for an eye at pos: it spans from the ground
// to the eye and Radius to each side.
func (c *Controller) Body(pos rl.Vector3) physics.AABB {
	r := c.settings.Radius
	return physics.AABB{
		Min: rl.Vector3{X: pos.X - r, Y: pos.Y - c.settings.LookHeight, Z: pos.Z - r},
		Max: rl.Vector3{X: pos.X + r, Y: pos.Y, Z: pos.Z + r},
	}
}

// Update advances the pose by one frame. Orientation follows the look delta
// regardless of dt or collisions; translation is clamped to MaxStep, split
// into sub-steps and resolved against obstacles. obstacles is only read
// during the call.
func (c *Controller) Update(deltaTime float32, in input.State, obstacles physics.StaticSet) camera.Pose {
	c.pose = c.pose.Rotate(in.LookDelta.X*c.settings.LookSpeed, -in.LookDelta.Y*c.settings.LookSpeed)

	dt := c.clampStep(deltaTime)
	if dt == 0 || !in.Moving() {
		return c.pose
	}
	if obstacles == nil {
		obstacles = physics.Boxes(nil)
	}

	pos := c.pose.Position
	pos.Y = c.settings.LookHeight
	pos = c.depenetrate(pos, obstacles)

	move := c.Displacement(dt, in)
	steps, step := c.substeps(move)
	for range steps {
		pos = c.ResolveCollisions(pos, step, obstacles)
	}

	c.pose.Position = pos
	return c.pose
}

// clampStep maps a frame time to the translation step: NaN and
// non-positive values give 0, long frames are cut to MaxStep.
func (c *Controller) clampStep(dt float32) float32 {
	if math32.IsNaN(dt) || dt <= 0 {
		return 0
	}
	if c.settings.MaxStep > 0 && dt > c.settings.MaxStep {
		return c.settings.MaxStep
	}
	return dt
}

// Displacement is the world-space horizontal move for one step of dt. The
// input axes are normalized so diagonal movement is not faster.
func (c *Controller) Displacement(dt float32, in input.State) rl.Vector3 {
	forward, right := c.pose.Directions()

	var moveDir rl.Vector3
	moveDir.X = forward.X*in.Forward + right.X*in.Strafe
	moveDir.Z = forward.Z*in.Forward + right.Z*in.Strafe

	moveLen := math32.Sqrt(moveDir.X*moveDir.X + moveDir.Z*moveDir.Z)
	if moveLen > 1 {
		moveDir.X /= moveLen
		moveDir.Z /= moveLen
	}

	scale := c.settings.MoveSpeed * dt
	return rl.Vector3{X: moveDir.X * scale, Z: moveDir.Z * scale}
}

// maxSubsteps bounds the collision work of one frame. Longer moves are cut
// short at maxSubsteps full sub-steps.
const maxSubsteps = 4096

// substeps splits move into pieces no longer than the sub-step limit. The
// limit falls back to Radius when MaxSubstep is unset or wider than the body,
// since a piece longer than 2*Radius could jump over a thin obstacle.
func (c *Controller) substeps(move rl.Vector3) (int, rl.Vector3) {
	r := c.settings.Radius
	limit := c.settings.MaxSubstep
	if !(limit > 0 && limit <= 2*r) {
		limit = r
	}
	length := rl.Vector3Length(move)
	if math32.IsNaN(length) || math32.IsInf(length, 0) {
		return 0, rl.Vector3{}
	}
	if !(limit > 0) || length <= limit {
		return 1, move
	}
	n := math32.Ceil(length / limit)
	if n > maxSubsteps {
		return maxSubsteps, rl.Vector3Scale(move, limit/length)
	}
	return int(n), rl.Vector3Scale(move, 1/n)
}

// ResolveCollisions moves an eye at from by displacement and returns the
// corrected position. The full move is tried first, then the X component
// alone, then the Z component alone on top of whatever was kept. Height is
// pinned, so any vertical component is dropped.
func (c *Controller) ResolveCollisions(from, displacement rl.Vector3, obstacles physics.StaticSet) rl.Vector3 {
	from.Y = c.settings.LookHeight
	if displacement.X == 0 && displacement.Z == 0 {
		return from
	}

	full := rl.Vector3{X: from.X + displacement.X, Y: from.Y, Z: from.Z + displacement.Z}
	if !obstacles.Overlaps(c.Body(full)) {
		return full
	}

	pos := from
	if displacement.X != 0 {
		tryX := rl.Vector3{X: pos.X + displacement.X, Y: pos.Y, Z: pos.Z}
		if !obstacles.Overlaps(c.Body(tryX)) {
			pos = tryX
		}
	}
	if displacement.Z != 0 {
		tryZ := rl.Vector3{X: pos.X, Y: pos.Y, Z: pos.Z + displacement.Z}
		if !obstacles.Overlaps(c.Body(tryZ)) {
			pos = tryZ
		}
	}
	return pos
}

// depenetrationSkin is added to push-outs so rounding can't leave the body
// a hair inside the face it was pushed to.
const depenetrationSkin = 1e-4

func withSkin(push rl.Vector3) rl.Vector3 {
	switch {
	case push.X > 0:
		push.X += depenetrationSkin
	case push.X < 0:
		push.X -= depenetrationSkin
	}
	switch {
	case push.Z > 0:
		push.Z += depenetrationSkin
	case push.Z < 0:
		push.Z -= depenetrationSkin
	}
	return push
}

// depenetrate pushes the body out of obstacles it already overlaps, which
// happens when the scene changes under the camera. Each obstacle is resolved
// along its shallowest horizontal axis, in order, a bounded number of times.
func (c *Controller) depenetrate(pos rl.Vector3, obstacles physics.StaticSet) rl.Vector3 {
	const maxPasses = 4
	for range maxPasses {
		hits := obstacles.Penetrating(c.Body(pos))
		if len(hits) == 0 {
			return pos
		}
		for _, box := range hits {
			push := c.Body(pos).ResolveHorizontal(box)
			pos = rl.Vector3Add(pos, withSkin(push))
		}
	}
	return pos
}
