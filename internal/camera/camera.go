package camera

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MaxPitch keeps the look direction off the up axis, where the view
// matrix would degenerate.
const MaxPitch = 89.0

// Pose is the camera's position and orientation. Yaw and pitch are in
// degrees; yaw 0 looks down +X and yaw 90 looks down +Z.
type Pose struct {
	Position rl.Vector3
	Yaw      float32
	Pitch    float32
}

// Rotate applies yaw/pitch deltas in degrees and clamps pitch.
func (p Pose) Rotate(dYaw, dPitch float32) Pose {
	p.Yaw = wrapDegrees(p.Yaw + dYaw)
	p.Pitch = ClampPitch(p.Pitch + dPitch)
	return p
}

// LookAt orients the pose toward target. A target at the camera position
// leaves orientation unchanged.
func (p Pose) LookAt(target rl.Vector3) Pose {
	d := rl.Vector3Subtract(target, p.Position)
	flat := math32.Sqrt(d.X*d.X + d.Z*d.Z)
	if flat == 0 && d.Y == 0 {
		return p
	}
	if flat > 0 {
		p.Yaw = math32.Atan2(d.Z, d.X) * rl.Rad2deg
	}
	p.Pitch = ClampPitch(math32.Atan2(d.Y, flat) * rl.Rad2deg)
	return p
}

// Directions returns the horizontal forward and right unit vectors.
func (p Pose) Directions() (forward, right rl.Vector3) {
	yawRad := p.Yaw * rl.Deg2rad
	sin, cos := math32.Sincos(yawRad)
	forward = rl.Vector3{X: cos, Y: 0, Z: sin}
	right = rl.Vector3{X: -sin, Y: 0, Z: cos}
	return
}

// LookDirection returns the unit view direction including pitch.
func (p Pose) LookDirection() rl.Vector3 {
	yawRad := p.Yaw * rl.Deg2rad
	pitchRad := p.Pitch * rl.Deg2rad
	sy, cy := math32.Sincos(yawRad)
	sp, cp := math32.Sincos(pitchRad)
	return rl.Vector3{
		X: cy * cp,
		Y: sp,
		Z: sy * cp,
	}
}

// Target is a point one unit along the look direction.
func (p Pose) Target() rl.Vector3 {
	return rl.Vector3Add(p.Position, p.LookDirection())
}

func ClampPitch(pitch float32) float32 {
	if pitch > MaxPitch {
		return MaxPitch
	}
	if pitch < -MaxPitch {
		return -MaxPitch
	}
	return pitch
}

// wrapDegrees keeps yaw in (-180, 180] so it doesn't lose precision over a
// long session of turning in one direction.
func wrapDegrees(a float32) float32 {
	a = math32.Mod(a, 360)
	if a > 180 {
		a -= 360
	} else if a <= -180 {
		a += 360
	}
	return a
}
