package camera

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Frustum represents the 6 planes of a view frustum for culling
type Frustum struct {
	planes [6]Plane // left, right, bottom, top, near, far
}

// Plane represents a plane in 3D space (ax + by + cz + d = 0)
type Plane struct {
	Normal   rl.Vector3
	Distance float32
}

// Frustum extracts the view volume planes from the view-projection matrix
// (Gribb/Hartmann).
func (v View) Frustum() Frustum {
	vp := v.ViewProjection()
	rows := [4][4]float32{
		{vp.M0, vp.M4, vp.M8, vp.M12},
		{vp.M1, vp.M5, vp.M9, vp.M13},
		{vp.M2, vp.M6, vp.M10, vp.M14},
		{vp.M3, vp.M7, vp.M11, vp.M15},
	}
	plane := func(row int, sign float32) Plane {
		w, r := rows[3], rows[row]
		return normalizePlane(Plane{
			Normal:   rl.Vector3{X: w[0] + sign*r[0], Y: w[1] + sign*r[1], Z: w[2] + sign*r[2]},
			Distance: w[3] + sign*r[3],
		})
	}

	var f Frustum
	f.planes[0] = plane(0, 1)  // left
	f.planes[1] = plane(0, -1) // right
	f.planes[2] = plane(1, 1)  // bottom
	f.planes[3] = plane(1, -1) // top
	f.planes[4] = plane(2, 1)  // near
	f.planes[5] = plane(2, -1) // far
	return f
}

func normalizePlane(p Plane) Plane {
	length := rl.Vector3Length(p.Normal)
	if length == 0 {
		return p
	}
	return Plane{
		Normal:   rl.Vector3Scale(p.Normal, 1.0/length),
		Distance: p.Distance / length,
	}
}

func (p Plane) distanceTo(point rl.Vector3) float32 {
	return rl.Vector3DotProduct(p.Normal, point) + p.Distance
}

// ContainsBox reports whether a box may be visible. It tests the corner
// furthest along each plane normal, so some boxes near frustum corners pass
// while outside.
func (f *Frustum) ContainsBox(min, max rl.Vector3) bool {
	for i := range f.planes {
		n := f.planes[i].Normal
		p := min
		if n.X >= 0 {
			p.X = max.X
		}
		if n.Y >= 0 {
			p.Y = max.Y
		}
		if n.Z >= 0 {
			p.Z = max.Z
		}
		if f.planes[i].distanceTo(p) < 0 {
			return false
		}
	}
	return true
}
