package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type RaycastHit struct {
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// Ray is a half line. Direction is expected to be normalized; see NewRay.
type Ray struct {
	Origin    rl.Vector3
	Direction rl.Vector3
}

// NewRay normalizes direction. It reports false for a zero-length direction.
func NewRay(origin, direction rl.Vector3) (Ray, bool) {
	l := rl.Vector3Length(direction)
	if l == 0 || math32.IsNaN(l) || math32.IsInf(l, 0) {
		return Ray{}, false
	}
	return Ray{Origin: origin, Direction: rl.Vector3Scale(direction, 1/l)}, true
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) rl.Vector3 {
	return rl.Vector3Add(r.Origin, rl.Vector3Scale(r.Direction, t))
}

// RaycastBox intersects the ray with box using the slab method. A ray that
// starts inside the box hits the exit face.
func RaycastBox(r Ray, box AABB, maxDistance float32) (RaycastHit, bool) {
	min, max := box.Min, box.Max
	origin, direction := r.Origin, r.Direction

	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	slab := func(o, d, lo, hi float32) bool {
		if d == 0 {
			return o >= lo && o <= hi
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		return tmin <= tmax
	}

	if !slab(origin.X, direction.X, min.X, max.X) ||
		!slab(origin.Y, direction.Y, min.Y, max.Y) ||
		!slab(origin.Z, direction.Z, min.Z, max.Z) {
		return RaycastHit{}, false
	}

	if tmax < 0 || tmin > maxDistance {
		return RaycastHit{}, false
	}

	t := tmin
	if t < 0 {
		t = tmax
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := r.At(t)

	// Calculate normal based on which face was hit
	var normal rl.Vector3
	epsilon := float32(0.001)
	switch {
	case abs(point.X-min.X) < epsilon:
		normal = rl.Vector3{X: -1}
	case abs(point.X-max.X) < epsilon:
		normal = rl.Vector3{X: 1}
	case abs(point.Y-min.Y) < epsilon:
		normal = rl.Vector3{Y: -1}
	case abs(point.Y-max.Y) < epsilon:
		normal = rl.Vector3{Y: 1}
	case abs(point.Z-min.Z) < epsilon:
		normal = rl.Vector3{Z: -1}
	default:
		normal = rl.Vector3{Z: 1}
	}

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

// Triangle is a world-space triangle with counter-clockwise winding.
type Triangle [3]rl.Vector3

// Bounds returns the triangle's bounding box.
func (tri Triangle) Bounds() AABB {
	return AABB{
		Min: rl.Vector3Min(rl.Vector3Min(tri[0], tri[1]), tri[2]),
		Max: rl.Vector3Max(rl.Vector3Max(tri[0], tri[1]), tri[2]),
	}
}

// RaycastTriangle is the Möller-Trumbore test. Both faces are hit.
func RaycastTriangle(r Ray, tri Triangle, maxDistance float32) (RaycastHit, bool) {
	const epsilon = 1e-6

	edge1 := rl.Vector3Subtract(tri[1], tri[0])
	edge2 := rl.Vector3Subtract(tri[2], tri[0])
	p := rl.Vector3CrossProduct(r.Direction, edge2)
	det := rl.Vector3DotProduct(edge1, p)
	if det > -epsilon && det < epsilon {
		return RaycastHit{}, false
	}
	inv := 1 / det

	tv := rl.Vector3Subtract(r.Origin, tri[0])
	u := rl.Vector3DotProduct(tv, p) * inv
	if u < 0 || u > 1 {
		return RaycastHit{}, false
	}

	q := rl.Vector3CrossProduct(tv, edge1)
	v := rl.Vector3DotProduct(r.Direction, q) * inv
	if v < 0 || u+v > 1 {
		return RaycastHit{}, false
	}

	t := rl.Vector3DotProduct(edge2, q) * inv
	if t < epsilon || t > maxDistance {
		return RaycastHit{}, false
	}

	normal := rl.Vector3Normalize(rl.Vector3CrossProduct(edge1, edge2))
	if rl.Vector3DotProduct(normal, r.Direction) > 0 {
		normal = rl.Vector3Negate(normal)
	}
	return RaycastHit{Point: r.At(t), Normal: normal, Distance: t}, true
}

// RaycastMesh returns the nearest triangle hit.
func RaycastMesh(r Ray, tris []Triangle, maxDistance float32) (RaycastHit, bool) {
	var closest RaycastHit
	closest.Distance = maxDistance
	hit := false
	for _, tri := range tris {
		if h, ok := RaycastTriangle(r, tri, closest.Distance); ok {
			closest = h
			hit = true
		}
	}
	return closest, hit
}
