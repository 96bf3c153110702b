package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRayZeroDirection(t *testing.T) {
	_, ok := NewRay(rl.Vector3{}, rl.Vector3{})
	assert.False(t, ok)

	r, ok := NewRay(rl.Vector3{}, rl.Vector3{X: 3})
	require.True(t, ok)
	assert.Equal(t, rl.Vector3{X: 1}, r.Direction)
}

func TestRaycastBox(t *testing.T) {
	box := NewAABBFromCenter(rl.Vector3{X: 10}, rl.Vector3{X: 2, Y: 2, Z: 2})
	r, _ := NewRay(rl.Vector3{}, rl.Vector3{X: 1})

	hit, ok := RaycastBox(r, box, 100)
	require.True(t, ok)
	assert.InDelta(t, 9, hit.Distance, 1e-5)
	assert.Equal(t, rl.Vector3{X: -1}, hit.Normal)

	_, ok = RaycastBox(r, box, 5)
	assert.False(t, ok, "hit beyond max distance")

	back, _ := NewRay(rl.Vector3{}, rl.Vector3{X: -1})
	_, ok = RaycastBox(back, box, 100)
	assert.False(t, ok, "box behind the ray")

	miss, _ := NewRay(rl.Vector3{Y: 5}, rl.Vector3{X: 1})
	_, ok = RaycastBox(miss, box, 100)
	assert.False(t, ok, "parallel ray outside slab")
}

func TestRaycastBoxFromInside(t *testing.T) {
	box := NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 4, Y: 4, Z: 4})
	r, _ := NewRay(rl.Vector3{}, rl.Vector3{Z: 1})

	hit, ok := RaycastBox(r, box, 100)
	require.True(t, ok)
	assert.InDelta(t, 2, hit.Distance, 1e-5)
	assert.Equal(t, rl.Vector3{Z: 1}, hit.Normal)
}

func TestRaycastTriangle(t *testing.T) {
	tri := Triangle{{X: -1, Y: -1, Z: 5}, {X: 1, Y: -1, Z: 5}, {X: 0, Y: 1, Z: 5}}
	r, _ := NewRay(rl.Vector3{}, rl.Vector3{Z: 1})

	hit, ok := RaycastTriangle(r, tri, 100)
	require.True(t, ok)
	assert.InDelta(t, 5, hit.Distance, 1e-5)
	assert.InDelta(t, -1, hit.Normal.Z, 1e-5, "normal faces the ray")

	off, _ := NewRay(rl.Vector3{X: 3}, rl.Vector3{Z: 1})
	_, ok = RaycastTriangle(off, tri, 100)
	assert.False(t, ok)

	parallel, _ := NewRay(rl.Vector3{}, rl.Vector3{X: 1})
	_, ok = RaycastTriangle(parallel, tri, 100)
	assert.False(t, ok)
}

func TestRaycastMeshNearest(t *testing.T) {
	near := Triangle{{X: -1, Y: -1, Z: 3}, {X: 1, Y: -1, Z: 3}, {X: 0, Y: 1, Z: 3}}
	far := Triangle{{X: -1, Y: -1, Z: 8}, {X: 1, Y: -1, Z: 8}, {X: 0, Y: 1, Z: 8}}
	r, _ := NewRay(rl.Vector3{}, rl.Vector3{Z: 1})

	hit, ok := RaycastMesh(r, []Triangle{far, near}, 100)
	require.True(t, ok)
	assert.InDelta(t, 3, hit.Distance, 1e-5)

	_, ok = RaycastMesh(r, nil, 100)
	assert.False(t, ok)
}
