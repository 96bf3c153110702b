package input

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKeys map[int32]bool

func (f fakeKeys) IsKeyDown(key int32) bool { return f[key] }

func TestAxes(t *testing.T) {
	b := DefaultBindings()

	tests := []struct {
		name            string
		down            fakeKeys
		forward, strafe float32
	}{
		{"idle", fakeKeys{}, 0, 0},
		{"forward", fakeKeys{rl.KeyW: true}, 1, 0},
		{"arrow back", fakeKeys{rl.KeyDown: true}, -1, 0},
		{"strafe right", fakeKeys{rl.KeyD: true}, 0, 1},
		{"diagonal", fakeKeys{rl.KeyW: true, rl.KeyA: true}, 1, -1},
		{"opposing cancel", fakeKeys{rl.KeyW: true, rl.KeyS: true}, 0, 0},
		{"two keys same axis", fakeKeys{rl.KeyW: true, rl.KeyUp: true}, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, s := b.Axes(tt.down)
			assert.Equal(t, tt.forward, f)
			assert.Equal(t, tt.strafe, s)
		})
	}
}

func TestStateMoving(t *testing.T) {
	assert.False(t, State{LookDelta: rl.Vector2{X: 3}}.Moving())
	assert.True(t, State{Strafe: -1}.Moving())
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey("W")
	require.NoError(t, err)
	assert.Equal(t, int32(rl.KeyW), k)

	k, err = ParseKey(" up ")
	require.NoError(t, err)
	assert.Equal(t, int32(rl.KeyUp), k)

	k, err = ParseKey("7")
	require.NoError(t, err)
	assert.Equal(t, int32(rl.KeySeven), k)

	_, err = ParseKey("hyper")
	assert.Error(t, err)
}

func TestParseKeys(t *testing.T) {
	keys, err := ParseKeys([]string{"a", "left"})
	require.NoError(t, err)
	assert.Equal(t, []int32{rl.KeyA, rl.KeyLeft}, keys)

	_, err = ParseKeys([]string{"a", "nope"})
	assert.Error(t, err)
}

func TestParseButton(t *testing.T) {
	b, err := ParseButton("Right")
	require.NoError(t, err)
	assert.Equal(t, rl.MouseButtonRight, b)

	_, err = ParseButton("fourth")
	assert.Error(t, err)
}
