// Package config loads the gallery settings from a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pelletier/go-toml/v2"

	"gallery/internal/camera"
	"gallery/internal/input"
	"gallery/internal/navigation"
	"gallery/internal/physics"
)

type Window struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Title     string `toml:"title"`
	TargetFPS int    `toml:"target_fps"`
	HighDPI   bool   `toml:"high_dpi"`
}

type Camera struct {
	Fovy   float32    `toml:"fovy"`
	Near   float32    `toml:"near"`
	Far    float32    `toml:"far"`
	Start  [3]float32 `toml:"start"`
	LookAt [3]float32 `toml:"look_at"`
}

type Movement struct {
	LookHeight float32 `toml:"look_height"`
	MoveSpeed  float32 `toml:"move_speed"`
	LookSpeed  float32 `toml:"look_speed"`
	Radius     float32 `toml:"radius"`
	MaxStep    float32 `toml:"max_step"`
	MaxSubstep float32 `toml:"max_substep"`
}

type Scene struct {
	Path     string  `toml:"path"` // empty uses the built-in gallery
	Watch    bool    `toml:"watch"`
	CellSize float32 `toml:"cell_size"`
}

type Keys struct {
	Forward    []string `toml:"forward"`
	Back       []string `toml:"back"`
	Left       []string `toml:"left"`
	Right      []string `toml:"right"`
	Pick       string   `toml:"pick"`
	Capture    string   `toml:"capture"`
	Fullscreen string   `toml:"fullscreen"`
}

type Config struct {
	LogLevel string   `toml:"log_level"`
	Window   Window   `toml:"window"`
	Camera   Camera   `toml:"camera"`
	Movement Movement `toml:"movement"`
	Scene    Scene    `toml:"scene"`
	Keys     Keys     `toml:"keys"`
}

func Default() Config {
	lens := camera.DefaultLens()
	nav := navigation.DefaultSettings()
	return Config{
		LogLevel: "info",
		Window: Window{
			Width:     1280,
			Height:    720,
			Title:     "Gallery",
			TargetFPS: 120,
			HighDPI:   true,
		},
		Camera: Camera{
			Fovy:  lens.Fovy,
			Near:  lens.Near,
			Far:   lens.Far,
			Start: [3]float32{-75, nav.LookHeight, 0},
		},
		Movement: Movement{
			LookHeight: nav.LookHeight,
			MoveSpeed:  nav.MoveSpeed,
			LookSpeed:  nav.LookSpeed,
			Radius:     nav.Radius,
			MaxStep:    nav.MaxStep,
			MaxSubstep: nav.MaxSubstep,
		},
		Scene: Scene{
			CellSize: physics.DefaultCellSize,
		},
		Keys: Keys{
			Forward:    []string{"w", "up"},
			Back:       []string{"s", "down"},
			Left:       []string{"a", "left"},
			Right:      []string{"d", "right"},
			Pick:       "right",
			Capture:    "tab",
			Fullscreen: "f",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults; a
// file that does not parse or validate is an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Decode(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses TOML over the defaults. Unknown keys are rejected.
func Decode(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

func positive(name string, v float32) error {
	if !(v > 0) || math32.IsInf(v, 1) {
		return fmt.Errorf("%s must be positive, got %v", name, v)
	}
	return nil
}

// MaxMoveSpeed bounds move_speed, in units per second.
const MaxMoveSpeed = 1000

// Validate checks ranges and that every key name resolves.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Camera.Fovy <= 0 || c.Camera.Fovy >= 180 {
		errs = append(errs, fmt.Errorf("fovy must be in (0, 180), got %v", c.Camera.Fovy))
	}
	for _, f := range []struct {
		name string
		v    float32
	}{
		{"near", c.Camera.Near},
		{"look_height", c.Movement.LookHeight},
		{"move_speed", c.Movement.MoveSpeed},
		{"look_speed", c.Movement.LookSpeed},
		{"radius", c.Movement.Radius},
		{"max_step", c.Movement.MaxStep},
		{"cell_size", c.Scene.CellSize},
	} {
		if err := positive(f.name, f.v); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("far (%v) must be beyond near (%v)", c.Camera.Far, c.Camera.Near))
	}
	if c.Movement.MoveSpeed > MaxMoveSpeed {
		errs = append(errs, fmt.Errorf("move_speed must be at most %v, got %v", MaxMoveSpeed, c.Movement.MoveSpeed))
	}
	if !(c.Movement.MaxSubstep >= 0 && c.Movement.MaxSubstep <= 2*c.Movement.Radius) {
		errs = append(errs, fmt.Errorf("max_substep must be in [0, 2*radius], got %v", c.Movement.MaxSubstep))
	}
	if c.Scene.Watch && c.Scene.Path == "" {
		errs = append(errs, errors.New("scene.watch needs scene.path"))
	}
	if _, err := c.Bindings(); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c Config) Lens() camera.Lens {
	return camera.Lens{Fovy: c.Camera.Fovy, Near: c.Camera.Near, Far: c.Camera.Far}
}

func (c Config) Navigation() navigation.Settings {
	return navigation.Settings{
		LookHeight: c.Movement.LookHeight,
		MoveSpeed:  c.Movement.MoveSpeed,
		LookSpeed:  c.Movement.LookSpeed,
		Radius:     c.Movement.Radius,
		MaxStep:    c.Movement.MaxStep,
		MaxSubstep: c.Movement.MaxSubstep,
	}
}

// StartPose places the eye at the configured start, facing LookAt.
func (c Config) StartPose() camera.Pose {
	pos := vec(c.Camera.Start)
	pos.Y = c.Movement.LookHeight
	target := vec(c.Camera.LookAt)
	target.Y = pos.Y
	return camera.Pose{Position: pos}.LookAt(target)
}

// Bindings resolves the key names.
func (c Config) Bindings() (input.Bindings, error) {
	var b input.Bindings
	var err error
	if b.Forward, err = input.ParseKeys(c.Keys.Forward); err != nil {
		return b, fmt.Errorf("keys.forward: %w", err)
	}
	if b.Back, err = input.ParseKeys(c.Keys.Back); err != nil {
		return b, fmt.Errorf("keys.back: %w", err)
	}
	if b.Left, err = input.ParseKeys(c.Keys.Left); err != nil {
		return b, fmt.Errorf("keys.left: %w", err)
	}
	if b.Right, err = input.ParseKeys(c.Keys.Right); err != nil {
		return b, fmt.Errorf("keys.right: %w", err)
	}
	if b.Pick, err = input.ParseButton(c.Keys.Pick); err != nil {
		return b, fmt.Errorf("keys.pick: %w", err)
	}
	if b.Capture, err = input.ParseKey(c.Keys.Capture); err != nil {
		return b, fmt.Errorf("keys.capture: %w", err)
	}
	if b.Fullscreen, err = input.ParseKey(c.Keys.Fullscreen); err != nil {
		return b, fmt.Errorf("keys.fullscreen: %w", err)
	}
	return b, nil
}

// ParseLevel maps debug, info, warn or error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

func vec(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}
