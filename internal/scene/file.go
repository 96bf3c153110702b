package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gallery/internal/physics"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// --- File types ---

type File struct {
	Obstacles []ObstacleDef `json:"obstacles" yaml:"obstacles"`
	Objects   []ObjectDef   `json:"objects" yaml:"objects"`
}

type ObstacleDef struct {
	Name       string     `json:"name" yaml:"name"`
	Position   [3]float32 `json:"position" yaml:"position"`
	Size       [3]float32 `json:"size" yaml:"size"`
	Collidable *bool      `json:"collidable,omitempty" yaml:"collidable,omitempty"`
	Color      string     `json:"color,omitempty" yaml:"color,omitempty"`
}

// ObjectDef describes an interactive object. Triangle vertices are relative
// to Position, nine floats per triangle.
type ObjectDef struct {
	ID        string       `json:"id" yaml:"id"`
	Name      string       `json:"name" yaml:"name"`
	Position  [3]float32   `json:"position" yaml:"position"`
	Size      [3]float32   `json:"size,omitempty" yaml:"size,omitempty"`
	Triangles [][9]float32 `json:"triangles,omitempty" yaml:"triangles,omitempty"`
	Color     string       `json:"color,omitempty" yaml:"color,omitempty"`
}

// --- Color mapping ---

var colorByName = map[string]rl.Color{
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Beige":     rl.Beige,
	"Brown":     rl.Brown,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
	"SkyBlue":   rl.SkyBlue,
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
}

// LookupColor maps a color name from a scene file; unknown names are white.
func LookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	return rl.White
}

// --- Loading ---

// Decode parses scene data. format is "json" or "yaml".
func Decode(data []byte, format string) (*File, error) {
	var f File
	switch format {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("parse scene: %w", err)
		}
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("parse scene: %w", err)
		}
	default:
		return nil, fmt.Errorf("parse scene: unsupported format %q", format)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// FormatOf picks the decoder for a path from its extension.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	}
	return "", fmt.Errorf("scene %s: unsupported extension", path)
}

// Load reads and decodes a scene file.
func Load(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	f, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// MaxExtent bounds every coordinate and size in a scene file.
const MaxExtent = 1e5

func checkVec(what string, v []float32) error {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return fmt.Errorf("%s: %v is not finite", what, c)
		}
		if math32.Abs(c) > MaxExtent {
			return fmt.Errorf("%s: %v exceeds %v", what, c, MaxExtent)
		}
	}
	return nil
}

// Validate checks identifiers, sizes and that every number is finite and
// within MaxExtent.
func (f *File) Validate() error {
	seen := make(map[string]bool, len(f.Objects))
	for i, o := range f.Objects {
		if o.ID == "" {
			return fmt.Errorf("object %d: missing id", i)
		}
		if seen[o.ID] {
			return fmt.Errorf("object %q: duplicate id", o.ID)
		}
		seen[o.ID] = true
		if len(o.Triangles) == 0 && o.Size == [3]float32{} {
			return fmt.Errorf("object %q: needs a size or triangles", o.ID)
		}
		if err := checkVec(fmt.Sprintf("object %q position", o.ID), o.Position[:]); err != nil {
			return err
		}
		if err := checkVec(fmt.Sprintf("object %q size", o.ID), o.Size[:]); err != nil {
			return err
		}
		for j, tri := range o.Triangles {
			if err := checkVec(fmt.Sprintf("object %q triangle %d", o.ID, j), tri[:]); err != nil {
				return err
			}
		}
	}
	for i, o := range f.Obstacles {
		if o.Size == [3]float32{} {
			return fmt.Errorf("obstacle %d (%s): zero size", i, o.Name)
		}
		if err := checkVec(fmt.Sprintf("obstacle %d (%s) position", i, o.Name), o.Position[:]); err != nil {
			return err
		}
		if err := checkVec(fmt.Sprintf("obstacle %d (%s) size", i, o.Name), o.Size[:]); err != nil {
			return err
		}
	}
	return nil
}

func vec(a [3]float32) rl.Vector3 {
	return rl.Vector3{X: a[0], Y: a[1], Z: a[2]}
}

// Obstacle converts the definition to world space. Collidable defaults to true.
func (d ObstacleDef) Obstacle() Obstacle {
	collidable := true
	if d.Collidable != nil {
		collidable = *d.Collidable
	}
	return Obstacle{
		Name:       d.Name,
		Bounds:     physics.NewAABBFromCenter(vec(d.Position), vec(d.Size)),
		Collidable: collidable,
		Color:      LookupColor(d.Color),
	}
}

// Interactive converts the definition to world space. Bounds cover the
// triangles when present, the sized box otherwise.
func (d ObjectDef) Interactive() Interactive {
	pos := vec(d.Position)
	obj := Interactive{ID: d.ID, Name: d.Name, Color: LookupColor(d.Color)}
	if len(d.Triangles) == 0 {
		obj.Bounds = physics.NewAABBFromCenter(pos, vec(d.Size))
		return obj
	}

	obj.Triangles = make([]physics.Triangle, len(d.Triangles))
	for i, t := range d.Triangles {
		tri := physics.Triangle{
			rl.Vector3Add(pos, rl.Vector3{X: t[0], Y: t[1], Z: t[2]}),
			rl.Vector3Add(pos, rl.Vector3{X: t[3], Y: t[4], Z: t[5]}),
			rl.Vector3Add(pos, rl.Vector3{X: t[6], Y: t[7], Z: t[8]}),
		}
		obj.Triangles[i] = tri
		if i == 0 {
			obj.Bounds = tri.Bounds()
		} else {
			obj.Bounds = obj.Bounds.Union(tri.Bounds())
		}
	}
	return obj
}

// Snapshot builds the immutable scene view.
func (f *File) Snapshot(cellSize float32) *Snapshot {
	obstacles := make([]Obstacle, len(f.Obstacles))
	for i, d := range f.Obstacles {
		obstacles[i] = d.Obstacle()
	}
	objects := make([]Interactive, len(f.Objects))
	for i, d := range f.Objects {
		objects[i] = d.Interactive()
	}
	return NewSnapshot(obstacles, objects, cellSize)
}
