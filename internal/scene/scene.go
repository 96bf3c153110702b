package scene

import (
	"gallery/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Obstacle is a static volume the camera cannot walk through. Obstacles are
// collision proxies only; they are never picked.
type Obstacle struct {
	Name       string
	Bounds     physics.AABB
	Collidable bool
	Color      rl.Color
}

// Interactive is something the user can point at to see its label. When
// Triangles is non-empty the pick ray must hit one of them; Bounds is then
// only a broad test.
type Interactive struct {
	ID        string
	Name      string
	Bounds    physics.AABB
	Triangles []physics.Triangle
	Color     rl.Color
}

// Snapshot is an immutable view of the scene handed to the frame loop. A new
// snapshot replaces the old one wholesale; nothing mutates a published one.
type Snapshot struct {
	Obstacles    []Obstacle
	Interactives []Interactive

	static physics.StaticSet
	byID   map[string]int
}

// NewSnapshot indexes the collidable obstacles in a grid with the given cell
// size. The slices are copied.
func NewSnapshot(obstacles []Obstacle, interactives []Interactive, cellSize float32) *Snapshot {
	s := &Snapshot{
		Obstacles:    append([]Obstacle(nil), obstacles...),
		Interactives: append([]Interactive(nil), interactives...),
		byID:         make(map[string]int, len(interactives)),
	}
	var boxes []physics.AABB
	for _, o := range s.Obstacles {
		if o.Collidable {
			boxes = append(boxes, o.Bounds)
		}
	}
	s.static = physics.NewGrid(cellSize, boxes)
	for i, obj := range s.Interactives {
		s.byID[obj.ID] = i
	}
	return s
}

// Empty returns a snapshot with nothing in it.
func Empty() *Snapshot {
	return NewSnapshot(nil, nil, physics.DefaultCellSize)
}

// Static returns the collidable obstacle set for movement queries.
func (s *Snapshot) Static() physics.StaticSet {
	if s == nil {
		return physics.Boxes(nil)
	}
	return s.static
}

// Interactive looks up an object by identifier.
func (s *Snapshot) Interactive(id string) (Interactive, bool) {
	if s == nil {
		return Interactive{}, false
	}
	i, ok := s.byID[id]
	if !ok {
		return Interactive{}, false
	}
	return s.Interactives[i], true
}

// Objects returns the interactive objects, or nil for a nil snapshot.
func (s *Snapshot) Objects() []Interactive {
	if s == nil {
		return nil
	}
	return s.Interactives
}
