package scene

// Gallery dimensions. The floor spans 200 x 100 centered on the origin.
const (
	FloorWidth  = 200.0
	FloorDepth  = 100.0
	WallHeight  = 20.0
	WallThick   = 1.0
	middleWallZ = 30.0
	middleWallL = 40.0
)

func boolPtr(b bool) *bool { return &b }

// DefaultGallery is the built-in layout: four outer walls, two partition
// walls leaving a doorway through the middle, a bench, a plinth with a statue
// and two paintings.
func DefaultGallery() *File {
	h := float32(WallHeight / 2)
	f := &File{
		Obstacles: []ObstacleDef{
			{Name: "north wall", Position: [3]float32{0, h, FloorDepth / 2}, Size: [3]float32{FloorWidth, WallHeight, WallThick}},
			{Name: "south wall", Position: [3]float32{0, h, -FloorDepth / 2}, Size: [3]float32{FloorWidth, WallHeight, WallThick}},
			{Name: "east wall", Position: [3]float32{FloorWidth / 2, h, 0}, Size: [3]float32{WallThick, WallHeight, FloorDepth}},
			{Name: "west wall", Position: [3]float32{-FloorWidth / 2, h, 0}, Size: [3]float32{WallThick, WallHeight, FloorDepth}},
			{Name: "partition north", Position: [3]float32{0, h, middleWallZ}, Size: [3]float32{WallThick, WallHeight, middleWallL}},
			{Name: "partition south", Position: [3]float32{0, h, -middleWallZ}, Size: [3]float32{WallThick, WallHeight, middleWallL}},
			{Name: "bench", Position: [3]float32{-50, 0, 0}, Size: [3]float32{20, 3, 5}, Color: "LightGray"},
			{Name: "plinth", Position: [3]float32{50, 0, 0}, Size: [3]float32{8, 2, 8}, Color: "LightGray"},
			{Name: "floor", Position: [3]float32{0, -0.05, 0}, Size: [3]float32{FloorWidth, 0.1, FloorDepth}, Collidable: boolPtr(false), Color: "Beige"},
		},
		Objects: []ObjectDef{
			{
				ID:       "painting-1",
				Name:     "Steve Johnson : Painting 1 - Source: Unsplash",
				Position: [3]float32{-50, 10, 49},
				Size:     [3]float32{15, 10, 0.5},
				Color:    "Maroon",
			},
			{
				ID:       "painting-2",
				Name:     "Steve Johnson : Painting 2 - Source: Unsplash",
				Position: [3]float32{-50, 10, -49},
				Size:     [3]float32{15, 10, 0.5},
				Color:    "Blue",
			},
			{
				ID:        "victoria",
				Name:      "Victoria",
				Position:  [3]float32{50, 1, 0},
				Triangles: octahedron(1.5, 8),
				Color:     "Gold",
			},
		},
	}
	return f
}

// octahedron returns the eight faces of a double pyramid standing on the
// origin, used as a stand-in mesh for the statue.
func octahedron(radius, height float32) [][9]float32 {
	mid := height / 2
	ring := [4][3]float32{{radius, mid, 0}, {0, mid, radius}, {-radius, mid, 0}, {0, mid, -radius}}
	top := [3]float32{0, height, 0}
	bottom := [3]float32{0, 0, 0}

	tris := make([][9]float32, 0, 8)
	for i := range ring {
		a, b := ring[i], ring[(i+1)%len(ring)]
		tris = append(tris,
			[9]float32{a[0], a[1], a[2], top[0], top[1], top[2], b[0], b[1], b[2]},
			[9]float32{a[0], a[1], a[2], b[0], b[1], b[2], bottom[0], bottom[1], bottom[2]},
		)
	}
	return tris
}
