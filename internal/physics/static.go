package physics

import (
	"github.com/chewxy/math32"
)

// StaticSet is a read-only collection of static collision boxes.
type StaticSet interface {
	// Overlaps reports whether region strictly overlaps any box in the set.
	Overlaps(region AABB) bool
	// Penetrating returns the boxes region strictly overlaps.
	Penetrating(region AABB) []AABB
}

// Boxes is a StaticSet answered by a linear scan.
type Boxes []AABB

func (b Boxes) Overlaps(region AABB) bool {
	for _, box := range b {
		if region.Overlaps(box) {
			return true
		}
	}
	return false
}

func (b Boxes) Penetrating(region AABB) []AABB {
	var out []AABB
	for _, box := range b {
		if region.Overlaps(box) {
			out = append(out, box)
		}
	}
	return out
}

// DefaultCellSize is the XZ edge length of a Grid cell.
const DefaultCellSize = 5.0

// Cell key for spatial hashing on the ground plane
type CellKey struct {
	X, Z int
}

// Grid is a StaticSet backed by a uniform spatial hash over the XZ plane.
// A box is registered in every cell its footprint touches, so a query only
// visits the boxes near the region. Boxes whose footprint is not finite or
// covers more than MaxCellsPerBox cells are kept in an oversize list that
// every query tests. Boxes are stored once and referenced by index; queries
// dedupe with a generation stamp, so a Grid must only be queried from one
// goroutine at a time.
type Grid struct {
	cellSize float32
	boxes    []AABB
	cells    map[CellKey][]int
	oversize []int
	stamp    []uint32
	gen      uint32
}

// MaxCellsPerBox bounds the cells one box or one query may touch.
const MaxCellsPerBox = 4096

// cellLimit keeps cell coordinates well inside int range.
const cellLimit = 1 << 30

// NewGrid indexes boxes with the given cell size. A non-positive cell size
// falls back to DefaultCellSize.
func NewGrid(cellSize float32, boxes []AABB) *Grid {
	if !(cellSize > 0) || math32.IsInf(cellSize, 1) {
		cellSize = DefaultCellSize
	}
	g := &Grid{
		cellSize: cellSize,
		boxes:    append([]AABB(nil), boxes...),
		cells:    make(map[CellKey][]int),
		stamp:    make([]uint32, len(boxes)),
	}
	for i, box := range g.boxes {
		lo, hi, ok := g.cellRange(box)
		if !ok {
			g.oversize = append(g.oversize, i)
			continue
		}
		for x := lo.X; x <= hi.X; x++ {
			for z := lo.Z; z <= hi.Z; z++ {
				key := CellKey{X: x, Z: z}
				g.cells[key] = append(g.cells[key], i)
			}
		}
	}
	return g
}

// cellRange returns the cells under the box footprint. It reports false
// when the footprint is not finite or spans more than MaxCellsPerBox cells.
func (g *Grid) cellRange(box AABB) (lo, hi CellKey, ok bool) {
	x0 := math32.Floor(box.Min.X / g.cellSize)
	x1 := math32.Floor(box.Max.X / g.cellSize)
	z0 := math32.Floor(box.Min.Z / g.cellSize)
	z1 := math32.Floor(box.Max.Z / g.cellSize)
	for _, v := range [...]float32{x0, x1, z0, z1} {
		if !(v > -cellLimit && v < cellLimit) {
			return lo, hi, false
		}
	}
	if (x1-x0+1)*(z1-z0+1) > MaxCellsPerBox {
		return lo, hi, false
	}
	return CellKey{X: int(x0), Z: int(z0)}, CellKey{X: int(x1), Z: int(z1)}, true
}

// Len returns the number of indexed boxes.
func (g *Grid) Len() int {
	return len(g.boxes)
}

// CellCount returns the number of occupied cells.
func (g *Grid) CellCount() int {
	return len(g.cells)
}

// OversizeCount returns the number of boxes tested by every query.
func (g *Grid) OversizeCount() int {
	return len(g.oversize)
}

func (g *Grid) visit(region AABB, fn func(AABB) bool) {
	lo, hi, ok := g.cellRange(region)
	if !ok {
		// Huge regions scan everything.
		for _, box := range g.boxes {
			if !fn(box) {
				return
			}
		}
		return
	}

	for _, i := range g.oversize {
		if !fn(g.boxes[i]) {
			return
		}
	}

	g.gen++
	if g.gen == 0 {
		// Stamps wrapped; clear so stale marks can't hide a box.
		clear(g.stamp)
		g.gen = 1
	}
	for x := lo.X; x <= hi.X; x++ {
		for z := lo.Z; z <= hi.Z; z++ {
			for _, i := range g.cells[CellKey{X: x, Z: z}] {
				if g.stamp[i] == g.gen {
					continue
				}
				g.stamp[i] = g.gen
				if !fn(g.boxes[i]) {
					return
				}
			}
		}
	}
}

func (g *Grid) Overlaps(region AABB) bool {
	found := false
	g.visit(region, func(box AABB) bool {
		if region.Overlaps(box) {
			found = true
			return false
		}
		return true
	})
	return found
}

func (g *Grid) Penetrating(region AABB) []AABB {
	var out []AABB
	g.visit(region, func(box AABB) bool {
		if region.Overlaps(box) {
			out = append(out, box)
		}
		return true
	})
	return out
}
