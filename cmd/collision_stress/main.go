// Stress test comparing the linear scan against the grid broad phase for
// navigation queries over many static obstacles.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gallery/internal/camera"
	"gallery/internal/input"
	"gallery/internal/navigation"
	"gallery/internal/physics"
)

func main() {
	cellSize := flag.Float64("cell", physics.DefaultCellSize, "grid cell size")
	frames := flag.Int("frames", 2000, "frames to simulate per run")
	flag.Parse()

	testCounts := []int{100, 500, 1000, 2000, 5000, 10000, 20000}
	for _, count := range testCounts {
		testBroadPhase(count, float32(*cellSize), *frames)
	}
}

func testBroadPhase(count int, cellSize float32, frames int) {
	rng := rand.New(rand.NewSource(42))

	// Spread pillars over an area that grows with count so density stays
	// roughly constant.
	spawnSize := float32(100.0) + float32(count)/10.0
	boxes := make([]physics.AABB, 0, count)
	for range count {
		center := rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: 5,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
		size := rl.Vector3{X: 0.5 + rng.Float32()*2, Y: 10, Z: 0.5 + rng.Float32()*2}
		boxes = append(boxes, physics.NewAABBFromCenter(center, size))
	}

	buildStart := time.Now()
	grid := physics.NewGrid(cellSize, boxes)
	buildTime := time.Since(buildStart)

	linearTime, linearPos := walk(physics.Boxes(boxes), frames)
	gridTime, gridPos := walk(grid, frames)

	agree := "agree"
	if linearPos != gridPos {
		agree = "DIFFER"
	}
	speedup := float64(linearTime) / float64(gridTime)

	fmt.Printf("%5d boxes: linear %10v | grid %8v (build %7v, %5d cells) | %.1fx speedup | %s\n",
		count, linearTime.Round(time.Microsecond), gridTime.Round(time.Microsecond),
		buildTime.Round(time.Microsecond), grid.CellCount(), speedup, agree)
}

// walk drives a controller along a fixed random input sequence and returns
// the time taken and the final position.
func walk(set physics.StaticSet, frames int) (time.Duration, rl.Vector3) {
	rng := rand.New(rand.NewSource(7))
	c := navigation.New(camera.Pose{}, navigation.DefaultSettings())

	start := time.Now()
	for range frames {
		in := input.State{
			Forward:   1,
			Strafe:    float32(rng.Intn(3) - 1),
			LookDelta: rl.Vector2{X: rng.Float32()*20 - 10},
		}
		c.Update(1.0/60, in, set)
	}
	return time.Since(start), c.Pose().Position
}
