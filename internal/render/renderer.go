// Package render draws a scene snapshot and the pick overlay with raylib.
package render

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"gallery/internal/camera"
	"gallery/internal/picking"
	"gallery/internal/scene"
)

var (
	colorBackground = rl.NewColor(20, 20, 30, 255)
	colorWire       = rl.NewColor(40, 40, 55, 255)
	colorHighlight  = rl.NewColor(255, 200, 60, 255)
	colorPanel      = rl.NewColor(30, 30, 40, 230)
	colorText       = rl.NewColor(230, 230, 240, 255)
)

const (
	labelWidth   = 180
	labelHeight  = 28
	labelOffsetY = 12
)

// Visible lists the obstacles and objects whose bounds intersect the view.
type Visible struct {
	Obstacles []int
	Objects   []int
}

// Cull tests every bound in s against the view frustum.
func Cull(view camera.View, s *scene.Snapshot) Visible {
	var v Visible
	if s == nil {
		return v
	}
	f := view.Frustum()
	for i, o := range s.Obstacles {
		if f.ContainsBox(o.Bounds.Min, o.Bounds.Max) {
			v.Obstacles = append(v.Obstacles, i)
		}
	}
	for i, obj := range s.Interactives {
		if f.ContainsBox(obj.Bounds.Min, obj.Bounds.Max) {
			v.Objects = append(v.Objects, i)
		}
	}
	return v
}

// Renderer holds drawing state that persists across frames.
type Renderer struct {
	Debug bool

	drawn int
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// SetupStyle applies the overlay colors to raygui. Call after the window
// exists.
func (r *Renderer) SetupStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorPanel))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(colorHighlight))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 16)
}

// Draw renders one frame: the scene from view, then the overlay.
func (r *Renderer) Draw(view camera.View, s *scene.Snapshot, selected string, overlay picking.Overlay) {
	visible := Cull(view, s)
	r.drawn = len(visible.Obstacles) + len(visible.Objects)

	rl.BeginDrawing()
	rl.ClearBackground(colorBackground)

	// Draw with the same near and far planes that culling and picking use.
	rl.SetClipPlanes(float64(view.Lens.Near), float64(view.Lens.Far))
	rl.BeginMode3D(view.Camera3D())
	r.drawScene(s, visible, selected)
	rl.EndMode3D()

	r.drawOverlay(overlay)
	r.drawHUD(view)
	rl.EndDrawing()
}

func (r *Renderer) drawScene(s *scene.Snapshot, visible Visible, selected string) {
	for _, i := range visible.Obstacles {
		o := s.Obstacles[i]
		center, size := o.Bounds.Center(), o.Bounds.Size()
		rl.DrawCubeV(center, size, o.Color)
		if o.Collidable {
			rl.DrawCubeWiresV(center, size, colorWire)
		}
	}
	for _, i := range visible.Objects {
		obj := s.Interactives[i]
		if len(obj.Triangles) == 0 {
			rl.DrawCubeV(obj.Bounds.Center(), obj.Bounds.Size(), obj.Color)
		}
		for _, tri := range obj.Triangles {
			// raylib culls clockwise faces; draw both windings.
			rl.DrawTriangle3D(tri[0], tri[1], tri[2], obj.Color)
			rl.DrawTriangle3D(tri[0], tri[2], tri[1], obj.Color)
		}
		if obj.ID == selected {
			rl.DrawCubeWiresV(obj.Bounds.Center(), obj.Bounds.Size(), colorHighlight)
		}
	}
}

// drawOverlay places the label centered above the projected pick point.
func (r *Renderer) drawOverlay(o picking.Overlay) {
	if !o.Visible {
		return
	}
	bounds := rl.Rectangle{
		X:      float32(o.X) - labelWidth/2,
		Y:      float32(o.Y) - labelHeight - labelOffsetY,
		Width:  labelWidth,
		Height: labelHeight,
	}
	gui.Panel(bounds, "")
	gui.Label(rl.Rectangle{X: bounds.X + 8, Y: bounds.Y, Width: bounds.Width - 16, Height: bounds.Height}, o.Text)
	rl.DrawCircle(int32(o.X), int32(o.Y), 3, colorHighlight)
}

func (r *Renderer) drawHUD(view camera.View) {
	rl.DrawText("WASD to move, Tab to capture the mouse, right click to inspect", 10, 10, 20, rl.LightGray)
	rl.DrawFPS(10, 35)
	if !r.Debug {
		return
	}
	p := view.Pose
	rl.DrawText(fmt.Sprintf("Pos: (%.1f, %.1f, %.1f)  Yaw %.1f  Pitch %.1f", p.Position.X, p.Position.Y, p.Position.Z, p.Yaw, p.Pitch), 10, 60, 16, rl.Green)
	rl.DrawText(fmt.Sprintf("Drawn: %d", r.drawn), 10, 80, 16, rl.Green)
}
