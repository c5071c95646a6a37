// Package renderer draws a running simulation with raylib: cells as circles
// sized by their bulk, a HUD with raygui controls and an inspector panel.
package renderer

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cellsoup/camera"
	"github.com/pthm-cable/cellsoup/sim"
)

const (
	hudWidth      = 260
	hudHeight     = 150
	maxStepsFrame = 20
	pickRadius    = 8 // screen pixels
)

var (
	colorBackground = rl.Color{R: 12, G: 18, B: 28, A: 255}
	colorSelected   = rl.Color{R: 255, G: 255, B: 255, A: 220}
	colorPanelBg    = rl.Color{R: 30, G: 30, B: 35, A: 230}
)

// Viewer owns the camera and UI state for one world.
type Viewer struct {
	world *sim.World
	cam   *camera.Camera
	views []sim.CellView

	paused        bool
	stepsPerFrame float32

	selected    uint32
	hasSelected bool

	screenW, screenH float32
}

// NewViewer creates a viewer for w. The raylib window must already be open.
func NewViewer(w *sim.World, screenW, screenH int32, stepsPerFrame int) *Viewer {
	worldW, worldH := w.Size()
	return &Viewer{
		world:         w,
		cam:           camera.New(float32(screenW), float32(screenH), worldW, worldH),
		stepsPerFrame: float32(min(max(stepsPerFrame, 1), maxStepsFrame)),
		screenW:       float32(screenW),
		screenH:       float32(screenH),
	}
}

// Update handles input and advances the world.
func (v *Viewer) Update() {
	v.handleInput()
	if !v.paused {
		for i := 0; i < int(v.stepsPerFrame); i++ {
			v.world.Step()
		}
	}
	v.world.Perf().RecordFrame()
}

func (v *Viewer) handleInput() {
	if rl.IsWindowResized() {
		v.screenW = float32(rl.GetScreenWidth())
		v.screenH = float32(rl.GetScreenHeight())
		v.cam.Resize(v.screenW, v.screenH)
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		v.paused = !v.paused
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		v.cam.Reset()
	}
	if rl.IsKeyPressed(rl.KeyX) {
		v.hasSelected = false
	}

	panSpeed := 8 / v.cam.Zoom
	if rl.IsKeyDown(rl.KeyRight) {
		v.cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		v.cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		v.cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		v.cam.Pan(0, -panSpeed)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		v.cam.Pan(-d.X, -d.Y)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.cam.ZoomBy(1 + wheel*0.1)
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		mouse := rl.GetMousePosition()
		if rl.CheckCollisionPointRec(mouse, hudBounds()) {
			return
		}
		wx, wy := v.cam.ScreenToWorld(mouse.X, mouse.Y)
		v.selected, v.hasSelected = v.world.Nearest(wx, wy, pickRadius/v.cam.Zoom)
	}
}

// Draw renders one frame.
func (v *Viewer) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(colorBackground)

	v.views = v.world.Views(v.views)
	for _, c := range v.views {
		if !v.cam.Visible(c.X, c.Y, c.Radius) {
			continue
		}
		sx, sy := v.cam.WorldToScreen(c.X, c.Y)
		r := c.Radius * v.cam.Zoom
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, r, cellColor(c))
		if v.hasSelected && c.ID == v.selected {
			rl.DrawCircleLines(int32(sx), int32(sy), r+3, colorSelected)
		}
	}

	v.drawHUD()
	v.drawInspector()

	rl.EndDrawing()
}

// cellColor shades by energy (red to green) and sugar (blue).
func cellColor(c sim.CellView) rl.Color {
	e := min(max(c.EnergyRatio, 0), 1)
	s := min(max(c.SugarRatio, 0), 1)
	return rl.Color{
		R: uint8(60 + 195*(1-e)),
		G: uint8(60 + 195*e),
		B: uint8(80 + 175*s),
		A: 230,
	}
}

func hudBounds() rl.Rectangle {
	return rl.Rectangle{X: 5, Y: 5, Width: hudWidth, Height: hudHeight}
}

// stepsSlider draws the speed slider and returns the chosen steps per frame.
func stepsSlider(bounds rl.Rectangle, current float32) float32 {
	val := gui.SliderBar(bounds, "1", "20", current, 1, maxStepsFrame)
	return float32(int(val + 0.5))
}

// pauseButton draws the pause toggle and reports whether it was clicked.
func pauseButton(bounds rl.Rectangle, paused bool) bool {
	label := "Pause"
	if paused {
		label = "Resume"
	}
	return gui.Button(bounds, label)
}
