package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cellsoup/inspector"
)

const (
	panelWidth  = 300
	rowHeight   = 18
	panelMargin = 10
)

// drawHUD draws population counters and the pause and speed controls.
func (v *Viewer) drawHUD() {
	b := hudBounds()
	rl.DrawRectangleRec(b, colorPanelBg)

	x, y := int32(b.X)+8, int32(b.Y)+6
	stats := v.world.LastStats()
	rl.DrawText(fmt.Sprintf("Tick %d  Cells %d", v.world.Tick(), v.world.Population()), x, y, 18, rl.White)
	y += 22
	rl.DrawText(fmt.Sprintf("Births %d  Deaths %d  Respawns %d", stats.Births, stats.Deaths, stats.Respawns), x, y, 12, rl.LightGray)
	y += 16
	rl.DrawText(fmt.Sprintf("Energy p50 %.2f  Gen max %d", stats.EnergyP50, stats.MaxGeneration), x, y, 12, rl.LightGray)
	y += 16
	perf := v.world.Perf().Stats()
	rl.DrawText(fmt.Sprintf("TPS %.0f  FPS %.0f", perf.TicksPerSecond, perf.FPS), x, y, 12, rl.LightGray)
	y += 20

	if pauseButton(rl.Rectangle{X: b.X + 8, Y: float32(y), Width: 80, Height: 24}, v.paused) {
		v.paused = !v.paused
	}
	y += 32
	v.stepsPerFrame = stepsSlider(rl.Rectangle{X: b.X + 24, Y: float32(y), Width: hudWidth - 60, Height: 16}, v.stepsPerFrame)
	rl.DrawText(fmt.Sprintf("%dx", int(v.stepsPerFrame)), int32(b.X+hudWidth-28), int32(y), 14, rl.White)

	if v.paused {
		rl.DrawText("PAUSED", int32(b.X)+100, int32(b.Y)+hudHeight-58, 18, rl.Yellow)
	}
}

// drawInspector draws the selected cell's fields on the right.
func (v *Viewer) drawInspector() {
	if !v.hasSelected {
		return
	}
	detail, ok := v.world.Lookup(v.selected)
	if !ok {
		v.hasSelected = false
		return
	}

	fields := inspector.CellFields(detail)
	x := int32(v.screenW) - panelWidth - panelMargin
	y := int32(panelMargin)
	h := int32(len(fields)*rowHeight + 36)
	rl.DrawRectangle(x, y, panelWidth, h, colorPanelBg)
	rl.DrawText(fmt.Sprintf("Cell #%d", v.selected), x+8, y+8, 16, rl.White)
	y += 30

	for _, f := range fields {
		rl.DrawText(f.Name, x+8, y, 12, rl.LightGray)
		switch f.Widget {
		case inspector.WidgetBar:
			val, _ := inspector.BarValue(f.Value)
			frac := min(max(val/f.Max, 0), 1)
			rl.DrawRectangle(x+120, y+2, 160, 10, rl.DarkGray)
			rl.DrawRectangle(x+120, y+2, int32(160*frac), 10, rl.Green)
		case inspector.WidgetBool:
			col := rl.Gray
			if on, _ := f.Value.(bool); on {
				col = rl.Orange
			}
			rl.DrawText(f.Text(), x+120, y, 12, col)
		default:
			rl.DrawText(f.Text(), x+120, y, 12, rl.White)
		}
		y += rowHeight
	}
}
