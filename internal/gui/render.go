package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/fieldlab/internal/field"
)

const (
	potentialCell = 8.0
	flowSpacing   = 16
)

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.ShowPotential {
		a.drawPotential()
	}
	if a.ShowGrid {
		a.drawGrid()
	}
	if a.ShowVectors {
		a.drawVectors()
	}
	if a.ShowLines {
		a.drawLines()
	}
	a.drawCharges()
	a.drawPanel()

	rl.EndDrawing()
}

// drawPotential shades the background by the sign and strength of the
// scalar potential: red tint near positive charge, blue near negative.
func (a *App) drawPotential() {
	b := a.Scene.Bounds()
	for y := 0.0; y < b.Height; y += potentialCell {
		for x := 0.0; x < b.Width; x += potentialCell {
			v := a.Scene.PotentialAt(field.Vec2{X: x + potentialCell/2, Y: y + potentialCell/2})
			t := math.Tanh(v / 400)
			var col rl.Color
			if t >= 0 {
				col = rl.NewColor(uint8(40+80*t), 20, 28, 255)
			} else {
				col = rl.NewColor(20, 24, uint8(40-80*t), 255)
			}
			rl.DrawRectangle(int32(x), int32(y), int32(potentialCell), int32(potentialCell), col)
		}
	}
}

func (a *App) drawGrid() {
	b := a.Scene.Bounds()
	sp := a.Cfg.Canvas.GridSpacing
	for y := sp / 2; y < b.Height; y += sp {
		for x := sp / 2; x < b.Width; x += sp {
			rl.DrawPixel(int32(x), int32(y), ColGrid)
		}
	}
}

func (a *App) drawVectors() {
	for _, s := range a.Scene.Vectors() {
		if s.Mag == 0 {
			continue
		}
		l := 6 + 5*math.Log1p(s.Mag)
		if l > 18 {
			l = 18
		}
		d := s.E.Unit().Scale(l)
		tip := s.Pos.Add(d)
		rl.DrawLineEx(vec(s.Pos), vec(tip), 1, ColVector)
		// arrowhead
		left := rotate(d, 2.6).Unit().Scale(4)
		right := rotate(d, -2.6).Unit().Scale(4)
		rl.DrawLineEx(vec(tip), vec(tip.Add(left)), 1, ColVector)
		rl.DrawLineEx(vec(tip), vec(tip.Add(right)), 1, ColVector)
	}
}

func (a *App) drawLines() {
	for _, line := range a.Scene.Lines() {
		pts := line.Points
		for i := 1; i < len(pts); i++ {
			rl.DrawLineEx(vec(pts[i-1]), vec(pts[i]), 1, ColLine)
		}
		if a.Running {
			a.drawFlow(pts, line.Dir)
		}
	}
}

// drawFlow slides glow dots along each line so the direction of the field
// reads at a glance. Backward-traced lines walk in reverse to keep motion
// going positive to negative.
func (a *App) drawFlow(pts []field.Vec2, dir float64) {
	n := len(pts)
	if n == 0 {
		return
	}
	offset := int(a.Flow) % flowSpacing
	for i := offset; i < n; i += flowSpacing {
		idx := i
		if dir < 0 {
			idx = n - 1 - i
		}
		rl.DrawCircleV(vec(pts[idx]), 2, ColFlow)
	}
}

func (a *App) drawCharges() {
	selected := a.Scene.Selected()
	for i, c := range a.Scene.Charges() {
		col := ColNegative
		if c.Positive() {
			col = ColPositive
		}
		center := vec(c.Pos)
		r := float32(c.Radius)

		// soft glow then body
		glow := col
		glow.A = 60
		rl.DrawCircleV(center, r*1.6, glow)
		rl.DrawCircleV(center, r, col)

		// sign glyph
		rl.DrawLineEx(
			rl.NewVector2(center.X-r*0.5, center.Y),
			rl.NewVector2(center.X+r*0.5, center.Y), 2, rl.White)
		if c.Positive() {
			rl.DrawLineEx(
				rl.NewVector2(center.X, center.Y-r*0.5),
				rl.NewVector2(center.X, center.Y+r*0.5), 2, rl.White)
		}

		if i == selected {
			rl.DrawRing(center, r+3, r+5, 0, 360, 48, ColSelect)
		}
	}
}

func (a *App) drawPanel() {
	b := a.Scene.Bounds()
	x := int32(b.Width)
	rl.DrawRectangle(x, 0, panelWidth, int32(b.Height), ColPanel)
	rl.DrawLine(x, 0, x, int32(b.Height), ColGrid)

	tx := x + 20
	rl.DrawText("FIELDLAB", tx, 20, 24, ColText)

	status := "RUNNING"
	if !a.Running {
		status = "PAUSED"
	}
	rl.DrawText(status, tx, 56, 14, ColTextDim)

	rl.DrawText(fmt.Sprintf("experiment  %s", a.Experiment), tx, 96, 14, ColText)
	rl.DrawText(fmt.Sprintf("charges     %d", len(a.Scene.Charges())), tx, 118, 14, ColText)
	rl.DrawText(fmt.Sprintf("lines       %d", len(a.Scene.Lines())), tx, 140, 14, ColText)

	mouse := rl.GetMousePosition()
	p := field.Vec2{X: float64(mouse.X), Y: float64(mouse.Y)}
	if b.Contains(p) {
		e := a.Scene.FieldAt(p)
		v := a.Scene.PotentialAt(p)
		rl.DrawText(fmt.Sprintf("cursor  (%.0f, %.0f)", p.X, p.Y), tx, 180, 14, ColText)
		rl.DrawText(fmt.Sprintf("|E|     %.3f", e.Norm()), tx, 202, 14, ColText)
		rl.DrawText(fmt.Sprintf("V       %.2f", v), tx, 224, 14, ColText)
	}

	if a.Status != "" {
		rl.DrawText(a.Status, tx, 260, 14, ColSelect)
	}

	help := []string{
		"click       add / drag",
		"right click remove",
		"wheel       magnitude",
		"space       pause",
		"e           experiment",
		"r / c       reset / clear",
		"a           random charge",
		"v l g p     toggles",
		"q           quit",
	}
	y := int32(b.Height) - int32(len(help))*20 - 20
	for _, h := range help {
		rl.DrawText(h, tx, y, 12, ColTextDim)
		y += 20
	}
}

func vec(p field.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(p.X), float32(p.Y))
}

func rotate(v field.Vec2, angle float64) field.Vec2 {
	c, s := math.Cos(angle), math.Sin(angle)
	return field.Vec2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}
