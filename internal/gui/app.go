package gui

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/fieldlab/internal/config"
	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/scene"
)

// Theme Colors
var (
	ColBg       = rl.NewColor(10, 10, 18, 255)
	ColGrid     = rl.NewColor(34, 34, 48, 255)
	ColVector   = rl.NewColor(42, 74, 106, 255)
	ColLine     = rl.NewColor(58, 123, 213, 200)
	ColFlow     = rl.NewColor(159, 211, 255, 255)
	ColPositive = rl.NewColor(255, 85, 85, 255)
	ColNegative = rl.NewColor(85, 136, 255, 255)
	ColSelect   = rl.NewColor(255, 255, 102, 255)
	ColText     = rl.NewColor(200, 200, 216, 255)
	ColTextDim  = rl.NewColor(102, 102, 136, 255)
	ColPanel    = rl.NewColor(16, 16, 26, 255)
)

const panelWidth = 280

type App struct {
	Scene      *scene.Scene
	Cfg        *config.Config
	Experiment scene.ExperimentKind
	Running    bool
	Flow       float64

	ShowVectors   bool
	ShowLines     bool
	ShowGrid      bool
	ShowPotential bool

	Status string
	Quit   bool
}

// initWindow opens a window sized to the scene bounds plus the side panel,
// so mouse coordinates map 1:1 onto scene coordinates.
func initWindow(b field.Bounds) {
	rl.InitWindow(int32(b.Width)+panelWidth, int32(b.Height), "fieldlab")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func NewApp(sc *scene.Scene, cfg *config.Config, kind scene.ExperimentKind) *App {
	sc.Apply(kind)
	return &App{
		Scene:       sc,
		Cfg:         cfg,
		Experiment:  kind,
		Running:     true,
		ShowVectors: true,
		ShowLines:   true,
		ShowGrid:    true,
	}
}

// Run opens the windowed visualizer and blocks until the window closes.
func Run(sc *scene.Scene, cfg *config.Config, kind scene.ExperimentKind) {
	initWindow(sc.Bounds())
	defer rl.CloseWindow()
	app := NewApp(sc, cfg, kind)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !a.Quit && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	a.handleKeys()
	a.handleMouse()
	if a.Running {
		a.Flow += float64(rl.GetFrameTime()) * 40
	}
}

func (a *App) handleKeys() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Scene.Apply(a.Experiment)
		a.Status = ""
	}
	if rl.IsKeyPressed(rl.KeyC) {
		a.Scene.Clear()
		a.Status = ""
	}
	if rl.IsKeyPressed(rl.KeyA) {
		if err := a.Scene.AddRandom(); err != nil {
			a.Status = err.Error()
		}
	}
	if rl.IsKeyPressed(rl.KeyE) || rl.IsKeyPressed(rl.KeyTab) {
		kinds := scene.Experiments()
		a.Experiment = kinds[(int(a.Experiment)+1)%len(kinds)]
		a.Scene.Apply(a.Experiment)
	}
	if rl.IsKeyPressed(rl.KeyV) {
		a.ShowVectors = !a.ShowVectors
	}
	if rl.IsKeyPressed(rl.KeyL) {
		a.ShowLines = !a.ShowLines
	}
	if rl.IsKeyPressed(rl.KeyG) {
		a.ShowGrid = !a.ShowGrid
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.ShowPotential = !a.ShowPotential
	}
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		a.Quit = true
	}
}

// handleMouse implements the add/drag/remove loop. The canvas occupies the
// left part of the window, so any click with X inside the bounds acts on
// the scene.
func (a *App) handleMouse() {
	mouse := rl.GetMousePosition()
	p := field.Vec2{X: float64(mouse.X), Y: float64(mouse.Y)}
	b := a.Scene.Bounds()
	inCanvas := b.Contains(p)

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && inCanvas {
		if !a.Scene.BeginDrag(p) {
			if err := a.Scene.AddAlternating(p); err != nil {
				a.Status = err.Error()
			} else {
				a.Status = ""
			}
		}
	}
	if rl.IsMouseButtonDown(rl.MouseLeftButton) && a.Scene.Dragging() {
		a.Scene.Drag(clampTo(p, b))
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		a.Scene.EndDrag()
	}
	if rl.IsMouseButtonPressed(rl.MouseRightButton) && inCanvas {
		if err := a.Scene.RemoveNearest(p); err != nil && !errors.Is(err, scene.ErrNoCharge) {
			a.Status = err.Error()
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && inCanvas {
		if i, ok := a.Scene.ChargeAt(p); ok {
			a.Scene.AdjustMagnitude(i, float64(wheel)*0.5)
		}
	}
}

func clampTo(p field.Vec2, b field.Bounds) field.Vec2 {
	if p.X < 0 {
		p.X = 0
	}
	if p.X > b.Width {
		p.X = b.Width
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.Y > b.Height {
		p.Y = b.Height
	}
	return p
}
