package viz

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/fieldlab/internal/config"
	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/scene"
	"github.com/san-kum/fieldlab/internal/trace"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	eval := field.NewEvaluator(cfg.Physics.Coulomb, cfg.Physics.Softening)
	stepper, err := trace.StepperByName(cfg.Stepper)
	if err != nil {
		t.Fatal(err)
	}
	tracer := trace.New(eval, cfg.Trace, stepper)
	sc := scene.New(eval, tracer, scene.Config{
		Bounds:           cfg.Bounds(),
		GridSpacing:      cfg.Canvas.GridSpacing,
		DefaultMagnitude: cfg.Physics.DefaultMagnitude,
		MaxCharges:       cfg.Physics.MaxCharges,
	})
	return NewModel(sc, cfg, scene.ExperimentDipole)
}

// cellFor inverts the mouse mapping: the terminal cell whose center lands
// closest to a scene point.
func cellFor(m Model, p field.Vec2) (int, int) {
	b := m.scene.Bounds()
	col := int(p.X * float64(m.width) / b.Width)
	row := int(p.Y * float64(m.height) / b.Height)
	return col + canvasPadX, row + canvasPadY
}

func press(m Model, btn tea.MouseButton, x, y int) Model {
	next, _ := m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: btn})
	return next.(Model)
}

func TestMouseClickAddsAlternatingCharges(t *testing.T) {
	m := newTestModel(t)
	m.scene.Clear()

	x, y := cellFor(m, field.Vec2{X: 100, Y: 100})
	m = press(m, tea.MouseButtonLeft, x, y)
	x, y = cellFor(m, field.Vec2{X: 600, Y: 400})
	m = press(m, tea.MouseButtonLeft, x, y)

	charges := m.scene.Charges()
	if len(charges) != 2 {
		t.Fatalf("expected 2 charges, got %d", len(charges))
	}
	if !charges[0].Positive() || charges[1].Positive() {
		t.Errorf("signs should alternate +,-: %+v", charges)
	}
}

func TestMouseDragMovesCharge(t *testing.T) {
	m := newTestModel(t)
	m.scene.Clear()
	if err := m.scene.AddCharge(field.Vec2{X: 400, Y: 300}, 3); err != nil {
		t.Fatal(err)
	}

	x, y := cellFor(m, field.Vec2{X: 400, Y: 300})
	m = press(m, tea.MouseButtonLeft, x, y)
	if !m.scene.Dragging() {
		t.Fatal("press on a charge should start a drag")
	}
	if len(m.scene.Charges()) != 1 {
		t.Fatal("press on a charge must not add another")
	}

	x, y = cellFor(m, field.Vec2{X: 200, Y: 150})
	next, _ := m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m = next.(Model)
	c := m.scene.Charges()[0]
	if c.Pos.Distance(field.Vec2{X: 200, Y: 150}) > 15 {
		t.Errorf("drag did not follow the cursor: %+v", c.Pos)
	}

	next, _ = m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m = next.(Model)
	if m.scene.Dragging() {
		t.Error("release should end the drag")
	}
}

func TestMouseRightClickRemoves(t *testing.T) {
	m := newTestModel(t)
	m.scene.Clear()
	if err := m.scene.AddCharge(field.Vec2{X: 400, Y: 300}, 2); err != nil {
		t.Fatal(err)
	}

	x, y := cellFor(m, field.Vec2{X: 400, Y: 300})
	m = press(m, tea.MouseButtonRight, x, y)
	if len(m.scene.Charges()) != 0 {
		t.Errorf("right click should remove the charge, %d left", len(m.scene.Charges()))
	}

	// right click on empty space is silent
	m = press(m, tea.MouseButtonRight, x, y)
	if m.status != "" {
		t.Errorf("no-target removal should not surface an error: %q", m.status)
	}
}

func TestMouseWheelAdjustsMagnitude(t *testing.T) {
	m := newTestModel(t)
	m.scene.Clear()
	if err := m.scene.AddCharge(field.Vec2{X: 400, Y: 300}, 2); err != nil {
		t.Fatal(err)
	}

	x, y := cellFor(m, field.Vec2{X: 400, Y: 300})
	m = press(m, tea.MouseButtonWheelUp, x, y)
	if got := m.scene.Charges()[0].Magnitude; got <= 2 {
		t.Errorf("wheel up should grow magnitude, got %g", got)
	}

	m = press(m, tea.MouseButtonWheelDown, x, y)
	m = press(m, tea.MouseButtonWheelDown, x, y)
	if got := m.scene.Charges()[0].Magnitude; got < 0.25 {
		t.Errorf("magnitude fell below the floor: %g", got)
	}
}

func TestClickOutsideCanvasIgnored(t *testing.T) {
	m := newTestModel(t)
	m.scene.Clear()
	m = press(m, tea.MouseButtonLeft, 0, 0)
	m = press(m, tea.MouseButtonLeft, canvasPadX+m.width+5, canvasPadY+m.height+5)
	if len(m.scene.Charges()) != 0 {
		t.Errorf("clicks outside the canvas should not add charges, got %d", len(m.scene.Charges()))
	}
}

func TestToSceneRoundTrip(t *testing.T) {
	m := newTestModel(t)
	p, ok := m.toScene(canvasPadX+10, canvasPadY+5)
	if !ok {
		t.Fatal("cell inside the canvas should map")
	}
	x, y := cellFor(m, p)
	if x != canvasPadX+10 || y != canvasPadY+5 {
		t.Errorf("mapping did not invert: got cell (%d,%d)", x, y)
	}
}

func TestTickAdvancesOnlyWhileRunning(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if m.frame != 1 {
		t.Errorf("running tick should advance frame, got %d", m.frame)
	}
	if cmd == nil {
		t.Error("tick must schedule the next tick")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	m = next.(Model)
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if m.frame != 1 {
		t.Errorf("paused tick should not advance frame, got %d", m.frame)
	}
}

func TestKeyCyclesExperiment(t *testing.T) {
	m := newTestModel(t)
	before := m.experiment
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	m = next.(Model)
	if m.experiment == before {
		t.Error("e should advance to the next experiment")
	}
	if len(m.scene.Charges()) == 0 {
		t.Error("cycling should apply the new experiment")
	}
}

func TestKeyClearEmptiesScene(t *testing.T) {
	m := newTestModel(t)
	m.scene.Apply(scene.ExperimentQuadrupole)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	m = next.(Model)
	if len(m.scene.Charges()) != 0 {
		t.Error("c should clear every charge")
	}
	if len(m.scene.Lines()) != 0 {
		t.Error("clearing must drop derived field lines too")
	}
}

func TestViewRendersWithoutCharges(t *testing.T) {
	m := newTestModel(t)
	m.scene.Clear()
	if out := m.View(); out == "" {
		t.Error("empty scene should still render a frame")
	}
}

func TestMenuSelectEntersSim(t *testing.T) {
	m := newTestModel(t)
	app := NewApp(m.scene, m.cfg)

	next, _ := app.Update(tea.KeyMsg{Type: tea.KeyDown})
	a := next.(App)
	if a.cursor != 1 {
		t.Fatalf("down should move the cursor, got %d", a.cursor)
	}

	next, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = next.(App)
	if a.state != stateSim {
		t.Error("enter should start the simulation")
	}
	if cmd == nil {
		t.Error("entering the sim must start the tick loop")
	}
	if len(a.sc.Charges()) != 2 {
		t.Errorf("dipole selection should place 2 charges, got %d", len(a.sc.Charges()))
	}

	next, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = next.(App)
	if a.state != stateMenu {
		t.Error("esc should return to the menu")
	}
}
