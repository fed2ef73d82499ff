package scene

import (
	"math"
	"testing"

	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/trace"
)

func newTestScene() *Scene {
	eval := field.NewEvaluator(0, 0)
	tr := trace.New(eval, trace.DefaultOptions(), trace.NewEuler())
	return New(eval, tr, DefaultConfig())
}

func snapshotVectors(s *Scene) []field.Sample {
	out := make([]field.Sample, len(s.Vectors()))
	copy(out, s.Vectors())
	return out
}

func TestAddAlternatingSign(t *testing.T) {
	s := newTestScene()

	_ = s.AddAlternating(field.Vec2{X: 100, Y: 100})
	_ = s.AddAlternating(field.Vec2{X: 200, Y: 100})
	_ = s.AddAlternating(field.Vec2{X: 300, Y: 100})

	charges := s.Charges()
	if len(charges) != 3 {
		t.Fatalf("expected 3 charges, got %d", len(charges))
	}
	if !charges[0].Positive() || charges[1].Positive() || !charges[2].Positive() {
		t.Error("click-adds should alternate +, -, +")
	}
}

func TestAddRemoveIdempotence(t *testing.T) {
	s := newTestScene()
	_ = s.AddCharge(field.Vec2{X: 250, Y: 300}, 2)
	before := snapshotVectors(s)

	p := field.Vec2{X: 500, Y: 200}
	if err := s.AddCharge(p, -3); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := s.RemoveNearest(p); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	after := s.Vectors()
	if len(after) != len(before) {
		t.Fatalf("vector grid size changed: %d vs %d", len(before), len(after))
	}
	for i := range before {
		if math.Abs(before[i].E.X-after[i].E.X) > 1e-12 ||
			math.Abs(before[i].E.Y-after[i].E.Y) > 1e-12 {
			t.Fatalf("grid not restored at sample %d", i)
		}
	}
}

func TestDragLocality(t *testing.T) {
	s := newTestScene()
	_ = s.AddCharge(field.Vec2{X: 100, Y: 100}, 2)
	_ = s.AddCharge(field.Vec2{X: 700, Y: 500}, -2)

	// far-field probe: distant from both the old and new charge position
	farBefore := s.FieldAt(field.Vec2{X: 700, Y: 80})
	nearBefore := s.FieldAt(field.Vec2{X: 140, Y: 100})

	if !s.BeginDrag(field.Vec2{X: 100, Y: 100}) {
		t.Fatal("expected drag to begin over charge")
	}
	if err := s.Drag(field.Vec2{X: 120, Y: 130}); err != nil {
		t.Fatalf("drag failed: %v", err)
	}
	s.EndDrag()

	nearAfter := s.FieldAt(field.Vec2{X: 140, Y: 100})
	farAfter := s.FieldAt(field.Vec2{X: 700, Y: 80})

	nearDelta := nearBefore.Sub(nearAfter).Norm()
	farDelta := farBefore.Sub(farAfter).Norm()

	if nearDelta == 0 {
		t.Error("near-field should change when the charge moves")
	}
	if farDelta >= nearDelta*0.1 {
		t.Errorf("far-field should be approximately unchanged: near %e far %e", nearDelta, farDelta)
	}
}

func TestDragStateMachine(t *testing.T) {
	s := newTestScene()
	_ = s.AddCharge(field.Vec2{X: 400, Y: 300}, 2)

	if s.Dragging() {
		t.Error("scene should start idle")
	}
	if s.BeginDrag(field.Vec2{X: 50, Y: 50}) {
		t.Error("drag must not begin off-charge")
	}
	if err := s.Drag(field.Vec2{X: 60, Y: 60}); err != ErrNotDragging {
		t.Errorf("expected ErrNotDragging, got %v", err)
	}

	if !s.BeginDrag(field.Vec2{X: 400, Y: 300}) {
		t.Fatal("drag should begin over the charge")
	}
	if !s.Dragging() {
		t.Error("scene should report dragging")
	}
	if err := s.Drag(field.Vec2{X: 420, Y: 310}); err != nil {
		t.Fatalf("drag failed: %v", err)
	}
	if s.Charges()[0].Pos != (field.Vec2{X: 420, Y: 310}) {
		t.Error("charge did not follow the drag")
	}

	s.EndDrag()
	if s.Dragging() {
		t.Error("scene should return to idle on release")
	}
}

func TestRemoveNearest(t *testing.T) {
	s := newTestScene()
	_ = s.AddCharge(field.Vec2{X: 100, Y: 100}, 1)
	_ = s.AddCharge(field.Vec2{X: 300, Y: 100}, -1)

	if err := s.RemoveNearest(field.Vec2{X: 290, Y: 105}); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(s.Charges()) != 1 {
		t.Fatalf("expected 1 charge, got %d", len(s.Charges()))
	}
	if !s.Charges()[0].Positive() {
		t.Error("removed the wrong charge")
	}

	if err := s.RemoveNearest(field.Vec2{X: 700, Y: 500}); err != ErrNoCharge {
		t.Errorf("expected ErrNoCharge far from any charge, got %v", err)
	}
}

func TestSceneFull(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCharges = 2
	eval := field.NewEvaluator(0, 0)
	tr := trace.New(eval, trace.DefaultOptions(), trace.NewEuler())
	s := New(eval, tr, cfg)

	_ = s.AddCharge(field.Vec2{X: 100, Y: 100}, 1)
	_ = s.AddCharge(field.Vec2{X: 200, Y: 100}, -1)
	if err := s.AddCharge(field.Vec2{X: 300, Y: 100}, 1); err != ErrSceneFull {
		t.Errorf("expected ErrSceneFull, got %v", err)
	}
}

func TestClear(t *testing.T) {
	s := newTestScene()
	s.Apply(ExperimentQuadrupole)
	if len(s.Charges()) != 4 {
		t.Fatalf("quadrupole should place 4 charges, got %d", len(s.Charges()))
	}

	s.Clear()
	if len(s.Charges()) != 0 {
		t.Error("clear should remove all charges")
	}
	if len(s.Lines()) != 0 {
		t.Error("clear should drop all field lines")
	}
	for _, v := range s.Vectors() {
		if v.Mag != 0 {
			t.Fatal("cleared scene should have a zero field grid")
		}
	}
}

func TestApplyExperiments(t *testing.T) {
	s := newTestScene()
	for _, kind := range Experiments() {
		s.Apply(kind)
		if len(s.Charges()) == 0 {
			t.Errorf("experiment %s placed no charges", kind)
		}
		if kind != ExperimentSingle && len(s.Lines()) == 0 {
			t.Errorf("experiment %s traced no lines", kind)
		}
	}
}

func TestExperimentByName(t *testing.T) {
	for _, kind := range Experiments() {
		got, err := ExperimentByName(kind.String())
		if err != nil {
			t.Fatalf("lookup %s failed: %v", kind, err)
		}
		if got != kind {
			t.Errorf("expected %v, got %v", kind, got)
		}
	}
	if _, err := ExperimentByName("octopole"); err == nil {
		t.Error("expected error for unknown experiment")
	}
}
