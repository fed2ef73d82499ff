package storage

import (
	"math"
	"testing"

	"github.com/san-kum/fieldlab/internal/field"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	charges := []field.Charge{
		field.NewCharge(field.Vec2{X: 240, Y: 300}, 3),
		field.NewCharge(field.Vec2{X: 560, Y: 300}, -2),
	}
	samples := []field.Sample{
		{Pos: field.Vec2{X: 0, Y: 0}, E: field.Vec2{X: 0.5, Y: -0.25}, Mag: 0.559017},
		{Pos: field.Vec2{X: 40, Y: 0}, E: field.Vec2{X: 1.5, Y: 0}, Mag: 1.5},
	}
	stats := map[string]float64{"net_charge": 1}

	b := field.Bounds{Width: 800, Height: 600}
	runID, err := st.Save("dipole", "rk4", 42, b, 40, charges, samples, stats)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Experiment != "dipole" || meta.Stepper != "rk4" || meta.Seed != 42 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Stats["net_charge"] != 1 {
		t.Errorf("stats not persisted: %v", meta.Stats)
	}

	gotCharges, err := st.LoadScene(runID)
	if err != nil {
		t.Fatalf("load scene failed: %v", err)
	}
	if len(gotCharges) != 2 {
		t.Fatalf("expected 2 charges, got %d", len(gotCharges))
	}
	if gotCharges[0].Magnitude != 3 || gotCharges[1].Magnitude != -2 {
		t.Errorf("charge magnitudes not restored: %+v", gotCharges)
	}

	gotSamples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if len(gotSamples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(gotSamples))
	}
	if math.Abs(gotSamples[0].E.X-0.5) > 1e-6 || math.Abs(gotSamples[0].E.Y+0.25) > 1e-6 {
		t.Errorf("sample vector not restored: %+v", gotSamples[0])
	}
}

func TestListEmpty(t *testing.T) {
	st := New(t.TempDir() + "/does-not-exist-yet")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	b := field.Bounds{Width: 800, Height: 600}
	if _, err := st.Save("single", "euler", 1, b, 40, nil, nil, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Save("dipole", "euler", 2, b, 40, nil, nil, nil); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestLoadMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope_0"); err == nil {
		t.Error("expected error for missing run")
	}
	if _, err := st.LoadScene("nope_0"); err == nil {
		t.Error("expected error for missing scene")
	}
	if _, err := st.LoadSamples("nope_0"); err == nil {
		t.Error("expected error for missing samples")
	}
}
