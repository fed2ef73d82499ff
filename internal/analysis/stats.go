// Package analysis computes summary statistics over a charge configuration,
// its sampled field grid, and its traced field lines.
package analysis

import (
	"math"

	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/trace"
)

// Stats is the analyze-command summary of one scene.
type Stats struct {
	ChargeCount  int
	NetCharge    float64
	DipoleMoment field.Vec2
	LineCount    int
	MeanLineLen  float64
	MaxFieldMag  float64
	MeanFieldMag float64
	Terminations map[string]int
}

// Summarize folds charges, grid samples and lines into a Stats value.
// The dipole moment is taken about the charge centroid so it is independent
// of the canvas origin.
func Summarize(charges []field.Charge, samples []field.Sample, lines []trace.Line) Stats {
	st := Stats{
		ChargeCount:  len(charges),
		LineCount:    len(lines),
		Terminations: make(map[string]int),
	}

	var centroid field.Vec2
	for _, c := range charges {
		st.NetCharge += c.Magnitude
		centroid = centroid.Add(c.Pos)
	}
	if len(charges) > 0 {
		centroid = centroid.Scale(1 / float64(len(charges)))
	}
	for _, c := range charges {
		st.DipoleMoment = st.DipoleMoment.Add(c.Pos.Sub(centroid).Scale(c.Magnitude))
	}

	sum := 0.0
	for _, s := range samples {
		sum += s.Mag
		if s.Mag > st.MaxFieldMag {
			st.MaxFieldMag = s.Mag
		}
	}
	if len(samples) > 0 {
		st.MeanFieldMag = sum / float64(len(samples))
	}

	steps := 0
	for _, l := range lines {
		steps += len(l.Points)
		st.Terminations[l.Reason.String()]++
	}
	if len(lines) > 0 {
		st.MeanLineLen = float64(steps) / float64(len(lines))
	}
	return st
}

// LineLengthHistogram buckets traced line point counts for plotting.
func LineLengthHistogram(lines []trace.Line, buckets int) []float64 {
	if buckets <= 0 || len(lines) == 0 {
		return nil
	}
	maxLen := 0
	for _, l := range lines {
		if len(l.Points) > maxLen {
			maxLen = len(l.Points)
		}
	}
	hist := make([]float64, buckets)
	for _, l := range lines {
		idx := (len(l.Points) - 1) * buckets / (maxLen)
		if idx >= buckets {
			idx = buckets - 1
		}
		hist[idx]++
	}
	return hist
}

// Profile samples |E| and V along the segment from a to b.
func Profile(eval *field.Evaluator, charges []field.Charge, a, b field.Vec2, n int) (mags, pots []float64) {
	if n < 2 {
		n = 2
	}
	mags = make([]float64, n)
	pots = make([]float64, n)
	d := b.Sub(a)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		p := a.Add(d.Scale(t))
		mags[i] = eval.FieldAt(p, charges).Norm()
		pots[i] = eval.PotentialAt(p, charges)
	}
	return mags, pots
}

// FieldExtrema returns the weakest and strongest sampled magnitudes.
func FieldExtrema(samples []field.Sample) (min, max float64) {
	if len(samples) == 0 {
		return 0, 0
	}
	min, max = math.Inf(1), math.Inf(-1)
	for _, s := range samples {
		if s.Mag < min {
			min = s.Mag
		}
		if s.Mag > max {
			max = s.Mag
		}
	}
	return min, max
}
