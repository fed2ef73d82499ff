package field

import (
	"context"
	"math"
)

// Default physics constants. All of them can be overridden through the
// config layer; these are the values the visualizer ships with.
const (
	DefaultCoulomb   = 14000.0
	DefaultSoftening = 25.0
)

// Bounds is the rectangular canvas region in which charges live and field
// lines are traced. The origin is the top-left corner.
type Bounds struct {
	Width, Height float64
}

func (b Bounds) Contains(p Vec2) bool {
	return p.X >= 0 && p.X <= b.Width && p.Y >= 0 && p.Y <= b.Height
}

// Sample is one field evaluation on the vector grid. Samples are ephemeral:
// the scene recomputes them whenever the charge set changes.
type Sample struct {
	Pos Vec2
	E   Vec2
	Mag float64
}

// Evaluator computes the superposed Coulomb field of a charge set.
// The softening constant keeps the inverse-square law finite near a charge
// center, and a query point inside a charge's own radius excludes that
// charge's term entirely.
type Evaluator struct {
	K         float64
	Softening float64
}

func NewEvaluator(k, softening float64) *Evaluator {
	if k <= 0 {
		k = DefaultCoulomb
	}
	if softening <= 0 {
		softening = DefaultSoftening
	}
	return &Evaluator{K: k, Softening: softening}
}

// FieldAt returns the net electric field at p: E = Σ k·q·r̂ / (r² + ε).
// An empty charge set yields the zero vector.
func (e *Evaluator) FieldAt(p Vec2, charges []Charge) Vec2 {
	var out Vec2
	for _, c := range charges {
		d := p.Sub(c.Pos)
		r2 := d.NormSq()
		if r2 <= c.Radius*c.Radius {
			continue
		}
		r := math.Sqrt(r2)
		f := e.K * c.Magnitude / ((r2 + e.Softening) * r)
		out.X += f * d.X
		out.Y += f * d.Y
	}
	return out
}

// PotentialAt returns the softened scalar potential at p. It is used for
// background shading and profile plots, not for tracing.
func (e *Evaluator) PotentialAt(p Vec2, charges []Charge) float64 {
	v := 0.0
	for _, c := range charges {
		r2 := p.Sub(c.Pos).NormSq()
		v += e.K * c.Magnitude / math.Sqrt(r2+e.Softening)
	}
	return v
}

// SampleGrid evaluates the field on a regular grid with the given spacing.
// The context is checked once per row so large grids remain cancelable.
func (e *Evaluator) SampleGrid(ctx context.Context, b Bounds, spacing float64, charges []Charge) ([]Sample, error) {
	if spacing <= 0 {
		return nil, ErrBadSpacing
	}
	cols := int(b.Width/spacing) + 1
	rows := int(b.Height/spacing) + 1
	samples := make([]Sample, 0, cols*rows)
	for j := 0; j < rows; j++ {
		select {
		case <-ctx.Done():
			return samples, ctx.Err()
		default:
		}
		for i := 0; i < cols; i++ {
			p := Vec2{float64(i) * spacing, float64(j) * spacing}
			ev := e.FieldAt(p, charges)
			samples = append(samples, Sample{Pos: p, E: ev, Mag: ev.Norm()})
		}
	}
	return samples, nil
}
