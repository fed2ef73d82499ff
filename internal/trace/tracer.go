package trace

import (
	"math"

	"github.com/san-kum/fieldlab/internal/field"
)

// Direction signs for a trace. Forward follows E (out of positive charges),
// Backward runs against it (out of negative charges).
const (
	Forward  = 1.0
	Backward = -1.0
)

// Reason records why a trace terminated.
type Reason int

const (
	ReasonWeakField Reason = iota
	ReasonOutOfBounds
	ReasonAbsorbed
	ReasonMaxSteps
)

func (r Reason) String() string {
	switch r {
	case ReasonWeakField:
		return "weak_field"
	case ReasonOutOfBounds:
		return "out_of_bounds"
	case ReasonAbsorbed:
		return "absorbed"
	case ReasonMaxSteps:
		return "max_steps"
	}
	return "unknown"
}

// Line is the ordered point sequence of one traced field line.
type Line struct {
	Points []field.Vec2
	Seed   field.Vec2
	Dir    float64
	Reason Reason
}

// Options bundles the tracer's tuning constants. Every value here used to be
// a hardcoded number in ad-hoc visualizers; keep them named.
type Options struct {
	StepSize       float64 `yaml:"step_size"`
	MaxSteps       int     `yaml:"max_steps"`
	MinField       float64 `yaml:"min_field"`
	MinPoints      int     `yaml:"min_points"`
	Margin         float64 `yaml:"margin"`
	SeedOffset     float64 `yaml:"seed_offset"`
	SeedsPerCharge int     `yaml:"seeds_per_charge"`
}

func DefaultOptions() Options {
	return Options{
		StepSize:       4.0,
		MaxSteps:       1200,
		MinField:       0.02,
		MinPoints:      8,
		Margin:         50.0,
		SeedOffset:     4.0,
		SeedsPerCharge: 12,
	}
}

// Tracer follows field lines through an evaluator's field.
type Tracer struct {
	eval *field.Evaluator
	opts Options
	step Stepper
}

func New(eval *field.Evaluator, opts Options, step Stepper) *Tracer {
	if step == nil {
		step = NewEuler()
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = DefaultOptions().MaxSteps
	}
	if opts.StepSize <= 0 {
		opts.StepSize = DefaultOptions().StepSize
	}
	return &Tracer{eval: eval, opts: opts, step: step}
}

func (t *Tracer) Options() Options { return t.opts }

// Trace follows the field from seed in the given direction until the field
// weakens, the point leaves the canvas (plus margin), a charge absorbs it,
// or the step budget runs out. The returned line may be arbitrarily short;
// callers filter with Options.MinPoints.
func (t *Tracer) Trace(seed field.Vec2, dir float64, charges []field.Charge, b field.Bounds) Line {
	line := Line{Seed: seed, Dir: dir, Points: make([]field.Vec2, 0, 64)}
	line.Points = append(line.Points, seed)

	dirField := func(p field.Vec2) (field.Vec2, bool) {
		e := t.eval.FieldAt(p, charges)
		if e.Norm() < t.opts.MinField {
			return field.Vec2{}, false
		}
		return e.Unit().Scale(dir), true
	}

	p := seed
	for i := 0; i < t.opts.MaxSteps; i++ {
		next, ok := t.step.Step(dirField, p, t.opts.StepSize)
		if !ok {
			line.Reason = ReasonWeakField
			return line
		}
		p = next
		line.Points = append(line.Points, p)

		if t.absorbed(p, charges, dir) {
			line.Reason = ReasonAbsorbed
			return line
		}
		if !t.inMargin(p, b) {
			line.Reason = ReasonOutOfBounds
			return line
		}
	}
	line.Reason = ReasonMaxSteps
	return line
}

// TraceAll seeds evenly spaced angles around every positive charge and
// traces forward; when the scene holds only negative charges it seeds those
// and traces backward instead. Lines shorter than MinPoints are discarded.
func (t *Tracer) TraceAll(charges []field.Charge, b field.Bounds) []Line {
	sources, dir := positives(charges), Forward
	if len(sources) == 0 {
		sources, dir = negatives(charges), Backward
	}

	lines := make([]Line, 0, len(sources)*t.opts.SeedsPerCharge)
	for _, c := range sources {
		n := t.seedCount(c)
		for i := 0; i < n; i++ {
			angle := float64(i) * 2 * math.Pi / float64(n)
			seed := c.Pos.Add(field.Vec2{
				X: (c.Radius + t.opts.SeedOffset) * math.Cos(angle),
				Y: (c.Radius + t.opts.SeedOffset) * math.Sin(angle),
			})
			line := t.Trace(seed, dir, charges, b)
			if len(line.Points) >= t.opts.MinPoints {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// seedCount scales the number of lines with the square root of the charge
// magnitude so a +4 charge emits twice the lines of a +1.
func (t *Tracer) seedCount(c field.Charge) int {
	n := int(math.Round(float64(t.opts.SeedsPerCharge) * math.Sqrt(math.Abs(c.Magnitude))))
	if n < 4 {
		n = 4
	}
	return n
}

// absorbed reports whether p entered a charge that terminates this trace:
// opposite-sign charges swallow the line.
func (t *Tracer) absorbed(p field.Vec2, charges []field.Charge, dir float64) bool {
	for _, c := range charges {
		if !c.Contains(p) {
			continue
		}
		if dir == Forward && !c.Positive() {
			return true
		}
		if dir == Backward && c.Positive() {
			return true
		}
	}
	return false
}

func (t *Tracer) inMargin(p field.Vec2, b field.Bounds) bool {
	m := t.opts.Margin
	return p.X >= -m && p.X <= b.Width+m && p.Y >= -m && p.Y <= b.Height+m
}

func positives(charges []field.Charge) []field.Charge {
	out := make([]field.Charge, 0, len(charges))
	for _, c := range charges {
		if c.Positive() && c.Magnitude != 0 {
			out = append(out, c)
		}
	}
	return out
}

func negatives(charges []field.Charge) []field.Charge {
	out := make([]field.Charge, 0, len(charges))
	for _, c := range charges {
		if !c.Positive() {
			out = append(out, c)
		}
	}
	return out
}
