package scene

import (
	"context"
	"math/rand"

	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/trace"
)

// Config carries the scene-level tuning values.
type Config struct {
	Bounds           field.Bounds
	GridSpacing      float64
	DefaultMagnitude float64
	MaxCharges       int
	Seed             int64
}

func DefaultConfig() Config {
	return Config{
		Bounds:           field.Bounds{Width: 800, Height: 600},
		GridSpacing:      40.0,
		DefaultMagnitude: 2.0,
		MaxCharges:       32,
	}
}

// Scene owns all simulation state: the ordered charge set plus the derived
// field-vector grid and field lines. The render loops read and write only
// through it; there is no package-level state.
type Scene struct {
	cfg    Config
	eval   *field.Evaluator
	tracer *trace.Tracer
	rng    *rand.Rand

	charges []field.Charge
	vectors []field.Sample
	lines   []trace.Line

	nextSign float64
	dragging int
}

// New builds an empty scene. Derived state starts empty and is filled on the
// first mutation or explicit Recompute.
func New(eval *field.Evaluator, tracer *trace.Tracer, cfg Config) *Scene {
	if cfg.MaxCharges <= 0 {
		cfg.MaxCharges = DefaultConfig().MaxCharges
	}
	if cfg.GridSpacing <= 0 {
		cfg.GridSpacing = DefaultConfig().GridSpacing
	}
	if cfg.DefaultMagnitude == 0 {
		cfg.DefaultMagnitude = DefaultConfig().DefaultMagnitude
	}
	return &Scene{
		cfg:      cfg,
		eval:     eval,
		tracer:   tracer,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		charges:  make([]field.Charge, 0, cfg.MaxCharges),
		nextSign: 1,
		dragging: -1,
	}
}

func (s *Scene) Bounds() field.Bounds      { return s.cfg.Bounds }
func (s *Scene) Charges() []field.Charge   { return s.charges }
func (s *Scene) Vectors() []field.Sample   { return s.vectors }
func (s *Scene) Lines() []trace.Line       { return s.lines }
func (s *Scene) Evaluator() *field.Evaluator { return s.eval }

// FieldAt is the hover readout: the net field at an arbitrary point.
func (s *Scene) FieldAt(p field.Vec2) field.Vec2 {
	return s.eval.FieldAt(p, s.charges)
}

// PotentialAt returns the scalar potential at a point, for shading.
func (s *Scene) PotentialAt(p field.Vec2) float64 {
	return s.eval.PotentialAt(p, s.charges)
}

// AddCharge places a charge with an explicit magnitude.
func (s *Scene) AddCharge(pos field.Vec2, magnitude float64) error {
	if len(s.charges) >= s.cfg.MaxCharges {
		return ErrSceneFull
	}
	s.charges = append(s.charges, field.NewCharge(pos, magnitude))
	s.Recompute()
	return nil
}

// AddAlternating places a charge of the default magnitude, flipping sign on
// every call: +, -, +, ...
func (s *Scene) AddAlternating(pos field.Vec2) error {
	if err := s.AddCharge(pos, s.nextSign*s.cfg.DefaultMagnitude); err != nil {
		return err
	}
	s.nextSign = -s.nextSign
	return nil
}

// AddRandom scatters one charge of random sign and magnitude inside bounds.
func (s *Scene) AddRandom() error {
	pos := field.Vec2{
		X: s.rng.Float64() * s.cfg.Bounds.Width,
		Y: s.rng.Float64() * s.cfg.Bounds.Height,
	}
	mag := 1.0 + s.rng.Float64()*3.0
	if s.rng.Intn(2) == 0 {
		mag = -mag
	}
	return s.AddCharge(pos, mag)
}

// ChargeAt returns the index of the charge whose radius covers p.
func (s *Scene) ChargeAt(p field.Vec2) (int, bool) {
	for i := len(s.charges) - 1; i >= 0; i-- {
		if s.charges[i].Contains(p) {
			return i, true
		}
	}
	return -1, false
}

// RemoveNearest deletes the charge under or closest to p within one glyph
// radius of slack.
func (s *Scene) RemoveNearest(p field.Vec2) error {
	best, bestDist := -1, 0.0
	for i, c := range s.charges {
		d := c.Pos.Distance(p)
		if d > c.Radius*2 {
			continue
		}
		if best == -1 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best == -1 {
		return ErrNoCharge
	}
	if s.dragging == best {
		s.dragging = -1
	} else if s.dragging > best {
		s.dragging--
	}
	s.charges = append(s.charges[:best], s.charges[best+1:]...)
	s.Recompute()
	return nil
}

// AdjustMagnitude scales the charge at index i, preserving its sign and
// rederiving the glyph radius.
func (s *Scene) AdjustMagnitude(i int, delta float64) error {
	if i < 0 || i >= len(s.charges) {
		return ErrNoCharge
	}
	c := &s.charges[i]
	mag := c.Magnitude + delta
	// keep the sign: shrink toward the minimum instead of flipping
	if c.Magnitude > 0 && mag < 0.25 {
		mag = 0.25
	}
	if c.Magnitude < 0 && mag > -0.25 {
		mag = -0.25
	}
	c.Magnitude = mag
	c.Radius = field.RadiusFor(mag)
	s.Recompute()
	return nil
}

// BeginDrag enters the dragging state when p is over a charge.
func (s *Scene) BeginDrag(p field.Vec2) bool {
	if i, ok := s.ChargeAt(p); ok {
		s.dragging = i
		return true
	}
	return false
}

// Drag moves the held charge and recomputes the field.
func (s *Scene) Drag(p field.Vec2) error {
	if s.dragging < 0 {
		return ErrNotDragging
	}
	s.charges[s.dragging].Pos = p
	s.Recompute()
	return nil
}

// EndDrag returns to the idle state.
func (s *Scene) EndDrag() {
	s.dragging = -1
}

func (s *Scene) Dragging() bool { return s.dragging >= 0 }

// Selected returns the index of the charge being dragged, or -1.
func (s *Scene) Selected() int { return s.dragging }

// Clear removes every charge and resets the alternating sign.
func (s *Scene) Clear() {
	s.charges = s.charges[:0]
	s.nextSign = 1
	s.dragging = -1
	s.Recompute()
}

// Apply replaces the scene contents with an experiment preset.
func (s *Scene) Apply(kind ExperimentKind) {
	w, h := s.cfg.Bounds.Width, s.cfg.Bounds.Height
	s.charges = s.charges[:0]
	s.dragging = -1
	s.nextSign = 1

	switch kind {
	case ExperimentSingle:
		s.charges = append(s.charges, field.NewCharge(field.Vec2{X: w * 0.5, Y: h * 0.5}, 3))
	case ExperimentDipole:
		s.charges = append(s.charges,
			field.NewCharge(field.Vec2{X: w * 0.3, Y: h * 0.5}, 3),
			field.NewCharge(field.Vec2{X: w * 0.7, Y: h * 0.5}, -2),
		)
	case ExperimentQuadrupole:
		s.charges = append(s.charges,
			field.NewCharge(field.Vec2{X: w * 0.35, Y: h * 0.35}, 2),
			field.NewCharge(field.Vec2{X: w * 0.65, Y: h * 0.35}, -2),
			field.NewCharge(field.Vec2{X: w * 0.65, Y: h * 0.65}, 2),
			field.NewCharge(field.Vec2{X: w * 0.35, Y: h * 0.65}, -2),
		)
	case ExperimentCapacitor:
		for i := 0; i < 5; i++ {
			y := h * (0.2 + 0.15*float64(i))
			s.charges = append(s.charges,
				field.NewCharge(field.Vec2{X: w * 0.25, Y: y}, 1.5),
				field.NewCharge(field.Vec2{X: w * 0.75, Y: y}, -1.5),
			)
		}
	case ExperimentRandom:
		for i := 0; i < 6; i++ {
			mag := 1.0 + s.rng.Float64()*2.5
			if i%2 == 1 {
				mag = -mag
			}
			s.charges = append(s.charges, field.NewCharge(field.Vec2{
				X: w * (0.15 + 0.7*s.rng.Float64()),
				Y: h * (0.15 + 0.7*s.rng.Float64()),
			}, mag))
		}
	}
	s.Recompute()
}

// Recompute rebuilds the derived field-vector grid and field lines from the
// current charge set. Mutation paths call it unconditionally; there is no
// incremental update.
func (s *Scene) Recompute() {
	samples, err := s.eval.SampleGrid(context.Background(), s.cfg.Bounds, s.cfg.GridSpacing, s.charges)
	if err != nil {
		samples = nil
	}
	s.vectors = samples
	s.lines = s.tracer.TraceAll(s.charges, s.cfg.Bounds)
}
