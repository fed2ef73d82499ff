package trace

import (
	"fmt"

	"github.com/san-kum/fieldlab/internal/field"
)

// DirField returns the unit direction of the traced field at p. The second
// return value is false in a dead zone where the field has no usable
// direction; steppers must stop there.
type DirField func(p field.Vec2) (field.Vec2, bool)

// Stepper advances a point along a direction field by step size h.
type Stepper interface {
	Step(f DirField, p field.Vec2, h float64) (field.Vec2, bool)
	Name() string
}

// Euler takes a single sample per step. Fastest, visibly kinked near strong
// curvature.
type Euler struct{}

func NewEuler() *Euler { return &Euler{} }

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(f DirField, p field.Vec2, h float64) (field.Vec2, bool) {
	d, ok := f(p)
	if !ok {
		return p, false
	}
	return p.Add(d.Scale(h)), true
}

// Midpoint samples the direction halfway along the Euler step before
// committing.
type Midpoint struct{}

func NewMidpoint() *Midpoint { return &Midpoint{} }

func (m *Midpoint) Name() string { return "midpoint" }

func (m *Midpoint) Step(f DirField, p field.Vec2, h float64) (field.Vec2, bool) {
	d1, ok := f(p)
	if !ok {
		return p, false
	}
	d2, ok := f(p.Add(d1.Scale(h * 0.5)))
	if !ok {
		return p, false
	}
	return p.Add(d2.Scale(h)), true
}

// RK4 is the classic fourth-order step over the direction field.
type RK4 struct{}

func NewRK4() *RK4 { return &RK4{} }

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) Step(f DirField, p field.Vec2, h float64) (field.Vec2, bool) {
	k1, ok := f(p)
	if !ok {
		return p, false
	}
	k2, ok := f(p.Add(k1.Scale(h * 0.5)))
	if !ok {
		return p, false
	}
	k3, ok := f(p.Add(k2.Scale(h * 0.5)))
	if !ok {
		return p, false
	}
	k4, ok := f(p.Add(k3.Scale(h)))
	if !ok {
		return p, false
	}
	d := k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4).Scale(1.0 / 6.0)
	return p.Add(d.Scale(h)), true
}

// StepperByName resolves the config-facing stepper name.
func StepperByName(name string) (Stepper, error) {
	switch name {
	case "", "euler":
		return NewEuler(), nil
	case "midpoint":
		return NewMidpoint(), nil
	case "rk4":
		return NewRK4(), nil
	default:
		return nil, fmt.Errorf("unknown stepper: %s", name)
	}
}
