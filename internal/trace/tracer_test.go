package trace_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/trace"
)

var _ = Describe("Tracer", func() {
	var (
		eval   *field.Evaluator
		bounds field.Bounds
		opts   trace.Options
	)

	BeforeEach(func() {
		eval = field.NewEvaluator(0, 0)
		bounds = field.Bounds{Width: 800, Height: 600}
		opts = trace.DefaultOptions()
	})

	Describe("single positive charge", func() {
		var charges []field.Charge

		BeforeEach(func() {
			charges = []field.Charge{field.NewCharge(field.Vec2{X: 400, Y: 300}, 2)}
		})

		It("moves radially outward at every seed angle", func() {
			tr := trace.New(eval, opts, trace.NewEuler())
			center := charges[0].Pos

			for i := 0; i < 16; i++ {
				angle := float64(i) * 2 * math.Pi / 16
				seed := center.Add(field.Vec2{
					X: (charges[0].Radius + 4) * math.Cos(angle),
					Y: (charges[0].Radius + 4) * math.Sin(angle),
				})
				line := tr.Trace(seed, trace.Forward, charges, bounds)

				prev := 0.0
				for _, p := range line.Points {
					r := p.Distance(center)
					Expect(r).To(BeNumerically(">=", prev),
						"radial distance must grow monotonically")
					prev = r
				}
			}
		})

		It("terminates on leaving the canvas or weakening", func() {
			tr := trace.New(eval, opts, trace.NewEuler())
			seed := charges[0].Pos.Add(field.Vec2{X: charges[0].Radius + 4})
			line := tr.Trace(seed, trace.Forward, charges, bounds)
			Expect(line.Reason).To(BeElementOf(trace.ReasonOutOfBounds, trace.ReasonWeakField))
		})
	})

	Describe("step budget", func() {
		It("never exceeds the configured maximum step count", func() {
			opts.MaxSteps = 50
			opts.MinField = 0 // never terminate on weak field
			opts.Margin = 1e9 // never terminate on bounds
			tr := trace.New(eval, opts, trace.NewEuler())

			charges := []field.Charge{
				field.NewCharge(field.Vec2{X: 300, Y: 300}, 1),
				field.NewCharge(field.Vec2{X: 500, Y: 300}, 1),
			}
			line := tr.Trace(field.Vec2{X: 200, Y: 200}, trace.Forward, charges, bounds)

			Expect(len(line.Points)).To(BeNumerically("<=", opts.MaxSteps+1))
			Expect(line.Reason).To(Equal(trace.ReasonMaxSteps))
		})
	})

	Describe("dipole", func() {
		It("curves lines from + into the - charge radius", func() {
			// The worked configuration: +3 at (0.3W, 0.5H), -2 at (0.7W, 0.5H).
			pos := field.NewCharge(field.Vec2{X: 0.3 * 800, Y: 0.5 * 600}, 3)
			neg := field.NewCharge(field.Vec2{X: 0.7 * 800, Y: 0.5 * 600}, -2)
			charges := []field.Charge{pos, neg}

			tr := trace.New(eval, opts, trace.NewRK4())
			// Seed on the side facing the negative charge.
			seed := pos.Pos.Add(field.Vec2{X: pos.Radius + 4})
			line := tr.Trace(seed, trace.Forward, charges, bounds)

			Expect(line.Reason).To(Equal(trace.ReasonAbsorbed))
			last := line.Points[len(line.Points)-1]
			Expect(last.Distance(neg.Pos)).To(BeNumerically("<=", neg.Radius+opts.StepSize))
		})
	})

	Describe("TraceAll", func() {
		It("discards lines under the minimum length", func() {
			tr := trace.New(eval, opts, trace.NewEuler())
			charges := []field.Charge{field.NewCharge(field.Vec2{X: 400, Y: 300}, 1)}
			for _, line := range tr.TraceAll(charges, bounds) {
				Expect(len(line.Points)).To(BeNumerically(">=", opts.MinPoints))
			}
		})

		It("scales seed count with magnitude", func() {
			tr := trace.New(eval, opts, trace.NewEuler())
			small := tr.TraceAll([]field.Charge{field.NewCharge(field.Vec2{X: 400, Y: 300}, 1)}, bounds)
			big := tr.TraceAll([]field.Charge{field.NewCharge(field.Vec2{X: 400, Y: 300}, 4)}, bounds)
			Expect(len(big)).To(BeNumerically(">", len(small)))
		})

		It("traces backward from negative charges when no positives exist", func() {
			tr := trace.New(eval, opts, trace.NewEuler())
			charges := []field.Charge{field.NewCharge(field.Vec2{X: 400, Y: 300}, -2)}
			lines := tr.TraceAll(charges, bounds)
			Expect(lines).NotTo(BeEmpty())
			for _, line := range lines {
				Expect(line.Dir).To(Equal(trace.Backward))
			}
		})

		It("returns nothing for an empty scene", func() {
			tr := trace.New(eval, opts, trace.NewEuler())
			Expect(tr.TraceAll(nil, bounds)).To(BeEmpty())
		})
	})

	Describe("steppers", func() {
		It("resolves config names", func() {
			for _, name := range []string{"euler", "midpoint", "rk4"} {
				s, err := trace.StepperByName(name)
				Expect(err).NotTo(HaveOccurred())
				Expect(s.Name()).To(Equal(name))
			}
			_, err := trace.StepperByName("dormand-prince")
			Expect(err).To(HaveOccurred())
		})

		It("agree on a straight radial line", func() {
			charges := []field.Charge{field.NewCharge(field.Vec2{X: 400, Y: 300}, 2)}
			seed := field.Vec2{X: 400 + charges[0].Radius + 4, Y: 300}

			for _, s := range []trace.Stepper{trace.NewEuler(), trace.NewMidpoint(), trace.NewRK4()} {
				tr := trace.New(eval, opts, s)
				line := tr.Trace(seed, trace.Forward, charges, bounds)
				for _, p := range line.Points {
					Expect(math.Abs(p.Y - 300)).To(BeNumerically("<", 1e-6),
						"a radial line stays on the axis under %s", s.Name())
				}
			}
		})
	})
})
