package config

import "github.com/san-kum/fieldlab/internal/trace"

// Presets are named tuning bundles. The experiment (charge layout) is
// orthogonal and chosen separately; a preset decides how the field is traced
// and drawn.
var Presets = map[string]*Config{
	"crisp": {
		Experiment: "dipole",
		Stepper:    "rk4",
		FrameRate:  60,
		Canvas:     CanvasConfig{Width: DefaultWidth, Height: DefaultHeight, GridSpacing: 30},
		Physics:    PhysicsConfig{Coulomb: 14000, Softening: 25, DefaultMagnitude: 2, MaxCharges: DefaultMaxCharges},
		Trace: trace.Options{
			StepSize: 2.0, MaxSteps: 2400, MinField: 0.015,
			MinPoints: 10, Margin: 50, SeedOffset: 3, SeedsPerCharge: 16,
		},
	},
	"fast": {
		Experiment: "dipole",
		Stepper:    "euler",
		FrameRate:  30,
		Canvas:     CanvasConfig{Width: DefaultWidth, Height: DefaultHeight, GridSpacing: 60},
		Physics:    PhysicsConfig{Coulomb: 14000, Softening: 25, DefaultMagnitude: 2, MaxCharges: DefaultMaxCharges},
		Trace: trace.Options{
			StepSize: 6.0, MaxSteps: 600, MinField: 0.03,
			MinPoints: 6, Margin: 30, SeedOffset: 5, SeedsPerCharge: 8,
		},
	},
	"dense": {
		Experiment: "quadrupole",
		Stepper:    "midpoint",
		FrameRate:  30,
		Canvas:     CanvasConfig{Width: DefaultWidth, Height: DefaultHeight, GridSpacing: 25},
		Physics:    PhysicsConfig{Coulomb: 14000, Softening: 25, DefaultMagnitude: 2, MaxCharges: 64},
		Trace: trace.Options{
			StepSize: 3.0, MaxSteps: 1800, MinField: 0.01,
			MinPoints: 8, Margin: 80, SeedOffset: 4, SeedsPerCharge: 20,
		},
	},
	"longrange": {
		Experiment: "capacitor",
		Stepper:    "rk4",
		FrameRate:  30,
		Canvas:     CanvasConfig{Width: 1024, Height: 768, GridSpacing: 48},
		Physics:    PhysicsConfig{Coulomb: 20000, Softening: 40, DefaultMagnitude: 1.5, MaxCharges: DefaultMaxCharges},
		Trace: trace.Options{
			StepSize: 4.0, MaxSteps: 3000, MinField: 0.005,
			MinPoints: 8, Margin: 120, SeedOffset: 4, SeedsPerCharge: 12,
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
