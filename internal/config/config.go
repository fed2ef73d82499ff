package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/trace"
)

const (
	DefaultWidth       = 800.0
	DefaultHeight      = 600.0
	DefaultGridSpacing = 40.0
	DefaultMagnitude   = 2.0
	DefaultMaxCharges  = 32
	DefaultFrameRate   = 30
)

// Config is the full tuning surface of the visualizer. Everything that used
// to be a magic number in the render loop lives here under a name.
type Config struct {
	Experiment string        `yaml:"experiment"`
	Stepper    string        `yaml:"stepper"`
	Seed       int64         `yaml:"seed"`
	FrameRate  int           `yaml:"frame_rate"`
	Canvas     CanvasConfig  `yaml:"canvas"`
	Physics    PhysicsConfig `yaml:"physics"`
	Trace      trace.Options `yaml:"trace"`
}

type CanvasConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	GridSpacing float64 `yaml:"grid_spacing"`
}

type PhysicsConfig struct {
	Coulomb          float64 `yaml:"coulomb"`
	Softening        float64 `yaml:"softening"`
	DefaultMagnitude float64 `yaml:"default_magnitude"`
	MaxCharges       int     `yaml:"max_charges"`
}

func DefaultConfig() *Config {
	return &Config{
		Experiment: "dipole",
		Stepper:    "euler",
		FrameRate:  DefaultFrameRate,
		Canvas: CanvasConfig{
			Width:       DefaultWidth,
			Height:      DefaultHeight,
			GridSpacing: DefaultGridSpacing,
		},
		Physics: PhysicsConfig{
			Coulomb:          field.DefaultCoulomb,
			Softening:        field.DefaultSoftening,
			DefaultMagnitude: DefaultMagnitude,
			MaxCharges:       DefaultMaxCharges,
		},
		Trace: trace.DefaultOptions(),
	}
}

// Load reads a YAML config over the defaults, so partial files work.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("config: canvas dimensions must be positive (%gx%g)", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Canvas.GridSpacing <= 0 {
		return fmt.Errorf("config: grid spacing must be positive, got %g", c.Canvas.GridSpacing)
	}
	if c.Physics.Softening <= 0 {
		return fmt.Errorf("config: softening must be positive, got %g", c.Physics.Softening)
	}
	if c.Trace.MaxSteps <= 0 {
		return fmt.Errorf("config: trace max_steps must be positive, got %d", c.Trace.MaxSteps)
	}
	if c.Trace.StepSize <= 0 {
		return fmt.Errorf("config: trace step_size must be positive, got %g", c.Trace.StepSize)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("config: frame_rate must be positive, got %d", c.FrameRate)
	}
	return nil
}

// Bounds returns the canvas region as the field package sees it.
func (c *Config) Bounds() field.Bounds {
	return field.Bounds{Width: c.Canvas.Width, Height: c.Canvas.Height}
}
