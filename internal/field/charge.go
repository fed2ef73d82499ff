package field

import "math"

const (
	// RadiusBase is the glyph radius of a unit charge.
	RadiusBase = 10.0
	// RadiusScale grows the glyph with the square root of the magnitude so
	// large charges stay on screen.
	RadiusScale = 6.0
)

// Charge is a point charge on the canvas. Magnitude is signed; Radius is
// derived from the magnitude and always positive.
type Charge struct {
	Pos       Vec2    `yaml:"pos" json:"pos"`
	Magnitude float64 `yaml:"magnitude" json:"magnitude"`
	Radius    float64 `yaml:"radius" json:"radius"`
}

// NewCharge places a charge and derives its radius from |magnitude|.
func NewCharge(pos Vec2, magnitude float64) Charge {
	return Charge{Pos: pos, Magnitude: magnitude, Radius: RadiusFor(magnitude)}
}

// RadiusFor maps a signed magnitude to a positive glyph radius.
func RadiusFor(magnitude float64) float64 {
	return RadiusBase + RadiusScale*math.Sqrt(math.Abs(magnitude))
}

func (c Charge) Positive() bool {
	return c.Magnitude >= 0
}

// Contains reports whether p lies within the charge's radius.
func (c Charge) Contains(p Vec2) bool {
	return c.Pos.Sub(p).NormSq() <= c.Radius*c.Radius
}
