// Package export renders a traced scene to standalone SVG.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/trace"
)

// SVG color scheme, matching the TUI's default theme.
const (
	svgBackground = "#0a0a12"
	svgLine       = "#3a7bd5"
	svgVector     = "#2a4a6a"
	svgPositive   = "#ff5555"
	svgNegative   = "#5588ff"
)

// SceneToSVG renders field lines, vector arrows and charge glyphs into an
// SVG document string.
func SceneToSVG(b field.Bounds, charges []field.Charge, samples []field.Sample, lines []trace.Line) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, b.Width, b.Height, b.Width, b.Height, svgBackground))

	// field lines as polylines
	sb.WriteString(fmt.Sprintf(`<g fill="none" stroke="%s" stroke-width="1" stroke-opacity="0.7">`+"\n", svgLine))
	for _, line := range lines {
		if len(line.Points) < 2 {
			continue
		}
		sb.WriteString(`<polyline points="`)
		for i, p := range line.Points {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
		}
		sb.WriteString("\"/>\n")
	}
	sb.WriteString("</g>\n")

	// vector arrows, clamped to a readable length
	sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="1">`+"\n", svgVector))
	for _, s := range samples {
		if s.Mag == 0 {
			continue
		}
		l := arrowLength(s.Mag)
		d := s.E.Unit().Scale(l)
		tip := s.Pos.Add(d)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
			s.Pos.X, s.Pos.Y, tip.X, tip.Y))
		// arrowhead
		left := rotate(d, 2.6).Unit().Scale(4)
		right := rotate(d, -2.6).Unit().Scale(4)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
			tip.X, tip.Y, tip.X+left.X, tip.Y+left.Y))
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
			tip.X, tip.Y, tip.X+right.X, tip.Y+right.Y))
	}
	sb.WriteString("</g>\n")

	// charges: filled circle plus sign glyph
	for _, c := range charges {
		color := svgPositive
		glyph := "+"
		if !c.Positive() {
			color = svgNegative
			glyph = "−"
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" fill-opacity="0.85"/>`+"\n",
			c.Pos.X, c.Pos.Y, c.Radius, color))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" fill="#ffffff" font-size="%.0f">%s</text>`+"\n",
			c.Pos.X, c.Pos.Y, c.Radius*1.2, glyph))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// arrowLength maps field magnitude to pixels on a log scale, clamped so
// strong-field arrows stay inside their grid cell.
func arrowLength(mag float64) float64 {
	l := 6 + 5*math.Log1p(mag)
	if l > 18 {
		l = 18
	}
	return l
}

func rotate(v field.Vec2, angle float64) field.Vec2 {
	c, s := math.Cos(angle), math.Sin(angle)
	return field.Vec2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}
