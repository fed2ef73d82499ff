package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for the TUI. Each canvas layer gets its
// own foreground so charges, field lines and flow markers stay apart.
type Theme struct {
	Name     string
	Grid     lipgloss.Color
	Vector   lipgloss.Color
	Line     lipgloss.Color
	Flow     lipgloss.Color
	Positive lipgloss.Color
	Negative lipgloss.Color
	Select   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Accent   lipgloss.Color
}

// Available themes
var (
	ThemeMidnight = Theme{
		Name:     "midnight",
		Grid:     lipgloss.Color("#2a2a3a"),
		Vector:   lipgloss.Color("#2a4a6a"),
		Line:     lipgloss.Color("#3a7bd5"),
		Flow:     lipgloss.Color("#9fd3ff"),
		Positive: lipgloss.Color("#ff5555"),
		Negative: lipgloss.Color("#5588ff"),
		Select:   lipgloss.Color("#ffff66"),
		Text:     lipgloss.Color("#e0e0f0"),
		Muted:    lipgloss.Color("#666688"),
		Accent:   lipgloss.Color("#00ccff"),
	}

	ThemePhosphor = Theme{
		Name:     "phosphor",
		Grid:     lipgloss.Color("#003300"),
		Vector:   lipgloss.Color("#005500"),
		Line:     lipgloss.Color("#00cc00"),
		Flow:     lipgloss.Color("#88ff88"),
		Positive: lipgloss.Color("#ffff00"),
		Negative: lipgloss.Color("#00ffff"),
		Select:   lipgloss.Color("#ffffff"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Accent:   lipgloss.Color("#88ff88"),
	}

	ThemePaper = Theme{
		Name:     "paper",
		Grid:     lipgloss.Color("#444444"),
		Vector:   lipgloss.Color("#777777"),
		Line:     lipgloss.Color("#bbbbbb"),
		Flow:     lipgloss.Color("#ffffff"),
		Positive: lipgloss.Color("#ff6666"),
		Negative: lipgloss.Color("#6699ff"),
		Select:   lipgloss.Color("#ffcc00"),
		Text:     lipgloss.Color("#eeeeee"),
		Muted:    lipgloss.Color("#888888"),
		Accent:   lipgloss.Color("#ffffff"),
	}

	// Default theme
	CurrentTheme = ThemeMidnight

	// All available themes
	Themes = []Theme{
		ThemeMidnight,
		ThemePhosphor,
		ThemePaper,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMidnight
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func (t Theme) styleFor(l Layer) lipgloss.Style {
	switch l {
	case LayerGrid:
		return lipgloss.NewStyle().Foreground(t.Grid)
	case LayerVector:
		return lipgloss.NewStyle().Foreground(t.Vector)
	case LayerLine:
		return lipgloss.NewStyle().Foreground(t.Line)
	case LayerFlow:
		return lipgloss.NewStyle().Foreground(t.Flow).Bold(true)
	case LayerPositive:
		return lipgloss.NewStyle().Foreground(t.Positive).Bold(true)
	case LayerNegative:
		return lipgloss.NewStyle().Foreground(t.Negative).Bold(true)
	case LayerSelect:
		return lipgloss.NewStyle().Foreground(t.Select).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(t.Text)
}
