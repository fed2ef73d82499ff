package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fieldlab/internal/config"
	"github.com/san-kum/fieldlab/internal/scene"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
)

const (
	stateMenu = iota
	stateSim
)

// App is the top-level TUI: an experiment picker that hands off to the
// live field view and takes control back on escape.
type App struct {
	state, cursor int
	experiments   []scene.ExperimentKind
	cfg           *config.Config
	sc            *scene.Scene
	live          Model
	width, height int
}

func NewApp(sc *scene.Scene, cfg *config.Config) *App {
	return &App{
		state:       stateMenu,
		experiments: scene.Experiments(),
		cfg:         cfg,
		sc:          sc,
		width:       80,
		height:      24,
	}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		if a.state == stateSim {
			newLive, cmd := a.live.Update(msg)
			a.live = newLive.(Model)
			return a, cmd
		}
		return a, nil
	default:
		if a.state == stateSim {
			newLive, cmd := a.live.Update(msg)
			a.live = newLive.(Model)
			return a, cmd
		}
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.state == stateSim {
		if msg.String() == "esc" {
			a.state = stateMenu
			return a, nil
		}
		newLive, cmd := a.live.Update(msg)
		a.live = newLive.(Model)
		return a, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.experiments)-1 {
			a.cursor++
		}
	case "enter", " ":
		kind := a.experiments[a.cursor]
		a.sc.Apply(kind)
		a.live = NewModel(a.sc, a.cfg, kind)
		a.state = stateSim
		return a, a.live.Init()
	}
	return a, nil
}

func (a App) View() string {
	if a.state == stateSim {
		return a.live.View()
	}

	var s strings.Builder
	s.WriteString("\n" + cyan.Render("  FIELDLAB") + dim.Render("  electrostatic field visualizer") + "\n\n")
	for i, k := range a.experiments {
		cursor := "  "
		name := white.Render(fmt.Sprintf("%-12s", k.String()))
		if i == a.cursor {
			cursor = green.Render("> ")
			name = green.Render(fmt.Sprintf("%-12s", k.String()))
		}
		s.WriteString(fmt.Sprintf("  %s%s %s\n", cursor, name, dim.Render(k.Description())))
	}
	s.WriteString("\n" + dimmer.Render("  ↑/↓ move · enter select · q quit") + "\n")
	return s.String()
}

// Run starts the interactive TUI with mouse reporting enabled.
func Run(sc *scene.Scene, cfg *config.Config) error {
	p := tea.NewProgram(NewApp(sc, cfg), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

// RunLive skips the menu and opens the live view on one experiment.
func RunLive(sc *scene.Scene, cfg *config.Config, kind scene.ExperimentKind) error {
	sc.Apply(kind)
	p := tea.NewProgram(NewModel(sc, cfg, kind), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
