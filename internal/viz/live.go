package viz

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fieldlab/internal/config"
	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/scene"
	"github.com/san-kum/fieldlab/internal/trace"
)

const (
	canvasWidth  = 100
	canvasHeight = 30

	// canvasStyle padding, subtracted when mapping mouse cells to the scene
	canvasPadX = 2
	canvasPadY = 1

	// flow markers per field line are this many points apart
	flowSpacing = 14
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(38)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model is the live field view: one scene plus render toggles and the
// animation clock. All charge state lives in the scene; the model only
// holds view concerns.
type Model struct {
	scene      *scene.Scene
	cfg        *config.Config
	canvas     *Canvas
	width      int
	height     int
	frame      int
	running    bool
	experiment scene.ExperimentKind

	showVectors bool
	showLines   bool
	showGrid    bool
	showHelp    bool

	hover   field.Vec2
	hoverOK bool
	status  string
}

// NewModel builds the live view around an already-populated scene.
func NewModel(sc *scene.Scene, cfg *config.Config, kind scene.ExperimentKind) Model {
	return Model{
		scene:       sc,
		cfg:         cfg,
		canvas:      NewCanvas(canvasWidth, canvasHeight),
		width:       canvasWidth,
		height:      canvasHeight,
		running:     true,
		experiment:  kind,
		showVectors: true,
		showLines:   true,
		showGrid:    true,
	}
}

func (m Model) frameInterval() time.Duration {
	fps := m.cfg.FrameRate
	if fps <= 0 {
		fps = config.DefaultFrameRate
	}
	return time.Second / time.Duration(fps)
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(m.frameInterval(), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles keys, mouse events and the animation tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case TickMsg:
		if m.running {
			m.frame++
		}
		return m, tea.Tick(m.frameInterval(), func(t time.Time) tea.Msg { return TickMsg(t) })
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "r":
		m.scene.Apply(m.experiment)
		m.status = ""
	case "c":
		m.scene.Clear()
		m.status = ""
	case "a":
		if err := m.scene.AddRandom(); err != nil {
			m.status = err.Error()
		}
	case "e", "tab":
		kinds := scene.Experiments()
		m.experiment = kinds[(int(m.experiment)+1)%len(kinds)]
		m.scene.Apply(m.experiment)
	case "v":
		m.showVectors = !m.showVectors
	case "l":
		m.showLines = !m.showLines
	case "g":
		m.showGrid = !m.showGrid
	case "t":
		names := ThemeNames()
		for i, name := range names {
			if name == CurrentTheme.Name {
				SetTheme(names[(i+1)%len(names)])
				break
			}
		}
	case "+", "=":
		m.adjustHovered(0.5)
	case "-", "_":
		m.adjustHovered(-0.5)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// handleMouse drives the add/drag/remove state machine. Left press on empty
// space drops a charge of alternating sign, left press on a charge grabs
// it, motion moves it, release lets go. Right press deletes, the wheel
// scales magnitude.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	p, ok := m.toScene(msg.X, msg.Y)
	m.hover, m.hoverOK = p, ok
	if !ok {
		if msg.Action == tea.MouseActionRelease {
			m.scene.EndDrag()
		}
		return
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.adjustHovered(0.5)
		return
	case tea.MouseButtonWheelDown:
		m.adjustHovered(-0.5)
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if !m.scene.BeginDrag(p) {
				if err := m.scene.AddAlternating(p); err != nil {
					m.status = err.Error()
				} else {
					m.status = ""
				}
			}
		case tea.MouseButtonRight:
			if err := m.scene.RemoveNearest(p); err != nil && !errors.Is(err, scene.ErrNoCharge) {
				m.status = err.Error()
			}
		}
	case tea.MouseActionMotion:
		if m.scene.Dragging() {
			m.scene.Drag(m.clamp(p))
		}
	case tea.MouseActionRelease:
		m.scene.EndDrag()
	}
}

func (m *Model) adjustHovered(delta float64) {
	if !m.hoverOK {
		return
	}
	if i, ok := m.scene.ChargeAt(m.hover); ok {
		m.scene.AdjustMagnitude(i, delta)
	}
}

func (m *Model) resize(termW, termH int) {
	w := termW - statsStyle.GetWidth() - 2*canvasPadX - 2
	h := termH - 2*canvasPadY - 1
	if w < 20 {
		w = 20
	}
	if h < 10 {
		h = 10
	}
	if w != m.width || h != m.height {
		m.width, m.height = w, h
		m.canvas = NewCanvas(w, h)
	}
}

// toScene maps a terminal cell under the mouse to scene coordinates,
// reporting false outside the canvas area.
func (m Model) toScene(x, y int) (field.Vec2, bool) {
	col, row := x-canvasPadX, y-canvasPadY
	if col < 0 || row < 0 || col >= m.width || row >= m.height {
		return field.Vec2{}, false
	}
	b := m.scene.Bounds()
	return field.Vec2{
		X: (float64(col) + 0.5) * b.Width / float64(m.width),
		Y: (float64(row) + 0.5) * b.Height / float64(m.height),
	}, true
}

// toScreen maps scene coordinates to canvas sub-pixels.
func (m Model) toScreen(p field.Vec2) (int, int) {
	b := m.scene.Bounds()
	return int(p.X * float64(m.width*2) / b.Width),
		int(p.Y * float64(m.height*4) / b.Height)
}

func (m Model) clamp(p field.Vec2) field.Vec2 {
	b := m.scene.Bounds()
	return field.Vec2{
		X: math.Min(math.Max(p.X, 0), b.Width),
		Y: math.Min(math.Max(p.Y, 0), b.Height),
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	if m.showGrid {
		m.drawGrid()
	}
	if m.showVectors {
		m.drawVectors()
	}
	if m.showLines {
		m.drawLines()
	}
	m.drawCharges()
}

func (m *Model) drawGrid() {
	b := m.scene.Bounds()
	sp := m.cfg.Canvas.GridSpacing
	for y := sp / 2; y < b.Height; y += sp {
		for x := sp / 2; x < b.Width; x += sp {
			px, py := m.toScreen(field.Vec2{X: x, Y: y})
			m.canvas.Set(px, py, LayerGrid)
		}
	}
}

func (m *Model) drawVectors() {
	for _, s := range m.scene.Vectors() {
		if s.Mag == 0 {
			continue
		}
		px, py := m.toScreen(s.Pos)
		d := s.E.Unit().Scale(vectorLength(s.Mag))
		tx, ty := m.toScreen(s.Pos.Add(d))
		m.canvas.DrawLine(px, py, tx, ty, LayerVector)
		m.canvas.Set(tx, ty, LayerVector)
	}
}

// vectorLength maps field magnitude to scene units on a log scale, clamped
// so strong-field arrows stay inside their grid cell.
func vectorLength(mag float64) float64 {
	l := 6 + 5*math.Log1p(mag)
	if l > 18 {
		l = 18
	}
	return l
}

func (m *Model) drawLines() {
	for _, line := range m.scene.Lines() {
		pts := line.Points
		if len(pts) < 2 {
			continue
		}
		prevX, prevY := m.toScreen(pts[0])
		for _, p := range pts[1:] {
			x, y := m.toScreen(p)
			m.canvas.DrawLine(prevX, prevY, x, y, LayerLine)
			prevX, prevY = x, y
		}
		if m.running {
			m.drawFlow(line)
		}
	}
}

// drawFlow animates bright markers sliding along each line. Backward-traced
// lines walk their points in reverse so every marker still moves from
// positive toward negative.
func (m *Model) drawFlow(line trace.Line) {
	n := len(line.Points)
	offset := (m.frame / 2) % flowSpacing
	for i := offset; i < n; i += flowSpacing {
		idx := i
		if line.Dir == trace.Backward {
			idx = n - 1 - i
		}
		x, y := m.toScreen(line.Points[idx])
		m.canvas.DrawDot(x, y, 0, LayerFlow)
	}
}

func (m *Model) drawCharges() {
	b := m.scene.Bounds()
	selected := m.scene.Selected()
	for i, c := range m.scene.Charges() {
		px, py := m.toScreen(c.Pos)
		// radius in vertical sub-pixels; DrawCircle doubles x internally
		r := int(c.Radius * float64(m.height*4) / b.Height)
		if r < 1 {
			r = 1
		}
		layer := LayerNegative
		if c.Positive() {
			layer = LayerPositive
		}
		m.canvas.DrawCircle(px, py, r, layer)
		// sign glyph: a cross for positive, a bar for negative
		m.canvas.DrawLine(px-2, py, px+2, py, layer)
		if c.Positive() {
			m.canvas.DrawLine(px, py-1, px, py+1, layer)
		}
		if i == selected {
			m.canvas.DrawCircle(px, py, r+3, LayerSelect)
		}
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.Render(CurrentTheme))

	var s strings.Builder
	s.WriteString(headerStyle.Render("FIELDLAB") + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	s.WriteString(labelStyle.Render("Experiment") + valueStyle.Render(m.experiment.String()) + "\n")
	s.WriteString(labelStyle.Render("Charges") + valueStyle.Render(fmt.Sprintf("%d", len(m.scene.Charges()))) + "\n")
	s.WriteString(labelStyle.Render("Lines") + valueStyle.Render(fmt.Sprintf("%d", len(m.scene.Lines()))) + "\n")
	s.WriteString(labelStyle.Render("Theme") + valueStyle.Render(CurrentTheme.Name) + "\n")

	if m.hoverOK {
		e := m.scene.FieldAt(m.hover)
		v := m.scene.PotentialAt(m.hover)
		s.WriteString("\nCURSOR\n")
		s.WriteString(labelStyle.Render("Position") + valueStyle.Render(fmt.Sprintf("(%.0f, %.0f)", m.hover.X, m.hover.Y)) + "\n")
		s.WriteString(labelStyle.Render("|E|") + valueStyle.Render(fmt.Sprintf("%.3f", e.Norm())) + "\n")
		s.WriteString(labelStyle.Render("Potential") + valueStyle.Render(fmt.Sprintf("%.2f", v)) + "\n")
	}

	if sel := m.scene.Selected(); sel >= 0 {
		c := m.scene.Charges()[sel]
		s.WriteString("\nDRAGGING\n")
		s.WriteString(labelStyle.Render("Charge") + valueStyle.Render(fmt.Sprintf("%+.2f", c.Magnitude)) + "\n")
	}

	if m.status != "" {
		s.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nClick:Add/Drag  RClick:Remove\nWheel:Magnitude SP:Pause\nE:Experiment R:Reset C:Clear\nA:Random V:Vectors L:Lines\nT:Theme Q:Quit ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           MOUSE & KEYBOARD           ║
╠══════════════════════════════════════╣
║  Click    - Add charge / start drag  ║
║  Drag     - Move charge              ║
║  R-Click  - Remove charge            ║
║  Wheel    - Adjust magnitude         ║
║  Space    - Pause/Resume animation   ║
║  E / Tab  - Next experiment          ║
║  R        - Reset experiment         ║
║  C        - Clear all charges        ║
║  A        - Add random charge        ║
║  V / L / G- Toggle vectors/lines/grid║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
