package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/lmpdump/internal/histo"
)

const (
	defaultWidth  = 60
	defaultHeight = 22
	spinStep      = 0.03
)

type TickMsg time.Time

// Viewer is an interactive view of a velocity histogram matrix drawn as 3D
// bars. It can spin the scene and step through the rows.
type Viewer struct {
	matrix    *histo.Matrix
	energies  []float64
	component string
	camera    *Camera
	canvas    *Canvas
	row       int
	spinning  bool
	showHelp  bool
}

// NewViewer builds a viewer over m. energies, when not empty, is plotted
// in the side panel.
func NewViewer(m *histo.Matrix, energies []float64, component string) Viewer {
	return Viewer{
		matrix:    m,
		energies:  energies,
		component: component,
		camera:    NewCamera(),
		canvas:    NewCanvas(defaultWidth, defaultHeight),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (v Viewer) Init() tea.Cmd { return tick() }

// Update handles key bindings and the spin timer.
func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		rows, _ := v.matrix.Dims()
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return v, tea.Quit
		case " ":
			v.spinning = !v.spinning
		case "r":
			v.camera.Reset()
		case "[", "left", "h":
			if v.row > 0 {
				v.row--
			}
		case "]", "right", "l":
			if v.row < rows-1 {
				v.row++
			}
		case "x":
			v.camera.RotateX(0.1)
		case "X":
			v.camera.RotateX(-0.1)
		case "y":
			v.camera.RotateY(0.1)
		case "Y":
			v.camera.RotateY(-0.1)
		case "z":
			v.camera.RotateZ(0.1)
		case "Z":
			v.camera.RotateZ(-0.1)
		case "+", "=":
			v.camera.ZoomIn()
		case "-", "_":
			v.camera.ZoomOut()
		case "t":
			NextTheme()
		case "?":
			v.showHelp = !v.showHelp
		}
	case tea.WindowSizeMsg:
		// leave room for the side panel
		w, h := msg.Width-50, msg.Height-4
		if w >= 20 && h >= 8 {
			v.canvas = NewCanvas(w, h)
		}
	case TickMsg:
		if v.spinning {
			v.camera.RotateY(spinStep)
		}
		return v, tick()
	}
	return v, nil
}

// View renders the bars next to a panel describing the selected row.
func (v Viewer) View() string {
	v.canvas.Clear()
	Render3D(v.canvas, BarsWireframe(v.matrix), v.camera)
	bars := lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Render(v.canvas.String())
	view := canvasStyle.Render(bars)

	var s strings.Builder
	s.WriteString(Title(fmt.Sprintf("%s DISTRIBUTION", strings.ToUpper(v.component))) + "\n\n")

	rows, cols := v.matrix.Dims()
	if rows > 0 {
		s.WriteString(MetricLabel.Render("Timestep") + MetricValue.Render(v.matrix.Label(v.row)) + "\n")
		s.WriteString(MetricLabel.Render("Row") + MetricValue.Render(fmt.Sprintf("%d/%d", v.row+1, rows)) + "\n")
		s.WriteString(MetricLabel.Render("Bins") + MetricValue.Render(fmt.Sprintf("%d", cols)) + "\n")
		s.WriteString(MetricLabel.Render("Range") + MetricValue.Render(fmt.Sprintf("%.3g .. %.3g",
			v.matrix.Dividers[0], v.matrix.Dividers[cols])) + "\n\n")
		s.WriteString(SparklineChart(v.matrix.Rows[v.row], cols) + "\n\n")
	}

	if len(v.energies) > 1 {
		chart := asciigraph.Plot(v.energies, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("total energy"))
		s.WriteString(chart + "\n\n")
	}

	status := "PAUSED"
	if v.spinning {
		status = "SPINNING"
	}
	s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Render(status) + "\n")
	s.WriteString(Separator(30) + "\n")
	s.WriteString(KeyHint.Render("[ ]:Row  SP:Spin  R:Reset\nx/y/z:Rotate  +/-:Zoom\nT:Theme  ?:Help  Q:Quit"))

	panel := panelStyle.BorderForeground(CurrentTheme.Muted).Render(s.String())
	layout := lipgloss.JoinHorizontal(lipgloss.Top, view, panel)
	if v.showHelp {
		return helpText + "\n\n" + layout
	}
	return layout
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  [ / ]    - Previous / next row      ║
║  Space    - Toggle spinning          ║
║  x y z    - Rotate (shift reverses)  ║
║  + / -    - Zoom in / out            ║
║  R        - Reset camera             ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts the viewer in the alternate screen and blocks until it quits.
func Run(m *histo.Matrix, energies []float64, component string) error {
	p := tea.NewProgram(NewViewer(m, energies, component), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
