package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/sim"
)

const (
	canvasWidth     = 80
	canvasHeight    = 30
	historyCapacity = 600

	// Terminal cell of the canvas' top-left corner: one line of padding and
	// one header line above, two columns of padding to the left.
	canvasTop  = 2
	canvasLeft = 2
)

type TickMsg time.Time

// Factory builds a fresh simulator; the live view calls it on reset.
type Factory func() (*sim.Simulator, error)

// Model is the Bubble Tea model of the live view.
type Model struct {
	factory  Factory
	sim      *sim.Simulator
	pool     *sim.SnapshotPool
	title    string
	canvas   *Canvas
	pins     *Canvas
	view     View
	top      View
	camera   *Camera
	theme    Theme
	styles   Styles
	intact   progress.Model
	running  bool
	mode     cloth.Mode
	totals   cloth.StepStats
	initial  int
	history  []float64
	showHelp bool
	err      error
}

func NewModel(title string, factory Factory) (Model, error) {
	m := Model{
		factory: factory,
		title:   title,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		pins:    NewCanvas(canvasWidth, canvasHeight),
		camera:  NewCamera(),
		theme:   Themes[0],
		styles:  NewStyles(Themes[0]),
		intact:  newIntactBar(Themes[0]),
		running: true,
	}
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func newIntactBar(t Theme) progress.Model {
	return progress.New(
		progress.WithScaledGradient(string(t.Error), string(t.Success)),
		progress.WithoutPercentage(),
		progress.WithWidth(20),
	)
}

func (m *Model) reset() error {
	s, err := m.factory()
	if err != nil {
		return err
	}
	m.sim = s
	m.mode = s.Pointer().Mode
	m.totals = cloth.StepStats{}
	m.initial = s.Cloth().NumConstraints()
	m.history = make([]float64, 0, historyCapacity)
	m.pool = sim.NewSnapshotPool(s.Cloth().Cap())

	snap := m.pool.Take(s.Cloth())
	// Fixed top view so mouse positions keep mapping to the same world
	// coordinates while the cloth moves.
	m.top = Fit(ProjectTop, nil, snap)
	m.top.Bounds = m.top.Bounds.Pad(0.1)
	m.pool.Put(snap)
	m.view = m.top
	return nil
}

func (m Model) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case TickMsg:
		if m.running {
			m.step()
		}
		m.camera.Update()
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ptr := m.sim.Pointer()
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case ".":
		if !m.running {
			m.step()
		}
	case "m":
		if m.mode == cloth.ModeGrab {
			m.mode = cloth.ModeCut
		} else {
			m.mode = cloth.ModeGrab
		}
		ptr.Mode = m.mode
	case "p":
		m.sim.Cloth().PinNear(ptr.Pos.Vec2(), 2*ptr.Influence)
	case "u":
		m.sim.Cloth().UnpinNear(ptr.Pos.Vec2(), 2*ptr.Influence)
	case "v":
		m.setProjection(m.view.Projection.Next())
	case "left":
		m.camera.Rotate(0, -0.1)
	case "right":
		m.camera.Rotate(0, 0.1)
	case "up":
		m.camera.Rotate(-0.1, 0)
	case "down":
		m.camera.Rotate(0.1, 0)
	case "+", "=":
		m.camera.ZoomIn()
	case "-", "_":
		m.camera.ZoomOut()
	case "t":
		m.theme = nextTheme(m.theme)
		m.styles = NewStyles(m.theme)
		m.intact = newIntactBar(m.theme)
	case "r":
		proj := m.view.Projection
		if err := m.reset(); err != nil {
			m.err = err
		}
		m.setProjection(proj)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) setProjection(p Projection) {
	if p == ProjectTop {
		m.view = m.top
		return
	}
	m.view = View{Projection: p, Camera: m.camera}
}

// handleMouse translates terminal cells into world coordinates. Only the
// top projection can be pointed at; the others lose the depth axis.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	ptr := m.sim.Pointer()
	pos, ok := m.view.World(m.canvas, (msg.X-canvasLeft)*2+1, (msg.Y-canvasTop)*4+2)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !ok {
			return
		}
		ptr.Pos = mgl64.Vec3{pos[0], pos[1], ptr.Pos[2]}
		ptr.Prev = ptr.Pos
		ptr.Mode = m.mode
		ptr.Pressed = true
	case tea.MouseActionMotion:
		if ok {
			ptr.MoveTo(pos[0], pos[1])
		}
	case tea.MouseActionRelease:
		ptr.Pressed = false
	}
}

func (m *Model) step() {
	st := m.sim.Step()
	m.totals.Add(st)

	// A pointer that has not moved since the last frame must not keep
	// dragging the cloth.
	ptr := m.sim.Pointer()
	ptr.MoveTo(ptr.Pos[0], ptr.Pos[1])

	if len(m.history) >= historyCapacity {
		m.history = m.history[1:]
	}
	m.history = append(m.history, float64(m.sim.Cloth().NumConstraints()))
}

func (m *Model) draw() {
	c := m.sim.Cloth()
	m.canvas.Clear()
	m.pins.Clear()

	snap := m.pool.Take(c)
	defer m.pool.Put(snap)

	if m.view.Projection != ProjectTop {
		m.view = Fit(m.view.Projection, m.camera, snap)
	}
	DrawCloth(m.canvas, m.view, c)

	pinned := make([]cloth.Sample, 0, c.NumPinned())
	for _, s := range snap {
		if s.Pinned {
			pinned = append(pinned, s)
		}
	}
	DrawSamples(m.pins, m.view, pinned)
}

func (m Model) View() string {
	if m.err != nil {
		return m.styles.Bad.Render(fmt.Sprintf("error: %v", m.err)) + "\n"
	}
	m.draw()

	header := m.styles.Title.Render(strings.ToUpper(m.title))
	plot := compose([]*Canvas{m.canvas, m.pins}, []lipgloss.Style{m.styles.Cloth, m.styles.Pinned})
	canvasView := lipgloss.NewStyle().Padding(1, 2, 0, 2).Render(header + "\n" + plot)

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.styles.Panel.Render(m.panel()))
}

func (m Model) panel() string {
	c := m.sim.Cloth()
	ptr := m.sim.Pointer()
	row := func(label, value string) string {
		return m.styles.Label.Render(label) + m.styles.Value.Render(value) + "\n"
	}

	var s strings.Builder
	if m.running {
		s.WriteString(m.styles.Running.Render("RUNNING"))
	} else {
		s.WriteString(m.styles.Paused.Render("PAUSED"))
	}
	s.WriteString("\n\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("Constraints"))
		s.WriteString(m.styles.Graph.Render(chart) + "\n\n")
	}

	intact := 1.0
	if m.initial > 0 {
		intact = float64(c.NumConstraints()) / float64(m.initial)
	}
	s.WriteString(m.styles.Label.Render("Intact") + m.intact.ViewAs(intact) + "\n")
	s.WriteString(row("Frame", fmt.Sprintf("%d", c.Frame())))
	s.WriteString(row("Particles", fmt.Sprintf("%d / %d", c.Len(), c.Cap())))
	s.WriteString(row("Links", fmt.Sprintf("%d", c.NumConstraints())))
	s.WriteString(row("Pinned", fmt.Sprintf("%d", c.NumPinned())))
	s.WriteString(row("Grabbed", fmt.Sprintf("%d", len(c.Grabbed()))))
	s.WriteString(row("Torn", fmt.Sprintf("%d", m.totals.Torn)))
	s.WriteString(row("Cut", fmt.Sprintf("%d", m.totals.Cut)))
	s.WriteString(row("Pruned", fmt.Sprintf("%d", m.totals.Pruned)))
	if m.totals.Anomalies > 0 {
		s.WriteString(m.styles.Label.Render("Anomalies") + m.styles.Bad.Render(fmt.Sprintf("%d", m.totals.Anomalies)) + "\n")
	}
	s.WriteString(row("Pointer", fmt.Sprintf("%s (%.0f, %.0f)", m.mode, ptr.Pos[0], ptr.Pos[1])))
	s.WriteString(row("View", m.view.Projection.String()))
	s.WriteString(row("Theme", m.theme.Name))

	if m.showHelp {
		s.WriteString(m.styles.Hint.Render("\nDrag:Grab/Cut  M:Mode  P/U:Pin/Unpin\nV:View  ←→↑↓:Orbit  +/-:Zoom\nSP:Pause  .:Step  T:Theme  R:Reset  Q:Quit"))
	} else {
		s.WriteString(m.styles.Hint.Render("\nSP:Pause R:Reset M:Mode Q:Quit ?:Help"))
	}
	return s.String()
}

// Run starts the live view full screen with mouse tracking.
func Run(title string, factory Factory) error {
	m, err := NewModel(title, factory)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}
