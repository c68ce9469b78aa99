package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/arena/internal/dynamo"
	"github.com/san-kum/arena/internal/logging"
	"github.com/san-kum/arena/internal/metrics"
	"github.com/san-kum/arena/internal/sim"
)

const (
	statusRows      = 3
	historyCapacity = 120
	defaultGIF      = "arena.gif"
)

type TickMsg time.Time

type Option func(*Model)

// WithRelayout sets the body source used by the reset key.
func WithRelayout(fn func() ([]dynamo.Body, error)) Option {
	return func(m *Model) { m.relayout = fn }
}

func WithLogger(l *log.Logger) Option { return func(m *Model) { m.log = l } }

func WithFPS(fps int) Option {
	return func(m *Model) {
		if fps > 0 {
			m.fps = fps
		}
	}
}

func WithGIFPath(path string) Option { return func(m *Model) { m.gifPath = path } }

// Model is the Bubble Tea host: every tick steps the scheduler once, and
// mouse presses and releases are published on the pointer hub.
type Model struct {
	sched    *sim.Scheduler
	hub      *sim.PointerHub
	surface  *Surface
	relayout func() ([]dynamo.Body, error)
	log      *log.Logger
	fps      int
	gifPath  string

	theme    Theme
	styles   styles
	running  bool
	showHelp bool
	dragging bool
	pressAt  dynamo.Vec2
	cursor   dynamo.Vec2
	stats    sim.FrameStats
	energy   []float64
	rec      *Recording
}

// NewModel attaches a fresh pointer hub to sched. The surface must be the
// one the scheduler's world draws on.
func NewModel(sched *sim.Scheduler, surface *Surface, opts ...Option) (Model, error) {
	m := Model{
		sched:   sched,
		hub:     sim.NewPointerHub(),
		surface: surface,
		log:     logging.Discard(),
		fps:     60,
		gifPath: defaultGIF,
		theme:   Themes[0],
		running: true,
		energy:  make([]float64, 0, historyCapacity),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.styles = newStyles(m.theme)
	if err := sched.Attach(m.hub); err != nil {
		return Model{}, err
	}
	return m, nil
}

// Hub is where the model publishes pointer events.
func (m Model) Hub() *sim.PointerHub { return m.hub }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.finishRecording()
			m.sched.Stop()
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "t":
			m.theme = nextTheme(m.theme.Name)
			m.styles = newStyles(m.theme)
		case "g":
			if m.rec != nil {
				m.finishRecording()
			} else {
				m.rec = &Recording{}
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		m.pointer(msg)
	case tea.WindowSizeMsg:
		m.surface.FitTerminal(msg.Width, msg.Height-statusRows)
	case TickMsg:
		if m.running {
			stats, err := m.sched.Step()
			if err != nil {
				return m, tea.Quit
			}
			m.stats = stats
			m.pushEnergy(metrics.KineticEnergyOf(m.sched.World().Bodies()))
		}
		if m.dragging {
			m.surface.Line(m.pressAt, m.cursor)
		}
		if m.rec != nil {
			m.rec.Capture(m.surface.Canvas())
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) pointer(msg tea.MouseMsg) {
	p := m.surface.ToArena(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.dragging, m.pressAt, m.cursor = true, p, p
		m.hub.Publish(sim.Press(p.X, p.Y))
	case tea.MouseActionMotion:
		m.cursor = p
	case tea.MouseActionRelease:
		// terminals often report releases without a button
		m.dragging = false
		m.hub.Publish(sim.Release(p.X, p.Y))
	}
}

func (m *Model) reset() {
	if m.relayout == nil {
		return
	}
	bodies, err := m.relayout()
	if err != nil {
		m.log.Warn("relayout", "err", err, "bodies", len(bodies))
	}
	m.sched.World().Reset(bodies)
	m.energy = m.energy[:0]
}

func (m *Model) pushEnergy(e float64) {
	m.energy = append(m.energy, e)
	if len(m.energy) > historyCapacity {
		m.energy = m.energy[1:]
	}
}

func (m *Model) finishRecording() {
	if m.rec == nil {
		return
	}
	if err := m.rec.Save(m.gifPath); err != nil {
		m.log.Error("save recording", "path", m.gifPath, "err", err)
	} else {
		m.log.Info("recording saved", "path", m.gifPath, "frames", m.rec.Len())
	}
	m.rec = nil
}

// View draws the canvas at the top-left corner so mouse cells map straight
// onto it.
func (m Model) View() string {
	var s strings.Builder
	s.WriteString(m.surface.Canvas().Render())

	status := m.styles.status.Render("RUNNING")
	if !m.running {
		status = m.styles.paused.Render("PAUSED")
	}
	if m.rec != nil {
		status += " " + m.styles.rec.Render(fmt.Sprintf("● REC %d", m.rec.Len()))
	}
	energy := 0.0
	if len(m.energy) > 0 {
		energy = m.energy[len(m.energy)-1]
	}
	s.WriteString(fmt.Sprintf("%s %s %s %s %s %s %s %s %s\n",
		m.styles.title.Render("ARENA"), status,
		m.styles.label.Render("frame"), m.styles.value.Render(fmt.Sprint(m.sched.Frame())),
		m.styles.label.Render("bodies"), m.styles.value.Render(fmt.Sprint(m.sched.World().Len())),
		m.styles.label.Render("contacts"), m.styles.value.Render(fmt.Sprint(m.stats.Contacts)),
		m.styles.label.Render("KE ")+m.styles.value.Render(fmt.Sprintf("%.2f", energy)),
	))
	s.WriteString(m.styles.hint.Render("drag a disc to fling it  SP:Pause R:Reset T:Theme G:Record ?:Help Q:Quit"))

	if m.showHelp {
		s.WriteString("\n" + m.help())
	}
	return s.String()
}

func (m Model) help() string {
	var s strings.Builder
	s.WriteString(`
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Drag     - Slingshot a disc         ║
║  Space    - Pause/Resume simulation  ║
║  R        - Re-layout the grid       ║
║  T        - Cycle themes             ║
║  G        - Toggle GIF recording     ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
`)
	if len(m.energy) > 1 {
		s.WriteString(asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(36), asciigraph.Caption("kinetic energy")))
		s.WriteString("\n")
	}
	return s.String()
}

// Run starts the program with mouse reporting and blocks until it exits.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	m.sched.Stop()
	return err
}
