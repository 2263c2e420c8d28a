package viz

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/entropylab/internal/dynamo"
	"github.com/san-kum/entropylab/internal/metrics"
	"github.com/san-kum/entropylab/internal/sim"
	"github.com/san-kum/entropylab/internal/timeline"
)

const (
	canvasWidth     = 60
	canvasHeight    = 18
	historyCapacity = 200
	tsWidth         = 30
	tsHeight        = 6

	tempStep     = 10.0
	noiseStep    = 0.1
	particleStep = 20

	gifPath = "entropylab.gif"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(46)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// panel holds what the throttled presenter last delivered. The canvas is
// redrawn every frame; everything on the panel changes at most once per
// throttle interval.
type panel struct {
	snap        dynamo.Snapshot
	updates     int
	entropy     []float64
	temperature []float64
}

func (p *panel) Present(s dynamo.Snapshot) {
	p.snap = s
	p.updates++
	p.entropy = appendCapped(p.entropy, s.Sample.Entropy)
	p.temperature = appendCapped(p.temperature, s.Sample.Temperature)
}

func (p *panel) reset() {
	*p = panel{}
}

func appendCapped(xs []float64, v float64) []float64 {
	xs = append(xs, v)
	if len(xs) > historyCapacity {
		xs = xs[1:]
	}
	return xs
}

type Options struct {
	FPS    int
	Theme  string
	Events []timeline.Event
	Clock  sim.Clock
}

// Model is the live TUI. Each tick runs one simulator frame with the current
// controls.
type Model struct {
	sim      *sim.Simulator
	params   dynamo.Params
	initial  dynamo.Params
	canvas   *Canvas
	panel    *panel
	browser  *Browser
	recorder *Recorder
	clock    sim.Clock
	interval time.Duration
	running  bool
	showHelp bool
}

func NewModel(s *sim.Simulator, p dynamo.Params, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Events == nil {
		opts.Events = timeline.Events()
	}
	if opts.Theme != "" {
		SetTheme(opts.Theme)
	}

	pn := &panel{}
	s.AddPresenter(pn)

	return Model{
		sim:      s,
		params:   p,
		initial:  p,
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		panel:    pn,
		browser:  NewBrowser(opts.Events),
		clock:    opts.Clock,
		interval: time.Second / time.Duration(opts.FPS),
		running:  true,
	}
}

func (m Model) Params() dynamo.Params { return m.params }
func (m Model) Running() bool         { return m.running }
func (m Model) Updates() int          { return m.panel.updates }
func (m Model) Browser() *Browser     { return m.browser }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.browser.Active() {
			return m.updateBrowser(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "up", "k":
			m.params.Temperature += tempStep
		case "down", "j":
			m.params.Temperature = max(0, m.params.Temperature-tempStep)
		case "right", "l":
			m.params.Noise += noiseStep
		case "left", "h":
			m.params.Noise = max(0, m.params.Noise-noiseStep)
		case "+", "=":
			m.params.Count += particleStep
		case "-", "_":
			m.params.Count = max(0, m.params.Count-particleStep)
		case "t":
			NextTheme()
		case "y":
			m.browser.Toggle()
		case "g":
			m.toggleRecording()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.sim.Frame(m.params, m.clock())
		}
		m.draw()
		if m.recorder != nil {
			m.recorder.Capture(m.canvas)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) updateBrowser(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "right", "l", "tab":
		m.browser.Next()
	case "left", "h", "shift+tab":
		m.browser.Prev()
	case "enter":
		m.browser.Expand()
	case "esc", "y":
		m.browser.Toggle()
	}
	return m, nil
}

func (m *Model) toggleRecording() {
	if m.recorder == nil {
		m.recorder = NewRecorder()
		return
	}
	if err := m.recorder.Save(gifPath); err != nil {
		log.Printf("save gif: %v", err)
	} else {
		log.Printf("saved %d frames to %s", m.recorder.Len(), gifPath)
	}
	m.recorder = nil
}

// reset restores the starting controls and respawns the ensemble.
func (m *Model) reset() {
	m.params = m.initial
	m.sim.Reset()
	m.panel.reset()
}

func (m *Model) draw() {
	m.canvas.Clear()
	cw, ch := m.canvas.SubSize()
	m.canvas.DrawLine(0, 0, cw-1, 0)
	m.canvas.DrawLine(0, ch-1, cw-1, ch-1)
	m.canvas.DrawLine(0, 0, 0, ch-1)
	m.canvas.DrawLine(cw-1, 0, cw-1, ch-1)
	DrawParticles(m.canvas, m.sim.Config().Bounds, m.sim.Ensemble())
}

func (m Model) status() string {
	switch {
	case m.recorder != nil:
		return StatusRecording.Render("● REC")
	case !m.running:
		return StatusPaused.Render("PAUSED")
	default:
		return StatusRunning.Render("RUNNING")
	}
}

func stat(label, value string) string {
	return MetricLabel.Render(label) + MetricValue.Render(value) + "\n"
}

func (m Model) View() string {
	snap := m.panel.snap
	canvasView := canvasStyle.Render(lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Render(m.canvas.String()))

	var s strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Secondary).Render("ENTROPY LAB")
	s.WriteString(title + "  " + m.status() + "\n\n")

	s.WriteString(stat("T", fmt.Sprintf("%.0f K", snap.Sample.Temperature)))
	s.WriteString(stat("ΔT", fmt.Sprintf("%.0f K", snap.DeltaT)))
	if metrics.HasEfficiency(snap.Sample.Temperature) {
		s.WriteString(stat("η", fmt.Sprintf("%.1f %%", snap.Efficiency)))
	}
	s.WriteString(stat("S", fmt.Sprintf("%.3f", snap.Sample.Entropy)))
	s.WriteString(MetricLabel.Render("") + ProgressBar(snap.Sample.Entropy, 20) + "\n")
	s.WriteString(stat("N", fmt.Sprintf("%d", snap.Sample.Count)))
	s.WriteString(stat("noise", fmt.Sprintf("%.1f", snap.Noise)))
	s.WriteString(stat("frame", fmt.Sprintf("%d", snap.Frame)))

	if len(m.panel.entropy) > 1 {
		chart := asciigraph.Plot(m.panel.entropy,
			asciigraph.Height(5), asciigraph.Width(30),
			asciigraph.LowerBound(0), asciigraph.UpperBound(1),
			asciigraph.Precision(2), asciigraph.Caption("Entropy S"))
		s.WriteString(graphStyle.Render(chart) + "\n")
		s.WriteString(MetricLabel.Render("T trend") + SparklineChart(m.panel.temperature, 30) + "\n")
	}

	ts := NewCanvas(tsWidth, tsHeight)
	DrawTS(ts, snap.Sample.Entropy, snap.Sample.Temperature)
	s.WriteString("\nT-S\n")
	s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Secondary).Render(strings.TrimRight(ts.String(), "\n")) + "\n")

	s.WriteString("\nOCCUPANCY\n")
	s.WriteString(Heatmap(snap.Occupancy, snap.Cols, snap.Rows, snap.Sample.Count) + "\n")

	s.WriteString(helpStyle.Render("↑↓:T ±10  ←→:noise ±0.1  +-:N ±20\nSP:Pause R:Reset T:Theme Y:Timeline\nG:Record ?:Help Q:Quit"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	mainView = lipgloss.JoinVertical(lipgloss.Left, mainView, canvasStyle.Render(m.browser.View()))

	if popup := m.browser.Popup(); popup != "" {
		return popup + "\n\n" + mainView
	}
	if m.showHelp {
		return GlassPanel.Render(helpText) + "\n\n" + mainView
	}
	return mainView
}

const helpText = `KEYBOARD SHORTCUTS

Space    Pause/Resume
R        Reset controls and particles
Up/K     Temperature +10 K
Down/J   Temperature -10 K
Right/L  Noise +0.1
Left/H   Noise -0.1
+ / -    Particles ±20
T        Cycle themes
Y        Timeline (←→ select, Enter details, Esc close)
G        Toggle GIF recording
?        Toggle this help
Q        Quit`
