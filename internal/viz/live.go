package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pushcart/internal/control"
	"github.com/san-kum/pushcart/internal/dynamo"
	"github.com/san-kum/pushcart/internal/histogram"
	"github.com/san-kum/pushcart/internal/logging"
	"github.com/san-kum/pushcart/internal/sim"
	"go.uber.org/zap"
)

const (
	canvasWidth     = 72
	canvasHeight    = 20
	headerRows      = 2
	historyCapacity = 240
	tapDuration     = 0.25
	tapDepth        = 0.9
)

type TickMsg time.Time

type tap struct {
	edge  control.Edge
	until float64
}

// Model is the Bubble Tea model. It owns the frame clock and the pointer;
// all physics lives in the session.
type Model struct {
	session    *sim.Session
	pointer    *control.Manual
	canvas     *Canvas
	theme      Theme
	fps        int
	running    bool
	showHelp   bool
	last       time.Time
	tap        tap
	frame      sim.Frame
	velocity   *Gauge
	energy     *Gauge
	velHistory []float64
	logger     *zap.Logger
}

func NewModel(session *sim.Session, fps int, logger *zap.Logger) Model {
	if fps <= 0 {
		fps = 60
	}
	cfg := session.Config()
	// a full-depth push held for one second sets the initial dial range
	vmax := cfg.MaxForce / cfg.Mass
	return Model{
		session:    session,
		pointer:    control.NewManual(),
		canvas:     NewCanvas(canvasWidth, canvasHeight),
		theme:      ThemeClassic,
		fps:        fps,
		running:    true,
		frame:      session.Last(),
		velocity:   NewGauge(fps, vmax),
		energy:     NewGauge(fps, 0.5*cfg.Mass*vmax*vmax),
		velHistory: make([]float64, 0, historyCapacity),
		logger:     logging.Or(logger),
	}
}

// WithTheme returns m drawn in the named theme.
func (m Model) WithTheme(name string) Model {
	m.theme = GetTheme(name)
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.logger.Info("session ended",
				zap.Float64("elapsed", m.session.Elapsed()),
				zap.Int("samples", m.session.Log().Len()))
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "a":
			m.tap = tap{edge: control.EdgeLeft, until: m.session.Elapsed() + tapDuration}
		case "d":
			m.tap = tap{edge: control.EdgeRight, until: m.session.Elapsed() + tapDuration}
		case "t":
			m.theme = NextTheme(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		if x, y, ok := m.toSurface(msg.X, msg.Y); ok {
			m.pointer.Move(x, y)
		} else {
			m.pointer.Leave()
		}
	case TickMsg:
		now := time.Time(msg)
		dt := 0.0
		if !m.last.IsZero() {
			dt = now.Sub(m.last).Seconds()
		}
		m.last = now
		if m.running {
			m.step(dt)
		}
		return m, m.tick()
	}
	return m, nil
}

// currentPointer prefers a keyboard tap over the mouse.
func (m *Model) currentPointer() dynamo.Pointer {
	if m.session.Elapsed() < m.tap.until {
		c := m.session.Cart()
		y := (c.Top + c.Bottom) / 2
		offset := tapDepth * c.ZoneWidth()
		if m.tap.edge == control.EdgeLeft {
			return dynamo.Pointer{X: c.Left() + offset, Y: y, Active: true}
		}
		return dynamo.Pointer{X: c.Right() - offset, Y: y, Active: true}
	}
	return m.pointer.Pointer(m.session.Kinematics(), m.session.Elapsed())
}

func (m *Model) step(dt float64) {
	m.frame = m.session.Tick(m.currentPointer(), dt)
	if !m.frame.Stepped {
		return
	}

	v := m.frame.Kinematics.Velocity
	m.velocity.Grow(v)
	m.velocity.Update(v)
	m.energy.Grow(m.frame.Energy)
	m.energy.Update(m.frame.Energy)

	m.velHistory = append(m.velHistory, v)
	if len(m.velHistory) > historyCapacity {
		m.velHistory = m.velHistory[1:]
	}
}

func (m *Model) reset() {
	m.session.Reset()
	m.frame = m.session.Last()
	m.tap = tap{}
	m.velocity.Reset()
	m.energy.Reset()
	m.velHistory = m.velHistory[:0]
	m.logger.Info("session reset")
}

// toSurface maps a terminal cell to surface coordinates. Rows that overlap
// the cart's band map into the band so a one-row cart stays pushable.
func (m Model) toSurface(col, row int) (float64, float64, bool) {
	row -= headerRows
	if col < 0 || row < 0 || col >= m.canvas.Width || row >= m.canvas.Height {
		return 0, 0, false
	}

	cfg := m.session.Config()
	pw, ph := float64(m.canvas.PixelWidth()), float64(m.canvas.PixelHeight())
	x := (float64(col*2) + 1) / pw * cfg.TrackWidth
	lo := float64(row*4) / ph * cfg.SurfaceHeight
	hi := float64(row*4+4) / ph * cfg.SurfaceHeight

	c := m.session.Cart()
	top, bottom := math.Max(lo, c.Top), math.Min(hi, c.Bottom)
	if top <= bottom {
		return x, (top + bottom) / 2, true
	}
	return x, (lo + hi) / 2, true
}

func (m Model) px(x float64) int {
	return int(math.Floor(x / m.session.Config().TrackWidth * float64(m.canvas.PixelWidth())))
}

func (m Model) py(y float64) int {
	return int(math.Floor(y / m.session.Config().SurfaceHeight * float64(m.canvas.PixelHeight())))
}

// graph geometry in sub-pixels: bottom edge and zero line
func (m Model) graphBounds() (bottom, base int) {
	bottom = m.canvas.PixelHeight()/2 - 2
	return bottom, bottom / 2
}

func (m Model) valueY(v float64) int {
	bottom, base := m.graphBounds()
	half := float64(bottom-base) - 1
	return base - int(math.Round(clamp(v/m.session.Config().MaxForce, -1, 1)*half))
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.drawHistogram()
	m.drawTrack()
}

func (m *Model) drawHistogram() {
	bottom, base := m.graphBounds()
	pw := m.canvas.PixelWidth()
	m.canvas.StrokeRect(0, 0, pw-1, bottom)
	for x := 0; x < pw; x += 4 {
		m.canvas.Set(x, base)
	}

	log := m.session.Log()
	for _, seg := range log.Segments() {
		m.fillSegment(seg, base)
	}

	samples := log.Samples()
	for i := 1; i < len(samples); i++ {
		a, b := samples[i-1], samples[i]
		m.canvas.DrawLine(m.px(a.Position), m.valueY(a.Value), m.px(b.Position), m.valueY(b.Value))
	}

	last := log.Last()
	cx, cy := m.px(last.Position), m.valueY(last.Value)
	m.canvas.FillRect(cx-1, cy-1, cx+1, cy+1)
}

// fillSegment shades the area between the curve and the zero line. Negative
// work is hatched on alternate columns to tell it apart without color.
func (m *Model) fillSegment(seg histogram.Segment, base int) {
	for i := 1; i < len(seg.Samples); i++ {
		a, b := seg.Samples[i-1], seg.Samples[i]
		x0, x1 := m.px(a.Position), m.px(b.Position)
		y0, y1 := m.valueY(a.Value), m.valueY(b.Value)
		if x0 > x1 {
			x0, x1, y0, y1 = x1, x0, y1, y0
		}
		for x := x0; x <= x1; x++ {
			if !seg.Positive && x%2 != 0 {
				continue
			}
			y := y0
			if x1 != x0 {
				y = y0 + (y1-y0)*(x-x0)/(x1-x0)
			}
			m.canvas.DrawLine(x, base, x, y)
		}
	}
}

func (m *Model) drawTrack() {
	cfg := m.session.Config()
	c := m.session.Cart()
	pw := m.canvas.PixelWidth()

	ground := m.py(cfg.Ground())
	m.canvas.FillRect(0, ground+1, pw-1, ground+2)

	top := m.py(c.Top)
	if top > ground-4 {
		top = ground - 4
	}
	m.canvas.FillRect(m.px(c.Left()), top, m.px(c.Right()), ground-1)

	p := m.currentPointer()
	if p.Active {
		x, y := m.px(p.X), m.py(p.Y)
		m.canvas.DrawLine(x, y-6, x, y)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()

	cfg := m.session.Config()
	rows := strings.Split(strings.TrimRight(m.canvas.String(), "\n"), "\n")
	graphRows := m.canvas.Height / 2
	pos := lipgloss.NewStyle().Foreground(m.theme.Positive)
	cart := lipgloss.NewStyle().Foreground(m.theme.Cart)
	for i := range rows {
		if i < graphRows {
			rows[i] = pos.Render(rows[i])
		} else {
			rows[i] = cart.Render(rows[i])
		}
	}

	half := cfg.Scale / 2
	axis := fmt.Sprintf("%-*s%s%*s",
		m.canvas.Width/2-3, fmt.Sprintf("-%.2f", half),
		"0.00",
		m.canvas.Width-m.canvas.Width/2-1, fmt.Sprintf("%.2f", half))

	status := statusRunning.Render("RUNNING")
	if !m.running {
		status = statusPaused.Render("PAUSED")
	}
	header := headerStyle.Render("PUSH CART LEFT AND RIGHT") + "  " + status
	canvasView := header + "\n\n" + canvasStyle.Render(strings.Join(rows, "\n")) + "\n" + lipgloss.NewStyle().Foreground(m.theme.Muted).Render(axis)

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(m.stats()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Mouse    - Push either end of cart  ║
║  A / D    - Tap from left / right    ║
║  Space    - Pause/Resume             ║
║  R        - Reset session            ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func (m Model) stats() string {
	cfg := m.session.Config()
	k := m.frame.Kinematics
	pos := lipgloss.NewStyle().Foreground(m.theme.Positive)
	neg := lipgloss.NewStyle().Foreground(m.theme.Negative)

	var s strings.Builder
	s.WriteString(headerStyle.Render("CART") + "\n\n")
	if len(m.velHistory) > 1 {
		chart := asciigraph.Plot(m.velHistory,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("velocity (m/s)"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.session.Elapsed()))
	row("Position", fmt.Sprintf("%.2f m", (k.Position-cfg.TrackWidth/2)/cfg.DistanceScale()))
	row("Velocity", fmt.Sprintf("%.2f m/s", k.Velocity))
	row("Accel", fmt.Sprintf("%.2f m/s²", k.Acceleration))
	row("Force", fmt.Sprintf("%.2f N", m.frame.Force))
	row("|F|cos(θ)", fmt.Sprintf("%.2f N", m.frame.Effective))
	row("Energy", fmt.Sprintf("%.2f J", m.frame.Energy))
	row("Samples", fmt.Sprintf("%d", m.session.Log().Len()))

	s.WriteString("\n")
	s.WriteString(labelStyle.Render("Force") + SignedBar(m.frame.Force, cfg.MaxForce, 24, pos, neg) + "\n")
	s.WriteString(labelStyle.Render("Velocity") + SignedBar(m.velocity.Value(), m.velocity.Max, 24, pos, neg) + "\n")
	s.WriteString(labelStyle.Render("Energy") + Bar(m.energy.Value(), m.energy.Max, 25, pos) + "\n")

	s.WriteString(helpStyle.Render("─────────────────────\nMouse:Push A/D:Tap SP:Pause\nR:Reset T:Theme ?:Help Q:Quit"))
	return s.String()
}

// Run starts the interactive program with mouse motion reporting.
func Run(session *sim.Session, fps int, theme string, logger *zap.Logger) error {
	m := NewModel(session, fps, logger).WithTheme(theme)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
