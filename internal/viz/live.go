package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/splashsim/internal/dynamo"
	"github.com/san-kum/splashsim/internal/physics"
)

const historyCapacity = 400

var (
	liveHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statsStyle      = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	splashStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
)

type TickMsg time.Time

// LiveModel animates a fall in the terminal, stepping the model in
// (approximate) real time.
type LiveModel struct {
	dyn        *physics.Splash
	integrator dynamo.Integrator
	state      dynamo.State
	initial    dynamo.State
	t          float64
	dt         float64
	fps        int
	running    bool
	contact    bool
	contactT   float64
	depths     []float64
	velocities []float64
}

func NewLive(dyn *physics.Splash, integrator dynamo.Integrator, initState dynamo.State, dt float64, fps int) LiveModel {
	if fps <= 0 {
		fps = 30
	}
	return LiveModel{
		dyn:        dyn,
		integrator: integrator,
		state:      initState.Clone(),
		initial:    initState.Clone(),
		dt:         dt,
		fps:        fps,
		running:    true,
		depths:     make([]float64, 0, historyCapacity),
		velocities: make([]float64, 0, historyCapacity),
	}
}

func (m LiveModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m LiveModel) Init() tea.Cmd {
	return m.tick()
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.state = m.initial.Clone()
			m.t = 0
			m.contact = false
			m.contactT = 0
			m.depths = m.depths[:0]
			m.velocities = m.velocities[:0]
			m.running = true
		}
		return m, nil

	case TickMsg:
		if m.running {
			steps := int(1.0 / (float64(m.fps) * m.dt))
			if steps < 1 {
				steps = 1
			}
			for i := 0; i < steps; i++ {
				m.state = m.integrator.Step(m.dyn, m.state, m.t, m.dt)
				m.t += m.dt
				if !m.contact && m.state[0] >= 0 {
					m.contact = true
					m.contactT = m.t
				}
			}
			m.depths = appendCapped(m.depths, m.state[0])
			m.velocities = appendCapped(m.velocities, m.state[1])
		}
		return m, m.tick()
	}

	return m, nil
}

func appendCapped(hist []float64, v float64) []float64 {
	if len(hist) >= historyCapacity {
		copy(hist, hist[1:])
		hist = hist[:len(hist)-1]
	}
	return append(hist, v)
}

func (m LiveModel) View() string {
	body := m.dyn.Body()

	var sb strings.Builder
	sb.WriteString(liveHeaderStyle.Render(fmt.Sprintf("splashsim live — %s (%s)", body.Name, body.Shape.Kind())))
	sb.WriteString("\n")

	if len(m.depths) >= 2 {
		heights := make([]float64, len(m.depths))
		for i, z := range m.depths {
			heights[i] = -z
		}
		sb.WriteString(asciigraph.Plot(heights,
			asciigraph.Height(12),
			asciigraph.Width(70),
			asciigraph.Caption("height above surface (m)"),
		))
		sb.WriteString("\n")
	}

	z, v := m.state[0], m.state[1]
	a := m.dyn.Acceleration(z, v)
	submerged := 0.0
	if total := body.Shape.TotalVolume(); total > 0 {
		submerged = 100 * m.dyn.SubmergedVolume(z) / total
	}

	var stats strings.Builder
	fmt.Fprintf(&stats, "t      %8.3f s\n", m.t)
	fmt.Fprintf(&stats, "depth  %8.3f m\n", z)
	fmt.Fprintf(&stats, "vel    %8.3f m/s\n", v)
	fmt.Fprintf(&stats, "accel  %8.3f m/s^2\n", a)
	fmt.Fprintf(&stats, "wetted %7.1f %%", submerged)
	sb.WriteString(statsStyle.Render(stats.String()))
	sb.WriteString("\n")

	if m.contact {
		sb.WriteString(splashStyle.Render(fmt.Sprintf("splash! contact at t=%.3f s", m.contactT)))
		sb.WriteString("\n")
	}

	status := "running"
	if !m.running {
		status = "paused"
	}
	sb.WriteString(helpStyle.Render(fmt.Sprintf("[%s]  space: pause  r: reset  q: quit", status)))
	sb.WriteString("\n")

	return sb.String()
}
