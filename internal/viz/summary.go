package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/splashsim/internal/metrics"
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(26)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
)

// Summary renders the per-run result block: object identity, the
// impact events and the velocity figures.
func Summary(object, shape, immersion string, impact metrics.ImpactMetrics) string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render(fmt.Sprintf("%s (%s, %s immersion)", object, shape, immersion)))
	sb.WriteString("\n\n")

	row := func(label, format string, args ...any) {
		sb.WriteString(labelStyle.Render(label))
		sb.WriteString(valueStyle.Render(fmt.Sprintf(format, args...)))
		sb.WriteString("\n")
	}

	if impact.ContactFound {
		row("impact duration", "%.6f s", impact.ImpactDuration)
		row("max depth", "%.3f m", impact.MaxDepth)
		row("depth at peak decel", "%.3f m", impact.DepthAtPeak)
		row("peak deceleration", "%.2f m/s^2 (%.2f g)", impact.PeakAccel, impact.PeakAccelG)
		row("water contact", "t = %.4f s", impact.ContactTime)
	} else {
		sb.WriteString(warningStyle.Render("no water contact within the horizon"))
		sb.WriteString("\n")
		row("max depth", "%.3f m", impact.MaxDepth)
	}

	row("max velocity", "%.3f m/s", impact.MaxVelocity)
	row("terminal velocity", "%.3f m/s (%.2f%% reached)", impact.TerminalVelocity, impact.PercentTerminal)

	if impact.UnderResolved {
		sb.WriteString("\n")
		sb.WriteString(warningStyle.Render("warning: output grid too coarse for the impact transient; event times are approximate"))
		sb.WriteString("\n")
	}

	return panelStyle.Render(sb.String())
}
