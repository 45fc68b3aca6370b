// Package export renders stored runs to standalone SVG documents for
// reports and embedding.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/splashsim/internal/metrics"
	"github.com/san-kum/splashsim/internal/storage"
)

const (
	panelWidth  = 640
	panelHeight = 160
	panelGap    = 24
	marginLeft  = 48
	marginTop   = 28
)

type panel struct {
	label  string
	color  string
	values []float64
}

// TrajectorySVG renders depth, velocity and acceleration as three
// stacked line panels. Contact and peak-deceleration instants are drawn
// as vertical markers when an impact was found.
func TrajectorySVG(traj *storage.Trajectory, impact metrics.ImpactMetrics) string {
	if len(traj.Times) < 2 {
		return ""
	}

	panels := []panel{
		{"depth z (m)", "#61d0ff", traj.Z},
		{"velocity (m/s)", "#7ce38b", traj.V},
		{"acceleration (m/s^2)", "#ff9e64", traj.A},
	}

	totalW := marginLeft + panelWidth + 16
	totalH := marginTop + len(panels)*(panelHeight+panelGap)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, totalW, totalH, totalW, totalH)

	t0 := traj.Times[0]
	tSpan := traj.Times[len(traj.Times)-1] - t0
	if tSpan == 0 {
		tSpan = 1
	}

	for i, p := range panels {
		top := marginTop + i*(panelHeight+panelGap)
		writePanel(&sb, p, traj.Times, t0, tSpan, top)

		if impact.ContactFound {
			writeMarker(&sb, impact.ContactTime, t0, tSpan, top, "#4aa3ff")
			writeMarker(&sb, impact.PeakTime, t0, tSpan, top, "#ff4a6e")
		}
	}

	if impact.ContactFound {
		fmt.Fprintf(&sb, `<text x="%d" y="16" fill="#999999" font-family="monospace" font-size="11">contact t=%.4fs   peak t=%.4fs (%.2f g)</text>
`, marginLeft, impact.ContactTime, impact.PeakTime, impact.PeakAccelG)
	} else {
		fmt.Fprintf(&sb, `<text x="%d" y="16" fill="#999999" font-family="monospace" font-size="11">no water contact</text>
`, marginLeft)
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func writePanel(sb *strings.Builder, p panel, times []float64, t0, tSpan float64, top int) {
	minV, maxV := p.values[0], p.values[0]
	for _, v := range p.values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	span := maxV - minV
	if span == 0 {
		span = 1
	}
	minV -= span * 0.05
	maxV += span * 0.05
	span = maxV - minV

	fmt.Fprintf(sb, `<rect x="%d" y="%d" width="%d" height="%d" fill="none" stroke="#333333"/>
`, marginLeft, top, panelWidth, panelHeight)
	fmt.Fprintf(sb, `<text x="%d" y="%d" fill="#cccccc" font-family="monospace" font-size="11">%s</text>
`, marginLeft, top-6, p.label)

	fmt.Fprintf(sb, `<path fill="none" stroke="%s" stroke-width="1.2" d="M`, p.color)
	for i, v := range p.values {
		x := float64(marginLeft) + (times[i]-t0)/tSpan*float64(panelWidth)
		y := float64(top) + float64(panelHeight) - (v-minV)/span*float64(panelHeight)
		if i == 0 {
			fmt.Fprintf(sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n")
}

func writeMarker(sb *strings.Builder, t, t0, tSpan float64, top int, color string) {
	x := float64(marginLeft) + (t-t0)/tSpan*float64(panelWidth)
	fmt.Fprintf(sb, `<line x1="%.1f" y1="%d" x2="%.1f" y2="%d" stroke="%s" stroke-width="0.8" stroke-dasharray="3,3"/>
`, x, top, x, top+panelHeight, color)
}
