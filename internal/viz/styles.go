package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle = lipgloss.NewStyle().PaddingRight(2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(44)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	statusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	statusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
)

// SignedBar renders v in [-max, max] as a bar growing left or right from a
// center tick.
func SignedBar(v, max float64, width int, pos, neg lipgloss.Style) string {
	half := width / 2
	if max <= 0 || half == 0 {
		return strings.Repeat("─", width)
	}
	n := int(clamp(v/max, -1, 1) * float64(half))

	left := strings.Repeat("░", half)
	right := strings.Repeat("░", width-half)
	if n < 0 {
		left = strings.Repeat("░", half+n) + neg.Render(strings.Repeat("█", -n))
	} else if n > 0 {
		right = pos.Render(strings.Repeat("█", n)) + strings.Repeat("░", width-half-n)
	}
	return left + "│" + right
}

// Bar renders v in [0, max] as a left-anchored bar.
func Bar(v, max float64, width int, style lipgloss.Style) string {
	if max <= 0 {
		return strings.Repeat("░", width)
	}
	filled := int(clamp(v/max, 0, 1) * float64(width))
	return style.Render(strings.Repeat("█", filled)) + strings.Repeat("░", width-filled)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
