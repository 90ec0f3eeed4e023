package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	label = lipgloss.NewStyle().Width(16)

	help = lipgloss.NewStyle().Italic(true).MarginTop(1)
)

func panelStyle() lipgloss.Style {
	return panel.BorderForeground(CurrentTheme.Muted)
}

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Primary)
}

func labelStyle() lipgloss.Style {
	return label.Foreground(CurrentTheme.Muted)
}

func valueStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Text)
}

func helpStyle() lipgloss.Style {
	return help.Foreground(CurrentTheme.Muted)
}

// statusStyle colors a run status: landed green, failed red, anything else amber.
func statusStyle(status string) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch status {
	case "landed":
		return s.Foreground(CurrentTheme.Success)
	case "failed":
		return s.Foreground(CurrentTheme.Error)
	default:
		return s.Foreground(CurrentTheme.Warning)
	}
}

func field(name, value string) string {
	return labelStyle().Render(name) + valueStyle().Render(value)
}

// ProgressBar renders a gauge filled to fraction. Low readings are red.
func ProgressBar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(fraction * float64(width))
	filled = max(0, min(width, filled))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	color := CurrentTheme.Error
	switch {
	case fraction > 0.5:
		color = CurrentTheme.Success
	case fraction > 0.2:
		color = CurrentTheme.Warning
	}
	return lipgloss.NewStyle().Foreground(color).Render(bar)
}

// Sparkline renders values as a row of block glyphs, resampled to width.
func Sparkline(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	n := min(width, len(values))
	for i := 0; i < n; i++ {
		v := values[i*len(values)/n]
		idx := int((v - lo) / span * float64(len(chars)-1))
		b.WriteRune(chars[max(0, min(len(chars)-1, idx))])
	}
	return lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Render(b.String())
}

func separator(width int) string {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Render(strings.Repeat("─", max(0, width)))
}
