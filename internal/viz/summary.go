package viz

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/landsim/internal/experiment"
	"github.com/san-kum/landsim/internal/landing"
	"github.com/san-kum/landsim/internal/storage"
)

func num(v float64, unit string) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "n/a"
	}
	if unit == "" {
		return fmt.Sprintf("%.4f", v)
	}
	return fmt.Sprintf("%.4f %s", v, unit)
}

// ReportSummary renders the outcome of a landing that was just flown.
func ReportSummary(rep *landing.Report) string {
	res := rep.Result
	lines := []string{
		titleStyle().Render(strings.ToUpper(rep.Strategy) + " LANDING"),
		field("status", statusStyle(res.Status.String()).Render(res.Status.String())),
		field("touchdown speed", num(res.Speed(), "m/s")),
		field("flight time", num(res.Final.Time, "s")),
		field("fuel used", num(res.FuelUsed(), "kg")),
		field("fuel left", num(res.Final.FuelMass, "kg")),
		field("steps", fmt.Sprint(res.Steps)),
	}
	if res.FuelExhausted {
		lines = append(lines, field("fuel exhausted", num(res.FuelExhaustedAt, "s")))
	}

	lines = append(lines, separator(36))
	switch rep.Strategy {
	case landing.StrategyHoverslam:
		ign := num(rep.Ignition, "s")
		if rep.Snapped {
			ign += " (bracket end)"
		}
		lines = append(lines, field("ignition", ign))
	case landing.StrategyPID:
		if len(rep.Gains) == 3 {
			lines = append(lines, field("gains", fmt.Sprintf("Kp=%.4f Ki=%.4f Kd=%.4f", rep.Gains[0], rep.Gains[1], rep.Gains[2])))
		}
		lines = append(lines, field("cost", num(rep.Cost, "")))
		if rep.PID != nil {
			lines = append(lines, field("last terms", fmt.Sprintf("P=%.3f I=%.3f D=%.3f", rep.PID.P, rep.PID.I, rep.PID.D)))
		}
	}
	lines = append(lines,
		field("iterations", fmt.Sprint(rep.Iterations)),
		field("evaluations", fmt.Sprint(rep.Evaluations)),
		field("converged", fmt.Sprint(rep.Converged)),
	)
	lines = append(lines, metricLines(res.Metrics)...)

	return panelStyle().Render(strings.Join(lines, "\n"))
}

// RunSummary renders a stored run.
func RunSummary(meta *storage.RunMetadata) string {
	lines := []string{
		titleStyle().Render(meta.Name),
		field("id", meta.ID),
		field("created", meta.CreatedAt().Format("2006-01-02 15:04:05")),
		field("strategy", meta.Strategy),
		field("integrator", fmt.Sprintf("%s (dt=%g)", meta.Integrator, meta.Dt)),
		field("status", statusStyle(meta.Status).Render(meta.Status)),
		field("touchdown speed", num(meta.TouchdownSpeed, "m/s")),
		field("flight time", num(meta.FlightTime, "s")),
		field("fuel used", num(meta.FuelUsed, "kg")),
		separator(36),
	}
	if meta.Strategy == landing.StrategyHoverslam {
		lines = append(lines, field("ignition", num(meta.Ignition, "s")))
	} else {
		lines = append(lines,
			field("gains", fmt.Sprintf("Kp=%.4f Ki=%.4f Kd=%.4f", meta.Kp, meta.Ki, meta.Kd)),
			field("cost", num(meta.Cost, "")),
		)
	}
	lines = append(lines,
		field("precision", fmt.Sprintf("%g", meta.Precision)),
		field("evaluations", fmt.Sprint(meta.Evaluations)),
		field("converged", fmt.Sprint(meta.Converged)),
	)
	lines = append(lines, metricLines(meta.Metrics)...)

	return panelStyle().Render(strings.Join(lines, "\n"))
}

func metricLines(m map[string]float64) []string {
	if len(m) == 0 {
		return nil
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)

	out := []string{separator(36)}
	for _, name := range names {
		out = append(out, field(name, num(m[name], "")))
	}
	return out
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(CurrentTheme.Muted)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return titleStyle().Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)
}

// RunTable lists stored runs, one row each.
func RunTable(runs []storage.RunMetadata) string {
	t := newTable("ID", "NAME", "STRATEGY", "STATUS", "SPEED (m/s)", "FUEL (kg)", "CREATED")
	for _, r := range runs {
		t.Row(
			shortID(r.ID),
			r.Name,
			r.Strategy,
			r.Status,
			num(r.TouchdownSpeed, ""),
			num(r.FuelUsed, ""),
			r.CreatedAt().Format("2006-01-02 15:04"),
		)
	}
	return t.Render()
}

// ComparisonTable shows integrator errors against the closed-form fall.
func ComparisonTable(rows []experiment.Comparison) string {
	t := newTable("INTEGRATOR", "DT", "STEPS", "TOUCHDOWN (s)", "SPEED (m/s)", "TIME ERR", "SPEED ERR")
	for _, c := range rows {
		t.Row(
			c.Integrator,
			fmt.Sprintf("%g", c.Dt),
			fmt.Sprint(c.Steps),
			num(c.TouchdownTime, ""),
			num(c.Speed, ""),
			fmt.Sprintf("%.3e", c.TimeError),
			fmt.Sprintf("%.3e", c.SpeedError),
		)
	}
	return t.Render()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
