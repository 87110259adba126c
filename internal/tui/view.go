package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/madfam-io/dhanam/internal/tui/components"
)

// View renders the explorer.
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %s\n\nPress esc to dismiss, q to quit.", m.err))
	}
	if m.baseline == nil {
		return borderStyle.Render(m.spinner.View() + " Loading plan...")
	}

	title := titleStyle.Render("Dhanam What-If Explorer")
	subtitle := subtitleStyle.Render(fmt.Sprintf(
		"age %d → %d, %d year horizon",
		m.baseline.CurrentAge, m.baseline.RetirementAge, m.baseline.ProjectionYears,
	))

	left := borderStyle.Render(m.renderSliders())
	right := borderStyle.Render(m.renderResults())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, body, m.renderStatusBar())
}

func (m Model) renderSliders() string {
	var b strings.Builder
	b.WriteString(metricLabelStyle.Render("ASSUMPTIONS"))
	b.WriteString("\n\n")
	for _, s := range m.sliders {
		if s == nil {
			continue
		}
		b.WriteString(s.Render())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.loading > 0 {
		b.WriteString(m.spinner.View() + " recalculating")
	} else {
		b.WriteString(metricLabelStyle.Render("enter to recalculate"))
	}
	return b.String()
}

func (m Model) renderResults() string {
	if m.projection == nil {
		return m.spinner.View() + " running projection..."
	}

	var b strings.Builder
	b.WriteString(m.renderChart())
	b.WriteString("\n")
	b.WriteString(m.renderSummary())

	if len(m.projection.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range m.projection.Warnings {
			b.WriteString(warningStyle.Render("⚠ " + w))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderChart() string {
	chart := components.NewChart("Net Worth Trajectory")

	expected := make([]float64, len(m.projection.YearlySnapshots))
	for i, snap := range m.projection.YearlySnapshots {
		expected[i], _ = snap.NetWorth.Float64()
	}
	chart.AddSeries("expected", expected, colorPrimary)

	if m.showBand && m.band != nil && len(m.band.Timeline) == len(expected) {
		p10 := make([]float64, len(m.band.Timeline))
		p90 := make([]float64, len(m.band.Timeline))
		for i, yp := range m.band.Timeline {
			p10[i], _ = yp.P10.Float64()
			p90[i], _ = yp.P90.Float64()
		}
		chart.AddSeries("p10", p10, colorDanger)
		chart.AddSeries("p90", p90, colorAccent)
	}

	width := m.width/2 - 16
	return chart.WithSize(width, 12).Render()
}

func (m Model) renderSummary() string {
	s := m.projection.Summary
	rows := []string{
		metric("Final net worth", money(m.projection.FinalSnapshot().NetWorth)),
		metric("Peak net worth", fmt.Sprintf("%s (year %d)", money(s.PeakNetWorth.Amount), s.PeakNetWorth.Year)),
		metric("Debt free", yearLabel(s.DebtFreeYear)),
		metric("Financial independence", yearLabel(s.FinancialIndependenceYear)),
		metric("Avg savings rate", percent(s.AverageSavingsRate)),
		metric("Risk score", fmt.Sprintf("%d/100", s.RiskScore)),
	}
	if m.showBand && m.band != nil {
		rows = append(rows,
			metric("Success rate", percent(m.band.SuccessRate)),
			metric("Terminal P10/P90", money(m.band.TerminalP10)+" / "+money(m.band.TerminalP90)),
		)
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderStatusBar() string {
	shortcuts := []string{
		key("tab", "focus"),
		key("←/→", "adjust"),
		key("enter", "recalc"),
		key("b", "band"),
		key("r", "reload"),
		key("q", "quit"),
	}
	return statusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

func key(k, desc string) string {
	return statusKeyStyle.Render(k) + " " + desc
}

func metric(label, value string) string {
	return metricLabelStyle.Width(24).Render(label) + metricValueStyle.Render(value)
}

func money(d decimal.Decimal) string {
	whole := d.Round(0).String()
	neg := strings.HasPrefix(whole, "-")
	digits := strings.TrimPrefix(whole, "-")
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

func percent(d decimal.Decimal) string {
	return d.Mul(decimal.NewFromInt(100)).Round(1).String() + "%"
}

func yearLabel(year *int) string {
	if year == nil {
		return "not within horizon"
	}
	return fmt.Sprintf("year %d", *year)
}
