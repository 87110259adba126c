package compare

import (
	"fmt"
	"strings"

	"github.com/madfam-io/dhanam/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats a comparison set as a console table.
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios against the
// baseline, including the headline deltas.
func (tf *TableFormatter) Format(set *domain.ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("WHAT-IF SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 88) + "\n\n")

	nameWidth := 24
	numWidth := 15

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Peak Net Worth",
		numWidth, "Final Net Worth",
		numWidth, "Ret. Income",
		numWidth, "Risk Score"))
	sb.WriteString(strings.Repeat("-", 88) + "\n")

	sb.WriteString(tf.formatRow("baseline", set.Baseline, nameWidth, numWidth))
	for _, sr := range set.Scenarios {
		sb.WriteString(tf.formatRow(sr.Scenario.Name, sr.Result, nameWidth, numWidth))
	}
	sb.WriteString(strings.Repeat("=", 88) + "\n")

	if len(set.Scenarios) > 0 {
		sb.WriteString("\nCOMPARISON TO BASELINE\n")
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for _, sr := range set.Scenarios {
			sb.WriteString(fmt.Sprintf("\n%s:\n", sr.Scenario.Name))
			if sr.Scenario.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", sr.Scenario.Description))
			}
			sb.WriteString(fmt.Sprintf("  Peak net worth:   %s\n",
				signedCurrency(sr.Result.Summary.PeakNetWorth.Amount.Sub(set.Baseline.Summary.PeakNetWorth.Amount))))
			sb.WriteString(fmt.Sprintf("  Retirement income: %s\n",
				signedCurrency(sr.Result.Summary.ProjectedRetirementIncome.Sub(set.Baseline.Summary.ProjectedRetirementIncome))))
			sb.WriteString(fmt.Sprintf("  Risk score:       %+d\n",
				sr.Result.Summary.RiskScore-set.Baseline.Summary.RiskScore))
		}
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(name string, result *domain.ProjectionResult, nameWidth, numWidth int) string {
	final := result.FinalSnapshot()
	return fmt.Sprintf("%-*s %*s %*s %*s %*d\n",
		nameWidth, truncate(name, nameWidth),
		numWidth, currency(result.Summary.PeakNetWorth.Amount),
		numWidth, currency(final.NetWorth),
		numWidth, currency(result.Summary.ProjectedRetirementIncome),
		numWidth, result.Summary.RiskScore)
}

func currency(d decimal.Decimal) string {
	return "$" + d.Round(0).String()
}

func signedCurrency(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().Round(0).String()
	}
	return "+$" + d.Round(0).String()
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width-1] + "…"
}
