package output

import (
	"fmt"
	"strings"

	"github.com/madfam-io/dhanam/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter renders a projection as a console table with a
// summary block.
type TableFormatter struct{}

func (tf *TableFormatter) Name() string { return "table" }

func (tf *TableFormatter) Format(result *domain.ProjectionResult) (string, error) {
	var sb strings.Builder

	sb.WriteString("FINANCIAL PROJECTION\n")
	sb.WriteString(strings.Repeat("=", 100) + "\n")
	sb.WriteString(fmt.Sprintf("Horizon: %d years   Age: %d → %d   Retirement at %d\n\n",
		result.Config.ProjectionYears,
		result.Config.CurrentAge,
		result.Config.CurrentAge+result.Config.ProjectionYears-1,
		result.Config.RetirementAge))

	sb.WriteString(fmt.Sprintf("%4s %4s %14s %12s %14s %14s %12s %14s %8s\n",
		"Year", "Age", "Gross Income", "Taxes", "Expenses", "Cashflow", "Debt", "Net Worth", "FI"))
	sb.WriteString(strings.Repeat("-", 100) + "\n")

	for _, snap := range result.YearlySnapshots {
		sb.WriteString(fmt.Sprintf("%4d %4d %14s %12s %14s %14s %12s %14s %8s\n",
			snap.Year,
			snap.Age,
			money(snap.GrossIncome),
			money(snap.TaxesPaid),
			money(snap.TotalExpenses),
			money(snap.NetCashflow),
			money(snap.TotalDebt),
			money(snap.NetWorth),
			snap.FIRatio.StringFixed(2)))
	}
	sb.WriteString(strings.Repeat("=", 100) + "\n\n")

	tf.writeSummary(&sb, result)

	if len(result.Warnings) > 0 {
		sb.WriteString("\nWARNINGS\n")
		for _, w := range result.Warnings {
			sb.WriteString("  - " + w + "\n")
		}
	}

	return sb.String(), nil
}

func (tf *TableFormatter) writeSummary(sb *strings.Builder, result *domain.ProjectionResult) {
	s := result.Summary

	sb.WriteString("SUMMARY\n")
	sb.WriteString(fmt.Sprintf("  Peak net worth:        %s (year %d)\n", money(s.PeakNetWorth.Amount), s.PeakNetWorth.Year))
	sb.WriteString(fmt.Sprintf("  Minimum net worth:     %s\n", money(s.MinNetWorth)))
	sb.WriteString(fmt.Sprintf("  Debt-free year:        %s\n", yearOrNever(s.DebtFreeYear)))
	sb.WriteString(fmt.Sprintf("  FI year:               %s\n", yearOrNever(s.FinancialIndependenceYear)))
	sb.WriteString(fmt.Sprintf("  Lifetime earnings:     %s\n", money(s.TotalLifetimeEarnings)))
	sb.WriteString(fmt.Sprintf("  Lifetime taxes:        %s\n", money(s.TotalLifetimeTaxes)))
	sb.WriteString(fmt.Sprintf("  Social Security total: %s\n", money(s.TotalSocialSecurity)))
	sb.WriteString(fmt.Sprintf("  Average savings rate:  %s%%\n", s.AverageSavingsRate.Mul(decimal.NewFromInt(100)).StringFixed(1)))
	sb.WriteString(fmt.Sprintf("  Retirement income:     %s (replacement %s%%)\n",
		money(s.ProjectedRetirementIncome),
		s.IncomeReplacementRatio.Mul(decimal.NewFromInt(100)).StringFixed(1)))
	sb.WriteString(fmt.Sprintf("  Risk score:            %d / 100\n", s.RiskScore))
	sb.WriteString(fmt.Sprintf("  Computed in:           %dms\n", result.ExecutionTimeMs))
}

// FormatMonteCarlo renders the percentile band table for a stochastic
// run.
func FormatMonteCarlo(result *domain.MonteCarloResult) string {
	var sb strings.Builder

	sb.WriteString("MONTE CARLO SIMULATION\n")
	sb.WriteString(strings.Repeat("=", 64) + "\n")
	sb.WriteString(fmt.Sprintf("Iterations: %d   Seed: %d   Solvent paths: %s%%\n\n",
		result.Iterations,
		result.Seed,
		result.SuccessRate.Mul(decimal.NewFromInt(100)).StringFixed(1)))

	sb.WriteString(fmt.Sprintf("%4s %16s %16s %16s\n", "Year", "P10", "Median", "P90"))
	sb.WriteString(strings.Repeat("-", 64) + "\n")
	for _, yp := range result.Timeline {
		sb.WriteString(fmt.Sprintf("%4d %16s %16s %16s\n",
			yp.Year, money(yp.P10), money(yp.Median), money(yp.P90)))
	}
	sb.WriteString(strings.Repeat("=", 64) + "\n")

	return sb.String()
}

func money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().Round(0).String()
	}
	return "$" + d.Round(0).String()
}

func yearOrNever(y *int) string {
	if y == nil {
		return "never"
	}
	return fmt.Sprintf("year %d", *y)
}
