package output

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/madfam-io/dhanam/internal/domain"
)

// CSVFormatter renders the year-by-year snapshot table as CSV.
type CSVFormatter struct{}

func (cf *CSVFormatter) Name() string { return "csv" }

func (cf *CSVFormatter) Format(result *domain.ProjectionResult) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Year", "Age", "Gross Income", "Taxes Paid", "Net Income",
		"Total Expenses", "Net Cashflow", "Social Security",
		"Total Debt", "Total Assets", "Net Worth",
		"Asset Growth", "Debt Interest", "Savings Rate", "FI Ratio",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, snap := range result.YearlySnapshots {
		row := []string{
			strconv.Itoa(snap.Year),
			strconv.Itoa(snap.Age),
			snap.GrossIncome.StringFixed(2),
			snap.TaxesPaid.StringFixed(2),
			snap.NetIncome.StringFixed(2),
			snap.TotalExpenses.StringFixed(2),
			snap.NetCashflow.StringFixed(2),
			snap.SocialSecurityIncome.StringFixed(2),
			snap.TotalDebt.StringFixed(2),
			snap.TotalAssets.StringFixed(2),
			snap.NetWorth.StringFixed(2),
			snap.AssetGrowth.StringFixed(2),
			snap.DebtInterest.StringFixed(2),
			snap.SavingsRate.StringFixed(4),
			snap.FIRatio.StringFixed(4),
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
