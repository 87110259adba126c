package compare

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/madfam-io/dhanam/internal/domain"
)

// CSVFormatter formats a comparison set as CSV.
type CSVFormatter struct{}

// Format generates CSV output, one row per scenario plus the baseline.
func (cf *CSVFormatter) Format(set *domain.ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Peak Net Worth",
		"Peak Year",
		"Min Net Worth",
		"Final Net Worth",
		"Retirement Income",
		"Income Replacement Ratio",
		"Risk Score",
		"Warnings",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow("baseline", "baseline", set.Baseline)); err != nil {
		return "", err
	}
	for _, sr := range set.Scenarios {
		if err := writer.Write(cf.formatRow(sr.Scenario.Name, "scenario", sr.Result)); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(name, kind string, result *domain.ProjectionResult) []string {
	return []string{
		name,
		kind,
		result.Summary.PeakNetWorth.Amount.StringFixed(2),
		strconv.Itoa(result.Summary.PeakNetWorth.Year),
		result.Summary.MinNetWorth.StringFixed(2),
		result.FinalSnapshot().NetWorth.StringFixed(2),
		result.Summary.ProjectedRetirementIncome.StringFixed(2),
		result.Summary.IncomeReplacementRatio.StringFixed(4),
		strconv.Itoa(result.Summary.RiskScore),
		strconv.Itoa(len(result.Warnings)),
	}
}
