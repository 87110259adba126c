package calculation

import (
	"math"

	"github.com/madfam-io/dhanam/internal/domain"
	"github.com/shopspring/decimal"
)

// RunProjection iterates the state transition across the full horizon
// with the supplied sampler, carrying state forward year over year.
// The returned snapshot sequence always has exactly
// cfg.ProjectionYears entries.
func RunProjection(cfg *domain.ProjectionConfig, taxFn TaxFunc, sampler Sampler) ([]domain.YearlySnapshot, []string) {
	snapshots := make([]domain.YearlySnapshot, 0, cfg.ProjectionYears)
	var warnings []string

	state := NewYearState(cfg)
	for year := 0; year < cfg.ProjectionYears; year++ {
		marketReturn, inflation := sampler.Sample(year)

		next, snap, yearWarnings := AdvanceYear(state, cfg, taxFn, year, marketReturn, inflation)
		snapshots = append(snapshots, snap)
		warnings = append(warnings, yearWarnings...)
		state = next
	}

	return snapshots, warnings
}

// Summarize derives the scalar summary from a completed snapshot
// sequence.
func Summarize(cfg *domain.ProjectionConfig, snapshots []domain.YearlySnapshot, insolvencyWarnings int) domain.ProjectionSummary {
	summary := domain.ProjectionSummary{
		YearsUntilRetirement: cfg.RetirementAge - cfg.CurrentAge,
	}
	if len(snapshots) == 0 {
		return summary
	}

	summary.PeakNetWorth = domain.PeakNetWorth{Year: snapshots[0].Year, Amount: snapshots[0].NetWorth}
	summary.MinNetWorth = snapshots[0].NetWorth

	totalSavingsRate := decimal.Zero
	for _, snap := range snapshots {
		if summary.DebtFreeYear == nil && snap.TotalDebt.IsZero() {
			y := snap.Year
			summary.DebtFreeYear = &y
		}
		if summary.FinancialIndependenceYear == nil && snap.FIRatio.GreaterThanOrEqual(one) {
			y := snap.Year
			summary.FinancialIndependenceYear = &y
		}
		if snap.NetWorth.GreaterThan(summary.PeakNetWorth.Amount) {
			summary.PeakNetWorth = domain.PeakNetWorth{Year: snap.Year, Amount: snap.NetWorth}
		}
		if snap.NetWorth.LessThan(summary.MinNetWorth) {
			summary.MinNetWorth = snap.NetWorth
		}

		summary.TotalLifetimeEarnings = summary.TotalLifetimeEarnings.Add(snap.GrossIncome)
		summary.TotalLifetimeTaxes = summary.TotalLifetimeTaxes.Add(snap.TaxesPaid)
		summary.TotalSocialSecurity = summary.TotalSocialSecurity.Add(snap.SocialSecurityIncome)
		totalSavingsRate = totalSavingsRate.Add(snap.SavingsRate)
	}
	summary.AverageSavingsRate = totalSavingsRate.Div(decimal.NewFromInt(int64(len(snapshots))))

	// ProjectedRetirementIncome is the first retirement year's
	// after-tax income, not its net cashflow: the replacement ratio
	// compares income to income, independent of that year's spending.
	retIdx := summary.YearsUntilRetirement
	if retIdx >= 0 && retIdx < len(snapshots) {
		summary.ProjectedRetirementIncome = snapshots[retIdx].NetIncome
		if retIdx > 0 {
			preRetirementGross := snapshots[retIdx-1].GrossIncome
			if preRetirementGross.IsPositive() {
				summary.IncomeReplacementRatio = summary.ProjectedRetirementIncome.Div(preRetirementGross)
			}
		}
	}

	summary.RiskScore = riskScore(snapshots, insolvencyWarnings)

	return summary
}

// riskScore is a 0-100 heuristic: higher is riskier. Savings-rate
// volatility, peak debt load, and insolvency events each contribute a
// clamped component.
func riskScore(snapshots []domain.YearlySnapshot, insolvencyWarnings int) int {
	if len(snapshots) == 0 {
		return 0
	}

	// Savings-rate volatility, scaled so a 25-point stdev saturates.
	rates := make([]float64, len(snapshots))
	var mean float64
	for i, snap := range snapshots {
		rates[i] = snap.SavingsRate.InexactFloat64()
		mean += rates[i]
	}
	mean /= float64(len(rates))
	var variance float64
	for _, r := range rates {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(rates))
	volatility := clamp01(math.Sqrt(variance) / 0.25)

	// Peak debt-to-asset ratio across the horizon.
	var debtLoad float64
	for _, snap := range snapshots {
		denom := snap.TotalAssets.Add(snap.TotalDebt)
		if denom.IsPositive() {
			ratio := snap.TotalDebt.Div(denom).InexactFloat64()
			if ratio > debtLoad {
				debtLoad = ratio
			}
		}
	}
	debtLoad = clamp01(debtLoad)

	insolvency := clamp01(float64(insolvencyWarnings) / 3.0)

	score := 35*volatility + 35*debtLoad + 30*insolvency
	return int(math.Round(math.Min(score, 100)))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
