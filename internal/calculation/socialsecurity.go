package calculation

import (
	"github.com/madfam-io/dhanam/internal/domain"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// claimYear resolves when a benefit starts, relative to the projection
// start. An explicit ClaimYear wins; otherwise it is derived from the
// claim age and the filer's current age.
func claimYear(explicit *int, claimAge, currentAge int) int {
	if explicit != nil {
		return *explicit
	}
	return claimAge - currentAge
}

// SocialSecurityIncome returns the household benefit for a simulation
// year: filer plus spouse, each from their own claim year, grown by
// COLA from the projection start. COLA defaults to the general
// inflation rate unless the config overrides it.
func SocialSecurityIncome(cfg *domain.ProjectionConfig, year int) decimal.Decimal {
	ss := cfg.SocialSecurity
	if ss == nil {
		return decimal.Zero
	}

	cola := cfg.InflationRate
	if ss.COLARate != nil {
		cola = *ss.COLARate
	}

	total := decimal.Zero

	filerStart := claimYear(ss.ClaimYear, ss.ClaimAge, cfg.CurrentAge)
	if year >= filerStart && ss.MonthlyBenefit.IsPositive() {
		total = total.Add(ss.MonthlyBenefit.Mul(monthsPerYear).Mul(compound(cola, year)))
	}

	if ss.SpouseMonthlyBenefit.IsPositive() && ss.SpouseClaimAge > 0 {
		spouseStart := ss.SpouseClaimAge - cfg.CurrentAge
		if year >= spouseStart {
			total = total.Add(ss.SpouseMonthlyBenefit.Mul(monthsPerYear).Mul(compound(cola, year)))
		}
	}

	return total
}
