package calculation

import (
	"github.com/madfam-io/dhanam/internal/domain"
	"github.com/shopspring/decimal"
)

// Economic model: pure per-year formulas for income growth, expense
// growth, and inflation adjustment. The simulation works in nominal
// terms throughout; deflation to today's dollars is a display concern.

var one = decimal.NewFromInt(1)

// compound returns (1+rate)^periods.
func compound(rate decimal.Decimal, periods int) decimal.Decimal {
	if periods <= 0 {
		return one
	}
	return one.Add(rate).Pow(decimal.NewFromInt(int64(periods)))
}

// streamWindow resolves the active window of an income stream or
// expense category, defaulting to the full horizon.
func streamWindow(start, end *int, projectionYears int) (int, int) {
	s := 0
	if start != nil {
		s = *start
	}
	e := projectionYears
	if end != nil {
		e = *end
	}
	return s, e
}

// IncomeAmount returns the nominal amount an income stream contributes
// in the given year, zero outside its active window. Growth compounds
// from the stream's start year.
func IncomeAmount(s domain.IncomeStream, year, projectionYears int) decimal.Decimal {
	start, end := streamWindow(s.StartYear, s.EndYear, projectionYears)
	if year < start || year > end {
		return decimal.Zero
	}
	return s.AnnualAmount.Mul(compound(s.GrowthRate, year-start))
}

// ExpenseAmount returns the nominal amount an expense category costs
// in the given year. The Essential flag categorizes, never changes the
// amount.
func ExpenseAmount(e domain.ExpenseCategory, year, projectionYears int) decimal.Decimal {
	start, end := streamWindow(e.StartYear, e.EndYear, projectionYears)
	if year < start || year > end {
		return decimal.Zero
	}
	return e.AnnualAmount.Mul(compound(e.GrowthRate, year-start))
}

// DeflateToPresent converts a nominal year-N amount into today's
// dollars under the configured inflation rate.
func DeflateToPresent(nominal decimal.Decimal, inflationRate decimal.Decimal, year int) decimal.Decimal {
	factor := compound(inflationRate, year)
	if factor.IsZero() {
		return nominal
	}
	return nominal.Div(factor)
}
