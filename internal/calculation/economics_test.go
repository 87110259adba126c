package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/madfam-io/dhanam/internal/domain"
)

func TestIncomeAmountGrowsFromStartYear(t *testing.T) {
	stream := domain.IncomeStream{
		Name:         "salary",
		AnnualAmount: dec(100000),
		GrowthRate:   dec(0.02),
	}

	assert.True(t, IncomeAmount(stream, 0, 30).Equal(dec(100000)), "year 0 should be the base amount")

	year5 := IncomeAmount(stream, 5, 30)
	expected := dec(100000).Mul(compound(dec(0.02), 5))
	assert.True(t, year5.Equal(expected), "growth should compound from the start year")
}

func TestIncomeAmountWindowDefaults(t *testing.T) {
	stream := domain.IncomeStream{Name: "salary", AnnualAmount: dec(50000)}

	assert.False(t, IncomeAmount(stream, 0, 30).IsZero(), "should be active from year 0 by default")
	assert.False(t, IncomeAmount(stream, 30, 30).IsZero(), "should be active through the full horizon")
}

func TestIncomeAmountOutsideWindow(t *testing.T) {
	stream := domain.IncomeStream{
		Name:         "consulting",
		AnnualAmount: dec(20000),
		StartYear:    intPtr(3),
		EndYear:      intPtr(6),
	}

	assert.True(t, IncomeAmount(stream, 2, 30).IsZero(), "inactive before the window")
	assert.False(t, IncomeAmount(stream, 3, 30).IsZero(), "active at window start")
	assert.False(t, IncomeAmount(stream, 6, 30).IsZero(), "active at window end")
	assert.True(t, IncomeAmount(stream, 7, 30).IsZero(), "inactive past the window")
}

func TestIncomeAmountGrowthCompoundsFromWindowStart(t *testing.T) {
	stream := domain.IncomeStream{
		Name:         "pension",
		AnnualAmount: dec(10000),
		GrowthRate:   dec(0.05),
		StartYear:    intPtr(10),
	}

	atStart := IncomeAmount(stream, 10, 30)
	assert.True(t, atStart.Equal(dec(10000)), "first active year should be the base amount")

	twoYearsIn := IncomeAmount(stream, 12, 30)
	expected := dec(10000).Mul(compound(dec(0.05), 2))
	assert.True(t, twoYearsIn.Equal(expected), "growth should count years since the window start")
}

func TestExpenseAmountMirrorsIncome(t *testing.T) {
	expense := domain.ExpenseCategory{
		Name:         "tuition",
		AnnualAmount: dec(30000),
		GrowthRate:   dec(0.06),
		StartYear:    intPtr(5),
		EndYear:      intPtr(8),
	}

	assert.True(t, ExpenseAmount(expense, 4, 30).IsZero())
	assert.True(t, ExpenseAmount(expense, 5, 30).Equal(dec(30000)))
	assert.True(t, ExpenseAmount(expense, 9, 30).IsZero())
}

func TestDeflateToPresent(t *testing.T) {
	nominal := dec(1000)

	assert.True(t, DeflateToPresent(nominal, dec(0.03), 0).Equal(nominal), "year 0 needs no deflation")

	deflated := DeflateToPresent(nominal, dec(0.03), 10)
	assert.True(t, deflated.LessThan(nominal), "future dollars should be worth less today")

	roundTrip := deflated.Mul(compound(dec(0.03), 10))
	assert.True(t, roundTrip.Sub(nominal).Abs().LessThan(dec(0.0001)), "deflation should invert compounding")
}
