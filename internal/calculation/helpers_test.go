package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/madfam-io/dhanam/internal/domain"
)

func intPtr(v int) *int { return &v }

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// baseConfig is a plan that stays comfortably solvent: salary above
// expenses, a savings cushion, an investment account, one car loan.
func baseConfig() *domain.ProjectionConfig {
	return &domain.ProjectionConfig{
		ProjectionYears: 20,
		InflationRate:   dec(0.03),
		CurrentAge:      35,
		RetirementAge:   65,
		LifeExpectancy:  90,
		IncomeStreams: []domain.IncomeStream{
			{Name: "salary", AnnualAmount: dec(90000), GrowthRate: dec(0.02), Taxable: true},
		},
		Expenses: []domain.ExpenseCategory{
			{Name: "living", AnnualAmount: dec(45000), GrowthRate: dec(0.03), Essential: true},
			{Name: "travel", AnnualAmount: dec(5000), GrowthRate: dec(0.03)},
		},
		Accounts: []domain.Account{
			{Name: "savings", Type: domain.AccountSavings, Balance: dec(20000)},
			{Name: "brokerage", Type: domain.AccountInvestment, Balance: dec(100000)},
		},
		Loans: []domain.Loan{
			{Name: "car", Balance: dec(15000), AnnualRate: dec(0.05), AnnualPayment: dec(6000)},
		},
		ExpectedReturn:  dec(0.07),
		ReturnStdDev:    dec(0.15),
		InflationStdDev: dec(0.01),
	}
}
