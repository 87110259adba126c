package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func intPtr(v int) *int { return &v }

func validConfig() *ProjectionConfig {
	return &ProjectionConfig{
		ProjectionYears: 30,
		InflationRate:   dec(0.03),
		CurrentAge:      35,
		RetirementAge:   65,
		LifeExpectancy:  90,
		IncomeStreams: []IncomeStream{
			{Name: "salary", AnnualAmount: dec(80000), Taxable: true},
		},
		Expenses: []ExpenseCategory{
			{Name: "living", AnnualAmount: dec(50000), Essential: true},
		},
		ExpectedReturn: dec(0.07),
	}
}

func TestValidateAcceptsValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.ProjectionYears = -5
	cfg.RetirementAge = 20
	cfg.IncomeStreams[0].Name = ""
	cfg.IncomeStreams[0].AnnualAmount = dec(-1)

	err := cfg.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.GreaterOrEqual(t, len(verr.Fields), 4, "every problem should be reported at once")
}

func TestValidateInflationBounds(t *testing.T) {
	cfg := validConfig()
	cfg.InflationRate = dec(0.60)
	assert.Error(t, cfg.Validate())

	cfg.InflationRate = dec(-0.20)
	assert.Error(t, cfg.Validate())

	cfg.InflationRate = dec(-0.05)
	assert.NoError(t, cfg.Validate(), "mild deflation is allowed")
}

func TestValidateStreamWindows(t *testing.T) {
	cfg := validConfig()
	cfg.IncomeStreams[0].StartYear = intPtr(10)
	cfg.IncomeStreams[0].EndYear = intPtr(5)

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endYear")
}

func TestValidateLifeEventInsideHorizon(t *testing.T) {
	cfg := validConfig()
	cfg.LifeEvents = []LifeEvent{
		{Name: "inheritance", Year: 30, Amount: dec(10000)},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds projection horizon")
}

func TestValidateRecurringEventNeedsBothFields(t *testing.T) {
	cfg := validConfig()
	impact := dec(-5000)
	cfg.LifeEvents = []LifeEvent{
		{Name: "college", Year: 5, AnnualImpact: &impact}, // missing duration
	}
	assert.Error(t, cfg.Validate())

	cfg.LifeEvents = []LifeEvent{
		{Name: "college", Year: 5, ImpactDuration: 4}, // missing impact
	}
	assert.Error(t, cfg.Validate())
}

func TestValidateLoanNeedsPayment(t *testing.T) {
	cfg := validConfig()
	cfg.Loans = []Loan{
		{Name: "mortgage", Balance: dec(200000), AnnualRate: dec(0.04)},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "annualPayment")
}

func TestWarningsRetirementPastLifeExpectancy(t *testing.T) {
	cfg := validConfig()
	cfg.RetirementAge = 95

	require.NoError(t, cfg.Validate(), "structurally valid, warned not rejected")
	assert.Contains(t, cfg.Warnings(), "retirement age exceeds life expectancy")
}

func TestWarningsHorizonBeforeRetirement(t *testing.T) {
	cfg := validConfig()
	cfg.ProjectionYears = 10

	assert.Contains(t, cfg.Warnings(), "projection horizon ends before retirement")
}

func TestWarningsEmptyForHealthyConfig(t *testing.T) {
	assert.Empty(t, validConfig().Warnings())
}

func TestValidationErrorMessage(t *testing.T) {
	verr := &ValidationError{}
	verr.Add("projectionYears", "must be positive")
	verr.Add("currentAge", "must not be negative")

	msg := verr.Error()
	assert.Contains(t, msg, "projectionYears")
	assert.Contains(t, msg, "currentAge")
}

func TestValidationErrorOrNil(t *testing.T) {
	verr := &ValidationError{}
	assert.NoError(t, verr.OrNil())

	verr.Add("field", "reason")
	assert.Error(t, verr.OrNil())
}
