package compare

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madfam-io/dhanam/internal/calculation"
	"github.com/madfam-io/dhanam/internal/domain"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func baseline() *domain.ProjectionConfig {
	return &domain.ProjectionConfig{
		ProjectionYears: 15,
		InflationRate:   dec(0.03),
		CurrentAge:      40,
		RetirementAge:   65,
		LifeExpectancy:  90,
		IncomeStreams: []domain.IncomeStream{
			{Name: "salary", AnnualAmount: dec(75000)},
		},
		Expenses: []domain.ExpenseCategory{
			{Name: "living", AnnualAmount: dec(45000), Essential: true},
		},
		Accounts: []domain.Account{
			{Name: "brokerage", Type: domain.AccountInvestment, Balance: dec(50000)},
		},
		ExpectedReturn: dec(0.06),
	}
}

func scenario(name string, mods domain.ScenarioModifications) domain.WhatIfScenario {
	return domain.WhatIfScenario{Name: name, Modifications: mods}
}

func TestCompareBaselineOnly(t *testing.T) {
	engine := NewEngine(calculation.NewEngine())

	set, err := engine.Compare(context.Background(), baseline(), nil)
	require.NoError(t, err)
	require.NotNil(t, set.Baseline)
	assert.Empty(t, set.Scenarios)
}

func TestCompareRunsEveryScenario(t *testing.T) {
	engine := NewEngine(calculation.NewEngine())
	lowReturn := dec(0.02)
	highReturn := dec(0.10)

	set, err := engine.Compare(context.Background(), baseline(), []domain.WhatIfScenario{
		scenario("bear", domain.ScenarioModifications{ExpectedReturn: &lowReturn}),
		scenario("bull", domain.ScenarioModifications{ExpectedReturn: &highReturn}),
	})
	require.NoError(t, err)
	require.Len(t, set.Scenarios, 2)

	bear := set.Scenarios[0].Result.FinalSnapshot().NetWorth
	base := set.Baseline.FinalSnapshot().NetWorth
	bull := set.Scenarios[1].Result.FinalSnapshot().NetWorth
	assert.True(t, bear.LessThan(base), "lower returns end lower")
	assert.True(t, bull.GreaterThan(base), "higher returns end higher")
}

func TestCompareScenariosAreIsolated(t *testing.T) {
	engine := NewEngine(calculation.NewEngine())
	base := baseline()
	cut := []domain.ExpenseCategory{
		{Name: "lean", AnnualAmount: dec(30000), Essential: true},
	}

	set, err := engine.Compare(context.Background(), base, []domain.WhatIfScenario{
		scenario("cut spending", domain.ScenarioModifications{Expenses: cut}),
		scenario("unchanged", domain.ScenarioModifications{}),
	})
	require.NoError(t, err)

	// The second scenario must see the original expenses, not the
	// first scenario's cut.
	unchanged := set.Scenarios[1].Result
	assert.True(t, unchanged.FinalSnapshot().NetWorth.Equal(set.Baseline.FinalSnapshot().NetWorth))
	assert.True(t, base.Expenses[0].AnnualAmount.Equal(dec(45000)), "baseline config untouched")
}

func TestCompareInvalidScenarioFails(t *testing.T) {
	engine := NewEngine(calculation.NewEngine())
	badAge := 10

	_, err := engine.Compare(context.Background(), baseline(), []domain.WhatIfScenario{
		scenario("broken", domain.ScenarioModifications{RetirementAge: &badAge}),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestTableFormatterIncludesScenarios(t *testing.T) {
	engine := NewEngine(calculation.NewEngine())
	ret := dec(0.08)

	set, err := engine.Compare(context.Background(), baseline(), []domain.WhatIfScenario{
		scenario("optimistic", domain.ScenarioModifications{ExpectedReturn: &ret}),
	})
	require.NoError(t, err)

	out := (&TableFormatter{}).Format(set)
	assert.Contains(t, out, "baseline")
	assert.Contains(t, out, "optimistic")
}

func TestCSVFormatterRowPerScenario(t *testing.T) {
	engine := NewEngine(calculation.NewEngine())
	ret := dec(0.08)

	set, err := engine.Compare(context.Background(), baseline(), []domain.WhatIfScenario{
		scenario("optimistic", domain.ScenarioModifications{ExpectedReturn: &ret}),
	})
	require.NoError(t, err)

	out, err := (&CSVFormatter{}).Format(set)
	require.NoError(t, err)
	assert.Contains(t, out, "optimistic")
}

func TestJSONFormatterRoundTrips(t *testing.T) {
	engine := NewEngine(calculation.NewEngine())

	set, err := engine.Compare(context.Background(), baseline(), nil)
	require.NoError(t, err)

	out, err := (&JSONFormatter{}).Format(set)
	require.NoError(t, err)
	assert.Contains(t, out, "baseline")
}
