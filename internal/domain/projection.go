package domain

import (
	"github.com/shopspring/decimal"
)

// YearlySnapshot is one simulated year, immutable once emitted.
//
// Reconciliation invariant: NetWorth equals the prior year's NetWorth
// plus NetCashflow plus AssetGrowth minus DebtInterest plus
// LifeEventNetWorthImpact, within floating rounding tolerance. The
// fields on the right-hand side are all carried here so callers can
// verify the books.
type YearlySnapshot struct {
	Year int `json:"year"`
	Age  int `json:"age"`

	GrossIncome          decimal.Decimal `json:"grossIncome"`
	TaxesPaid            decimal.Decimal `json:"taxesPaid"`
	NetIncome            decimal.Decimal `json:"netIncome"`
	TotalExpenses        decimal.Decimal `json:"totalExpenses"`
	NetCashflow          decimal.Decimal `json:"netCashflow"`
	SocialSecurityIncome decimal.Decimal `json:"socialSecurityIncome"`

	TotalDebt   decimal.Decimal `json:"totalDebt"`
	TotalAssets decimal.Decimal `json:"totalAssets"`
	NetWorth    decimal.Decimal `json:"netWorth"`

	AssetGrowth             decimal.Decimal `json:"assetGrowth"`
	DebtInterest            decimal.Decimal `json:"debtInterest"`
	DebtPayments            decimal.Decimal `json:"debtPayments"`
	LifeEventNetWorthImpact decimal.Decimal `json:"lifeEventNetWorthImpact"`
	LifeEventsThisYear      []LifeEvent     `json:"lifeEventsThisYear,omitempty"`

	IncomeBreakdown  map[string]decimal.Decimal `json:"incomeBreakdown"`
	ExpenseBreakdown map[string]decimal.Decimal `json:"expenseBreakdown"`
	AssetBreakdown   map[string]decimal.Decimal `json:"assetBreakdown"`
	LoanBreakdown    map[string]decimal.Decimal `json:"loanBreakdown"`

	SavingsRate decimal.Decimal `json:"savingsRate"`
	FIRatio     decimal.Decimal `json:"fiRatio"`
}

// PeakNetWorth locates the high-water mark of a projection.
type PeakNetWorth struct {
	Year   int             `json:"year"`
	Amount decimal.Decimal `json:"amount"`
}

// ProjectionSummary holds the scalars derived from a completed
// snapshot sequence. Year fields are nil when the condition never
// occurs within the horizon.
type ProjectionSummary struct {
	DebtFreeYear              *int            `json:"debtFreeYear"`
	FinancialIndependenceYear *int            `json:"financialIndependenceYear"`
	PeakNetWorth              PeakNetWorth    `json:"peakNetWorth"`
	MinNetWorth               decimal.Decimal `json:"minNetWorth"`
	TotalLifetimeEarnings     decimal.Decimal `json:"totalLifetimeEarnings"`
	TotalLifetimeTaxes        decimal.Decimal `json:"totalLifetimeTaxes"`
	TotalSocialSecurity       decimal.Decimal `json:"totalSocialSecurity"`
	AverageSavingsRate        decimal.Decimal `json:"averageSavingsRate"`
	YearsUntilRetirement      int             `json:"yearsUntilRetirement"`
	ProjectedRetirementIncome decimal.Decimal `json:"projectedRetirementIncome"`
	IncomeReplacementRatio    decimal.Decimal `json:"incomeReplacementRatio"`
	RiskScore                 int             `json:"riskScore"`
}

// ProjectionResult is the output aggregate of a deterministic run.
type ProjectionResult struct {
	Config          *ProjectionConfig `json:"config"`
	YearlySnapshots []YearlySnapshot  `json:"yearlySnapshots"`
	Summary         ProjectionSummary `json:"summary"`
	Warnings        []string          `json:"warnings,omitempty"`
	ExecutionTimeMs int64             `json:"executionTimeMs"`
}

// FinalSnapshot returns the last simulated year.
func (r *ProjectionResult) FinalSnapshot() YearlySnapshot {
	return r.YearlySnapshots[len(r.YearlySnapshots)-1]
}

// YearPercentiles is one year of the Monte Carlo uncertainty band.
type YearPercentiles struct {
	Year   int             `json:"year"`
	P10    decimal.Decimal `json:"p10"`
	Median decimal.Decimal `json:"median"`
	P90    decimal.Decimal `json:"p90"`
}

// MonteCarloResult aggregates net-worth trajectories across all
// iterations into percentile bands. Per-iteration insolvency is folded
// into SuccessRate rather than listed: Warnings carries config-level
// and seed-time notes only, never per-path "insolvency in year N"
// strings.
type MonteCarloResult struct {
	Iterations      int               `json:"iterations"`
	Seed            int64             `json:"seed"`
	Timeline        []YearPercentiles `json:"timeline"`
	TerminalP10     decimal.Decimal   `json:"terminalP10"`
	TerminalMedian  decimal.Decimal   `json:"terminalMedian"`
	TerminalP90     decimal.Decimal   `json:"terminalP90"`
	SuccessRate     decimal.Decimal   `json:"successRate"` // fraction of paths solvent through the horizon
	Warnings        []string          `json:"warnings,omitempty"`
	ExecutionTimeMs int64             `json:"executionTimeMs"`
}

// WhatIfScenario is a named sparse override merged onto a baseline
// config before re-running.
type WhatIfScenario struct {
	Name          string                `json:"name" yaml:"name"`
	Description   string                `json:"description,omitempty" yaml:"description,omitempty"`
	Modifications ScenarioModifications `json:"modifications" yaml:"modifications"`
}

// ScenarioModifications is a typed partial ProjectionConfig. Scalar
// fields are pointers: nil means "keep the baseline value". Slice
// fields, when non-nil, replace the baseline slice wholesale; there is
// no element-wise merging.
type ScenarioModifications struct {
	ProjectionYears *int             `json:"projectionYears,omitempty" yaml:"projection_years,omitempty"`
	InflationRate   *decimal.Decimal `json:"inflationRate,omitempty" yaml:"inflation_rate,omitempty"`
	CurrentAge      *int             `json:"currentAge,omitempty" yaml:"current_age,omitempty"`
	RetirementAge   *int             `json:"retirementAge,omitempty" yaml:"retirement_age,omitempty"`
	LifeExpectancy  *int             `json:"lifeExpectancy,omitempty" yaml:"life_expectancy,omitempty"`

	IncomeStreams []IncomeStream    `json:"incomeStreams,omitempty" yaml:"income_streams,omitempty"`
	Expenses      []ExpenseCategory `json:"expenses,omitempty" yaml:"expenses,omitempty"`
	LifeEvents    []LifeEvent       `json:"lifeEvents,omitempty" yaml:"life_events,omitempty"`
	Accounts      []Account         `json:"accounts,omitempty" yaml:"accounts,omitempty"`
	Loans         []Loan            `json:"loans,omitempty" yaml:"loans,omitempty"`

	SocialSecurity *SocialSecurityConfig `json:"socialSecurity,omitempty" yaml:"social_security,omitempty"`
	Taxes          *TaxConfig            `json:"taxes,omitempty" yaml:"taxes,omitempty"`

	ExpectedReturn  *decimal.Decimal `json:"expectedReturn,omitempty" yaml:"expected_return,omitempty"`
	ReturnStdDev    *decimal.Decimal `json:"returnStdDev,omitempty" yaml:"return_std_dev,omitempty"`
	InflationStdDev *decimal.Decimal `json:"inflationStdDev,omitempty" yaml:"inflation_std_dev,omitempty"`
}

// ScenarioResult pairs a scenario with its re-run projection.
type ScenarioResult struct {
	Scenario WhatIfScenario    `json:"scenario"`
	Result   *ProjectionResult `json:"result"`
}

// ComparisonSet is the what-if comparator output: the untouched
// baseline plus one full result per scenario. Deltas are a
// presentation concern and are not pre-computed here.
type ComparisonSet struct {
	Baseline  *ProjectionResult `json:"baseline"`
	Scenarios []ScenarioResult  `json:"scenarios"`
}

// QuickProjection is the reduced-fidelity dashboard variant.
type QuickProjection struct {
	NetWorthAtRetirement    decimal.Decimal `json:"netWorthAtRetirement"`
	MonthlyRetirementIncome decimal.Decimal `json:"monthlyRetirementIncome"`
	YearsUntilRetirement    int             `json:"yearsUntilRetirement"`
	RiskScore               int             `json:"riskScore"`
	IncomeReplacementRatio  decimal.Decimal `json:"incomeReplacementRatio"`
	Warnings                []string        `json:"warnings,omitempty"`
}
