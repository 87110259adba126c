package domain

import (
	"github.com/shopspring/decimal"
)

// ProjectionConfig is the immutable input aggregate for a projection run.
// It is constructed per request, either from a YAML document or from
// upstream account/goal data, and is never mutated once a run begins.
type ProjectionConfig struct {
	ProjectionYears int             `json:"projectionYears" yaml:"projection_years"`
	InflationRate   decimal.Decimal `json:"inflationRate" yaml:"inflation_rate"`
	CurrentAge      int             `json:"currentAge" yaml:"current_age"`
	RetirementAge   int             `json:"retirementAge" yaml:"retirement_age"`
	LifeExpectancy  int             `json:"lifeExpectancy" yaml:"life_expectancy"`

	IncomeStreams []IncomeStream    `json:"incomeStreams" yaml:"income_streams"`
	Expenses      []ExpenseCategory `json:"expenses" yaml:"expenses"`

	SocialSecurity *SocialSecurityConfig `json:"socialSecurity,omitempty" yaml:"social_security,omitempty"`
	Taxes          *TaxConfig            `json:"taxes,omitempty" yaml:"taxes,omitempty"`
	LifeEvents     []LifeEvent           `json:"lifeEvents,omitempty" yaml:"life_events,omitempty"`

	// Starting balance sheet. Accounts and Loans may be supplied inline
	// or seeded from the account service when IncludeAccounts is set.
	Accounts []Account `json:"accounts,omitempty" yaml:"accounts,omitempty"`
	Loans    []Loan    `json:"loans,omitempty" yaml:"loans,omitempty"`

	// ExpectedReturn drives the deterministic runner; ReturnStdDev and
	// InflationStdDev parameterize the Monte Carlo samplers.
	ExpectedReturn  decimal.Decimal `json:"expectedReturn" yaml:"expected_return"`
	ReturnStdDev    decimal.Decimal `json:"returnStdDev" yaml:"return_std_dev"`
	InflationStdDev decimal.Decimal `json:"inflationStdDev" yaml:"inflation_std_dev"`

	IncludeAccounts  bool `json:"includeAccounts" yaml:"include_accounts"`
	IncludeRecurring bool `json:"includeRecurring" yaml:"include_recurring"`
}

// IncomeStream is a single income source with compounding growth over
// an optional active window. Years are relative to the projection start.
type IncomeStream struct {
	Name         string          `json:"name" yaml:"name"`
	AnnualAmount decimal.Decimal `json:"annualAmount" yaml:"annual_amount"`
	GrowthRate   decimal.Decimal `json:"growthRate" yaml:"growth_rate"`
	StartYear    *int            `json:"startYear,omitempty" yaml:"start_year,omitempty"`
	EndYear      *int            `json:"endYear,omitempty" yaml:"end_year,omitempty"`
	Taxable      bool            `json:"taxable" yaml:"taxable"`
}

// ExpenseCategory mirrors IncomeStream for the outflow side. Essential
// categories feed the financial-independence ratio, nothing else.
type ExpenseCategory struct {
	Name         string          `json:"name" yaml:"name"`
	AnnualAmount decimal.Decimal `json:"annualAmount" yaml:"annual_amount"`
	GrowthRate   decimal.Decimal `json:"growthRate" yaml:"growth_rate"`
	Essential    bool            `json:"essential" yaml:"essential"`
	StartYear    *int            `json:"startYear,omitempty" yaml:"start_year,omitempty"`
	EndYear      *int            `json:"endYear,omitempty" yaml:"end_year,omitempty"`
}

// SocialSecurityConfig describes benefit timing for the filer and an
// optional spouse. ClaimYear takes precedence over ClaimAge when both
// are present; COLARate nil means the benefit tracks InflationRate.
type SocialSecurityConfig struct {
	Country        string           `json:"country" yaml:"country"`
	MonthlyBenefit decimal.Decimal  `json:"monthlyBenefit" yaml:"monthly_benefit"`
	ClaimAge       int              `json:"claimAge" yaml:"claim_age"`
	ClaimYear      *int             `json:"claimYear,omitempty" yaml:"claim_year,omitempty"`
	COLARate       *decimal.Decimal `json:"colaRate,omitempty" yaml:"cola_rate,omitempty"`

	SpouseMonthlyBenefit decimal.Decimal `json:"spouseMonthlyBenefit" yaml:"spouse_monthly_benefit"`
	SpouseClaimAge       int             `json:"spouseClaimAge" yaml:"spouse_claim_age"`
}

// TaxBracket is one progressive bracket. Bracket tables are
// configuration data, not engine logic.
type TaxBracket struct {
	Min  decimal.Decimal `json:"min" yaml:"min"`
	Max  decimal.Decimal `json:"max" yaml:"max"`
	Rate decimal.Decimal `json:"rate" yaml:"rate"`
}

// TaxConfig parameterizes the pluggable tax function.
type TaxConfig struct {
	Country          string          `json:"country" yaml:"country"`
	FilingStatus     string          `json:"filingStatus" yaml:"filing_status"`
	State            string          `json:"state,omitempty" yaml:"state,omitempty"`
	StateTaxRate     decimal.Decimal `json:"stateTaxRate" yaml:"state_tax_rate"`
	AnnualDeductions decimal.Decimal `json:"annualDeductions" yaml:"annual_deductions"`
	Brackets         []TaxBracket    `json:"brackets,omitempty" yaml:"brackets,omitempty"`
}

// LifeEventType identifies the kind of financial shock an event models.
type LifeEventType string

const (
	EventHomePurchase LifeEventType = "home_purchase"
	EventInheritance  LifeEventType = "inheritance"
	EventMedical      LifeEventType = "medical"
	EventEducation    LifeEventType = "education"
	EventRelocation   LifeEventType = "relocation"
	EventOther        LifeEventType = "other"
)

// LifeEvent is a one-off or recurring financial shock.
//
// Sign convention: positive Amount/AnnualImpact is an inflow
// (inheritance), negative is an outflow (home purchase, medical bill).
// The engine never second-guesses signs.
//
// When ImpactDuration is zero the event is one-off and Amount applies
// fully in Year. Otherwise AnnualImpact applies for each year in
// [Year, Year+ImpactDuration). Capital events bypass the cashflow and
// hit assets or debt directly in their event year.
type LifeEvent struct {
	Type              LifeEventType    `json:"type" yaml:"type"`
	Name              string           `json:"name" yaml:"name"`
	Year              int              `json:"year" yaml:"year"`
	Amount            decimal.Decimal  `json:"amount" yaml:"amount"`
	AnnualImpact      *decimal.Decimal `json:"annualImpact,omitempty" yaml:"annual_impact,omitempty"`
	ImpactDuration    int              `json:"impactDuration,omitempty" yaml:"impact_duration,omitempty"`
	InflationAdjusted bool             `json:"inflationAdjusted" yaml:"inflation_adjusted"`
	Capital           bool             `json:"capital" yaml:"capital"`
}

// Recurring reports whether the event repeats over a duration window.
func (e LifeEvent) Recurring() bool {
	return e.AnnualImpact != nil && e.ImpactDuration > 0
}

// AccountType distinguishes liquid cash accounts from market-exposed
// investment accounts. The distinction drives drawdown ordering and
// which balances participate in market growth.
type AccountType string

const (
	AccountCash       AccountType = "cash"
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountInvestment AccountType = "investment"
	AccountRetirement AccountType = "retirement"
)

// Liquid reports whether the account is depleted before investment
// accounts when cashflow runs negative.
func (t AccountType) Liquid() bool {
	switch t {
	case AccountCash, AccountChecking, AccountSavings:
		return true
	}
	return false
}

// Account is a starting asset balance.
type Account struct {
	Name     string          `json:"name" yaml:"name"`
	Type     AccountType     `json:"type" yaml:"type"`
	Balance  decimal.Decimal `json:"balance" yaml:"balance"`
	Currency string          `json:"currency,omitempty" yaml:"currency,omitempty"`
}

// Loan is a starting debt with a level annual payment at a stated rate.
type Loan struct {
	Name          string          `json:"name" yaml:"name"`
	Balance       decimal.Decimal `json:"balance" yaml:"balance"`
	AnnualRate    decimal.Decimal `json:"annualRate" yaml:"annual_rate"`
	AnnualPayment decimal.Decimal `json:"annualPayment" yaml:"annual_payment"`
}

// DeepCopy returns an independent copy of the configuration. Scenario
// modifications operate on copies so a baseline is never mutated.
func (c *ProjectionConfig) DeepCopy() *ProjectionConfig {
	out := *c

	out.IncomeStreams = make([]IncomeStream, len(c.IncomeStreams))
	for i, s := range c.IncomeStreams {
		out.IncomeStreams[i] = s
		out.IncomeStreams[i].StartYear = copyIntPtr(s.StartYear)
		out.IncomeStreams[i].EndYear = copyIntPtr(s.EndYear)
	}

	out.Expenses = make([]ExpenseCategory, len(c.Expenses))
	for i, e := range c.Expenses {
		out.Expenses[i] = e
		out.Expenses[i].StartYear = copyIntPtr(e.StartYear)
		out.Expenses[i].EndYear = copyIntPtr(e.EndYear)
	}

	if c.SocialSecurity != nil {
		ss := *c.SocialSecurity
		ss.ClaimYear = copyIntPtr(c.SocialSecurity.ClaimYear)
		if c.SocialSecurity.COLARate != nil {
			cola := *c.SocialSecurity.COLARate
			ss.COLARate = &cola
		}
		out.SocialSecurity = &ss
	}

	if c.Taxes != nil {
		tx := *c.Taxes
		tx.Brackets = append([]TaxBracket(nil), c.Taxes.Brackets...)
		out.Taxes = &tx
	}

	out.LifeEvents = make([]LifeEvent, len(c.LifeEvents))
	for i, ev := range c.LifeEvents {
		out.LifeEvents[i] = ev
		if ev.AnnualImpact != nil {
			impact := *ev.AnnualImpact
			out.LifeEvents[i].AnnualImpact = &impact
		}
	}

	out.Accounts = append([]Account(nil), c.Accounts...)
	out.Loans = append([]Loan(nil), c.Loans...)

	return &out
}

func copyIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
