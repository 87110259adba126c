package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Validate checks the configuration for structural problems before any
// simulation work begins. It returns a *ValidationError carrying every
// offending field, or nil.
func (c *ProjectionConfig) Validate() error {
	verr := &ValidationError{}

	if c.ProjectionYears <= 0 {
		verr.Add("projectionYears", "must be positive")
	}
	if c.InflationRate.LessThan(decimal.NewFromFloat(-0.10)) || c.InflationRate.GreaterThan(decimal.NewFromFloat(0.50)) {
		verr.Add("inflationRate", "must be between -10% and 50%")
	}
	if c.CurrentAge < 0 {
		verr.Add("currentAge", "must not be negative")
	}
	if c.RetirementAge < c.CurrentAge {
		verr.Add("retirementAge", fmt.Sprintf("must not precede current age %d", c.CurrentAge))
	}
	if c.LifeExpectancy < 0 {
		verr.Add("lifeExpectancy", "must not be negative")
	}

	for i, s := range c.IncomeStreams {
		field := fmt.Sprintf("incomeStreams[%d]", i)
		if s.Name == "" {
			verr.Add(field+".name", "is required")
		}
		if s.AnnualAmount.IsNegative() {
			verr.Add(field+".annualAmount", "must not be negative")
		}
		if s.StartYear != nil && *s.StartYear < 0 {
			verr.Add(field+".startYear", "must not be negative")
		}
		if s.StartYear != nil && s.EndYear != nil && *s.EndYear < *s.StartYear {
			verr.Add(field+".endYear", "must not precede startYear")
		}
	}

	for i, e := range c.Expenses {
		field := fmt.Sprintf("expenses[%d]", i)
		if e.Name == "" {
			verr.Add(field+".name", "is required")
		}
		if e.AnnualAmount.IsNegative() {
			verr.Add(field+".annualAmount", "must not be negative")
		}
		if e.StartYear != nil && e.EndYear != nil && *e.EndYear < *e.StartYear {
			verr.Add(field+".endYear", "must not precede startYear")
		}
	}

	for i, ev := range c.LifeEvents {
		field := fmt.Sprintf("lifeEvents[%d]", i)
		if ev.Name == "" {
			verr.Add(field+".name", "is required")
		}
		if ev.Year < 0 {
			verr.Add(field+".year", "must not be negative")
		}
		if c.ProjectionYears > 0 && ev.Year >= c.ProjectionYears {
			verr.Add(field+".year", fmt.Sprintf("exceeds projection horizon of %d years", c.ProjectionYears))
		}
		if ev.AnnualImpact != nil && ev.ImpactDuration <= 0 {
			verr.Add(field+".impactDuration", "must be positive when annualImpact is set")
		}
		if ev.AnnualImpact == nil && ev.ImpactDuration > 0 {
			verr.Add(field+".annualImpact", "is required when impactDuration is set")
		}
	}

	for i, l := range c.Loans {
		field := fmt.Sprintf("loans[%d]", i)
		if l.Balance.IsNegative() {
			verr.Add(field+".balance", "must not be negative")
		}
		if l.AnnualRate.IsNegative() {
			verr.Add(field+".annualRate", "must not be negative")
		}
		if l.AnnualPayment.IsNegative() {
			verr.Add(field+".annualPayment", "must not be negative")
		}
		if l.Balance.IsPositive() && l.AnnualPayment.IsZero() {
			verr.Add(field+".annualPayment", "must be positive for an outstanding balance")
		}
	}

	for i, a := range c.Accounts {
		field := fmt.Sprintf("accounts[%d]", i)
		if a.Balance.IsNegative() {
			verr.Add(field+".balance", "must not be negative")
		}
	}

	if c.SocialSecurity != nil {
		ss := c.SocialSecurity
		if ss.MonthlyBenefit.IsNegative() {
			verr.Add("socialSecurity.monthlyBenefit", "must not be negative")
		}
		if ss.ClaimYear == nil && ss.ClaimAge > 0 && ss.ClaimAge < c.CurrentAge {
			verr.Add("socialSecurity.claimAge", "must not precede current age")
		}
	}

	if c.Taxes != nil {
		if c.Taxes.StateTaxRate.IsNegative() {
			verr.Add("taxes.stateTaxRate", "must not be negative")
		}
		for i, b := range c.Taxes.Brackets {
			if b.Max.LessThan(b.Min) {
				verr.Add(fmt.Sprintf("taxes.brackets[%d]", i), "max must not be below min")
			}
		}
	}

	return verr.OrNil()
}

// Warnings returns non-fatal data-quality notices for a structurally
// valid configuration.
func (c *ProjectionConfig) Warnings() []string {
	var warnings []string
	if c.LifeExpectancy > 0 && c.RetirementAge > c.LifeExpectancy {
		warnings = append(warnings, "retirement age exceeds life expectancy")
	}
	if c.RetirementAge-c.CurrentAge >= c.ProjectionYears {
		warnings = append(warnings, "projection horizon ends before retirement")
	}
	if len(c.IncomeStreams) == 0 {
		warnings = append(warnings, "no income streams configured")
	}
	return warnings
}
