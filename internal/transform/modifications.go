// Package transform applies what-if modifications to projection
// configurations. Modifications are sparse, typed partials: scalar
// overrides are pointers, slice overrides replace the baseline slice
// wholesale. There is deliberately no element-wise array merging;
// partial-array semantics are ambiguous and order-dependent.
package transform

import (
	"fmt"

	"github.com/madfam-io/dhanam/internal/domain"
)

// Apply merges a scenario's modifications onto a deep copy of the
// baseline and returns the merged config. The baseline is never
// touched, so scenarios are isolated and order-insensitive.
func Apply(baseline *domain.ProjectionConfig, mods domain.ScenarioModifications) (*domain.ProjectionConfig, error) {
	if baseline == nil {
		return nil, fmt.Errorf("baseline config cannot be nil")
	}

	cfg := baseline.DeepCopy()

	if mods.ProjectionYears != nil {
		cfg.ProjectionYears = *mods.ProjectionYears
	}
	if mods.InflationRate != nil {
		cfg.InflationRate = *mods.InflationRate
	}
	if mods.CurrentAge != nil {
		cfg.CurrentAge = *mods.CurrentAge
	}
	if mods.RetirementAge != nil {
		cfg.RetirementAge = *mods.RetirementAge
	}
	if mods.LifeExpectancy != nil {
		cfg.LifeExpectancy = *mods.LifeExpectancy
	}

	if mods.IncomeStreams != nil {
		cfg.IncomeStreams = append([]domain.IncomeStream(nil), mods.IncomeStreams...)
	}
	if mods.Expenses != nil {
		cfg.Expenses = append([]domain.ExpenseCategory(nil), mods.Expenses...)
	}
	if mods.LifeEvents != nil {
		cfg.LifeEvents = append([]domain.LifeEvent(nil), mods.LifeEvents...)
	}
	if mods.Accounts != nil {
		cfg.Accounts = append([]domain.Account(nil), mods.Accounts...)
	}
	if mods.Loans != nil {
		cfg.Loans = append([]domain.Loan(nil), mods.Loans...)
	}

	if mods.SocialSecurity != nil {
		ss := *mods.SocialSecurity
		cfg.SocialSecurity = &ss
	}
	if mods.Taxes != nil {
		tx := *mods.Taxes
		cfg.Taxes = &tx
	}

	if mods.ExpectedReturn != nil {
		cfg.ExpectedReturn = *mods.ExpectedReturn
	}
	if mods.ReturnStdDev != nil {
		cfg.ReturnStdDev = *mods.ReturnStdDev
	}
	if mods.InflationStdDev != nil {
		cfg.InflationStdDev = *mods.InflationStdDev
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scenario produced an invalid config: %w", err)
	}

	return cfg, nil
}
