package transform

import (
	"sort"
	"strings"

	"github.com/madfam-io/dhanam/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages the built-in what-if scenario templates
// surfaced to the UI and CLI.
type TemplateRegistry struct {
	templates map[string]domain.WhatIfScenario
}

// NewTemplateRegistry creates an empty registry.
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{templates: make(map[string]domain.WhatIfScenario)}
}

// Register adds a template, keyed case-insensitively by name.
func (tr *TemplateRegistry) Register(s domain.WhatIfScenario) {
	tr.templates[strings.ToLower(s.Name)] = s
}

// Get retrieves a template by name (case-insensitive).
func (tr *TemplateRegistry) Get(name string) (domain.WhatIfScenario, bool) {
	s, ok := tr.templates[strings.ToLower(name)]
	return s, ok
}

// List returns all templates sorted by name.
func (tr *TemplateRegistry) List() []domain.WhatIfScenario {
	out := make([]domain.WhatIfScenario, 0, len(tr.templates))
	for _, s := range tr.templates {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func intPtr(v int) *int                         { return &v }
func decPtr(v decimal.Decimal) *decimal.Decimal { return &v }

// BuiltInTemplates returns the stock scenario set, parameterized on
// the baseline so relative adjustments (retire five years earlier)
// resolve to concrete values.
func BuiltInTemplates(baseline *domain.ProjectionConfig) *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(domain.WhatIfScenario{
		Name:        "retire_early_5yr",
		Description: "Retire 5 years earlier",
		Modifications: domain.ScenarioModifications{
			RetirementAge: intPtr(maxInt(baseline.RetirementAge-5, baseline.CurrentAge)),
		},
	})

	registry.Register(domain.WhatIfScenario{
		Name:        "retire_late_5yr",
		Description: "Retire 5 years later",
		Modifications: domain.ScenarioModifications{
			RetirementAge: intPtr(baseline.RetirementAge + 5),
		},
	})

	registry.Register(domain.WhatIfScenario{
		Name:        "higher_inflation",
		Description: "Inflation runs 2 points above expectations",
		Modifications: domain.ScenarioModifications{
			InflationRate: decPtr(baseline.InflationRate.Add(decimal.NewFromFloat(0.02))),
		},
	})

	registry.Register(domain.WhatIfScenario{
		Name:        "market_downturn",
		Description: "Expected returns fall 3 points with wider swings",
		Modifications: domain.ScenarioModifications{
			ExpectedReturn: decPtr(baseline.ExpectedReturn.Sub(decimal.NewFromFloat(0.03))),
			ReturnStdDev:   decPtr(baseline.ReturnStdDev.Add(decimal.NewFromFloat(0.05))),
		},
	})

	if len(baseline.Expenses) > 0 {
		registry.Register(domain.WhatIfScenario{
			Name:          "spend_less_10pct",
			Description:   "Cut every expense category by 10%",
			Modifications: domain.ScenarioModifications{Expenses: scaleExpenses(baseline.Expenses, decimal.NewFromFloat(0.9))},
		})
	}

	if baseline.SocialSecurity != nil && baseline.CurrentAge <= 70 {
		ss := *baseline.SocialSecurity
		ss.ClaimAge = 70
		ss.ClaimYear = nil
		registry.Register(domain.WhatIfScenario{
			Name:          "delay_ss_70",
			Description:   "Delay Social Security claiming to age 70",
			Modifications: domain.ScenarioModifications{SocialSecurity: &ss},
		})
	}

	return registry
}

func scaleExpenses(expenses []domain.ExpenseCategory, factor decimal.Decimal) []domain.ExpenseCategory {
	out := make([]domain.ExpenseCategory, len(expenses))
	for i, e := range expenses {
		out[i] = e
		out[i].AnnualAmount = e.AnnualAmount.Mul(factor)
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
