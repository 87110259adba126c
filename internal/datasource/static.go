package datasource

import (
	"context"
	"fmt"
	"os"

	"github.com/madfam-io/dhanam/internal/domain"
	"gopkg.in/yaml.v3"
)

// StaticProvider serves seed data from a YAML snapshot. The CLI uses
// it in place of the live account/goal services; tests use it as a
// deterministic upstream.
type StaticProvider struct {
	AccountData []domain.Account         `yaml:"accounts"`
	LoanData    []domain.Loan            `yaml:"loans"`
	IncomeData  []domain.IncomeStream    `yaml:"income_streams"`
	ExpenseData []domain.ExpenseCategory `yaml:"expenses"`
	GoalData    []domain.Goal            `yaml:"goals"`
}

// LoadStaticProvider reads a seed snapshot from a YAML file.
func LoadStaticProvider(filename string) (*StaticProvider, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", filename, err)
	}
	var p StaticProvider
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &p, nil
}

// Accounts implements AccountProvider.
func (p *StaticProvider) Accounts(context.Context, string) ([]domain.Account, []domain.Loan, error) {
	return p.AccountData, p.LoanData, nil
}

// Recurring implements RecurringProvider.
func (p *StaticProvider) Recurring(context.Context, string) ([]domain.IncomeStream, []domain.ExpenseCategory, error) {
	return p.IncomeData, p.ExpenseData, nil
}

// Goal implements GoalProvider.
func (p *StaticProvider) Goal(_ context.Context, goalID string) (*domain.Goal, error) {
	for i := range p.GoalData {
		if p.GoalData[i].ID == goalID {
			return &p.GoalData[i], nil
		}
	}
	return nil, fmt.Errorf("goal %s not found", goalID)
}

// AsProviders bundles the static provider for seeding.
func (p *StaticProvider) AsProviders() Providers {
	return Providers{Accounts: p, Recurring: p, Goals: p}
}
