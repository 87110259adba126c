// Package datasource defines the read-only collaborator interfaces the
// engine consumes: connected-account balances, detected recurring
// transaction patterns, and goal definitions. The engine itself never
// performs I/O; seed data is fully resolved before a run starts.
package datasource

import (
	"context"

	"github.com/madfam-io/dhanam/internal/domain"
)

// AccountProvider supplies current balances and loan terms for a space.
type AccountProvider interface {
	Accounts(ctx context.Context, spaceID string) ([]domain.Account, []domain.Loan, error)
}

// RecurringProvider supplies detected recurring income and expense
// patterns for a space.
type RecurringProvider interface {
	Recurring(ctx context.Context, spaceID string) ([]domain.IncomeStream, []domain.ExpenseCategory, error)
}

// GoalProvider supplies goal definitions.
type GoalProvider interface {
	Goal(ctx context.Context, goalID string) (*domain.Goal, error)
}

// Providers bundles the collaborators a seeding pass may consult. Nil
// members are treated as unavailable upstreams.
type Providers struct {
	Accounts  AccountProvider
	Recurring RecurringProvider
	Goals     GoalProvider
}
