package datasource

import (
	"context"
	"errors"
	"fmt"

	"github.com/madfam-io/dhanam/internal/domain"
)

// ErrNotConfigured marks an upstream that has no provider wired.
var ErrNotConfigured = errors.New("provider not configured")

// Seed resolves upstream seed data into a copy of the configuration
// for a space, honoring IncludeAccounts and IncludeRecurring. When an
// upstream fails outside strict mode the projection degrades to empty
// seed data and a warning; in strict mode the failure is fatal.
func Seed(ctx context.Context, spaceID string, cfg *domain.ProjectionConfig, providers Providers, strict bool) (*domain.ProjectionConfig, []string, error) {
	out := cfg.DeepCopy()
	var warnings []string

	if cfg.IncludeAccounts {
		accounts, loans, err := fetchAccounts(ctx, providers.Accounts, spaceID)
		switch {
		case err != nil && strict:
			return nil, nil, &domain.UpstreamError{Source: "accounts", Err: err}
		case err != nil:
			warnings = append(warnings, fmt.Sprintf("account data unavailable, projecting without connected balances: %v", err))
		default:
			out.Accounts = append(out.Accounts, accounts...)
			out.Loans = append(out.Loans, loans...)
		}
	}

	if cfg.IncludeRecurring {
		incomes, expenses, err := fetchRecurring(ctx, providers.Recurring, spaceID)
		switch {
		case err != nil && strict:
			return nil, nil, &domain.UpstreamError{Source: "recurring-transactions", Err: err}
		case err != nil:
			warnings = append(warnings, fmt.Sprintf("recurring-transaction data unavailable, projecting without detected patterns: %v", err))
		default:
			out.IncomeStreams = append(out.IncomeStreams, incomes...)
			out.Expenses = append(out.Expenses, expenses...)
		}
	}

	return out, warnings, nil
}

func fetchAccounts(ctx context.Context, p AccountProvider, spaceID string) ([]domain.Account, []domain.Loan, error) {
	if p == nil {
		return nil, nil, ErrNotConfigured
	}
	return p.Accounts(ctx, spaceID)
}

func fetchRecurring(ctx context.Context, p RecurringProvider, spaceID string) ([]domain.IncomeStream, []domain.ExpenseCategory, error) {
	if p == nil {
		return nil, nil, ErrNotConfigured
	}
	return p.Recurring(ctx, spaceID)
}
