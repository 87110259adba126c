package calculation

import (
	"fmt"

	"github.com/madfam-io/dhanam/internal/domain"
	"github.com/shopspring/decimal"
)

// centTolerance is where a loan balance counts as paid off.
var centTolerance = decimal.NewFromFloat(0.005)

// AccountState is one asset balance carried between years.
type AccountState struct {
	Name    string
	Type    domain.AccountType
	Balance decimal.Decimal
}

// LoanState is one outstanding debt carried between years.
type LoanState struct {
	Name    string
	Balance decimal.Decimal
	Rate    decimal.Decimal
	Payment decimal.Decimal
}

// YearState is the balance-sheet state threaded through the
// simulation. InflationFactor accumulates the ratio of sampled to
// expected inflation; it stays exactly 1 in deterministic mode, so the
// deterministic runner and a zero-variance Monte Carlo run coincide.
type YearState struct {
	Accounts        []AccountState
	Loans           []LoanState
	InflationFactor decimal.Decimal
}

// NewYearState seeds the starting balance sheet from a configuration.
// When no market-exposed account exists, a synthetic portfolio account
// is added so surplus cashflow has somewhere to compound.
func NewYearState(cfg *domain.ProjectionConfig) YearState {
	state := YearState{InflationFactor: one}

	hasInvestment := false
	for _, a := range cfg.Accounts {
		state.Accounts = append(state.Accounts, AccountState{Name: a.Name, Type: a.Type, Balance: a.Balance})
		if !a.Type.Liquid() {
			hasInvestment = true
		}
	}
	if !hasInvestment {
		state.Accounts = append(state.Accounts, AccountState{Name: "portfolio", Type: domain.AccountInvestment, Balance: decimal.Zero})
	}

	for _, l := range cfg.Loans {
		if l.Balance.GreaterThan(centTolerance) {
			state.Loans = append(state.Loans, LoanState{Name: l.Name, Balance: l.Balance, Rate: l.AnnualRate, Payment: l.AnnualPayment})
		}
	}

	return state
}

// Clone returns an independent copy of the state.
func (s YearState) Clone() YearState {
	return YearState{
		Accounts:        append([]AccountState(nil), s.Accounts...),
		Loans:           append([]LoanState(nil), s.Loans...),
		InflationFactor: s.InflationFactor,
	}
}

// TotalAssets sums every account balance.
func (s YearState) TotalAssets() decimal.Decimal {
	total := decimal.Zero
	for _, a := range s.Accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// TotalDebt sums every outstanding loan balance.
func (s YearState) TotalDebt() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.Loans {
		total = total.Add(l.Balance)
	}
	return total
}

// AdvanceYear is the single-step simulation kernel shared by the
// deterministic runner and every Monte Carlo iteration. It is a pure
// function of its inputs: the prior state is cloned, never mutated.
//
// Order of operations: income, taxes, expenses and life-event cash
// effects, scheduled debt service, market growth and cashflow
// allocation, then capital life events. Insolvency clamps assets at
// zero and reports a warning; the snapshot sequence is always
// full length.
func AdvanceYear(prior YearState, cfg *domain.ProjectionConfig, taxFn TaxFunc, year int, marketReturn, inflationSample decimal.Decimal) (YearState, domain.YearlySnapshot, []string) {
	state := prior.Clone()
	var warnings []string

	// Inflation surprise relative to the expected rate compounds
	// across years and scales nominal outflows.
	state.InflationFactor = state.InflationFactor.
		Mul(one.Add(inflationSample)).
		Div(one.Add(cfg.InflationRate))

	snap := domain.YearlySnapshot{
		Year:             year,
		Age:              cfg.CurrentAge + year,
		IncomeBreakdown:  make(map[string]decimal.Decimal),
		ExpenseBreakdown: make(map[string]decimal.Decimal),
		AssetBreakdown:   make(map[string]decimal.Decimal),
		LoanBreakdown:    make(map[string]decimal.Decimal),
	}

	// 1. Income.
	taxableIncome := decimal.Zero
	grossIncome := decimal.Zero
	for _, stream := range cfg.IncomeStreams {
		amount := IncomeAmount(stream, year, cfg.ProjectionYears)
		if amount.IsZero() {
			continue
		}
		snap.IncomeBreakdown[stream.Name] = amount
		grossIncome = grossIncome.Add(amount)
		if stream.Taxable {
			taxableIncome = taxableIncome.Add(amount)
		}
	}

	snap.SocialSecurityIncome = SocialSecurityIncome(cfg, year)
	grossIncome = grossIncome.Add(snap.SocialSecurityIncome)

	// Life-event cash inflows are untaxed income; outflows join the
	// expense side below.
	events := EventsForYear(cfg.LifeEvents, year, cfg.InflationRate)
	eventInflow := events.CashInflow.Mul(state.InflationFactor)
	eventOutflow := events.CashOutflow.Mul(state.InflationFactor)
	if eventInflow.IsPositive() {
		grossIncome = grossIncome.Add(eventInflow)
		snap.IncomeBreakdown["life_events"] = eventInflow
	}
	snap.LifeEventsThisYear = events.Active
	snap.GrossIncome = grossIncome

	// 2. Taxes on the taxable subset only.
	snap.TaxesPaid = taxFn(taxableIncome, cfg.Taxes)
	snap.NetIncome = grossIncome.Sub(snap.TaxesPaid)

	// 3. Expenses.
	totalExpenses := decimal.Zero
	essentialExpenses := decimal.Zero
	for _, expense := range cfg.Expenses {
		amount := ExpenseAmount(expense, year, cfg.ProjectionYears).Mul(state.InflationFactor)
		if amount.IsZero() {
			continue
		}
		snap.ExpenseBreakdown[expense.Name] = amount
		totalExpenses = totalExpenses.Add(amount)
		if expense.Essential {
			essentialExpenses = essentialExpenses.Add(amount)
		}
	}
	if eventOutflow.IsPositive() {
		snap.ExpenseBreakdown["life_events"] = eventOutflow
		totalExpenses = totalExpenses.Add(eventOutflow)
	}
	snap.TotalExpenses = totalExpenses

	// 4. Cashflow.
	snap.NetCashflow = snap.NetIncome.Sub(totalExpenses)

	// 5. Scheduled debt service. Interest accrues at the stated rate,
	// the level payment covers interest first, and retired loans drop
	// out of future years.
	debtInterest := decimal.Zero
	debtPayments := decimal.Zero
	remaining := state.Loans[:0]
	for _, loan := range state.Loans {
		interest := loan.Balance.Mul(loan.Rate)
		payment := decimal.Min(loan.Payment, loan.Balance.Add(interest))
		loan.Balance = loan.Balance.Add(interest).Sub(payment)
		debtInterest = debtInterest.Add(interest)
		debtPayments = debtPayments.Add(payment)
		if loan.Balance.GreaterThan(centTolerance) {
			remaining = append(remaining, loan)
			snap.LoanBreakdown[loan.Name] = loan.Balance
		}
	}
	state.Loans = remaining
	snap.DebtInterest = debtInterest
	snap.DebtPayments = debtPayments

	// 6. Market growth on investment balances, then allocate what the
	// year's cashflow left after debt service.
	assetGrowth := decimal.Zero
	for i := range state.Accounts {
		if state.Accounts[i].Type.Liquid() {
			continue
		}
		growth := state.Accounts[i].Balance.Mul(marketReturn)
		state.Accounts[i].Balance = state.Accounts[i].Balance.Add(growth)
		assetGrowth = assetGrowth.Add(growth)
	}
	snap.AssetGrowth = assetGrowth

	available := snap.NetCashflow.Sub(debtPayments)
	switch {
	case available.IsPositive():
		state.deposit(available)
	case available.IsNegative():
		shortfall := state.withdraw(available.Neg())
		if shortfall.GreaterThan(centTolerance) {
			warnings = append(warnings, fmt.Sprintf("insolvency in year %d", year))
		}
	}

	// 7. Capital events land directly on the balance sheet.
	capital := events.CapitalImpact.Mul(state.InflationFactor)
	snap.LifeEventNetWorthImpact = capital
	if capital.IsPositive() {
		state.deposit(capital)
	} else if capital.IsNegative() {
		shortfall := state.withdraw(capital.Neg())
		if shortfall.GreaterThan(centTolerance) {
			snap.LifeEventNetWorthImpact = capital.Add(shortfall)
			warnings = append(warnings, fmt.Sprintf("insolvency in year %d", year))
		}
	}

	// 8. Derived metrics.
	for _, a := range state.Accounts {
		snap.AssetBreakdown[a.Name] = a.Balance
	}
	snap.TotalAssets = state.TotalAssets()
	snap.TotalDebt = state.TotalDebt()
	snap.NetWorth = snap.TotalAssets.Sub(snap.TotalDebt)

	if grossIncome.IsPositive() {
		snap.SavingsRate = snap.NetCashflow.Div(grossIncome)
	}
	passiveIncome := snap.SocialSecurityIncome.Add(assetGrowth)
	if essentialExpenses.IsPositive() {
		snap.FIRatio = passiveIncome.Div(essentialExpenses)
	}

	return state, snap, warnings
}

// deposit adds surplus to the first market-exposed account, falling
// back to the first account of any kind.
func (s *YearState) deposit(amount decimal.Decimal) {
	for i := range s.Accounts {
		if !s.Accounts[i].Type.Liquid() {
			s.Accounts[i].Balance = s.Accounts[i].Balance.Add(amount)
			return
		}
	}
	if len(s.Accounts) > 0 {
		s.Accounts[0].Balance = s.Accounts[0].Balance.Add(amount)
	}
}

// withdraw draws the amount down across accounts, liquid balances
// first, and returns any unfunded shortfall. Balances never go
// negative; insolvency is the caller's warning to raise.
func (s *YearState) withdraw(amount decimal.Decimal) decimal.Decimal {
	for pass := 0; pass < 2; pass++ {
		liquidPass := pass == 0
		for i := range s.Accounts {
			if s.Accounts[i].Type.Liquid() != liquidPass {
				continue
			}
			if amount.LessThanOrEqual(centTolerance) {
				return decimal.Zero
			}
			take := decimal.Min(amount, s.Accounts[i].Balance)
			s.Accounts[i].Balance = s.Accounts[i].Balance.Sub(take)
			amount = amount.Sub(take)
		}
	}
	if amount.LessThanOrEqual(centTolerance) {
		return decimal.Zero
	}
	return amount
}
