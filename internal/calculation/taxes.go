package calculation

import (
	"github.com/madfam-io/dhanam/internal/domain"
	"github.com/shopspring/decimal"
)

// TaxFunc maps gross taxable income to taxes paid under a given
// TaxConfig. Bracket tables vary by jurisdiction and change yearly, so
// they arrive as configuration data; the engine only owns the bracket
// walk. Injecting a different TaxFunc swaps the whole policy without
// touching the kernel.
type TaxFunc func(taxableIncome decimal.Decimal, cfg *domain.TaxConfig) decimal.Decimal

// defaultBrackets approximates a progressive single-filer schedule.
// Used only when the config supplies no bracket table of its own.
var defaultBrackets = []domain.TaxBracket{
	{Min: decimal.Zero, Max: decimal.NewFromInt(11600), Rate: decimal.NewFromFloat(0.10)},
	{Min: decimal.NewFromInt(11600), Max: decimal.NewFromInt(47150), Rate: decimal.NewFromFloat(0.12)},
	{Min: decimal.NewFromInt(47150), Max: decimal.NewFromInt(100525), Rate: decimal.NewFromFloat(0.22)},
	{Min: decimal.NewFromInt(100525), Max: decimal.NewFromInt(191950), Rate: decimal.NewFromFloat(0.24)},
	{Min: decimal.NewFromInt(191950), Max: decimal.NewFromInt(243725), Rate: decimal.NewFromFloat(0.32)},
	{Min: decimal.NewFromInt(243725), Max: decimal.NewFromInt(609350), Rate: decimal.NewFromFloat(0.35)},
	{Min: decimal.NewFromInt(609350), Max: decimal.NewFromInt(999999999), Rate: decimal.NewFromFloat(0.37)},
}

// mfjScale doubles bracket thresholds for married-filing-jointly when
// the config provides no explicit table.
func scaledBrackets(brackets []domain.TaxBracket, factor decimal.Decimal) []domain.TaxBracket {
	out := make([]domain.TaxBracket, len(brackets))
	for i, b := range brackets {
		out[i] = domain.TaxBracket{Min: b.Min.Mul(factor), Max: b.Max.Mul(factor), Rate: b.Rate}
	}
	return out
}

// BracketTax walks a progressive bracket table over taxable income.
func BracketTax(taxableIncome decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, bracket := range brackets {
		if taxableIncome.LessThanOrEqual(bracket.Min) {
			break
		}
		incomeInBracket := decimal.Min(taxableIncome, bracket.Max).Sub(bracket.Min)
		if incomeInBracket.GreaterThan(decimal.Zero) {
			total = total.Add(incomeInBracket.Mul(bracket.Rate))
		}
	}
	return total
}

// ProgressiveTax is the default TaxFunc: progressive brackets on
// income net of annual deductions, plus a flat state rate on the same
// base. A nil TaxConfig means no taxes at all.
func ProgressiveTax(taxableIncome decimal.Decimal, cfg *domain.TaxConfig) decimal.Decimal {
	if cfg == nil {
		return decimal.Zero
	}

	base := taxableIncome.Sub(cfg.AnnualDeductions)
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	brackets := cfg.Brackets
	if len(brackets) == 0 {
		brackets = defaultBrackets
		if cfg.FilingStatus == "married_joint" || cfg.FilingStatus == "mfj" {
			brackets = scaledBrackets(defaultBrackets, decimal.NewFromInt(2))
		}
	}

	tax := BracketTax(base, brackets)
	tax = tax.Add(base.Mul(cfg.StateTaxRate))
	return tax
}
