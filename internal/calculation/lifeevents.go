package calculation

import (
	"github.com/madfam-io/dhanam/internal/domain"
	"github.com/shopspring/decimal"
)

// Life event scheduler: resolves which events touch a given simulation
// year and what they contribute. Positive contributions are inflows,
// negative are outflows; the caller encodes signs.

// eventActive reports whether an event contributes in the given year.
func eventActive(ev domain.LifeEvent, year int) bool {
	if ev.Recurring() {
		return year >= ev.Year && year < ev.Year+ev.ImpactDuration
	}
	return year == ev.Year
}

// eventContribution returns the nominal amount an active event
// contributes in the given year. Inflation-adjusted events scale by
// compounded inflation from the event year.
func eventContribution(ev domain.LifeEvent, year int, inflationRate decimal.Decimal) decimal.Decimal {
	var amount decimal.Decimal
	if ev.Recurring() {
		amount = *ev.AnnualImpact
	} else {
		amount = ev.Amount
	}
	if ev.InflationAdjusted && year > ev.Year {
		amount = amount.Mul(compound(inflationRate, year-ev.Year))
	}
	return amount
}

// YearEvents is the scheduler output for one simulation year.
type YearEvents struct {
	Active []domain.LifeEvent

	// CashInflow and CashOutflow flow through the year's cashflow;
	// CapitalImpact bypasses it and lands directly on net worth.
	CashInflow    decimal.Decimal
	CashOutflow   decimal.Decimal
	CapitalImpact decimal.Decimal
}

// EventsForYear gathers the life events active in a simulation year
// and splits their contributions by how they hit the books.
func EventsForYear(events []domain.LifeEvent, year int, inflationRate decimal.Decimal) YearEvents {
	out := YearEvents{
		CashInflow:    decimal.Zero,
		CashOutflow:   decimal.Zero,
		CapitalImpact: decimal.Zero,
	}

	for _, ev := range events {
		if !eventActive(ev, year) {
			continue
		}
		out.Active = append(out.Active, ev)

		amount := eventContribution(ev, year, inflationRate)
		switch {
		case ev.Capital:
			out.CapitalImpact = out.CapitalImpact.Add(amount)
		case amount.IsNegative():
			out.CashOutflow = out.CashOutflow.Add(amount.Neg())
		default:
			out.CashInflow = out.CashInflow.Add(amount)
		}
	}

	return out
}
