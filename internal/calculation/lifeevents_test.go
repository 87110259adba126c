package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/madfam-io/dhanam/internal/domain"
)

func TestEventsForYearOneOff(t *testing.T) {
	events := []domain.LifeEvent{
		{Type: domain.EventMedical, Name: "surgery", Year: 3, Amount: dec(-25000)},
	}

	before := EventsForYear(events, 2, dec(0.03))
	assert.Empty(t, before.Active, "inactive before its year")

	hit := EventsForYear(events, 3, dec(0.03))
	assert.Len(t, hit.Active, 1)
	assert.True(t, hit.CashOutflow.Equal(dec(25000)), "negative amount is an outflow")
	assert.True(t, hit.CashInflow.IsZero())

	after := EventsForYear(events, 4, dec(0.03))
	assert.Empty(t, after.Active, "one-off events do not repeat")
}

func TestEventsForYearInflow(t *testing.T) {
	events := []domain.LifeEvent{
		{Type: domain.EventInheritance, Name: "inheritance", Year: 5, Amount: dec(100000)},
	}

	got := EventsForYear(events, 5, dec(0.03))
	assert.True(t, got.CashInflow.Equal(dec(100000)), "positive amount is an inflow")
	assert.True(t, got.CashOutflow.IsZero())
}

func TestEventsForYearRecurringWindow(t *testing.T) {
	events := []domain.LifeEvent{
		{
			Type:           domain.EventEducation,
			Name:           "college",
			Year:           10,
			AnnualImpact:   decPtr(-30000),
			ImpactDuration: 4,
		},
	}

	assert.Empty(t, EventsForYear(events, 9, dec(0.03)).Active)
	for year := 10; year < 14; year++ {
		got := EventsForYear(events, year, dec(0.03))
		assert.Len(t, got.Active, 1, "year %d should be inside the window", year)
		assert.True(t, got.CashOutflow.IsPositive())
	}
	assert.Empty(t, EventsForYear(events, 14, dec(0.03)).Active, "window is half-open")
}

func TestEventsForYearInflationAdjusted(t *testing.T) {
	events := []domain.LifeEvent{
		{
			Type:              domain.EventEducation,
			Name:              "college",
			Year:              2,
			AnnualImpact:      decPtr(-10000),
			ImpactDuration:    3,
			InflationAdjusted: true,
		},
	}

	first := EventsForYear(events, 2, dec(0.10))
	assert.True(t, first.CashOutflow.Equal(dec(10000)), "event year pays the stated amount")

	second := EventsForYear(events, 3, dec(0.10))
	assert.True(t, second.CashOutflow.Equal(dec(11000)), "one year of 10%% inflation, got %s", second.CashOutflow)
}

func TestEventsForYearCapitalBypassesCashflow(t *testing.T) {
	events := []domain.LifeEvent{
		{Type: domain.EventHomePurchase, Name: "down payment", Year: 2, Amount: dec(-60000), Capital: true},
	}

	got := EventsForYear(events, 2, dec(0.03))
	assert.True(t, got.CashInflow.IsZero())
	assert.True(t, got.CashOutflow.IsZero())
	assert.True(t, got.CapitalImpact.Equal(dec(-60000)), "capital events keep their sign")
}

func TestEventsForYearMixed(t *testing.T) {
	events := []domain.LifeEvent{
		{Name: "bonus", Year: 1, Amount: dec(20000)},
		{Name: "repair", Year: 1, Amount: dec(-5000)},
		{Name: "gift", Year: 1, Amount: dec(15000), Capital: true},
	}

	got := EventsForYear(events, 1, dec(0.03))
	assert.Len(t, got.Active, 3)
	assert.True(t, got.CashInflow.Equal(dec(20000)))
	assert.True(t, got.CashOutflow.Equal(dec(5000)))
	assert.True(t, got.CapitalImpact.Equal(dec(15000)))
}
