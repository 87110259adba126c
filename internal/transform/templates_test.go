package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltInTemplatesPresent(t *testing.T) {
	registry := BuiltInTemplates(baseline())

	for _, name := range []string{
		"retire_early_5yr", "retire_late_5yr", "higher_inflation",
		"market_downturn", "spend_less_10pct", "delay_ss_70",
	} {
		_, ok := registry.Get(name)
		assert.True(t, ok, "missing template %s", name)
	}
}

func TestTemplatesAllApplyCleanly(t *testing.T) {
	base := baseline()

	for _, scenario := range BuiltInTemplates(base).List() {
		_, err := Apply(base, scenario.Modifications)
		assert.NoError(t, err, "template %s must produce a valid config", scenario.Name)
	}
}

func TestRetireEarlyClampsAtCurrentAge(t *testing.T) {
	base := baseline()
	base.CurrentAge = 62
	base.RetirementAge = 63

	registry := BuiltInTemplates(base)
	scenario, ok := registry.Get("retire_early_5yr")
	require.True(t, ok)
	assert.Equal(t, 62, *scenario.Modifications.RetirementAge, "cannot retire before the current age")

	_, err := Apply(base, scenario.Modifications)
	assert.NoError(t, err)
}

func TestSpendLessScalesEveryCategory(t *testing.T) {
	registry := BuiltInTemplates(baseline())
	scenario, ok := registry.Get("spend_less_10pct")
	require.True(t, ok)

	require.Len(t, scenario.Modifications.Expenses, 2)
	assert.True(t, scenario.Modifications.Expenses[0].AnnualAmount.Equal(dec(36000)))
	assert.True(t, scenario.Modifications.Expenses[1].AnnualAmount.Equal(dec(7200)))
	assert.True(t, scenario.Modifications.Expenses[0].Essential, "category flags survive scaling")
}

func TestSpendLessOmittedWithoutExpenses(t *testing.T) {
	base := baseline()
	base.Expenses = nil

	_, ok := BuiltInTemplates(base).Get("spend_less_10pct")
	assert.False(t, ok, "no expense template when there is nothing to cut")
}

func TestDelaySSOmittedWithoutBenefit(t *testing.T) {
	base := baseline()
	base.SocialSecurity = nil

	_, ok := BuiltInTemplates(base).Get("delay_ss_70")
	assert.False(t, ok)
}

func TestDelaySSSetsClaimAge(t *testing.T) {
	registry := BuiltInTemplates(baseline())
	scenario, ok := registry.Get("delay_ss_70")
	require.True(t, ok)

	require.NotNil(t, scenario.Modifications.SocialSecurity)
	assert.Equal(t, 70, scenario.Modifications.SocialSecurity.ClaimAge)
	assert.Nil(t, scenario.Modifications.SocialSecurity.ClaimYear)
}

func TestRegistryCaseInsensitive(t *testing.T) {
	registry := BuiltInTemplates(baseline())

	_, ok := registry.Get("Market_Downturn")
	assert.True(t, ok)
}

func TestRegistryListSorted(t *testing.T) {
	list := BuiltInTemplates(baseline()).List()
	require.NotEmpty(t, list)

	for i := 1; i < len(list); i++ {
		assert.LessOrEqual(t, list[i-1].Name, list[i].Name, "list is sorted by name")
	}
}
