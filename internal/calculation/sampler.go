package calculation

import (
	"math/rand"

	"github.com/shopspring/decimal"
)

// Sampler yields the per-year market-return and inflation draws fed to
// the state transition. The deterministic runner and every Monte Carlo
// iteration share one simulation kernel; only the injected sampler
// differs.
type Sampler interface {
	Sample(year int) (marketReturn, inflation decimal.Decimal)
}

// FixedSampler returns the same expected values every year. It backs
// the deterministic runner.
type FixedSampler struct {
	Return    decimal.Decimal
	Inflation decimal.Decimal
}

func (s FixedSampler) Sample(int) (decimal.Decimal, decimal.Decimal) {
	return s.Return, s.Inflation
}

// DistributionParams describes the normal distributions Monte Carlo
// draws from. Means and deviations are supplied by the caller, never
// hardcoded in the engine.
type DistributionParams struct {
	ReturnMean      decimal.Decimal
	ReturnStdDev    decimal.Decimal
	InflationMean   decimal.Decimal
	InflationStdDev decimal.Decimal
}

// NormalSampler draws independent normal market-return and inflation
// samples. Each Monte Carlo iteration owns its own sampler with its
// own seed, so iterations never share mutable state or correlate.
type NormalSampler struct {
	rng    *rand.Rand
	params DistributionParams
}

// NewNormalSampler creates a seeded sampler. The same seed reproduces
// the same draw sequence.
func NewNormalSampler(seed int64, params DistributionParams) *NormalSampler {
	return &NormalSampler{
		rng:    rand.New(rand.NewSource(seed)),
		params: params,
	}
}

var (
	minMarketReturn = decimal.NewFromFloat(-0.5)  // a worse-than-1931 year is noise, not signal
	minInflation    = decimal.NewFromFloat(-0.05) // cap deflation at -5%
)

func (s *NormalSampler) Sample(int) (decimal.Decimal, decimal.Decimal) {
	ret := s.params.ReturnMean.Add(decimal.NewFromFloat(s.rng.NormFloat64()).Mul(s.params.ReturnStdDev))
	if ret.LessThan(minMarketReturn) {
		ret = minMarketReturn
	}

	infl := s.params.InflationMean.Add(decimal.NewFromFloat(s.rng.NormFloat64()).Mul(s.params.InflationStdDev))
	if infl.LessThan(minInflation) {
		infl = minInflation
	}

	return ret, infl
}
