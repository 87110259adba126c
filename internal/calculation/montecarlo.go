package calculation

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/madfam-io/dhanam/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultIterations is the default Monte Carlo sample size. Runs below
// roughly 1,000 iterations produce noisy tail percentiles and should
// only be used for previews.
const DefaultIterations = 10000

// MonteCarloConfig tunes a stochastic run. A zero Params falls back to
// the projection config's expected return and inflation with its
// configured deviations.
type MonteCarloConfig struct {
	Iterations int
	Seed       int64
	Workers    int
	Params     DistributionParams
}

// normalize fills in defaults.
func (mc MonteCarloConfig) normalize(cfg *domain.ProjectionConfig) MonteCarloConfig {
	if mc.Iterations <= 0 {
		mc.Iterations = DefaultIterations
	}
	if mc.Workers <= 0 {
		mc.Workers = runtime.GOMAXPROCS(0)
	}
	if mc.Seed == 0 {
		mc.Seed = time.Now().UnixNano()
	}
	if mc.Params == (DistributionParams{}) {
		mc.Params = DistributionParams{
			ReturnMean:      cfg.ExpectedReturn,
			ReturnStdDev:    cfg.ReturnStdDev,
			InflationMean:   cfg.InflationRate,
			InflationStdDev: cfg.InflationStdDev,
		}
	}
	return mc
}

// pathSet holds net-worth trajectories for all iterations:
// paths[iteration][year].
type pathSet struct {
	paths     [][]decimal.Decimal
	insolvent []bool
}

// runPaths executes the iterations across a worker pool. Iterations
// are independent: each owns a sampler seeded from the base seed plus
// its index, and writes into its own preallocated slot, so no mutable
// state is shared. Cancellation discards all partial results.
func runPaths(ctx context.Context, cfg *domain.ProjectionConfig, taxFn TaxFunc, mc MonteCarloConfig) (*pathSet, error) {
	ps := &pathSet{
		paths:     make([][]decimal.Decimal, mc.Iterations),
		insolvent: make([]bool, mc.Iterations),
	}

	work := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < mc.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for iter := range work {
				sampler := NewNormalSampler(mc.Seed+int64(iter), mc.Params)
				snapshots, warnings := RunProjection(cfg, taxFn, sampler)

				path := make([]decimal.Decimal, len(snapshots))
				for y, snap := range snapshots {
					path[y] = snap.NetWorth
				}
				ps.paths[iter] = path
				ps.insolvent[iter] = len(warnings) > 0
			}
		}()
	}

	start := time.Now()
	cancelled := false
feed:
	for iter := 0; iter < mc.Iterations; iter++ {
		select {
		case work <- iter:
		case <-ctx.Done():
			cancelled = true
			break feed
		}
	}
	close(work)
	wg.Wait()

	if cancelled || ctx.Err() != nil {
		return nil, &domain.TimeoutError{Elapsed: time.Since(start)}
	}
	return ps, nil
}

// RunMonteCarlo quantifies outcome uncertainty by re-running the
// transition function across many stochastic iterations and
// aggregating per-year net-worth percentiles.
func RunMonteCarlo(ctx context.Context, cfg *domain.ProjectionConfig, taxFn TaxFunc, mc MonteCarloConfig) (*domain.MonteCarloResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mc = mc.normalize(cfg)

	start := time.Now()
	ps, err := runPaths(ctx, cfg, taxFn, mc)
	if err != nil {
		return nil, err
	}

	result := &domain.MonteCarloResult{
		Iterations: mc.Iterations,
		Seed:       mc.Seed,
		Timeline:   make([]domain.YearPercentiles, cfg.ProjectionYears),
		Warnings:   cfg.Warnings(),
	}

	column := make([]decimal.Decimal, mc.Iterations)
	for year := 0; year < cfg.ProjectionYears; year++ {
		for iter := range ps.paths {
			column[iter] = ps.paths[iter][year]
		}
		sortDecimals(column)
		result.Timeline[year] = domain.YearPercentiles{
			Year:   year,
			P10:    percentile(column, 0.10),
			Median: percentile(column, 0.50),
			P90:    percentile(column, 0.90),
		}
	}

	terminal := result.Timeline[cfg.ProjectionYears-1]
	result.TerminalP10 = terminal.P10
	result.TerminalMedian = terminal.Median
	result.TerminalP90 = terminal.P90

	solvent := 0
	for _, bad := range ps.insolvent {
		if !bad {
			solvent++
		}
	}
	result.SuccessRate = decimal.NewFromInt(int64(solvent)).Div(decimal.NewFromInt(int64(mc.Iterations)))
	result.ExecutionTimeMs = time.Since(start).Milliseconds()

	return result, nil
}

// GoalProbability computes the fraction of Monte Carlo paths on which
// net worth reaches the goal's target amount by its target year.
func GoalProbability(ctx context.Context, cfg *domain.ProjectionConfig, taxFn TaxFunc, goal domain.Goal, mc MonteCarloConfig) (*domain.GoalProbabilityResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mc = mc.normalize(cfg)

	targetYear := goal.TargetYear
	if targetYear >= cfg.ProjectionYears {
		targetYear = cfg.ProjectionYears - 1
	}
	if targetYear < 0 {
		targetYear = 0
	}

	ps, err := runPaths(ctx, cfg, taxFn, mc)
	if err != nil {
		return nil, err
	}

	result := &domain.GoalProbabilityResult{GoalID: goal.ID}

	met := 0
	for _, path := range ps.paths {
		if path[targetYear].GreaterThanOrEqual(goal.TargetAmount) {
			met++
		}
	}
	hundred := decimal.NewFromInt(100)
	result.Probability = decimal.NewFromInt(int64(met)).
		Div(decimal.NewFromInt(int64(mc.Iterations))).
		Mul(hundred)

	if goal.TargetAmount.IsPositive() {
		progress := goal.CurrentAmount.Div(goal.TargetAmount).Mul(hundred)
		result.CurrentProgress = decimal.Min(progress, hundred)
	}

	column := make([]decimal.Decimal, mc.Iterations)
	result.Timeline = make([]domain.GoalTimelinePoint, 0, targetYear+1)
	for year := 0; year <= targetYear; year++ {
		for iter := range ps.paths {
			column[iter] = ps.paths[iter][year]
		}
		sortDecimals(column)
		median := percentile(column, 0.50)
		result.Timeline = append(result.Timeline, domain.GoalTimelinePoint{
			Month:  (year + 1) * 12,
			Median: median,
			P10:    percentile(column, 0.10),
			P90:    percentile(column, 0.90),
		})

		if result.ProjectedCompletion == nil && median.GreaterThanOrEqual(goal.TargetAmount) {
			y := year
			result.ProjectedCompletion = &y
		}
	}

	last := result.Timeline[len(result.Timeline)-1]
	result.ConfidenceLow = last.P10
	result.ConfidenceHigh = last.P90

	// Close the median shortfall evenly over the months remaining.
	shortfall := goal.TargetAmount.Sub(last.Median)
	if shortfall.IsPositive() {
		months := decimal.NewFromInt(int64((targetYear + 1) * 12))
		result.RecommendedMonthlyContribution = shortfall.Div(months).Round(2)
	}

	return result, nil
}

func sortDecimals(values []decimal.Decimal) {
	sort.Slice(values, func(i, j int) bool { return values[i].LessThan(values[j]) })
}

// percentile interpolates linearly between ranks of a sorted slice.
func percentile(sorted []decimal.Decimal, p float64) decimal.Decimal {
	if len(sorted) == 0 {
		return decimal.Zero
	}
	index := p * float64(len(sorted)-1)
	lower := int(index)
	if float64(lower) == index || lower+1 >= len(sorted) {
		return sorted[lower]
	}
	fraction := decimal.NewFromFloat(index - float64(lower))
	return sorted[lower].Add(sorted[lower+1].Sub(sorted[lower]).Mul(fraction))
}
