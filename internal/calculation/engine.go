package calculation

import (
	"context"
	"time"

	"github.com/madfam-io/dhanam/internal/domain"
	"github.com/shopspring/decimal"
)

// Engine orchestrates projection runs. It is stateless between
// requests: configs come in, results go out, nothing persists.
type Engine struct {
	TaxFn TaxFunc
}

// NewEngine creates an engine with the default progressive tax
// function. Jurisdictions with different policy inject their own
// TaxFunc.
func NewEngine() *Engine {
	return &Engine{TaxFn: ProgressiveTax}
}

// GenerateProjection runs the deterministic projection: expected-value
// market return, configured inflation, no randomness. Two calls with
// the same config produce identical results.
func (e *Engine) GenerateProjection(ctx context.Context, cfg *domain.ProjectionConfig) (*domain.ProjectionResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, &domain.TimeoutError{}
	}

	start := time.Now()
	sampler := FixedSampler{Return: cfg.ExpectedReturn, Inflation: cfg.InflationRate}
	snapshots, runWarnings := RunProjection(cfg, e.TaxFn, sampler)

	warnings := cfg.Warnings()
	warnings = append(warnings, runWarnings...)

	return &domain.ProjectionResult{
		Config:          cfg,
		YearlySnapshots: snapshots,
		Summary:         Summarize(cfg, snapshots, len(runWarnings)),
		Warnings:        warnings,
		ExecutionTimeMs: time.Since(start).Milliseconds(),
	}, nil
}

// RunMonteCarlo is the stochastic counterpart of GenerateProjection.
func (e *Engine) RunMonteCarlo(ctx context.Context, cfg *domain.ProjectionConfig, mc MonteCarloConfig) (*domain.MonteCarloResult, error) {
	return RunMonteCarlo(ctx, cfg, e.TaxFn, mc)
}

// GoalProbability reports the chance of hitting a goal by its target
// year under the config's return distribution.
func (e *Engine) GoalProbability(ctx context.Context, cfg *domain.ProjectionConfig, goal domain.Goal, mc MonteCarloConfig) (*domain.GoalProbabilityResult, error) {
	return GoalProbability(ctx, cfg, e.TaxFn, goal, mc)
}

// QuickProjection is a fast, reduced-fidelity single run for dashboard
// widgets: a single deterministic pass over the supplied config, boiled
// down to the handful of headline numbers.
func (e *Engine) QuickProjection(ctx context.Context, cfg *domain.ProjectionConfig) (*domain.QuickProjection, error) {
	result, err := e.GenerateProjection(ctx, cfg)
	if err != nil {
		return nil, err
	}

	quick := &domain.QuickProjection{
		YearsUntilRetirement:   result.Summary.YearsUntilRetirement,
		RiskScore:              result.Summary.RiskScore,
		IncomeReplacementRatio: result.Summary.IncomeReplacementRatio,
	}

	retIdx := result.Summary.YearsUntilRetirement
	if retIdx < 0 {
		retIdx = 0
	}
	if retIdx >= len(result.YearlySnapshots) {
		retIdx = len(result.YearlySnapshots) - 1
	}
	retirement := result.YearlySnapshots[retIdx]
	quick.NetWorthAtRetirement = retirement.NetWorth
	quick.MonthlyRetirementIncome = retirement.NetIncome.Div(decimal.NewFromInt(12)).Round(2)

	return quick, nil
}
