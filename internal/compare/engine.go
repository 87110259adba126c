package compare

import (
	"context"
	"fmt"

	"github.com/madfam-io/dhanam/internal/calculation"
	"github.com/madfam-io/dhanam/internal/domain"
	"github.com/madfam-io/dhanam/internal/transform"
)

// Engine re-runs the projection once per what-if scenario and returns
// full results. It is a pure re-run dispatcher: deltas against the
// baseline are a presentation concern left to callers.
type Engine struct {
	Calc *calculation.Engine
}

// NewEngine creates a comparison engine.
func NewEngine(calc *calculation.Engine) *Engine {
	return &Engine{Calc: calc}
}

// Compare runs the baseline and every scenario. Each scenario merges
// its modifications onto a deep copy of the baseline; scenarios are
// independent and order-insensitive, and the baseline config is never
// mutated.
func (e *Engine) Compare(ctx context.Context, baseline *domain.ProjectionConfig, scenarios []domain.WhatIfScenario) (*domain.ComparisonSet, error) {
	baseResult, err := e.Calc.GenerateProjection(ctx, baseline)
	if err != nil {
		return nil, fmt.Errorf("baseline projection failed: %w", err)
	}

	set := &domain.ComparisonSet{
		Baseline:  baseResult,
		Scenarios: make([]domain.ScenarioResult, 0, len(scenarios)),
	}

	for _, scenario := range scenarios {
		cfg, err := transform.Apply(baseline, scenario.Modifications)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		result, err := e.Calc.GenerateProjection(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("scenario %q projection failed: %w", scenario.Name, err)
		}

		set.Scenarios = append(set.Scenarios, domain.ScenarioResult{Scenario: scenario, Result: result})
	}

	return set, nil
}
