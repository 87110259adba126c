package domain

import (
	"github.com/shopspring/decimal"
)

// Goal is a savings target consumed from the goal service. TargetYear
// is relative to the projection start.
type Goal struct {
	ID            string          `json:"id" yaml:"id"`
	Name          string          `json:"name" yaml:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount" yaml:"target_amount"`
	TargetYear    int             `json:"targetYear" yaml:"target_year"`
	CurrentAmount decimal.Decimal `json:"currentAmount" yaml:"current_amount"`
}

// GoalTimelinePoint is one step of the goal uncertainty band. Months
// are emitted at year boundaries (12, 24, ...) since the simulation
// advances annually.
type GoalTimelinePoint struct {
	Month  int             `json:"month"`
	Median decimal.Decimal `json:"median"`
	P10    decimal.Decimal `json:"p10"`
	P90    decimal.Decimal `json:"p90"`
}

// GoalProbabilityResult reports how likely a goal is to be met by its
// target year, from the Monte Carlo path distribution.
type GoalProbabilityResult struct {
	GoalID                         string              `json:"goalId"`
	Probability                    decimal.Decimal     `json:"probability"` // 0..100
	ConfidenceLow                  decimal.Decimal     `json:"confidenceLow"`
	ConfidenceHigh                 decimal.Decimal     `json:"confidenceHigh"`
	CurrentProgress                decimal.Decimal     `json:"currentProgress"` // 0..100
	ProjectedCompletion            *int                `json:"projectedCompletion"` // year index, nil if never (median path)
	RecommendedMonthlyContribution decimal.Decimal     `json:"recommendedMonthlyContribution"`
	Timeline                       []GoalTimelinePoint `json:"timeline"`
	Warnings                       []string            `json:"warnings,omitempty"`
}
