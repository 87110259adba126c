// Package tui is an interactive what-if explorer: adjust the headline
// assumptions with sliders and watch the projection and its
// uncertainty band re-render live.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/madfam-io/dhanam/internal/calculation"
	"github.com/madfam-io/dhanam/internal/config"
	"github.com/madfam-io/dhanam/internal/domain"
	"github.com/madfam-io/dhanam/internal/transform"
	"github.com/madfam-io/dhanam/internal/tui/components"
)

// interactiveIterations keeps slider feedback fast; full-resolution
// runs belong to the CLI and the API.
const interactiveIterations = 500

const (
	sliderRetirementAge = iota
	sliderExpectedReturn
	sliderInflation
	sliderSpending
	sliderCount
)

// Model is the explorer state.
type Model struct {
	configPath string
	baseline   *domain.ProjectionConfig
	engine     *calculation.Engine

	sliders [sliderCount]*components.Slider
	focused int

	projection *domain.ProjectionResult
	band       *domain.MonteCarloResult
	showBand   bool

	spinner spinner.Model
	loading int // outstanding calculation commands
	err     error

	width  int
	height int
}

// NewModel creates the explorer for a config file.
func NewModel(configPath string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		configPath: configPath,
		engine:     calculation.NewEngine(),
		spinner:    sp,
		showBand:   true,
		width:      80,
		height:     24,
	}
}

// Init loads the baseline config.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadConfigCmd(m.configPath))
}

func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return errMsg{Err: err}
		}
		config.ApplyDefaults(cfg)
		return configLoadedMsg{Config: cfg}
	}
}

// modifiedConfig merges the slider values onto the baseline.
func (m Model) modifiedConfig() (*domain.ProjectionConfig, error) {
	retirementAge := int(m.sliders[sliderRetirementAge].Value)
	expectedReturn := decimal.NewFromFloat(m.sliders[sliderExpectedReturn].Value / 100)
	inflationRate := decimal.NewFromFloat(m.sliders[sliderInflation].Value / 100)

	mods := domain.ScenarioModifications{
		RetirementAge:  &retirementAge,
		ExpectedReturn: &expectedReturn,
		InflationRate:  &inflationRate,
	}

	scale := m.sliders[sliderSpending].Value / 100
	if scale != 1 && len(m.baseline.Expenses) > 0 {
		factor := decimal.NewFromFloat(scale)
		scaled := make([]domain.ExpenseCategory, len(m.baseline.Expenses))
		for i, e := range m.baseline.Expenses {
			e.AnnualAmount = e.AnnualAmount.Mul(factor).Round(2)
			scaled[i] = e
		}
		mods.Expenses = scaled
	}

	return transform.Apply(m.baseline, mods)
}

func (m Model) recalculateCmds() []tea.Cmd {
	cfg, err := m.modifiedConfig()
	if err != nil {
		return []tea.Cmd{func() tea.Msg { return errMsg{Err: err} }}
	}

	cmds := []tea.Cmd{projectCmd(m.engine, cfg)}
	if m.showBand {
		cmds = append(cmds, monteCarloCmd(m.engine, cfg))
	}
	return cmds
}

func projectCmd(engine *calculation.Engine, cfg *domain.ProjectionConfig) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		result, err := engine.GenerateProjection(ctx, cfg)
		return projectionDoneMsg{Result: result, Err: err}
	}
}

func monteCarloCmd(engine *calculation.Engine, cfg *domain.ProjectionConfig) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		result, err := engine.RunMonteCarlo(ctx, cfg, calculation.MonteCarloConfig{
			Iterations: interactiveIterations,
			Seed:       time.Now().UnixNano(),
		})
		return monteCarloDoneMsg{Result: result, Err: err}
	}
}

// buildSliders derives slider ranges from the loaded baseline.
func (m *Model) buildSliders(cfg *domain.ProjectionConfig) {
	ret, _ := cfg.ExpectedReturn.Float64()
	infl, _ := cfg.InflationRate.Float64()

	m.sliders[sliderRetirementAge] = components.NewSlider(
		"Retirement age", float64(cfg.RetirementAge),
		float64(cfg.CurrentAge+1), float64(cfg.LifeExpectancy), 1,
	).WithFormat("%.0f")
	m.sliders[sliderExpectedReturn] = components.NewSlider(
		"Expected return", ret*100, 0, 15, 0.5,
	).WithFormat("%.1f%%")
	m.sliders[sliderInflation] = components.NewSlider(
		"Inflation", infl*100, 0, 12, 0.5,
	).WithFormat("%.1f%%")
	m.sliders[sliderSpending] = components.NewSlider(
		"Spending level", 100, 50, 150, 5,
	).WithFormat("%.0f%%")

	m.sliders[m.focused].Focused = true
}
