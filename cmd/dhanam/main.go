package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/madfam-io/dhanam/internal/calculation"
	"github.com/madfam-io/dhanam/internal/compare"
	"github.com/madfam-io/dhanam/internal/config"
	"github.com/madfam-io/dhanam/internal/datasource"
	"github.com/madfam-io/dhanam/internal/domain"
	"github.com/madfam-io/dhanam/internal/output"
	"github.com/madfam-io/dhanam/internal/server"
	"github.com/madfam-io/dhanam/internal/transform"
	"github.com/madfam-io/dhanam/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "dhanam",
	Short: "Financial projection and retirement planning engine",
	Long:  "Multi-year financial projections, Monte Carlo uncertainty analysis, and what-if scenario comparison for household plans",
}

var projectCmd = &cobra.Command{
	Use:   "project [plan-file]",
	Short: "Run a deterministic projection over a plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadPlan(args[0])
		if err != nil {
			return err
		}

		engine := calculation.NewEngine()
		result, err := engine.GenerateProjection(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		formatter := output.GetFormatterByName(format)
		if formatter == nil {
			return fmt.Errorf("unknown output format %q", format)
		}
		out, err := formatter.Format(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, out)
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [plan-file]",
	Short: "Compare what-if scenarios against the baseline plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadPlan(args[0])
		if err != nil {
			return err
		}

		scenarios, err := resolveScenarios(cmd, cfg)
		if err != nil {
			return err
		}
		if len(scenarios) == 0 {
			return fmt.Errorf("no scenarios selected; use --scenarios or --with")
		}

		engine := compare.NewEngine(calculation.NewEngine())
		set, err := engine.Compare(cmd.Context(), cfg, scenarios)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "csv":
			out, err := (&compare.CSVFormatter{}).Format(set)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, out)
		case "json":
			out, err := (&compare.JSONFormatter{Pretty: true}).Format(set)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, out)
		default:
			fmt.Fprintln(os.Stdout, (&compare.TableFormatter{}).Format(set))
		}
		return nil
	},
}

var monteCarloCmd = &cobra.Command{
	Use:   "montecarlo [plan-file]",
	Short: "Run a Monte Carlo simulation over a plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadPlan(args[0])
		if err != nil {
			return err
		}

		iterations, _ := cmd.Flags().GetInt("iterations")
		seed, _ := cmd.Flags().GetInt64("seed")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		engine := calculation.NewEngine()
		result, err := engine.RunMonteCarlo(ctx, cfg, calculation.MonteCarloConfig{
			Iterations: iterations,
			Seed:       seed,
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(os.Stdout, output.FormatMonteCarlo(result))
		return nil
	},
}

var goalCmd = &cobra.Command{
	Use:   "goal [plan-file]",
	Short: "Estimate the probability of reaching a net worth target",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadPlan(args[0])
		if err != nil {
			return err
		}

		target, _ := cmd.Flags().GetFloat64("target")
		targetYear, _ := cmd.Flags().GetInt("year")
		iterations, _ := cmd.Flags().GetInt("iterations")
		seed, _ := cmd.Flags().GetInt64("seed")

		if target <= 0 {
			return fmt.Errorf("--target must be positive")
		}
		if targetYear <= 0 || targetYear > cfg.ProjectionYears {
			targetYear = cfg.ProjectionYears
		}

		goal := domain.Goal{
			ID:           "cli",
			Name:         "net worth target",
			TargetAmount: decimal.NewFromFloat(target),
			TargetYear:   targetYear,
		}

		engine := calculation.NewEngine()
		result, err := engine.GoalProbability(cmd.Context(), cfg, goal, calculation.MonteCarloConfig{
			Iterations: iterations,
			Seed:       seed,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Probability of reaching %s by year %d: %s%%\n",
			goal.TargetAmount.StringFixed(0), targetYear, result.Probability.Round(1))
		fmt.Fprintf(os.Stdout, "Current progress: %s%%\n", result.CurrentProgress.Round(1))
		if result.ProjectedCompletion != nil {
			fmt.Fprintf(os.Stdout, "Median path reaches the target in year %d\n", *result.ProjectedCompletion)
		} else {
			fmt.Fprintln(os.Stdout, "Median path does not reach the target within the horizon")
		}
		if result.RecommendedMonthlyContribution.IsPositive() {
			fmt.Fprintf(os.Stdout, "Recommended additional monthly contribution: %s\n",
				result.RecommendedMonthlyContribution.StringFixed(2))
		}
		return nil
	},
}

var quickCmd = &cobra.Command{
	Use:   "quick [plan-file]",
	Short: "Print the headline projection numbers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadPlan(args[0])
		if err != nil {
			return err
		}

		engine := calculation.NewEngine()
		quick, err := engine.QuickProjection(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Years until retirement:    %d\n", quick.YearsUntilRetirement)
		fmt.Fprintf(os.Stdout, "Net worth at retirement:   %s\n", quick.NetWorthAtRetirement.StringFixed(2))
		fmt.Fprintf(os.Stdout, "Monthly retirement income: %s\n", quick.MonthlyRetirementIncome.StringFixed(2))
		fmt.Fprintf(os.Stdout, "Income replacement ratio:  %s\n", quick.IncomeReplacementRatio.Round(2))
		fmt.Fprintf(os.Stdout, "Risk score:                %d/100\n", quick.RiskScore)
		return nil
	},
}

var templatesCmd = &cobra.Command{
	Use:   "templates [plan-file]",
	Short: "List the built-in what-if scenario templates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadPlan(args[0])
		if err != nil {
			return err
		}

		for _, s := range transform.BuiltInTemplates(cfg).List() {
			fmt.Fprintf(os.Stdout, "%-20s %s\n", s.Name, s.Description)
		}
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the projection API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		cfg, err := server.LoadConfig(configFile)
		if err != nil {
			return err
		}

		logger, err := zap.NewProduction()
		if err != nil {
			return err
		}
		defer logger.Sync()

		var providers datasource.Providers
		if cfg.SeedFile != "" {
			static, err := datasource.LoadStaticProvider(cfg.SeedFile)
			if err != nil {
				return fmt.Errorf("loading seed file: %w", err)
			}
			providers = static.AsProviders()
		}

		return server.New(cfg, logger, providers).ListenAndServe()
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui [plan-file]",
	Short: "Launch the interactive what-if explorer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := tea.NewProgram(tui.NewModel(args[0]), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "dhanam %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

func loadPlan(path string) (*domain.ProjectionConfig, error) {
	cfg, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	config.ApplyDefaults(cfg)
	return cfg, nil
}

// resolveScenarios builds the scenario list from --scenarios (a YAML
// file) and --with (comma-separated template names).
func resolveScenarios(cmd *cobra.Command, baseline *domain.ProjectionConfig) ([]domain.WhatIfScenario, error) {
	var scenarios []domain.WhatIfScenario

	scenarioFile, _ := cmd.Flags().GetString("scenarios")
	if scenarioFile != "" {
		loaded, err := config.NewInputParser().LoadScenariosFromFile(scenarioFile)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, loaded...)
	}

	withStr, _ := cmd.Flags().GetString("with")
	if withStr != "" {
		registry := transform.BuiltInTemplates(baseline)
		for _, name := range strings.Split(withStr, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			s, ok := registry.Get(name)
			if !ok {
				return nil, fmt.Errorf("unknown template %q", name)
			}
			scenarios = append(scenarios, s)
		}
	}

	return scenarios, nil
}

func init() {
	projectCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")

	compareCmd.Flags().String("scenarios", "", "YAML file of what-if scenarios")
	compareCmd.Flags().String("with", "", "Comma-separated built-in template names")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")

	monteCarloCmd.Flags().IntP("iterations", "i", calculation.DefaultIterations, "Number of simulation paths")
	monteCarloCmd.Flags().Int64P("seed", "s", 0, "Random seed (0 for time-based)")
	monteCarloCmd.Flags().Duration("timeout", 5*time.Minute, "Simulation deadline")

	goalCmd.Flags().Float64P("target", "t", 0, "Target net worth")
	goalCmd.Flags().IntP("year", "y", 0, "Target year (defaults to the projection horizon)")
	goalCmd.Flags().IntP("iterations", "i", calculation.DefaultIterations, "Number of simulation paths")
	goalCmd.Flags().Int64P("seed", "s", 0, "Random seed (0 for time-based)")

	serveCmd.Flags().StringP("config", "c", "", "Server config file")

	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(monteCarloCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(quickCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
