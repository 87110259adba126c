// Package server exposes the projection engine over HTTP. All engine
// inputs arrive fully resolved in the request (or via the configured
// seed providers); handlers stay thin and the engine stays pure.
package server

import (
	"context"
	"errors"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/madfam-io/dhanam/internal/calculation"
	"github.com/madfam-io/dhanam/internal/compare"
	"github.com/madfam-io/dhanam/internal/config"
	"github.com/madfam-io/dhanam/internal/datasource"
	"github.com/madfam-io/dhanam/internal/domain"
	"github.com/madfam-io/dhanam/internal/transform"
)

// Server wires the engine, comparator, and seed providers behind a
// fasthttp handler.
type Server struct {
	cfg       *Config
	logger    *zap.Logger
	engine    *calculation.Engine
	compare   *compare.Engine
	providers datasource.Providers
}

// New creates a server. A nil logger falls back to a no-op logger.
func New(cfg *Config, logger *zap.Logger, providers datasource.Providers) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	engine := calculation.NewEngine()
	return &Server{
		cfg:       cfg,
		logger:    logger,
		engine:    engine,
		compare:   compare.NewEngine(engine),
		providers: providers,
	}
}

// ListenAndServe blocks serving the API.
func (s *Server) ListenAndServe() error {
	s.logger.Info("projection API listening", zap.String("address", s.cfg.ListenAddress))
	return fasthttp.ListenAndServe(s.cfg.ListenAddress, s.Handle)
}

// Handle routes a request. fasthttp invokes it per request.
func (s *Server) Handle(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())

	switch {
	case path == "/api/projection" && method == fasthttp.MethodPost:
		s.handleProjection(ctx)
	case path == "/api/projection/compare" && method == fasthttp.MethodPost:
		s.handleCompare(ctx)
	case path == "/api/projection/montecarlo" && method == fasthttp.MethodPost:
		s.handleMonteCarlo(ctx)
	case path == "/api/projection/quick" && method == fasthttp.MethodPost:
		s.handleQuick(ctx)
	case path == "/api/scenarios/templates" && method == fasthttp.MethodPost:
		s.handleTemplates(ctx)
	case path == "/api/goals/probability" && method == fasthttp.MethodPost:
		s.handleGoalProbability(ctx)
	case path == "/api/goals/whatif" && method == fasthttp.MethodPost:
		s.handleGoalWhatIf(ctx)
	case path == "/api/health" && method == fasthttp.MethodGet:
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

type projectionRequest struct {
	SpaceID string                   `json:"spaceId"`
	Config  *domain.ProjectionConfig `json:"config"`
}

type compareRequest struct {
	SpaceID   string                   `json:"spaceId"`
	Config    *domain.ProjectionConfig `json:"config"`
	Scenarios []domain.WhatIfScenario  `json:"scenarios"`
}

type monteCarloRequest struct {
	SpaceID    string                   `json:"spaceId"`
	Config     *domain.ProjectionConfig `json:"config"`
	Iterations int                      `json:"iterations"`
	Seed       int64                    `json:"seed"`
}

type quickRequest struct {
	SpaceID       string `json:"spaceId"`
	CurrentAge    int    `json:"currentAge"`
	RetirementAge int    `json:"retirementAge"`
}

type goalRequest struct {
	SpaceID    string                   `json:"spaceId"`
	GoalID     string                   `json:"goalId"`
	Goal       *domain.Goal             `json:"goal,omitempty"`
	Config     *domain.ProjectionConfig `json:"config"`
	Iterations int                      `json:"iterations"`
	Seed       int64                    `json:"seed"`
	Scenario   *domain.WhatIfScenario   `json:"scenario,omitempty"`
}

func (s *Server) handleProjection(ctx *fasthttp.RequestCtx) {
	var req projectionRequest
	if !s.decode(ctx, &req) || !s.requireConfig(ctx, req.Config) {
		return
	}

	rctx, cancel := s.requestContext(ctx)
	defer cancel()

	cfg, warnings, err := s.seed(rctx, req.SpaceID, req.Config)
	if err != nil {
		s.writeEngineError(ctx, err)
		return
	}

	result, err := s.engine.GenerateProjection(rctx, cfg)
	if err != nil {
		s.writeEngineError(ctx, err)
		return
	}
	result.Warnings = append(warnings, result.Warnings...)
	writeJSON(ctx, fasthttp.StatusOK, result)
}

func (s *Server) handleCompare(ctx *fasthttp.RequestCtx) {
	var req compareRequest
	if !s.decode(ctx, &req) || !s.requireConfig(ctx, req.Config) {
		return
	}

	rctx, cancel := s.requestContext(ctx)
	defer cancel()

	cfg, warnings, err := s.seed(rctx, req.SpaceID, req.Config)
	if err != nil {
		s.writeEngineError(ctx, err)
		return
	}

	set, err := s.compare.Compare(rctx, cfg, req.Scenarios)
	if err != nil {
		s.writeEngineError(ctx, err)
		return
	}
	set.Baseline.Warnings = append(warnings, set.Baseline.Warnings...)
	writeJSON(ctx, fasthttp.StatusOK, set)
}

func (s *Server) handleMonteCarlo(ctx *fasthttp.RequestCtx) {
	var req monteCarloRequest
	if !s.decode(ctx, &req) || !s.requireConfig(ctx, req.Config) {
		return
	}
	if req.Iterations > s.cfg.MaxIterations {
		writeError(ctx, fasthttp.StatusBadRequest, "iterations exceed the configured ceiling")
		return
	}

	rctx, cancel := s.requestContext(ctx)
	defer cancel()

	cfg, warnings, err := s.seed(rctx, req.SpaceID, req.Config)
	if err != nil {
		s.writeEngineError(ctx, err)
		return
	}

	result, err := s.engine.RunMonteCarlo(rctx, cfg, calculation.MonteCarloConfig{
		Iterations: req.Iterations,
		Seed:       req.Seed,
	})
	if err != nil {
		s.writeEngineError(ctx, err)
		return
	}
	result.Warnings = append(warnings, result.Warnings...)
	writeJSON(ctx, fasthttp.StatusOK, result)
}

func (s *Server) handleQuick(ctx *fasthttp.RequestCtx) {
	var req quickRequest
	if !s.decode(ctx, &req) {
		return
	}

	rctx, cancel := s.requestContext(ctx)
	defer cancel()

	cfg := quickConfig(req.CurrentAge, req.RetirementAge)
	cfg, warnings, err := s.seed(rctx, req.SpaceID, cfg)
	if err != nil {
		s.writeEngineError(ctx, err)
		return
	}

	quick, err := s.engine.QuickProjection(rctx, cfg)
	if err != nil {
		s.writeEngineError(ctx, err)
		return
	}
	quick.Warnings = append(warnings, quick.Warnings...)
	writeJSON(ctx, fasthttp.StatusOK, quick)
}

func (s *Server) handleTemplates(ctx *fasthttp.RequestCtx) {
	var req projectionRequest
	if !s.decode(ctx, &req) || !s.requireConfig(ctx, req.Config) {
		return
	}
	config.ApplyDefaults(req.Config)
	writeJSON(ctx, fasthttp.StatusOK, transform.BuiltInTemplates(req.Config).List())
}

func (s *Server) handleGoalProbability(ctx *fasthttp.RequestCtx) {
	var req goalRequest
	if !s.decode(ctx, &req) || !s.requireConfig(ctx, req.Config) {
		return
	}

	rctx, cancel := s.requestContext(ctx)
	defer cancel()

	goal, err := s.resolveGoal(rctx, &req)
	if err != nil {
		s.writeEngineError(ctx, err)
		return
	}

	cfg, warnings, err := s.seed(rctx, req.SpaceID, req.Config)
	if err != nil {
		s.writeEngineError(ctx, err)
		return
	}

	result, err := s.engine.GoalProbability(rctx, cfg, *goal, calculation.MonteCarloConfig{
		Iterations: req.Iterations,
		Seed:       req.Seed,
	})
	if err != nil {
		s.writeEngineError(ctx, err)
		return
	}
	result.Warnings = append(warnings, result.Warnings...)
	writeJSON(ctx, fasthttp.StatusOK, result)
}

func (s *Server) handleGoalWhatIf(ctx *fasthttp.RequestCtx) {
	var req goalRequest
	if !s.decode(ctx, &req) || !s.requireConfig(ctx, req.Config) {
		return
	}
	if req.Scenario == nil {
		writeError(ctx, fasthttp.StatusBadRequest, "scenario is required")
		return
	}

	rctx, cancel := s.requestContext(ctx)
	defer cancel()

	goal, err := s.resolveGoal(rctx, &req)
	if err != nil {
		s.writeEngineError(ctx, err)
		return
	}

	cfg, warnings, err := s.seed(rctx, req.SpaceID, req.Config)
	if err != nil {
		s.writeEngineError(ctx, err)
		return
	}

	modified, err := transform.Apply(cfg, req.Scenario.Modifications)
	if err != nil {
		s.writeEngineError(ctx, err)
		return
	}

	result, err := s.engine.GoalProbability(rctx, modified, *goal, calculation.MonteCarloConfig{
		Iterations: req.Iterations,
		Seed:       req.Seed,
	})
	if err != nil {
		s.writeEngineError(ctx, err)
		return
	}
	result.Warnings = append(warnings, result.Warnings...)
	writeJSON(ctx, fasthttp.StatusOK, result)
}

// resolveGoal prefers an inline goal and falls back to the goal
// provider.
func (s *Server) resolveGoal(ctx context.Context, req *goalRequest) (*domain.Goal, error) {
	if req.Goal != nil {
		return req.Goal, nil
	}
	if s.providers.Goals == nil {
		return nil, &domain.UpstreamError{Source: "goals", Err: datasource.ErrNotConfigured}
	}
	goal, err := s.providers.Goals.Goal(ctx, req.GoalID)
	if err != nil {
		return nil, &domain.UpstreamError{Source: "goals", Err: err}
	}
	return goal, nil
}

func (s *Server) seed(ctx context.Context, spaceID string, cfg *domain.ProjectionConfig) (*domain.ProjectionConfig, []string, error) {
	if !cfg.IncludeAccounts && !cfg.IncludeRecurring {
		return cfg, nil, nil
	}
	return datasource.Seed(ctx, spaceID, cfg, s.providers, s.cfg.StrictUpstream)
}

func (s *Server) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.RequestTimeout)
}

func (s *Server) decode(ctx *fasthttp.RequestCtx, v any) bool {
	if err := json.Unmarshal(ctx.PostBody(), v); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) requireConfig(ctx *fasthttp.RequestCtx, cfg *domain.ProjectionConfig) bool {
	if cfg == nil {
		writeError(ctx, fasthttp.StatusBadRequest, "config is required")
		return false
	}
	return true
}

// writeEngineError maps the engine error taxonomy onto HTTP statuses.
func (s *Server) writeEngineError(ctx *fasthttp.RequestCtx, err error) {
	var verr *domain.ValidationError
	var terr *domain.TimeoutError
	var uerr *domain.UpstreamError

	switch {
	case errors.As(err, &verr):
		writeJSON(ctx, fasthttp.StatusBadRequest, map[string]any{
			"error":  "invalid configuration",
			"fields": verr.Fields,
		})
	case errors.As(err, &terr):
		writeError(ctx, fasthttp.StatusGatewayTimeout, terr.Error())
	case errors.As(err, &uerr):
		writeError(ctx, fasthttp.StatusBadGateway, uerr.Error())
	default:
		s.logger.Error("projection request failed", zap.Error(err))
		writeError(ctx, fasthttp.StatusInternalServerError, "internal error")
	}
}

// quickConfig builds a minimal projection config from just the two
// ages. Accounts and recurring flows come from the seed providers; the
// horizon runs to the default life expectancy.
func quickConfig(currentAge, retirementAge int) *domain.ProjectionConfig {
	cfg := &domain.ProjectionConfig{
		CurrentAge:       currentAge,
		RetirementAge:    retirementAge,
		InflationRate:    decimal.NewFromFloat(0.03),
		IncludeAccounts:  true,
		IncludeRecurring: true,
	}
	config.ApplyDefaults(cfg)
	cfg.ProjectionYears = cfg.LifeExpectancy - currentAge
	if cfg.ProjectionYears <= 0 {
		cfg.ProjectionYears = 1
	}
	return cfg
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	data, err := json.Marshal(v)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString(`{"error":"encoding failed"}`)
		return
	}
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, map[string]string{"error": message})
}
