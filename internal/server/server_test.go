package server

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/madfam-io/dhanam/internal/datasource"
	"github.com/madfam-io/dhanam/internal/domain"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func testServer(providers datasource.Providers) *Server {
	return New(&Config{
		ListenAddress:  ":0",
		RequestTimeout: 30 * time.Second,
		MaxIterations:  5000,
	}, zap.NewNop(), providers)
}

func planConfig() *domain.ProjectionConfig {
	return &domain.ProjectionConfig{
		ProjectionYears: 10,
		InflationRate:   dec(0.03),
		CurrentAge:      35,
		RetirementAge:   65,
		LifeExpectancy:  90,
		IncomeStreams: []domain.IncomeStream{
			{Name: "salary", AnnualAmount: dec(80000)},
		},
		Expenses: []domain.ExpenseCategory{
			{Name: "living", AnnualAmount: dec(50000), Essential: true},
		},
		ExpectedReturn: dec(0.07),
		ReturnStdDev:   dec(0.15),
	}
}

func doRequest(t *testing.T, s *Server, method, path string, payload any) *fasthttp.RequestCtx {
	t.Helper()

	var ctx fasthttp.RequestCtx
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(path)
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req.SetBody(body)
	}
	ctx.Init(&req, nil, nil)

	s.Handle(&ctx)
	return &ctx
}

func TestHealthEndpoint(t *testing.T) {
	s := testServer(datasource.Providers{})
	ctx := doRequest(t, s, fasthttp.MethodGet, "/api/health", nil)
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
}

func TestUnknownRouteIs404(t *testing.T) {
	s := testServer(datasource.Providers{})
	ctx := doRequest(t, s, fasthttp.MethodGet, "/api/nope", nil)
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}

func TestProjectionEndpoint(t *testing.T) {
	s := testServer(datasource.Providers{})

	ctx := doRequest(t, s, fasthttp.MethodPost, "/api/projection", map[string]any{
		"spaceId": "space-1",
		"config":  planConfig(),
	})
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), "body: %s", ctx.Response.Body())

	var result domain.ProjectionResult
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &result))
	assert.Len(t, result.YearlySnapshots, 10)
}

func TestProjectionRequiresConfig(t *testing.T) {
	s := testServer(datasource.Providers{})

	ctx := doRequest(t, s, fasthttp.MethodPost, "/api/projection", map[string]any{"spaceId": "s"})
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestProjectionValidationErrorHasFieldDetail(t *testing.T) {
	s := testServer(datasource.Providers{})
	bad := planConfig()
	bad.ProjectionYears = -1

	ctx := doRequest(t, s, fasthttp.MethodPost, "/api/projection", map[string]any{"config": bad})
	require.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	var resp struct {
		Error  string `json:"error"`
		Fields []struct {
			Field  string `json:"field"`
			Reason string `json:"reason"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	require.NotEmpty(t, resp.Fields)
	assert.Equal(t, "projectionYears", resp.Fields[0].Field)
}

func TestProjectionMalformedBody(t *testing.T) {
	s := testServer(datasource.Providers{})

	var ctx fasthttp.RequestCtx
	var req fasthttp.Request
	req.Header.SetMethod(fasthttp.MethodPost)
	req.SetRequestURI("/api/projection")
	req.SetBodyString("{not json")
	ctx.Init(&req, nil, nil)

	s.Handle(&ctx)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestMonteCarloEndpoint(t *testing.T) {
	s := testServer(datasource.Providers{})

	ctx := doRequest(t, s, fasthttp.MethodPost, "/api/projection/montecarlo", map[string]any{
		"config":     planConfig(),
		"iterations": 100,
		"seed":       7,
	})
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), "body: %s", ctx.Response.Body())

	var result domain.MonteCarloResult
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &result))
	assert.Equal(t, 100, result.Iterations)
	assert.Len(t, result.Timeline, 10)
}

func TestMonteCarloIterationCeiling(t *testing.T) {
	s := testServer(datasource.Providers{})

	ctx := doRequest(t, s, fasthttp.MethodPost, "/api/projection/montecarlo", map[string]any{
		"config":     planConfig(),
		"iterations": 100000,
	})
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestMonteCarloSurfacesDegradedUpstreamWarning(t *testing.T) {
	s := testServer(datasource.Providers{})
	cfg := planConfig()
	cfg.IncludeAccounts = true

	ctx := doRequest(t, s, fasthttp.MethodPost, "/api/projection/montecarlo", map[string]any{
		"config":     cfg,
		"iterations": 50,
		"seed":       7,
	})
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), "body: %s", ctx.Response.Body())

	var result domain.MonteCarloResult
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &result))
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "account data unavailable")
}

func TestCompareSurfacesDegradedUpstreamWarning(t *testing.T) {
	s := testServer(datasource.Providers{})
	cfg := planConfig()
	cfg.IncludeAccounts = true

	ctx := doRequest(t, s, fasthttp.MethodPost, "/api/projection/compare", map[string]any{
		"config":    cfg,
		"scenarios": []map[string]any{},
	})
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), "body: %s", ctx.Response.Body())

	var set domain.ComparisonSet
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &set))
	require.NotNil(t, set.Baseline)
	require.NotEmpty(t, set.Baseline.Warnings)
	assert.Contains(t, set.Baseline.Warnings[0], "account data unavailable")
}

func TestGoalSurfacesDegradedUpstreamWarning(t *testing.T) {
	s := testServer(datasource.Providers{})
	cfg := planConfig()
	cfg.IncludeRecurring = true

	ctx := doRequest(t, s, fasthttp.MethodPost, "/api/goals/probability", map[string]any{
		"config":     cfg,
		"iterations": 50,
		"seed":       7,
		"goal":       map[string]any{"id": "g", "targetAmount": 200000, "targetYear": 8},
	})
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), "body: %s", ctx.Response.Body())

	var result domain.GoalProbabilityResult
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &result))
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "recurring-transaction data unavailable")
}

func TestQuickSurfacesDegradedUpstreamWarnings(t *testing.T) {
	s := testServer(datasource.Providers{})

	ctx := doRequest(t, s, fasthttp.MethodPost, "/api/projection/quick", map[string]any{
		"spaceId":       "space-1",
		"currentAge":    35,
		"retirementAge": 65,
	})
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), "body: %s", ctx.Response.Body())

	var quick domain.QuickProjection
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &quick))
	require.Len(t, quick.Warnings, 2)
	assert.Contains(t, quick.Warnings[0], "account data unavailable")
	assert.Contains(t, quick.Warnings[1], "recurring-transaction data unavailable")
}

func TestCompareEndpoint(t *testing.T) {
	s := testServer(datasource.Providers{})

	ctx := doRequest(t, s, fasthttp.MethodPost, "/api/projection/compare", map[string]any{
		"config": planConfig(),
		"scenarios": []map[string]any{
			{
				"name":          "retire early",
				"modifications": map[string]any{"retirementAge": 60},
			},
		},
	})
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), "body: %s", ctx.Response.Body())

	var set domain.ComparisonSet
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &set))
	require.NotNil(t, set.Baseline)
	require.Len(t, set.Scenarios, 1)
	assert.Equal(t, "retire early", set.Scenarios[0].Scenario.Name)
}

func TestTemplatesEndpoint(t *testing.T) {
	s := testServer(datasource.Providers{})

	ctx := doRequest(t, s, fasthttp.MethodPost, "/api/scenarios/templates", map[string]any{
		"config": planConfig(),
	})
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var templates []domain.WhatIfScenario
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &templates))
	assert.NotEmpty(t, templates)
}

func TestGoalProbabilityEndpoint(t *testing.T) {
	s := testServer(datasource.Providers{})

	ctx := doRequest(t, s, fasthttp.MethodPost, "/api/goals/probability", map[string]any{
		"config":     planConfig(),
		"iterations": 100,
		"seed":       7,
		"goal": map[string]any{
			"id":           "g1",
			"name":         "target",
			"targetAmount": 200000,
			"targetYear":   8,
		},
	})
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), "body: %s", ctx.Response.Body())

	var result domain.GoalProbabilityResult
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &result))
	assert.Equal(t, "g1", result.GoalID)
	assert.True(t, result.Probability.GreaterThanOrEqual(decimal.Zero))
}

func TestGoalFromProviderLookup(t *testing.T) {
	static := &datasource.StaticProvider{
		GoalData: []domain.Goal{
			{ID: "house", Name: "house fund", TargetAmount: dec(150000), TargetYear: 6},
		},
	}
	s := testServer(static.AsProviders())

	ctx := doRequest(t, s, fasthttp.MethodPost, "/api/goals/probability", map[string]any{
		"config":     planConfig(),
		"goalId":     "house",
		"iterations": 50,
		"seed":       7,
	})
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), "body: %s", ctx.Response.Body())
}

func TestGoalMissingProviderIs502(t *testing.T) {
	s := testServer(datasource.Providers{})

	ctx := doRequest(t, s, fasthttp.MethodPost, "/api/goals/probability", map[string]any{
		"config": planConfig(),
		"goalId": "unknown",
	})
	assert.Equal(t, fasthttp.StatusBadGateway, ctx.Response.StatusCode())
}

func TestGoalWhatIfRequiresScenario(t *testing.T) {
	s := testServer(datasource.Providers{})

	ctx := doRequest(t, s, fasthttp.MethodPost, "/api/goals/whatif", map[string]any{
		"config": planConfig(),
		"goal":   map[string]any{"id": "g", "targetAmount": 100000, "targetYear": 5},
	})
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestGoalWhatIfAppliesScenario(t *testing.T) {
	s := testServer(datasource.Providers{})

	ctx := doRequest(t, s, fasthttp.MethodPost, "/api/goals/whatif", map[string]any{
		"config":     planConfig(),
		"iterations": 50,
		"seed":       7,
		"goal":       map[string]any{"id": "g", "targetAmount": 200000, "targetYear": 8},
		"scenario": map[string]any{
			"name":          "higher returns",
			"modifications": map[string]any{"expectedReturn": 0.10},
		},
	})
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), "body: %s", ctx.Response.Body())
}

func TestQuickEndpoint(t *testing.T) {
	static := &datasource.StaticProvider{
		AccountData: []domain.Account{
			{Name: "checking", Type: domain.AccountChecking, Balance: dec(10000)},
		},
		IncomeData: []domain.IncomeStream{
			{Name: "salary", AnnualAmount: dec(70000)},
		},
		ExpenseData: []domain.ExpenseCategory{
			{Name: "living", AnnualAmount: dec(40000), Essential: true},
		},
	}
	s := testServer(static.AsProviders())

	ctx := doRequest(t, s, fasthttp.MethodPost, "/api/projection/quick", map[string]any{
		"spaceId":       "space-1",
		"currentAge":    35,
		"retirementAge": 65,
	})
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), "body: %s", ctx.Response.Body())

	var quick domain.QuickProjection
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &quick))
	assert.Equal(t, 30, quick.YearsUntilRetirement)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddress)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 50000, cfg.MaxIterations)
	assert.False(t, cfg.StrictUpstream)
}
