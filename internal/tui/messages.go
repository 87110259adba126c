package tui

import "github.com/madfam-io/dhanam/internal/domain"

// configLoadedMsg carries the parsed baseline after Init.
type configLoadedMsg struct {
	Config *domain.ProjectionConfig
}

// projectionDoneMsg carries a finished deterministic run.
type projectionDoneMsg struct {
	Result *domain.ProjectionResult
	Err    error
}

// monteCarloDoneMsg carries a finished uncertainty-band run.
type monteCarloDoneMsg struct {
	Result *domain.MonteCarloResult
	Err    error
}

// errMsg reports a failure outside the calculation path.
type errMsg struct {
	Err error
}
