package domain

import (
	"fmt"
	"strings"
	"time"
)

// FieldError is a single structural problem with an input config.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationError collects every field-level problem found in a
// ProjectionConfig. Validation runs to completion so callers see all
// problems at once, not just the first.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid configuration"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}
	return "invalid configuration: " + strings.Join(parts, "; ")
}

// Add records a field problem.
func (e *ValidationError) Add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

// OrNil returns the error if any field problems were recorded.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// TimeoutError signals that a run exceeded its time budget. Partial
// results are discarded, never returned.
type TimeoutError struct {
	Elapsed    time.Duration
	Iterations int
}

func (e *TimeoutError) Error() string {
	if e.Iterations > 0 {
		return fmt.Sprintf("computation timed out after %s (%d iterations completed)", e.Elapsed, e.Iterations)
	}
	return fmt.Sprintf("computation timed out after %s", e.Elapsed)
}

// UpstreamError wraps a failure of an external data collaborator
// (accounts, recurring transactions, goals). Outside strict mode the
// engine degrades to empty seed data and a warning instead.
type UpstreamError struct {
	Source string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream data unavailable from %s: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
