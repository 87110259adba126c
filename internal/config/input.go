// Package config loads projection configurations from YAML documents.
package config

import (
	"fmt"
	"os"

	"github.com/madfam-io/dhanam/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of input configuration files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a ProjectionConfig from a YAML file, applies
// defaults, and validates it.
func (ip *InputParser) LoadFromFile(filename string) (*domain.ProjectionConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a YAML document.
func (ip *InputParser) Parse(data []byte) (*domain.ProjectionConfig, error) {
	var cfg domain.ProjectionConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadScenariosFromFile loads a list of what-if scenarios.
func (ip *InputParser) LoadScenariosFromFile(filename string) ([]domain.WhatIfScenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var doc struct {
		Scenarios []domain.WhatIfScenario `yaml:"scenarios"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(doc.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios found in %s", filename)
	}
	return doc.Scenarios, nil
}

// ApplyDefaults fills in the market assumptions a minimal document may
// omit: a 7% expected return with 15% deviation and 1% inflation
// deviation, in line with long-run broad-market behavior.
func ApplyDefaults(cfg *domain.ProjectionConfig) {
	if cfg.ExpectedReturn.IsZero() {
		cfg.ExpectedReturn = decimal.NewFromFloat(0.07)
	}
	if cfg.ReturnStdDev.IsZero() {
		cfg.ReturnStdDev = decimal.NewFromFloat(0.15)
	}
	if cfg.InflationStdDev.IsZero() {
		cfg.InflationStdDev = decimal.NewFromFloat(0.01)
	}
	if cfg.LifeExpectancy == 0 {
		cfg.LifeExpectancy = 90
	}
}
