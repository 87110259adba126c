// Package output renders projection results for the CLI.
package output

import (
	"github.com/madfam-io/dhanam/internal/domain"
)

// Formatter renders a projection result in one output format.
type Formatter interface {
	Format(result *domain.ProjectionResult) (string, error)
	Name() string
}

// GetFormatterByName returns a formatter, or nil for unknown names.
func GetFormatterByName(name string) Formatter {
	switch name {
	case "table", "console", "":
		return &TableFormatter{}
	case "csv":
		return &CSVFormatter{}
	case "json":
		return &JSONFormatter{Pretty: true}
	}
	return nil
}
