package output

import (
	json "github.com/goccy/go-json"

	"github.com/madfam-io/dhanam/internal/domain"
)

// JSONFormatter renders the full projection result as JSON.
type JSONFormatter struct {
	Pretty bool
}

func (jf *JSONFormatter) Name() string { return "json" }

func (jf *JSONFormatter) Format(result *domain.ProjectionResult) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
