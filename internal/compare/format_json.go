package compare

import (
	json "github.com/goccy/go-json"

	"github.com/madfam-io/dhanam/internal/domain"
)

// JSONFormatter formats a comparison set as JSON.
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for a comparison set.
func (jf *JSONFormatter) Format(set *domain.ComparisonSet) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(set, "", "  ")
	} else {
		data, err = json.Marshal(set)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
