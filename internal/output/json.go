// internal/output/json.go
package output

import (
	"encoding/json"

	"github.com/julianshen/repolens/internal/analyzer"
)

// JSONFormatter outputs an analysis result as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format marshals the result as indented JSON with a trailing newline.
func (f *JSONFormatter) Format(result *analyzer.Result) ([]byte, error) {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
