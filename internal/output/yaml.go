// internal/output/yaml.go
package output

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/julianshen/repolens/internal/analyzer"
)

// YAMLFormatter outputs an analysis result as YAML.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAMLFormatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Format encodes the result with two-space indentation.
func (f *YAMLFormatter) Format(result *analyzer.Result) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
