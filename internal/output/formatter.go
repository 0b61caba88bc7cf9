// internal/output/formatter.go
package output

import (
	"fmt"
	"strings"

	"github.com/julianshen/repolens/internal/analyzer"
)

// Formatter formats an analysis result into output bytes.
type Formatter interface {
	Format(result *analyzer.Result) ([]byte, error)
}

// FormatNames lists the accepted values for NewFormatter.
var FormatNames = []string{"json", "yaml", "markdown"}

// NewFormatter returns the formatter registered under name.
func NewFormatter(name string) (Formatter, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return NewJSONFormatter(), nil
	case "yaml", "yml":
		return NewYAMLFormatter(), nil
	case "markdown", "md":
		return NewMarkdownFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want one of %s)", name, strings.Join(FormatNames, ", "))
	}
}
