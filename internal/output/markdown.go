// internal/output/markdown.go
package output

import (
	"fmt"
	"strings"

	"github.com/julianshen/repolens/internal/analyzer"
)

// MarkdownFormatter outputs an analysis result as a human-readable summary.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format renders the result as Markdown.
func (f *MarkdownFormatter) Format(result *analyzer.Result) ([]byte, error) {
	var b strings.Builder

	fileLabel := "files"
	if result.TotalFiles == 1 {
		fileLabel = "file"
	}
	b.WriteString("## Repository Structure\n\n")
	b.WriteString(fmt.Sprintf("%d %s scanned, %d with a recognized language.\n",
		result.TotalFiles, fileLabel, result.ClassifiedFiles()))

	b.WriteString("\n### Languages\n\n")
	if len(result.Languages) == 0 {
		b.WriteString("None detected.\n")
	} else {
		b.WriteString("| Language | Files |\n|---|---|\n")
		for _, l := range result.Languages {
			b.WriteString(fmt.Sprintf("| %s | %d |\n", l.Language, l.Files))
		}
	}

	b.WriteString("\n### Entry Points\n\n")
	if len(result.EntryPoints) == 0 {
		b.WriteString("None detected.\n")
	}
	for _, e := range result.EntryPoints {
		b.WriteString(fmt.Sprintf("- `%s`\n", e))
	}

	if len(result.FolderStructure) > 0 {
		b.WriteString("\n### Folders\n\n```\n")
		b.WriteString(strings.Join(result.FolderStructure, "\n"))
		b.WriteString("\n```\n")
	}

	return []byte(b.String()), nil
}
