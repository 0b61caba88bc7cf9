package pipeline

import (
	"fmt"
	"strings"

	"github.com/julianshen/repolens/internal/analyzer"
)

// MaxFolderEntries caps how many folders are listed in the prompt.
const MaxFolderEntries = 80

const noneDetected = "None detected"

const fence = "```"

// BuildArchitecturePrompt renders the analysis into the fixed instruction
// text sent to the model. The same result always yields the same prompt.
func BuildArchitecturePrompt(r *analyzer.Result) string {
	if r == nil {
		r = &analyzer.Result{}
	}

	return fmt.Sprintf(`You are a senior software architect. Given the following repository summary, produce a clean, well-structured **Markdown architecture report**.

## Repository Summary

- **Total files:** %d
- **Languages detected:** %s
- **Likely entry points:** %s

### Folder structure
%s
%s
%s

## Instructions

Based on the information above, write a report that includes:

1. **Overview** – A one-paragraph high-level description of what this project likely does.
2. **Tech Stack** – Languages, frameworks, and tooling inferred from the file structure.
3. **Architecture Style** – Identify the architectural pattern (monolith, microservices, monorepo, serverless, etc.) and explain why.
4. **Key Components** – Describe the major modules/directories and their probable roles.
5. **Entry Points** – Explain how the application is likely started or deployed.
6. **Observations & Recommendations** – Any notable patterns, potential issues, or suggestions for improvement.

Return ONLY the Markdown report, nothing else.
`, r.TotalFiles, languageSummary(r.Languages), entryPointSummary(r.EntryPoints),
		fence, folderListing(r.FolderStructure), fence)
}

func languageSummary(langs []analyzer.LanguageCount) string {
	if len(langs) == 0 {
		return noneDetected
	}
	parts := make([]string, len(langs))
	for i, l := range langs {
		parts[i] = fmt.Sprintf("%s (%d files)", l.Language, l.Files)
	}
	return strings.Join(parts, ", ")
}

func entryPointSummary(entries []string) string {
	if len(entries) == 0 {
		return noneDetected
	}
	return strings.Join(entries, ", ")
}

// folderListing lists at most MaxFolderEntries folders and notes how many
// were left out.
func folderListing(folders []string) string {
	if len(folders) <= MaxFolderEntries {
		return strings.Join(folders, "\n")
	}
	shown := strings.Join(folders[:MaxFolderEntries], "\n")
	return fmt.Sprintf("%s\n... and %d more folders", shown, len(folders)-MaxFolderEntries)
}
