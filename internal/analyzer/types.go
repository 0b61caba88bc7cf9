package analyzer

import "fmt"

// LanguageCount is the number of files attributed to one language.
type LanguageCount struct {
	Language string `json:"language" yaml:"language"`
	Files    int    `json:"files" yaml:"files"`
}

// Result summarizes the structure of a directory tree.
type Result struct {
	// Languages is ordered by descending file count. Ties keep the order in
	// which each language was first seen during the walk.
	Languages []LanguageCount `json:"languages" yaml:"languages"`
	// EntryPoints holds slash-separated paths relative to the root, in
	// traversal order.
	EntryPoints []string `json:"entry_points" yaml:"entry_points"`
	// FolderStructure holds every visited directory below the root, sorted,
	// each with a trailing "/".
	FolderStructure []string `json:"folder_structure" yaml:"folder_structure"`
	// TotalFiles counts every file visited, classified or not.
	TotalFiles int `json:"total_files" yaml:"total_files"`
}

// ClassifiedFiles returns the sum of all language counts.
func (r *Result) ClassifiedFiles() int {
	n := 0
	for _, lc := range r.Languages {
		n += lc.Files
	}
	return n
}

// TraversalError is returned when the tree cannot be walked: the root is
// missing or not a directory, or a directory could not be read.
type TraversalError struct {
	Path string
	Err  error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("traversing %s: %v", e.Path, e.Err)
}

func (e *TraversalError) Unwrap() error {
	return e.Err
}
