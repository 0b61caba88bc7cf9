package pipeline

import "fmt"

// FetchError reports a repository that could not be retrieved. Dir is the
// temp directory the clone was attempted into; it is empty when the
// directory was never created.
type FetchError struct {
	URL      string
	ExitCode int
	Output   string
	Dir      string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("cloning %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// GenerationError reports a failed or empty model completion.
type GenerationError struct {
	Model string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generating report with %s: %v", e.Model, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
