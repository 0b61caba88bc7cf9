package output

import (
	"fmt"
	"io"
	"os"
)

// OutputError reports a report that could not be written to its destination.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("writing report to %s: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }

// FileWriter writes the report to a file, replacing any previous content.
type FileWriter struct {
	Path   string
	Status io.Writer // receives the "Report saved" line; nil discards it
}

// NewFileWriter creates a FileWriter for path.
func NewFileWriter(path string, status io.Writer) *FileWriter {
	return &FileWriter{Path: path, Status: status}
}

// Emit writes report verbatim with mode 0644.
func (w *FileWriter) Emit(report string) error {
	if err := os.WriteFile(w.Path, []byte(report), 0o644); err != nil {
		return &OutputError{Path: w.Path, Err: err}
	}
	if w.Status != nil {
		fmt.Fprintf(w.Status, "Report saved to %s\n", w.Path)
	}
	return nil
}

// Renderer turns Markdown into terminal output.
type Renderer interface {
	Render(md string) (string, error)
}

// ConsoleWriter prints the report to standard output after a blank line.
type ConsoleWriter struct {
	Out      io.Writer
	Renderer Renderer // optional; nil prints the raw Markdown
}

// NewConsoleWriter creates a ConsoleWriter for out.
func NewConsoleWriter(out io.Writer, r Renderer) *ConsoleWriter {
	return &ConsoleWriter{Out: out, Renderer: r}
}

// Emit prints the report. Rendering failures fall back to the raw text.
func (w *ConsoleWriter) Emit(report string) error {
	text := report
	if w.Renderer != nil {
		if rendered, err := w.Renderer.Render(report); err == nil {
			text = rendered
		}
	}
	if _, err := fmt.Fprintf(w.Out, "\n%s\n", text); err != nil {
		return &OutputError{Path: "stdout", Err: err}
	}
	return nil
}
