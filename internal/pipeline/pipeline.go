package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/julianshen/repolens/internal/analyzer"
	"github.com/julianshen/repolens/internal/provider"
)

// RepoSource retrieves a repository into a local directory and disposes of
// it afterwards.
type RepoSource interface {
	Fetch(ctx context.Context, url string) (string, error)
	Cleanup(dir string)
}

// TextCompleter turns a prompt into a single completion.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ReportWriter delivers the finished report.
type ReportWriter interface {
	Emit(report string) error
}

// Config holds the per-run settings.
type Config struct {
	RepoURL string
	Model   string
}

// Deps holds the collaborators a run depends on.
type Deps struct {
	Source    RepoSource
	Completer TextCompleter
	Writer    ReportWriter
	Status    io.Writer // progress lines; nil discards them
	Logger    *slog.Logger
}

// Outcome summarizes a completed run.
type Outcome struct {
	Analysis *analyzer.Result
	Prompt   string
	Report   string
	Duration time.Duration
}

// Run executes the full pipeline: fetch -> analyze -> prompt -> complete -> emit.
// The checkout is removed before Run returns, whatever the result.
func Run(ctx context.Context, cfg Config, deps Deps) (*Outcome, error) {
	if deps.Source == nil || deps.Completer == nil || deps.Writer == nil {
		return nil, errors.New("pipeline: source, completer and writer are required")
	}
	start := time.Now()
	status := statusWriter(deps.Status)
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	out := &Outcome{}
	err := withCheckout(ctx, deps.Source, cfg.RepoURL, status, func(dir string) error {
		result, err := analyzeCheckout(dir, status)
		if err != nil {
			return err
		}
		out.Analysis = result
		out.Prompt = BuildArchitecturePrompt(result)

		fmt.Fprintf(status, "Generating architecture report with %s ...\n", cfg.Model)
		report, err := deps.Completer.Complete(ctx, out.Prompt)
		if err != nil {
			return &GenerationError{Model: cfg.Model, Err: err}
		}
		if strings.TrimSpace(report) == "" {
			return &GenerationError{Model: cfg.Model, Err: provider.ErrEmptyResponse}
		}
		out.Report = report

		return deps.Writer.Emit(report)
	})
	out.Duration = time.Since(start)
	if err != nil {
		logger.Debug("run failed", "url", cfg.RepoURL, "err", err, "duration", out.Duration)
		return nil, err
	}
	logger.Debug("run finished", "url", cfg.RepoURL, "files", out.Analysis.TotalFiles, "duration", out.Duration)
	return out, nil
}

// Inspect fetches and analyzes a repository without contacting a model.
func Inspect(ctx context.Context, src RepoSource, url string, status io.Writer) (*analyzer.Result, error) {
	if src == nil {
		return nil, errors.New("pipeline: source is required")
	}
	w := statusWriter(status)
	var result *analyzer.Result
	err := withCheckout(ctx, src, url, w, func(dir string) error {
		r, err := analyzeCheckout(dir, w)
		result = r
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// withCheckout fetches url, runs fn on the checkout and always cleans up,
// including the partial directory left by a failed fetch.
func withCheckout(ctx context.Context, src RepoSource, url string, status io.Writer, fn func(dir string) error) error {
	fmt.Fprintf(status, "Cloning %s ...\n", url)
	dir, err := src.Fetch(ctx, url)
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) && fe.Dir != "" {
			src.Cleanup(fe.Dir)
		}
		return err
	}
	defer src.Cleanup(dir)

	return fn(dir)
}

func analyzeCheckout(dir string, status io.Writer) (*analyzer.Result, error) {
	fmt.Fprintf(status, "Analyzing repository structure ...\n")
	result, err := analyzer.Analyze(dir)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	fmt.Fprintf(status, "  Found %d files, %d languages, %d entry points.\n",
		result.TotalFiles, len(result.Languages), len(result.EntryPoints))
	return result, nil
}

func statusWriter(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
