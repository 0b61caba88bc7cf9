package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/julianshen/repolens/internal/integrations"
)

// TempDirPrefix prefixes every checkout directory.
const TempDirPrefix = "repolens_"

// GitSource fetches repositories with a shallow git clone into a fresh
// temporary directory.
type GitSource struct {
	git     *integrations.GitRunner
	baseDir string
	logger  *slog.Logger
}

// NewGitSource creates a GitSource. An empty baseDir uses the system temp
// directory.
func NewGitSource(git *integrations.GitRunner, baseDir string) *GitSource {
	return &GitSource{
		git:     git,
		baseDir: baseDir,
		logger:  slog.New(slog.DiscardHandler),
	}
}

// SetLogger sets the logger used for cleanup diagnostics.
func (s *GitSource) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger = l
	}
}

// Fetch clones url and returns the checkout directory. A failed clone
// returns a *FetchError whose Dir still needs removing.
func (s *GitSource) Fetch(ctx context.Context, url string) (string, error) {
	if err := s.git.CheckVersion(ctx); err != nil {
		return "", newFetchError(url, "", err)
	}

	dir, err := os.MkdirTemp(s.baseDir, TempDirPrefix)
	if err != nil {
		return "", newFetchError(url, "", fmt.Errorf("creating temp directory: %w", err))
	}

	if err := s.git.Clone(ctx, url, dir); err != nil {
		return "", newFetchError(url, dir, err)
	}
	return dir, nil
}

// Cleanup removes a checkout. Failures are logged and otherwise ignored.
func (s *GitSource) Cleanup(dir string) {
	if dir == "" {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		s.logger.Debug("removing checkout failed", "dir", dir, "err", err)
	}
}

func newFetchError(url, dir string, err error) *FetchError {
	fe := &FetchError{URL: url, Dir: dir, ExitCode: -1, Err: err}
	var gerr *integrations.GitError
	if errors.As(err, &gerr) {
		fe.ExitCode = gerr.ExitCode
		fe.Output = gerr.Output
	}
	return fe
}
