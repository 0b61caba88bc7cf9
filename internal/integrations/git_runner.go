package integrations

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
	"mvdan.cc/sh/v3/syntax"
)

// MinGitVersion is the oldest git client accepted for shallow clones.
const MinGitVersion = ">= 1.7.10"

// GitError describes a failed git invocation.
type GitError struct {
	Args     []string
	ExitCode int
	Output   string
	Err      error
}

func (e *GitError) Error() string {
	sub := "git"
	if len(e.Args) > 0 {
		sub = "git " + e.Args[0]
	}
	if e.Output != "" {
		return fmt.Sprintf("%s: exit status %d: %s", sub, e.ExitCode, e.Output)
	}
	return fmt.Sprintf("%s: %v", sub, e.Err)
}

func (e *GitError) Unwrap() error {
	return e.Err
}

// GitRunner executes git commands.
type GitRunner struct {
	workDir string
	binary  string
	logger  *slog.Logger
}

// NewGitRunner creates a GitRunner for the given directory.
func NewGitRunner(workDir string) *GitRunner {
	return &GitRunner{
		workDir: workDir,
		binary:  "git",
		logger:  slog.New(slog.DiscardHandler),
	}
}

// SetLogger sets the logger used for command tracing.
func (g *GitRunner) SetLogger(l *slog.Logger) {
	if l != nil {
		g.logger = l
	}
}

// SetBinary overrides the git executable.
func (g *GitRunner) SetBinary(path string) {
	g.binary = path
}

// Clone makes a depth-1 clone of url into dir, which must be empty.
// Terminal credential prompts are disabled so private repositories fail
// instead of blocking.
func (g *GitRunner) Clone(ctx context.Context, url, dir string) error {
	_, err := g.run(ctx, "clone", "--depth", "1", "--", url, dir)
	return err
}

// Version returns the installed git client version.
func (g *GitRunner) Version(ctx context.Context) (*semver.Version, error) {
	out, err := g.run(ctx, "--version")
	if err != nil {
		return nil, err
	}
	return ParseGitVersion(out)
}

// CheckVersion fails when git is missing or older than MinGitVersion.
func (g *GitRunner) CheckVersion(ctx context.Context) error {
	v, err := g.Version(ctx)
	if err != nil {
		return err
	}
	c, err := semver.NewConstraint(MinGitVersion)
	if err != nil {
		return fmt.Errorf("invalid git version constraint: %w", err)
	}
	if !c.Check(v) {
		return fmt.Errorf("git %s is too old (need %s)", v, MinGitVersion)
	}
	return nil
}

// ParseGitVersion extracts the version from `git --version` output such as
// "git version 2.39.3 (Apple Git-146)" or "git version 2.41.0.windows.1".
func ParseGitVersion(out string) (*semver.Version, error) {
	fields := strings.Fields(out)
	if len(fields) < 3 || fields[0] != "git" || fields[1] != "version" {
		return nil, fmt.Errorf("unrecognized git version output: %q", strings.TrimSpace(out))
	}
	parts := strings.SplitN(fields[2], ".", 4)
	if len(parts) > 3 {
		parts = parts[:3]
	}
	v, err := semver.NewVersion(strings.Join(parts, "."))
	if err != nil {
		return nil, fmt.Errorf("parsing git version %q: %w", fields[2], err)
	}
	return v, nil
}

func (g *GitRunner) run(ctx context.Context, args ...string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("git: no subcommand provided")
	}
	g.logger.Debug("running git", "cmd", quoteArgs(append([]string{g.binary}, args...)), "dir", g.workDir)

	cmd := exec.CommandContext(ctx, g.binary, args...)
	cmd.Dir = g.workDir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	if err := cmd.Run(); err != nil {
		gerr := &GitError{
			Args:     args,
			ExitCode: -1,
			Output:   strings.TrimSpace(buf.String()),
			Err:      err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			gerr.ExitCode = exitErr.ExitCode()
		}
		return "", gerr
	}
	return buf.String(), nil
}

// quoteArgs renders argv as a copy-pasteable shell command line.
func quoteArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		q, err := syntax.Quote(a, syntax.LangBash)
		if err != nil {
			q = fmt.Sprintf("%q", a)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " ")
}
