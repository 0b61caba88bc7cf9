// cmd/repolens/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/julianshen/repolens/internal/config"
	"github.com/julianshen/repolens/internal/integrations"
	"github.com/julianshen/repolens/internal/logging"
	"github.com/julianshen/repolens/internal/output"
	"github.com/julianshen/repolens/internal/pipeline"
	"github.com/julianshen/repolens/internal/provider"
	"github.com/julianshen/repolens/internal/store"

	// Register providers via init() side effects.
	_ "github.com/julianshen/repolens/internal/provider/gemini"
	_ "github.com/julianshen/repolens/internal/provider/ollama"
	_ "github.com/julianshen/repolens/internal/provider/openai"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionString() string {
	return fmt.Sprintf("repolens %s (commit: %s, built: %s)", version, commit, date)
}

// globalOptions are the flags shared by every command.
type globalOptions struct {
	configPath string
	verbose    bool
	logFile    string
}

// reportOptions are the flags of the root command.
type reportOptions struct {
	model     string
	output    string
	provider  string
	render    bool
	noHistory bool
}

func main() {
	if err := config.LoadDotEnv("."); err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading .env: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}
	o := &reportOptions{}

	rootCmd := &cobra.Command{
		Use:   "repolens <repo_url>",
		Short: "Generate an architecture report for a git repository",
		Long: `repolens clones a repository, summarizes its structure (languages,
entry points and folders) and asks a language model for a Markdown
architecture report.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, g, o, args[0])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&g.verbose, "verbose", false, "log debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&g.logFile, "log-file", "", "write JSON logs to a rotating file")

	rootCmd.Flags().StringVarP(&o.model, "model", "m", "", "model name to use (default: per provider, gpt-4o for openai)")
	rootCmd.Flags().StringVarP(&o.output, "output", "o", "", "write the report to a file (default: stdout)")
	rootCmd.Flags().StringVar(&o.provider, "provider", "", "override provider name")
	rootCmd.Flags().BoolVar(&o.render, "render", false, "render Markdown when stdout is a terminal")
	rootCmd.Flags().BoolVar(&o.noHistory, "no-history", false, "skip the history database even when history.enabled is set")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(scanCmd(g))
	rootCmd.AddCommand(promptCmd(g))
	rootCmd.AddCommand(historyCmd(g))
	rootCmd.AddCommand(ollamaCmd(g))

	return rootCmd
}

// loadConfig reads the config file named by --config, or the default one.
func loadConfig(g *globalOptions) (*config.Config, error) {
	cfgPath := g.configPath
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// applyReportFlags lets explicitly set flags override the config file and
// then picks the provider's default model if none was named.
func applyReportFlags(cmd *cobra.Command, cfg *config.Config, o *reportOptions) {
	if cmd.Flags().Changed("model") && o.model != "" {
		cfg.Provider.Model = o.model
	}
	if o.provider != "" {
		cfg.Provider.Default = o.provider
	}
	cfg.ResolveModel()
}

func newLogger(g *globalOptions, cfg *config.Config, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	file := cfg.Log.File
	if g.logFile != "" {
		file = g.logFile
	}
	logger, closer, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		Verbose:    g.verbose,
		Stderr:     stderr,
		File:       file,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return logger, closer, nil
}

func newGitSource(logger *slog.Logger) *pipeline.GitSource {
	git := integrations.NewGitRunner("")
	git.SetLogger(logger)
	src := pipeline.NewGitSource(git, "")
	src.SetLogger(logger)
	return src
}

// newReportWriter picks the file writer for -o, or stdout otherwise.
func newReportWriter(o *reportOptions, stdout, stderr io.Writer, logger *slog.Logger) pipeline.ReportWriter {
	if o.output != "" {
		return output.NewFileWriter(o.output, stderr)
	}

	var r output.Renderer
	if f, ok := stdout.(*os.File); ok && o.render && output.IsTerminal(f) {
		mr, err := output.NewMarkdownRenderer(output.TerminalWidth(f))
		if err != nil {
			logger.Warn("markdown rendering disabled", "err", err)
		} else {
			r = mr
		}
	}
	return output.NewConsoleWriter(stdout, r)
}

func runReport(cmd *cobra.Command, g *globalOptions, o *reportOptions, url string) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	applyReportFlags(cmd, cfg, o)

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	logger, closer, err := newLogger(g, cfg, stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	run := store.NewRun(url, cfg.Provider.Default, cfg.Provider.Model)
	run.OutputPath = o.output
	logger = logger.With("run_id", run.ID)

	out, err := generate(cmd.Context(), cfg, o, url, stdout, stderr, logger)
	if out != nil {
		run.TotalFiles = out.Analysis.TotalFiles
	}
	run.Finish(err)
	if cfg.History.Enabled && !o.noHistory {
		recordRun(cfg, run, logger)
	}
	return err
}

func generate(ctx context.Context, cfg *config.Config, o *reportOptions, url string, stdout, stderr io.Writer, logger *slog.Logger) (*pipeline.Outcome, error) {
	p, err := provider.NewProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating provider: %w", err)
	}
	llm := integrations.NewLLMCompleter(p, cfg.Provider.Model, cfg.Provider.Temperature)
	llm.SetLogger(logger)

	return pipeline.Run(ctx, pipeline.Config{
		RepoURL: url,
		Model:   cfg.Provider.Model,
	}, pipeline.Deps{
		Source:    newGitSource(logger),
		Completer: llm,
		Writer:    newReportWriter(o, stdout, stderr, logger),
		Status:    stderr,
		Logger:    logger,
	})
}

// recordRun appends the run to the history database. Failures only warn.
func recordRun(cfg *config.Config, run store.Run, logger *slog.Logger) {
	path, err := cfg.HistoryPath()
	if err != nil {
		logger.Warn("run history unavailable", "err", err)
		return
	}
	s, err := store.NewStore(path)
	if err != nil {
		logger.Warn("run history unavailable", "path", path, "err", err)
		return
	}
	defer s.Close()

	if err := s.RecordRun(run); err != nil {
		logger.Warn("recording run failed", "err", err)
	}
}
