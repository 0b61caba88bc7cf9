// cmd/repolens/scan.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/julianshen/repolens/internal/analyzer"
	"github.com/julianshen/repolens/internal/output"
	"github.com/julianshen/repolens/internal/pipeline"
)

func scanCmd(g *globalOptions) *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "scan <repo_url>",
		Short: "Summarize a repository's structure without calling a model",
		Long: `Clone a repository and print the structure summary that would be
sent to the model: file count, languages, entry points and folders.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := output.NewFormatter(formatFlag)
			if err != nil {
				return err
			}

			result, err := inspect(cmd, g, args[0])
			if err != nil {
				return err
			}

			out, err := formatter.Format(result)
			if err != nil {
				return fmt.Errorf("formatting output: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "json", "output format: json, yaml, markdown")

	return cmd
}

func promptCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt <repo_url>",
		Short: "Print the prompt that would be sent to the model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := inspect(cmd, g, args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), pipeline.BuildArchitecturePrompt(result))
			return err
		},
	}
}

// inspect clones and analyzes url, writing progress to stderr.
func inspect(cmd *cobra.Command, g *globalOptions, url string) (*analyzer.Result, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, err
	}
	logger, closer, err := newLogger(g, cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	return pipeline.Inspect(cmd.Context(), newGitSource(logger), url, cmd.ErrOrStderr())
}
