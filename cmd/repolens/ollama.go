// cmd/repolens/ollama.go
package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/julianshen/repolens/internal/provider/ollama"
)

// ollamaCmd returns the "ollama" command group for checking the local
// server used by the ollama provider.
func ollamaCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ollama",
		Short: "Inspect the Ollama server",
	}

	cmd.PersistentFlags().String("base-url", "", "Ollama API base URL (default: from config)")
	cmd.AddCommand(ollamaStatusCmd(g))

	return cmd
}

// resolveOllamaBaseURL returns the --base-url flag or the configured URL.
func resolveOllamaBaseURL(cmd *cobra.Command, g *globalOptions) (string, error) {
	baseURL, _ := cmd.Flags().GetString("base-url")
	if baseURL != "" {
		return baseURL, nil
	}
	cfg, err := loadConfig(g)
	if err != nil {
		return "", err
	}
	return cfg.Provider.Ollama.BaseURL, nil
}

func ollamaStatusCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check if Ollama is running",
		Long:  "Check that the Ollama server answers and display its version.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			baseURL, err := resolveOllamaBaseURL(cmd, g)
			if err != nil {
				return err
			}
			client := ollama.NewClient(baseURL)

			version, err := client.Version(cmd.Context())
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Ollama is not running at %s\n", baseURL)
				return fmt.Errorf("ollama not reachable: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Status:\trunning\n")
			fmt.Fprintf(w, "URL:\t%s\n", baseURL)
			fmt.Fprintf(w, "Version:\t%s\n", version)
			return w.Flush()
		},
	}
}
