// cmd/repolens/history.go
package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/julianshen/repolens/internal/store"
)

func historyCmd(g *globalOptions) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long:  "Display the most recent report runs with their status, model and repository.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(g)
			if err != nil {
				return err
			}
			path, err := cfg.HistoryPath()
			if err != nil {
				return err
			}

			s, err := store.NewStore(path)
			if err != nil {
				return fmt.Errorf("opening history: %w", err)
			}
			defer s.Close()

			runs, err := s.ListRuns(limitFlag)
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STARTED\tSTATUS\tFILES\tDURATION\tPROVIDER\tMODEL\tREPOSITORY")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
					r.StartedAt.Local().Format("2006-01-02 15:04"),
					r.Status,
					r.TotalFiles,
					r.Duration().Round(100*time.Millisecond),
					r.Provider,
					r.Model,
					r.RepoURL,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limitFlag, "limit", 20, "number of runs to show (0 = all)")

	return cmd
}
