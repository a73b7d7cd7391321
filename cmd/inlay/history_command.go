package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"inlay/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent conversion runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			path := cfg.HistoryPath()
			if path == "" {
				return errors.New("run history is disabled; set history.enabled = true in the configuration")
			}

			store, err := history.Open(path)
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, runs)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No conversion runs recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					strconv.FormatInt(run.ID, 10),
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					strconv.Itoa(run.Processed),
					strconv.Itoa(run.Skipped),
					strconv.Itoa(run.WithMetadata),
					formatSize(run.OutputBytes),
					run.Duration.Round(time.Millisecond).String(),
				})
			}
			fmt.Fprintln(out, renderTable([]column{
				{header: "ID", alignRight: true},
				{header: "Started"},
				{header: "Processed", alignRight: true},
				{header: "Skipped", alignRight: true},
				{header: "With metadata", alignRight: true},
				{header: "Output", alignRight: true},
				{header: "Duration", alignRight: true},
			}, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show (0 = all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit runs as JSON")

	return cmd
}
