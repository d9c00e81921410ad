package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"autosort/internal/runlog"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent organize and undo runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := runlog.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					strconv.FormatInt(run.ID, 10),
					runLabel(run),
					run.SourceDir,
					strconv.Itoa(run.Processed),
					strconv.Itoa(run.Moved),
					strconv.Itoa(run.Errors),
					run.FinishedAt.Local().Format(time.DateTime),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Kind", "Source", "Processed", "Moved", "Errors", "Finished"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}

func runLabel(run *runlog.Run) string {
	label := string(run.Kind)
	if run.DryRun {
		label += " (dry run)"
	}
	if run.Status == runlog.StatusFailed {
		label += " [failed]"
	}
	return label
}
