package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"autosort/internal/journal"
	"autosort/internal/runlog"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration, undo, and run-history state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := isTerminal(out)

			for _, line := range renderSectionHeader("Configuration", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("State directory", statusInfo, cfg.Paths.StateDir, colorize))
			fmt.Fprintln(out, renderStatusLine("Log directory", statusInfo, cfg.Paths.LogDir, colorize))
			fmt.Fprintln(out, renderStatusLine("Categories", statusInfo, strconv.Itoa(len(cfg.Categories)), colorize))
			fmt.Fprintln(out)

			manager := journal.NewManager(cfg, nil, ctx.loggerValue())
			info := manager.UndoInfo()
			for _, line := range renderSectionHeader("Undo", colorize) {
				fmt.Fprintln(out, line)
			}
			if info.CanUndo {
				fmt.Fprintln(out, renderStatusLine("Can undo", statusOK, info.LastDescription, colorize))
			} else {
				fmt.Fprintln(out, renderStatusLine("Can undo", statusWarn, "nothing to undo", colorize))
			}
			fmt.Fprintln(out, renderStatusLine("Transactions", statusInfo,
				fmt.Sprintf("%d recorded, %d committed", info.TransactionCount, info.CompletedCount), colorize))
			fmt.Fprintln(out)

			for _, line := range renderSectionHeader("Run History", colorize) {
				fmt.Fprintln(out, line)
			}
			store, err := runlog.Open(cfg)
			if err != nil {
				fmt.Fprintln(out, renderStatusLine("Database", statusWarn, err.Error(), colorize))
				return nil
			}
			defer store.Close()

			stats, err := store.Totals(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(out, renderStatusLine("Organize runs", statusInfo, strconv.FormatInt(stats.TotalRuns, 10), colorize))
			fmt.Fprintln(out, renderStatusLine("Files moved", statusInfo, strconv.FormatInt(stats.TotalMoved, 10), colorize))
			fmt.Fprintln(out, renderStatusLine("Errors", statusInfo, strconv.FormatInt(stats.TotalErrors, 10), colorize))

			last, err := store.LastRun(cmd.Context())
			if err != nil {
				return err
			}
			if last != nil {
				detail := fmt.Sprintf("%s at %s", runLabel(last), last.FinishedAt.Local().Format(time.DateTime))
				fmt.Fprintln(out, renderStatusLine("Last run", statusInfo, detail, colorize))
			}
			return nil
		},
	}
}
