package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"autosort/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and manage the undo journal",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))

	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded transactions, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			manager := journal.NewManager(cfg, nil, ctx.loggerValue())
			history := manager.History()
			out := cmd.OutOrStdout()
			if len(history) == 0 {
				fmt.Fprintln(out, "Journal is empty")
				return nil
			}

			rows := make([][]string, 0, len(history))
			for _, txn := range history {
				state := "open"
				if txn.Completed {
					state = "committed"
				}
				rows = append(rows, []string{
					shortID(txn.ID),
					txn.Timestamp.Local().Format(time.DateTime),
					txn.Description,
					strconv.Itoa(txn.OperationCount),
					state,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Started", "Description", "Operations", "State"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop every recorded transaction",
		Long: "Clear empties the undo journal. Files stay where they are; the batches\n" +
			"simply can no longer be undone.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStateLock(func() error {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				manager := journal.NewManager(cfg, nil, ctx.loggerValue())
				count := len(manager.History())
				if err := manager.Clear(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d transaction(s) from the journal.\n", count)
				return nil
			})
		},
	}
}

// shortID trims a UUID to its first group for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
