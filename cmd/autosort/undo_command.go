package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"autosort/internal/faults"
	"autosort/internal/journal"
	"autosort/internal/runlog"
)

func newUndoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Revert the most recent organize run",
		Long: "Undo replays the last committed transaction in reverse, moving every\n" +
			"file back where it came from and removing directories the run created\n" +
			"that are still empty. Each transaction can be undone once.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStateLock(func() error {
				return runUndo(ctx, cmd)
			})
		},
	}
}

func runUndo(ctx *commandContext, cmd *cobra.Command) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	manager := journal.NewManager(cfg, nil, logger)
	info := manager.UndoInfo()
	if !info.CanUndo {
		fmt.Fprintln(out, "Nothing to undo.")
		return nil
	}
	fmt.Fprintf(out, "Undoing: %s\n", info.LastDescription)

	started := time.Now()
	result, err := manager.UndoLast()
	if errors.Is(err, faults.ErrNotFound) {
		fmt.Fprintln(out, "Nothing to undo.")
		return nil
	}
	if err != nil {
		return err
	}

	status := runlog.StatusCompleted
	if !result.Complete() {
		status = runlog.StatusFailed
	}
	ctx.recordRun(cmd.Context(), &runlog.Run{
		Kind:          runlog.KindUndo,
		Processed:     result.Undone + result.Failed,
		Moved:         result.Undone,
		Errors:        result.Failed,
		TransactionID: result.TransactionID,
		Status:        status,
		StartedAt:     started,
		FinishedAt:    time.Now(),
	})

	if result.Complete() {
		fmt.Fprintf(out, "Undone: %d operation(s) reversed.\n", result.Undone)
		return nil
	}
	fmt.Fprintf(out, "Partially undone: %d reversed, %d could not be.\n", result.Undone, result.Failed)
	printErrorPreview(out, result.Failures)
	fmt.Fprintln(out, "The transaction has been removed from the journal either way.")
	return nil
}
