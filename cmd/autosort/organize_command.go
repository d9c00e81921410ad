package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"autosort/internal/journal"
	"autosort/internal/logging"
	"autosort/internal/organizer"
	"autosort/internal/runlog"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var source sourceFlags

	cmd := &cobra.Command{
		Use:   "organize [directory]",
		Short: "Sort a directory's files into its Autosort tree",
		Long: "Organize moves every eligible file directly under the given directory\n" +
			"into Autosort/<Category>[/<Subcategory>] folders and records the batch\n" +
			"in the undo journal. Pass --dry-run to preview without touching anything.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := ctx.resolver()
			if err != nil {
				return err
			}
			sourceDir, err := resolveSource(resolver, args, source)
			if err != nil {
				return err
			}
			if dryRun {
				return runOrganize(ctx, cmd, sourceDir, true)
			}
			return ctx.withStateLock(func() error {
				return runOrganize(ctx, cmd, sourceDir, false)
			})
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Preview the run without moving files")
	source.register(cmd)
	return cmd
}

// runOrganize wraps one orchestrator pass with the transaction, progress, and
// run-history plumbing the core deliberately leaves to its caller.
func runOrganize(ctx *commandContext, cmd *cobra.Command, sourceDir string, dryRun bool) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	patterns, err := sourceIgnorePatterns(cfg, sourceDir)
	if err != nil {
		logger.Warn("ignore file unreadable, continuing without patterns", logging.Error(err))
	}

	var manager *journal.Manager
	var transactionID string
	var recorder organizer.Recorder
	if !dryRun {
		manager = journal.NewManager(cfg, nil, logger)
		transactionID = manager.Begin("Organize " + filepath.Base(sourceDir))
		recorder = manager
	}

	orchestrator, err := organizer.New(cfg, recorder, logger)
	if err != nil {
		return err
	}

	progress := newProgressReporter(out)
	defer progress.finish()

	runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	result, err := orchestrator.Organize(runCtx, sourceDir, organizer.Options{
		DryRun:         dryRun,
		TransactionID:  transactionID,
		IgnorePatterns: patterns,
		Progress:       progress.callback(),
	})
	if err != nil {
		return err
	}
	progress.finish()

	// Per-file errors do not block the commit: the moves that did happen
	// must stay undoable.
	if !dryRun {
		if !manager.Commit(transactionID) {
			fmt.Fprintln(out, "warning: transaction could not be committed; this run is not undoable")
		}
	}

	ctx.recordRun(cmd.Context(), &runlog.Run{
		Kind:          runlog.KindOrganize,
		SourceDir:     sourceDir,
		DryRun:        dryRun,
		Processed:     result.Processed,
		Moved:         result.Moved,
		Errors:        result.Errors,
		TransactionID: transactionID,
		StartedAt:     started,
		FinishedAt:    time.Now(),
	})

	printOrganizeSummary(out, result, dryRun)
	if !dryRun && result.Moved > 0 {
		fmt.Fprintln(out, "Saved for undo; run `autosort undo` to revert this batch.")
	}
	return nil
}
