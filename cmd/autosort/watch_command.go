package main

import (
	"context"
	"errors"
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
	"autosort/internal/watcher"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var debounceSecs int
	var source sourceFlags

	cmd := &cobra.Command{
		Use:   "watch [directory]",
		Short: "Keep a directory organized as files arrive",
		Long: "Watch organizes the directory once, then reruns after each burst of\n" +
			"filesystem changes settles. Every triggered run records its own undo\n" +
			"transaction. Stop with Ctrl-C.",
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
			return ctx.withStateLock(func() error {
				return runWatch(ctx, cmd, sourceDir, debounceSecs)
			})
		},
	}

	cmd.Flags().IntVar(&debounceSecs, "debounce", 0, "Seconds of quiet before a triggered run (0 uses the configured value)")
	source.register(cmd)
	return cmd
}

func runWatch(ctx *commandContext, cmd *cobra.Command, sourceDir string, debounceSecs int) error {
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
	orchestrator, err := organizer.New(cfg, manager, logger)
	if err != nil {
		return err
	}

	run := func(runCtx context.Context) error {
		patterns, err := sourceIgnorePatterns(cfg, sourceDir)
		if err != nil {
			logger.Warn("ignore file unreadable, continuing without patterns", logging.Error(err))
		}
		transactionID := manager.Begin("Watch organize " + filepath.Base(sourceDir))
		started := time.Now()
		result, err := orchestrator.Organize(runCtx, sourceDir, organizer.Options{
			TransactionID:  transactionID,
			IgnorePatterns: patterns,
		})
		if err != nil {
			return err
		}
		manager.Commit(transactionID)
		ctx.recordRun(context.Background(), &runlog.Run{
			Kind:          runlog.KindOrganize,
			SourceDir:     sourceDir,
			Processed:     result.Processed,
			Moved:         result.Moved,
			Errors:        result.Errors,
			TransactionID: transactionID,
			StartedAt:     started,
			FinishedAt:    time.Now(),
		})
		if result.Moved > 0 || result.Errors > 0 {
			fmt.Fprintf(out, "%s: moved %d file(s), %d error(s)\n",
				time.Now().Format(time.TimeOnly), result.Moved, result.Errors)
		}
		return nil
	}

	debounce := time.Duration(debounceSecs) * time.Second
	if debounceSecs <= 0 {
		debounce = time.Duration(cfg.Watch.DebounceSeconds) * time.Second
	}
	w, err := watcher.New(sourceDir, debounce, run, logger)
	if err != nil {
		return err
	}

	watchCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(out, "Watching %s (debounce %s); Ctrl-C to stop.\n", sourceDir, debounce)
	err = w.Watch(watchCtx)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(out, "Watch stopped.")
		return nil
	}
	return err
}
