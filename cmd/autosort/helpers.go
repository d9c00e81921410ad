package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"autosort/internal/config"
	"autosort/internal/organizer"
	"autosort/internal/paths"
)

// errorPreviewLimit caps how many per-file diagnostics a summary prints; the
// rest stay available in the log file.
const errorPreviewLimit = 5

// sourceFlags carries the mutually exclusive ways of naming a source
// directory shared by organize, analyze, and watch.
type sourceFlags struct {
	desktop   bool
	downloads bool
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.desktop, "desktop", false, "Use the Desktop directory as the source")
	cmd.Flags().BoolVar(&f.downloads, "downloads", false, "Use the Downloads directory as the source")
}

// resolveSource turns the positional argument or a well-known-directory flag
// into an absolute source path. Exactly one of the three must be given.
func resolveSource(resolver *paths.Resolver, args []string, flags sourceFlags) (string, error) {
	chosen := 0
	if flags.desktop {
		chosen++
	}
	if flags.downloads {
		chosen++
	}
	if len(args) > 0 {
		chosen++
	}
	switch {
	case chosen == 0:
		return "", errors.New("pass a directory, or one of --desktop / --downloads")
	case chosen > 1:
		return "", errors.New("pass exactly one of a directory, --desktop, or --downloads")
	case flags.desktop:
		return resolver.Desktop(), nil
	case flags.downloads:
		return resolver.Downloads(), nil
	}
	return config.ExpandPath(args[0])
}

// sourceIgnorePatterns loads the per-directory ignore file. A missing file is
// the common case and yields no patterns; read failures surface to the caller.
func sourceIgnorePatterns(cfg *config.Config, sourceDir string) ([]string, error) {
	return organizer.LoadIgnorePatterns(filepath.Join(sourceDir, cfg.Organize.IgnoreFile))
}

func printOrganizeSummary(out io.Writer, res *organizer.Result, dryRun bool) {
	if dryRun {
		fmt.Fprintf(out, "Preview of %s\n", res.SourceDir)
		fmt.Fprintf(out, "  Files that would move: %d\n", len(res.Operations))
	} else {
		fmt.Fprintf(out, "Organized %s\n", res.SourceDir)
		fmt.Fprintf(out, "  Files processed: %d\n", res.Processed)
		fmt.Fprintf(out, "  Files moved:     %d\n", res.Moved)
		fmt.Fprintf(out, "  Errors:          %d\n", res.Errors)
	}
	if res.Stopped {
		fmt.Fprintln(out, "  Run stopped early; already-moved files stay moved (use undo to revert)")
	}

	for _, op := range res.Operations {
		rel, err := filepath.Rel(res.TargetRoot, op.Destination)
		if err != nil {
			rel = op.Destination
		}
		verb := "moved"
		if dryRun {
			verb = "would move"
		}
		fmt.Fprintf(out, "  %s %s -> %s\n", verb, filepath.Base(op.Source), rel)
	}

	printErrorPreview(out, res.ErrorLog)
}

func printErrorPreview(out io.Writer, errorLog []string) {
	if len(errorLog) == 0 {
		return
	}
	fmt.Fprintln(out, "Errors:")
	for i, msg := range errorLog {
		if i == errorPreviewLimit {
			fmt.Fprintf(out, "  ... and %d more (see the log file)\n", len(errorLog)-errorPreviewLimit)
			break
		}
		fmt.Fprintf(out, "  - %s\n", msg)
	}
}

func formatBytes(value int64) string {
	const (
		kiB = 1024
		miB = kiB * 1024
		giB = miB * 1024
	)
	switch {
	case value >= giB:
		return fmt.Sprintf("%.2f GiB", float64(value)/float64(giB))
	case value >= miB:
		return fmt.Sprintf("%.2f MiB", float64(value)/float64(miB))
	case value >= kiB:
		return fmt.Sprintf("%.2f KiB", float64(value)/float64(kiB))
	default:
		return fmt.Sprintf("%d B", value)
	}
}
