package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"autosort/internal/organizer"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var source sourceFlags

	cmd := &cobra.Command{
		Use:   "analyze [directory]",
		Short: "Show how a directory's files would be categorized",
		Long: "Analyze classifies every eligible file and tallies counts and sizes per\n" +
			"category without moving anything. Use it to sanity-check the category\n" +
			"tree before an organize run.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			resolver, err := ctx.resolver()
			if err != nil {
				return err
			}
			sourceDir, err := resolveSource(resolver, args, source)
			if err != nil {
				return err
			}

			logger := ctx.loggerValue()
			patterns, err := sourceIgnorePatterns(cfg, sourceDir)
			if err != nil {
				return err
			}
			orchestrator, err := organizer.New(cfg, nil, logger)
			if err != nil {
				return err
			}
			report, err := orchestrator.Analyze(sourceDir, patterns)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if report.TotalFiles == 0 {
				fmt.Fprintf(out, "No eligible files in %s\n", report.SourceDir)
				return nil
			}

			rows := make([][]string, 0, len(report.Categories))
			for _, category := range report.Categories {
				rows = append(rows, []string{
					category.Name,
					strconv.Itoa(category.Files),
					formatBytes(category.Bytes),
				})
				for _, sub := range category.Subcategories {
					rows = append(rows, []string{
						"  " + sub.Name,
						strconv.Itoa(sub.Files),
						formatBytes(sub.Bytes),
					})
				}
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Category", "Files", "Size"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight},
			))
			fmt.Fprintf(out, "%d file(s), %s total\n", report.TotalFiles, formatBytes(report.TotalBytes))
			return nil
		},
	}

	source.register(cmd)
	return cmd
}
