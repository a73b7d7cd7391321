package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"inlay/internal/catalog"
	"inlay/internal/diagnose"
	"inlay/internal/fileutil"
	"inlay/internal/logging"
)

func newDiagnoseCommand(ctx *commandContext) *cobra.Command {
	var lookupFlag string
	var metadataFlag string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Inspect the lookup file for size outliers and missing entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, lookupPath, err := ctx.loadLookup(lookupFlag)
			if err != nil {
				return err
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			metadataPath, err := resolvePath(metadataFlag, cfg.Paths.MetadataFile)
			if err != nil {
				return err
			}

			var cat catalog.Catalog
			if fileutil.FileExists(metadataPath) {
				cat, err = catalog.Load(metadataPath, ctx.loggerValue())
				if err != nil {
					ctx.loggerValue().Warn("metadata cross-check skipped",
						logging.String("path", metadataPath),
						logging.Error(err))
					cat = nil
				}
			}

			report := diagnose.Analyze(lookupPath, file, cat)

			if jsonOut {
				return writeJSON(cmd, report)
			}

			printDiagnoseReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().StringVar(&lookupFlag, "lookup", "", "Lookup file to inspect")
	cmd.Flags().StringVar(&metadataFlag, "metadata", "", "Metadata CSV for the cross-check")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the report as JSON")

	return cmd
}

func printDiagnoseReport(cmd *cobra.Command, report diagnose.Report) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Lookup: %s (%s)\n", report.Path, formatSize(report.FileBytes))
	fmt.Fprintf(out, "Entries: %d\n", report.Entries)
	if report.Entries == 0 {
		return
	}

	fmt.Fprintf(out, "Payload chars: min %d | mean %d | max %d | total %d\n\n",
		report.MinChars, report.MeanChars, report.MaxChars, report.TotalChars)

	fmt.Fprintln(out, "Smallest entries:")
	fmt.Fprintln(out, renderEntrySizes(report.Smallest))
	fmt.Fprintln(out, "Largest entries:")
	fmt.Fprintln(out, renderEntrySizes(report.Largest))

	if len(report.Short) > 0 {
		fmt.Fprintf(out, "%d entries have suspiciously short payloads (possible truncated sources):\n", len(report.Short))
		fmt.Fprintln(out, renderEntrySizes(report.Short))
	}

	if report.MetadataChecked {
		if len(report.MissingKeys) == 0 {
			fmt.Fprintln(out, "Metadata cross-check: every catalogue entry has a lookup image")
		} else {
			fmt.Fprintf(out, "Metadata cross-check: %d catalogue entries have no lookup image:\n", len(report.MissingKeys))
			for _, key := range report.MissingKeys {
				fmt.Fprintf(out, "  - %s\n", key)
			}
		}
	}
}

func renderEntrySizes(sizes []diagnose.EntrySize) string {
	rows := make([][]string, 0, len(sizes))
	for _, size := range sizes {
		rows = append(rows, []string{
			size.Key,
			strconv.Itoa(size.Chars),
			formatSize(size.ApproxOriginalBytes),
		})
	}
	return renderTable([]column{
		{header: "Key"},
		{header: "Chars", alignRight: true},
		{header: "Approx. source", alignRight: true},
	}, rows)
}
