package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"inlay/internal/config"
	"inlay/internal/inject"
)

// availableKeysShown caps the key hint printed after a missed placeholder.
const availableKeysShown = 20

func newInjectCommand(ctx *commandContext) *cobra.Command {
	var lookupFlag string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "inject TEMPLATE OUTPUT",
		Short: "Replace {{key}} placeholders in an HTML template with data URIs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, lookupPath, err := ctx.loadLookup(lookupFlag)
			if err != nil {
				return err
			}

			templatePath, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			outputPath, err := config.ExpandPath(args[1])
			if err != nil {
				return err
			}

			report, err := inject.File(templatePath, outputPath, file, ctx.loggerValue())
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, map[string]any{
					"placeholders_found": report.PlaceholdersFound,
					"distinct_keys":      report.DistinctKeys,
					"replaced":           report.Replaced,
					"missing":            report.Missing,
					"output_bytes":       report.OutputBytes,
					"output_path":        outputPath,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Replaced %d of %d placeholder keys (%d occurrences) using %s\n",
				report.Replaced, report.DistinctKeys, report.PlaceholdersFound, lookupPath)
			if len(report.Missing) > 0 {
				fmt.Fprintln(out, "Keys without a lookup entry (left untouched):")
				for _, key := range report.Missing {
					fmt.Fprintf(out, "  - %s\n", key)
				}
				fmt.Fprintln(out, "Available keys:")
				for i, key := range file.Keys() {
					if i == availableKeysShown {
						fmt.Fprintf(out, "  ... and %d more\n", len(file.Images)-availableKeysShown)
						break
					}
					fmt.Fprintf(out, "  - %s\n", key)
				}
			}
			fmt.Fprintf(out, "Wrote %s (%s)\n", outputPath, formatSize(report.OutputBytes))
			return nil
		},
	}

	cmd.Flags().StringVar(&lookupFlag, "lookup", "", "Lookup file to read data URIs from")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the report as JSON")

	return cmd
}
