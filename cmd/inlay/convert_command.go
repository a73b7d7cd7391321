package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"inlay/internal/convert"
	"inlay/internal/history"
	"inlay/internal/logging"
	"inlay/internal/search"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var metadataFlag string
	var imagesFlag string
	var outputFlag string
	var limit int
	var listOnly bool
	var noPause bool

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Encode the image folder into the base64 lookup file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			metadataPath, err := resolvePath(metadataFlag, cfg.Paths.MetadataFile)
			if err != nil {
				return err
			}
			imagesDir, err := resolvePath(imagesFlag, cfg.Paths.ImagesDir)
			if err != nil {
				return err
			}
			outputPath, err := resolvePath(outputFlag, cfg.Paths.LookupFile)
			if err != nil {
				return err
			}

			converter := &convert.Converter{
				Options: convert.Options{
					MetadataPath: metadataPath,
					ImagesDir:    imagesDir,
					OutputPath:   outputPath,
					Limit:        limit,
					ListOnly:     listOnly,
				},
				Logger: ctx.loggerValue(),
				Out:    cmd.OutOrStdout(),
			}

			if path := cfg.HistoryPath(); path != "" && !listOnly {
				store, err := history.Open(path)
				if err != nil {
					ctx.loggerValue().Warn("history store unavailable", logging.Error(err))
				} else {
					defer store.Close()
					converter.Recorder = &storeRecorder{store: store}
				}
			}

			file, stats, err := converter.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if file != nil {
				categories := search.Categories(file)
				rows := make([][]string, 0, len(categories))
				for _, cat := range categories {
					rows = append(rows, []string{cat.Name, strconv.Itoa(cat.Count)})
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderTable([]column{
					{header: "Category"},
					{header: "Images", alignRight: true},
				}, rows))
				fmt.Fprintf(out, "Unique tags: %d\n", len(search.Tags(file)))
			}

			fmt.Fprintf(out, "\nProcessed %d of %d images (%d skipped, %d with metadata) in %s\n",
				stats.Processed, stats.Found, stats.Skipped, stats.WithMetadata,
				stats.Duration.Round(time.Millisecond))
			if file != nil {
				fmt.Fprintf(out, "Wrote %s (%s)\n", outputPath, formatSize(stats.OutputBytes))
			}

			pausePrompt(cmd, noPause)
			return nil
		},
	}

	cmd.Flags().StringVar(&metadataFlag, "metadata", "", "Metadata CSV path")
	cmd.Flags().StringVar(&imagesFlag, "images", "", "Image directory to scan")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Lookup file to write")
	cmd.Flags().IntVar(&limit, "limit", 0, "Convert only the first N images (0 = all)")
	cmd.Flags().BoolVar(&listOnly, "list-only", false, "List image/metadata alignment without converting")
	cmd.Flags().BoolVar(&noPause, "no-pause", false, "Skip the end-of-run pause prompt")

	return cmd
}

// storeRecorder adapts the history store to the converter's recorder
// interface.
type storeRecorder struct {
	store *history.Store
}

func (r *storeRecorder) Record(ctx context.Context, run convert.RunRecord) error {
	_, err := r.store.RecordRun(ctx, history.Run{
		StartedAt:    run.StartedAt,
		ImagesDir:    run.ImagesDir,
		OutputPath:   run.OutputPath,
		Processed:    run.Processed,
		Skipped:      run.Skipped,
		WithMetadata: run.WithMeta,
		OutputBytes:  run.OutputBytes,
		Duration:     run.Duration,
	})
	return err
}
