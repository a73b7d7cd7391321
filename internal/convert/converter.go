// Package convert implements the metadata-enriched base64 conversion
// pipeline: scan an image directory, encode every file as a data URI, merge
// CSV metadata, and write the enriched JSON lookup.
package convert

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gofrs/flock"

	"inlay/internal/catalog"
	"inlay/internal/logging"
	"inlay/internal/lookup"
)

// Options controls a single conversion run.
type Options struct {
	MetadataPath string
	ImagesDir    string
	OutputPath   string
	Limit        int  // process only the first N images when > 0
	ListOnly     bool // preview image/metadata alignment without converting
}

// Stats summarizes a conversion run.
type Stats struct {
	Found           int
	Processed       int
	Skipped         int
	WithMetadata    int
	WithoutMetadata int
	OutputBytes     int64
	Duration        time.Duration
}

// RunRecord is the subset of Stats persisted to the history store.
type RunRecord struct {
	StartedAt   time.Time
	ImagesDir   string
	OutputPath  string
	Processed   int
	Skipped     int
	WithMeta    int
	OutputBytes int64
	Duration    time.Duration
}

// RunRecorder persists finished runs. A nil recorder disables history.
type RunRecorder interface {
	Record(ctx context.Context, run RunRecord) error
}

// Converter orchestrates one run. Progress lines go to Out; warnings and
// diagnostics go through the logger.
type Converter struct {
	Options  Options
	Logger   *slog.Logger
	Out      io.Writer
	Recorder RunRecorder
}

// Run executes the conversion. It fails only when the metadata CSV or the
// image directory is missing entirely; unreadable individual images are
// skipped and counted.
func (c *Converter) Run(ctx context.Context) (*lookup.File, *Stats, error) {
	logger := logging.NewComponentLogger(c.Logger, "convert")
	out := c.Out
	if out == nil {
		out = io.Discard
	}
	started := time.Now()

	meta, err := catalog.Load(c.Options.MetadataPath, c.Logger)
	if err != nil {
		return nil, nil, err
	}
	fmt.Fprintf(out, "Loaded metadata for %d images from %s\n", len(meta), c.Options.MetadataPath)

	files, err := ScanImages(c.Options.ImagesDir, c.Logger)
	if err != nil {
		return nil, nil, err
	}
	stats := &Stats{Found: len(files)}
	if len(files) == 0 {
		logger.Warn("no image files found", logging.String("dir", c.Options.ImagesDir))
	} else {
		fmt.Fprintf(out, "Found %d image files in %s\n\n", len(files), c.Options.ImagesDir)
	}

	if c.Options.ListOnly {
		c.listAlignment(out, files, meta, stats)
		stats.Duration = time.Since(started)
		return nil, stats, nil
	}

	if c.Options.Limit > 0 && c.Options.Limit < len(files) {
		logger.Debug("limiting run", logging.Int("limit", c.Options.Limit), logging.Int("found", len(files)))
		files = files[:c.Options.Limit]
	}

	// Converter runs must not race each other on the same output file.
	lock := flock.New(c.Options.OutputPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, nil, fmt.Errorf("acquire lookup lock: %w", err)
	}
	if !locked {
		return nil, nil, fmt.Errorf("another convert run is writing %s", c.Options.OutputPath)
	}
	defer func() { _ = lock.Unlock() }()

	images := make(map[string]lookup.Entry, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		entry, err := c.encodeFile(file, meta)
		if err != nil {
			stats.Skipped++
			logger.Warn("skipping unreadable image",
				logging.String("file", file.Name),
				logging.Error(err))
			fmt.Fprintf(out, "%-15s | %-40s | %s\n", "ERROR", file.Name, err)
			continue
		}
		images[file.Stem] = entry
		stats.Processed++
		status := "with metadata"
		if entry.HasMetadata {
			stats.WithMetadata++
		} else {
			stats.WithoutMetadata++
			status = "no metadata"
		}
		fmt.Fprintf(out, "%-15s | %-40s | %s\n", status, file.Name, sizeKB(entry.SizeBytes))
	}

	result := lookup.New(images)
	if err := result.Save(c.Options.OutputPath); err != nil {
		return nil, nil, err
	}
	if info, err := os.Stat(c.Options.OutputPath); err == nil {
		stats.OutputBytes = info.Size()
	}
	stats.Duration = time.Since(started)

	logger.Info("conversion complete",
		logging.Int("processed", stats.Processed),
		logging.Int("skipped", stats.Skipped),
		logging.Int("with_metadata", stats.WithMetadata),
		logging.String("output", c.Options.OutputPath))

	if c.Recorder != nil {
		record := RunRecord{
			StartedAt:   started.UTC(),
			ImagesDir:   c.Options.ImagesDir,
			OutputPath:  c.Options.OutputPath,
			Processed:   stats.Processed,
			Skipped:     stats.Skipped,
			WithMeta:    stats.WithMetadata,
			OutputBytes: stats.OutputBytes,
			Duration:    stats.Duration,
		}
		if err := c.Recorder.Record(ctx, record); err != nil {
			logger.Warn("failed to record run history", logging.Error(err))
		}
	}

	return result, stats, nil
}

func (c *Converter) encodeFile(file ImageFile, meta catalog.Catalog) (lookup.Entry, error) {
	data, err := os.ReadFile(file.Path)
	if err != nil {
		return lookup.Entry{}, err
	}

	entry := lookup.Entry{
		DataURI:   fmt.Sprintf("data:%s;base64,%s", file.MIME, base64.StdEncoding.EncodeToString(data)),
		SizeBytes: int64(len(data)),
		Category:  "uncategorized",
		Filename:  file.Name,
	}
	if record, ok := meta[file.Stem]; ok {
		entry.HasMetadata = true
		entry.Category = record.Category
		entry.Tags = record.Tags
		entry.Description = record.Description
		entry.Notes = record.Notes
	}
	return entry, nil
}

func (c *Converter) listAlignment(out io.Writer, files []ImageFile, meta catalog.Catalog, stats *Stats) {
	for _, file := range files {
		marker := "----"
		if _, ok := meta[file.Stem]; ok {
			marker = "META"
			stats.WithMetadata++
		} else {
			stats.WithoutMetadata++
		}
		fmt.Fprintf(out, "%s | %s\n", marker, file.Name)
	}
	fmt.Fprintf(out, "Total images: %d | With metadata: %d | Without: %d\n",
		len(files), stats.WithMetadata, stats.WithoutMetadata)
}

func sizeKB(n int64) string {
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}
