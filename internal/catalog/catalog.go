// Package catalog reads the CSV metadata catalogue that enriches converted
// images. Rows are keyed by filename stem so they line up with lookup keys.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"inlay/internal/logging"
)

// ErrMissingFilenameColumn indicates the CSV header has no filename column.
var ErrMissingFilenameColumn = errors.New("metadata CSV is missing required column \"filename\"")

// Record holds the metadata for a single image file.
type Record struct {
	Filename    string
	Category    string
	Tags        []string
	Description string
	Notes       string
}

// Catalog maps filename stems to metadata records.
type Catalog map[string]Record

// Load parses the metadata CSV at path. A missing file is a fatal error per
// the pipeline contract; rows with a blank filename are skipped with a log.
// Duplicate stems keep the last row, matching a spreadsheet edit flow where
// later rows correct earlier ones.
func Load(path string, logger *slog.Logger) (Catalog, error) {
	logger = logging.NewComponentLogger(logger, "catalog")

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open metadata file %q: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingFilenameColumn
		}
		return nil, fmt.Errorf("read metadata header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["filename"]; !ok {
		return nil, ErrMissingFilenameColumn
	}

	field := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	catalog := make(Catalog)
	rowNum := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read metadata row %d: %w", rowNum+1, err)
		}
		rowNum++

		filename := field(row, "filename")
		if filename == "" {
			logger.Debug("skipping metadata row with blank filename", logging.Int("row", rowNum))
			continue
		}

		catalog[Stem(filename)] = Record{
			Filename:    filename,
			Category:    field(row, "category"),
			Tags:        ParseTags(field(row, "tags")),
			Description: field(row, "description"),
			Notes:       field(row, "notes"),
		}
	}

	logger.Debug("loaded metadata catalogue",
		logging.String("path", path),
		logging.Int("records", len(catalog)))

	return catalog, nil
}

// ParseTags splits a pipe-separated tag cell into trimmed, non-empty tags.
func ParseTags(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	parts := strings.Split(cell, "|")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Stem returns the filename without its extension, the key every lookup
// entry is stored under.
func Stem(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
