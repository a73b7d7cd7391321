// Package lookup defines the enriched base64 lookup file: the single JSON
// artifact the converter writes and every other command reads.
package lookup

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"inlay/internal/fileutil"
)

// Entry is one converted image keyed by filename stem.
type Entry struct {
	DataURI     string   `json:"base64"`
	SizeBytes   int64    `json:"size_bytes"`
	HasMetadata bool     `json:"has_metadata"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	Notes       string   `json:"notes,omitempty"`
	Filename    string   `json:"filename"`
}

// Summary aggregates the lookup for quick inspection. Category counts only
// include entries that actually carried metadata, so the counts sum to
// WithMetadata.
type Summary struct {
	TotalImages  int            `json:"total_images"`
	WithMetadata int            `json:"with_metadata"`
	Categories   map[string]int `json:"categories"`
	Tags         []string       `json:"tags"`
}

// File is the on-disk lookup document. It is regenerated in full on every
// converter run and treated as read-only by all other commands.
type File struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Images      map[string]Entry `json:"images"`
	Summary     Summary          `json:"summary"`
}

// New builds a File around the given entries with a freshly computed summary.
func New(images map[string]Entry) *File {
	if images == nil {
		images = make(map[string]Entry)
	}
	return &File{
		GeneratedAt: time.Now().UTC(),
		Images:      images,
		Summary:     BuildSummary(images),
	}
}

// BuildSummary derives the aggregate section from the entry map.
func BuildSummary(images map[string]Entry) Summary {
	summary := Summary{
		TotalImages: len(images),
		Categories:  make(map[string]int),
	}
	tagSet := make(map[string]struct{})
	for _, entry := range images {
		if entry.HasMetadata {
			summary.WithMetadata++
			category := entry.Category
			if category == "" {
				category = "uncategorized"
			}
			summary.Categories[category]++
		}
		for _, tag := range entry.Tags {
			tagSet[tag] = struct{}{}
		}
	}
	summary.Tags = make([]string, 0, len(tagSet))
	for tag := range tagSet {
		summary.Tags = append(summary.Tags, tag)
	}
	sort.Strings(summary.Tags)
	return summary
}

// Keys returns the entry keys in sorted order.
func (f *File) Keys() []string {
	keys := make([]string, 0, len(f.Images))
	for key := range f.Images {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the entry for key.
func (f *File) Get(key string) (Entry, bool) {
	entry, ok := f.Images[key]
	return entry, ok
}

// Save writes the lookup atomically so a reader never sees a torn file.
func (f *File) Save(path string) error {
	f.Summary = BuildSummary(f.Images)
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal lookup: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write lookup %q: %w", path, err)
	}
	return nil
}

// Load reads a lookup file. Three shapes are accepted: the wrapped document
// Save produces, a flat map of key to enriched entry, and the legacy simple
// map of key to bare data URI string.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lookup %q: %w", path, err)
	}

	var wrapped File
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Images != nil {
		if wrapped.Summary.Categories == nil {
			wrapped.Summary = BuildSummary(wrapped.Images)
		}
		return &wrapped, nil
	}

	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("parse lookup %q: %w", path, err)
	}

	images := make(map[string]Entry, len(flat))
	for key, raw := range flat {
		var entry Entry
		if err := json.Unmarshal(raw, &entry); err == nil && entry.DataURI != "" {
			images[key] = entry
			continue
		}
		var uri string
		if err := json.Unmarshal(raw, &uri); err == nil {
			images[key] = Entry{DataURI: uri}
			continue
		}
		return nil, fmt.Errorf("parse lookup %q: entry %q has an unrecognized shape", path, key)
	}

	file := &File{Images: images, Summary: BuildSummary(images)}
	return file, nil
}
