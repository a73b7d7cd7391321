package lookup_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"inlay/internal/lookup"
)

func sampleImages() map[string]lookup.Entry {
	return map[string]lookup.Entry{
		"logo": {
			DataURI:     "data:image/png;base64,aGVsbG8=",
			SizeBytes:   5,
			HasMetadata: true,
			Category:    "branding",
			Tags:        []string{"logo", "header"},
			Description: "Primary logo",
			Filename:    "logo.png",
		},
		"hero": {
			DataURI:     "data:image/jpeg;base64,d29ybGQ=",
			SizeBytes:   5,
			HasMetadata: true,
			Category:    "people",
			Tags:        []string{"woman"},
			Description: "Woman sitting",
			Filename:    "hero.jpg",
		},
		"stray": {
			DataURI:   "data:image/png;base64,eA==",
			SizeBytes: 1,
			Category:  "uncategorized",
			Filename:  "stray.png",
		},
	}
}

func TestBuildSummaryCountsMetadataOnly(t *testing.T) {
	summary := lookup.BuildSummary(sampleImages())

	if summary.TotalImages != 3 {
		t.Fatalf("TotalImages = %d", summary.TotalImages)
	}
	if summary.WithMetadata != 2 {
		t.Fatalf("WithMetadata = %d", summary.WithMetadata)
	}
	total := 0
	for _, n := range summary.Categories {
		total += n
	}
	if total != 2 {
		t.Fatalf("category counts should sum to with-metadata count, got %d", total)
	}
	if _, ok := summary.Categories["uncategorized"]; ok {
		t.Fatal("metadata-less entry must not contribute a category")
	}
	if !reflect.DeepEqual(summary.Tags, []string{"header", "logo", "woman"}) {
		t.Fatalf("unexpected tag set: %v", summary.Tags)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lookup.json")
	file := lookup.New(sampleImages())

	if err := file.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := lookup.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Images) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(loaded.Images))
	}
	if !reflect.DeepEqual(loaded.Images["logo"], file.Images["logo"]) {
		t.Fatalf("entry changed across round trip: %+v", loaded.Images["logo"])
	}
	if loaded.Summary.WithMetadata != 2 {
		t.Fatalf("summary not preserved: %+v", loaded.Summary)
	}
	if got := loaded.Keys(); !reflect.DeepEqual(got, []string{"hero", "logo", "stray"}) {
		t.Fatalf("unexpected key order: %v", got)
	}
}

func TestLoadFlatEnrichedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lookup.json")
	flat := map[string]any{
		"logo": map[string]any{
			"base64":       "data:image/png;base64,aGVsbG8=",
			"has_metadata": true,
			"category":     "branding",
			"tags":         []string{"logo"},
		},
	}
	data, err := json.Marshal(flat)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := lookup.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	entry, ok := loaded.Get("logo")
	if !ok || entry.Category != "branding" {
		t.Fatalf("flat entry not loaded: %+v", entry)
	}
	if loaded.Summary.WithMetadata != 1 {
		t.Fatalf("summary not derived for flat format: %+v", loaded.Summary)
	}
}

func TestLoadSimpleFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lookup.json")
	content := `{"icon": "data:image/png;base64,eA=="}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := lookup.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	entry, ok := loaded.Get("icon")
	if !ok || entry.DataURI != "data:image/png;base64,eA==" {
		t.Fatalf("simple entry not loaded: %+v", entry)
	}
	if entry.HasMetadata {
		t.Fatal("simple entries carry no metadata")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := lookup.Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing lookup")
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lookup.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := lookup.Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
