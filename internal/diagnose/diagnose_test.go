package diagnose_test

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"inlay/internal/catalog"
	"inlay/internal/diagnose"
	"inlay/internal/lookup"
)

func bigEntry(size int) lookup.Entry {
	return lookup.Entry{DataURI: "data:image/png;base64," + strings.Repeat("A", size)}
}

func TestAnalyzeStats(t *testing.T) {
	file := lookup.New(map[string]lookup.Entry{
		"tiny":   bigEntry(10),
		"small":  bigEntry(500),
		"medium": bigEntry(2000),
		"large":  bigEntry(4000),
	})
	path := filepath.Join(t.TempDir(), "lookup.json")
	if err := file.Save(path); err != nil {
		t.Fatal(err)
	}

	report := diagnose.Analyze(path, file, nil)

	if report.Entries != 4 {
		t.Fatalf("Entries = %d", report.Entries)
	}
	if report.FileBytes <= 0 {
		t.Fatalf("FileBytes = %d", report.FileBytes)
	}
	prefix := len("data:image/png;base64,")
	if report.MinChars != prefix+10 || report.MaxChars != prefix+4000 {
		t.Fatalf("min/max = %d/%d", report.MinChars, report.MaxChars)
	}
	if len(report.Short) != 2 {
		t.Fatalf("expected 2 short payloads, got %d", len(report.Short))
	}
	if report.Smallest[0].Key != "tiny" {
		t.Fatalf("smallest = %+v", report.Smallest)
	}
	if report.Largest[0].Key != "large" {
		t.Fatalf("largest should be descending: %+v", report.Largest)
	}
	if report.MetadataChecked {
		t.Fatal("no catalogue given, cross-check should be skipped")
	}

	approx := report.Smallest[0].ApproxOriginalBytes
	if approx != int64(prefix+10)*3/4 {
		t.Fatalf("approx original bytes = %d", approx)
	}
}

func TestAnalyzeCrossChecksCatalogue(t *testing.T) {
	file := lookup.New(map[string]lookup.Entry{
		"present": bigEntry(1200),
	})
	path := filepath.Join(t.TempDir(), "lookup.json")
	if err := file.Save(path); err != nil {
		t.Fatal(err)
	}

	cat := catalog.Catalog{
		"present": {Filename: "present.png"},
		"ghost":   {Filename: "ghost.png"},
		"phantom": {Filename: "phantom.jpg"},
	}

	report := diagnose.Analyze(path, file, cat)
	if !report.MetadataChecked {
		t.Fatal("expected cross-check to run")
	}
	if !reflect.DeepEqual(report.MissingKeys, []string{"ghost", "phantom"}) {
		t.Fatalf("MissingKeys = %v", report.MissingKeys)
	}
}

func TestAnalyzeEmptyLookup(t *testing.T) {
	file := lookup.New(nil)
	report := diagnose.Analyze(filepath.Join(t.TempDir(), "missing.json"), file, nil)
	if report.Entries != 0 || report.MinChars != 0 || len(report.Smallest) != 0 {
		t.Fatalf("unexpected report for empty lookup: %+v", report)
	}
}
