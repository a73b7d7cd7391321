package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"inlay/internal/catalog"
	"inlay/internal/logging"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalogue.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadParsesRows(t *testing.T) {
	path := writeCSV(t, `filename,category,tags,description,notes
logo.png,branding,logo|header,Primary logo,Use on light backgrounds
hero.jpg,people,woman|sitting,Woman sitting on a block,
`)

	cat, err := catalog.Load(path, logging.NewNop())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cat) != 2 {
		t.Fatalf("expected 2 records, got %d", len(cat))
	}

	logo, ok := cat["logo"]
	if !ok {
		t.Fatal("expected record keyed by stem \"logo\"")
	}
	if logo.Category != "branding" || logo.Description != "Primary logo" {
		t.Fatalf("unexpected record: %+v", logo)
	}
	if !reflect.DeepEqual(logo.Tags, []string{"logo", "header"}) {
		t.Fatalf("unexpected tags: %v", logo.Tags)
	}
	if logo.Filename != "logo.png" {
		t.Fatalf("original filename not preserved: %s", logo.Filename)
	}
}

func TestLoadSkipsBlankFilenames(t *testing.T) {
	path := writeCSV(t, `filename,category,tags,description
logo.png,branding,logo,Primary logo
,misc,stray,No filename here
`)

	cat, err := catalog.Load(path, logging.NewNop())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cat) != 1 {
		t.Fatalf("expected blank-filename row to be skipped, got %d records", len(cat))
	}
}

func TestLoadRequiresFilenameColumn(t *testing.T) {
	path := writeCSV(t, `name,category
logo.png,branding
`)

	_, err := catalog.Load(path, logging.NewNop())
	if !errors.Is(err, catalog.ErrMissingFilenameColumn) {
		t.Fatalf("expected ErrMissingFilenameColumn, got %v", err)
	}
}

func TestLoadMissingFileIsFatal(t *testing.T) {
	_, err := catalog.Load(filepath.Join(t.TempDir(), "absent.csv"), logging.NewNop())
	if err == nil {
		t.Fatal("expected error for missing metadata file")
	}
}

func TestLoadHandlesShortRows(t *testing.T) {
	path := writeCSV(t, `filename,category,tags,description,notes
icon.png,icons
`)

	cat, err := catalog.Load(path, logging.NewNop())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	rec := cat["icon"]
	if rec.Category != "icons" || rec.Description != "" || len(rec.Tags) != 0 {
		t.Fatalf("short row parsed incorrectly: %+v", rec)
	}
}

func TestParseTags(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"  ", nil},
		{"woman|sitting", []string{"woman", "sitting"}},
		{" woman | sitting | ", []string{"woman", "sitting"}},
		{"solo", []string{"solo"}},
	}
	for _, tc := range cases {
		if got := catalog.ParseTags(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseTags(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestStem(t *testing.T) {
	if got := catalog.Stem("dir/photo.final.PNG"); got != "photo.final" {
		t.Fatalf("Stem = %q", got)
	}
	if got := catalog.Stem("plain"); got != "plain" {
		t.Fatalf("Stem without extension = %q", got)
	}
}
