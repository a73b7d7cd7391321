package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteImage drops an image fixture into dir. The bytes are arbitrary; the
// pipeline never decodes image content.
func WriteImage(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// WriteCatalogue writes a metadata CSV with the standard header followed by
// the given rows.
func WriteCatalogue(t *testing.T, path string, rows ...string) string {
	t.Helper()
	content := "filename,category,tags,description,notes\n"
	for _, row := range rows {
		content += row + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
