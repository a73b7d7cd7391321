package fileutil_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"inlay/internal/fileutil"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "out.json")

	if err := fileutil.WriteFileAtomic(target, []byte(`{"ok":true}`), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Fatalf("unexpected contents: %s", data)
	}

	entries, err := os.ReadDir(filepath.Dir(target))
	if err != nil {
		t.Fatalf("list dir: %v", err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".tmp-") {
			t.Fatalf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestWriteFileAtomicOverwrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.txt")

	if err := fileutil.WriteFileAtomic(target, []byte("first"), 0o644); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := fileutil.WriteFileAtomic(target, []byte("second"), 0o644); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != "second" {
		t.Fatalf("expected overwrite, got %s", data)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !fileutil.FileExists(path) {
		t.Fatal("expected file to exist")
	}
	if fileutil.FileExists(dir) {
		t.Fatal("directories should not count as files")
	}
	if fileutil.FileExists(filepath.Join(dir, "missing")) {
		t.Fatal("missing path reported as existing")
	}
	if !fileutil.DirExists(dir) {
		t.Fatal("expected directory to exist")
	}
}

func TestReadFileIfExists(t *testing.T) {
	dir := t.TempDir()

	data, ok, err := fileutil.ReadFileIfExists(filepath.Join(dir, "missing"))
	if err != nil || ok || data != nil {
		t.Fatalf("expected (nil, false, nil), got (%v, %v, %v)", data, ok, err)
	}

	path := filepath.Join(dir, "present")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, ok, err = fileutil.ReadFileIfExists(path)
	if err != nil || !ok {
		t.Fatalf("expected read to succeed, got (%v, %v)", ok, err)
	}
	if string(data) != "hello" {
		t.Fatalf("unexpected contents: %s", data)
	}
}
